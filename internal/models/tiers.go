package models

import "strings"

// Tier selects the cost band for council composition.
type Tier string

const (
	TierBudget   Tier = "budget"
	TierBalanced Tier = "balanced"
	TierPremium  Tier = "premium"
)

// DefaultChairman is used when the catalog offers no preferred synthesis
// model.
const DefaultChairman = "google/gemini-3-pro-preview"

// Tiers lists every known tier in display order.
var Tiers = []Tier{TierBudget, TierBalanced, TierPremium}

// ParseTier normalizes a tier name. Unknown values fall back to balanced.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(s)) {
	case TierBudget:
		return TierBudget
	case TierPremium:
		return TierPremium
	default:
		return TierBalanced
	}
}

// TierSet is the static council composition for one tier, used when dynamic
// discovery is disabled or fails.
type TierSet struct {
	Council  []string `json:"council"`
	Chairman string   `json:"chairman"`
}

var staticTiers = map[Tier]TierSet{
	TierBudget: {
		Council: []string{
			"openai/gpt-4o-mini",
			"anthropic/claude-3-5-sonnet",
			"google/gemini-2.0-flash-001",
			"x-ai/grok-4.1-fast",
		},
		Chairman: "google/gemini-2.0-flash-001",
	},
	TierBalanced: {
		Council: []string{
			"openai/gpt-5.2",
			"anthropic/claude-sonnet-4.5",
			"google/gemini-3-pro-preview",
			"x-ai/grok-4.1-fast",
		},
		Chairman: "google/gemini-3-pro-preview",
	},
	TierPremium: {
		Council: []string{
			"openai/gpt-5.2-pro",
			"anthropic/claude-opus-4.5",
			"google/gemini-3-pro-preview",
			"x-ai/grok-4",
		},
		Chairman: "google/gemini-3-pro-preview",
	},
}

// StaticTier returns the static composition for a tier. The council slice
// is a copy; callers may mutate it.
func StaticTier(tier Tier) TierSet {
	set := staticTiers[ParseTier(string(tier))]
	council := make([]string, len(set.Council))
	copy(council, set.Council)
	return TierSet{Council: council, Chairman: set.Chairman}
}
