package models

import "strings"

// FrontierVendors are the vendors eligible for a council seat, in seat
// order.
var FrontierVendors = []string{"openai", "anthropic", "google", "x-ai"}

// VendorPreference filters a vendor's models by substring patterns. A model
// must match at least one include pattern (when any are set) and must not
// match any exclude pattern.
type VendorPreference struct {
	Include []string
	Exclude []string
}

// vendorPreferences holds the per-tier tuning tables. Patterns match
// against the model name after the vendor prefix, case-insensitively.
var vendorPreferences = map[Tier]map[string]VendorPreference{
	TierBudget: {
		"openai":    {Include: []string{"gpt-4o-mini", "gpt-5-mini"}, Exclude: []string{"search", "audio"}},
		"anthropic": {Include: []string{"claude-sonnet"}, Exclude: []string{"opus"}},
		"google":    {Include: []string{"gemini-3-flash", "gemini-2.5-flash"}, Exclude: []string{"lite", "image", "nano", "exp"}},
		"x-ai":      {Include: []string{"grok-4"}, Exclude: []string{"mini", "code"}},
	},
	TierBalanced: {
		"openai":    {Include: []string{"gpt-5.2", "gpt-4o"}, Exclude: []string{"mini", "codex", "image", "safeguard", "pro", "extended", "search", "audio", "chat"}},
		"anthropic": {Include: []string{"claude-sonnet"}, Exclude: []string{"opus"}},
		"google":    {Include: []string{"gemini-3-pro", "gemini-4"}, Exclude: []string{"flash", "image", "nano"}},
		"x-ai":      {Include: []string{"grok-4", "grok-5"}, Exclude: []string{"mini", "code"}},
	},
	TierPremium: {
		"openai":    {Include: []string{"gpt-5.2-pro", "gpt-6"}, Exclude: []string{"mini", "codex", "image", "safeguard", "chat"}},
		"anthropic": {Include: []string{"claude-opus"}},
		"google":    {Include: []string{"gemini-3-pro", "gemini-4"}, Exclude: []string{"flash", "image", "nano"}},
		"x-ai":      {Include: []string{"grok-4", "grok-5"}, Exclude: []string{"mini", "fast"}},
	},
}

// vendorFromID extracts the vendor prefix from a model id like
// "openai/gpt-5.2". Returns "" when the id has no vendor prefix.
func vendorFromID(id string) string {
	vendor, _, ok := strings.Cut(id, "/")
	if !ok {
		return ""
	}
	return vendor
}

// modelName returns the model name after the last slash, lowercased.
func modelName(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	return strings.ToLower(id)
}

// MatchesPreference reports whether a model id passes a preference filter.
func MatchesPreference(id string, pref VendorPreference) bool {
	name := modelName(id)

	if len(pref.Include) > 0 {
		matched := false
		for _, inc := range pref.Include {
			if strings.Contains(name, strings.ToLower(inc)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, exc := range pref.Exclude {
		if strings.Contains(name, strings.ToLower(exc)) {
			return false
		}
	}

	return true
}
