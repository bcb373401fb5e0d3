package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModels_MatchesPreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		pref VendorPreference
		want bool
	}{
		{
			name: "include match",
			id:   "openai/gpt-5.2",
			pref: VendorPreference{Include: []string{"gpt-5.2"}},
			want: true,
		},
		{
			name: "no include match",
			id:   "openai/gpt-4o",
			pref: VendorPreference{Include: []string{"gpt-5.2"}},
			want: false,
		},
		{
			name: "exclude wins over include",
			id:   "openai/gpt-5.2-pro",
			pref: VendorPreference{Include: []string{"gpt-5.2"}, Exclude: []string{"pro"}},
			want: false,
		},
		{
			name: "empty include accepts anything not excluded",
			id:   "anthropic/claude-opus-4.5",
			pref: VendorPreference{Exclude: []string{"haiku"}},
			want: true,
		},
		{
			name: "matching is case-insensitive",
			id:   "openai/GPT-5.2",
			pref: VendorPreference{Include: []string{"gpt-5.2"}},
			want: true,
		},
		{
			name: "pattern matches name only, not vendor",
			id:   "x-ai/grok-4",
			pref: VendorPreference{Include: []string{"x-ai"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, MatchesPreference(tt.id, tt.pref))
		})
	}
}

func TestModels_MatchesPreference_TierTables(t *testing.T) {
	t.Parallel()

	// Spot checks against the shipped tuning tables.
	balanced := vendorPreferences[TierBalanced]
	require.True(t, MatchesPreference("openai/gpt-5.2", balanced["openai"]))
	require.False(t, MatchesPreference("openai/gpt-5.2-pro", balanced["openai"]), "pro is excluded on balanced")
	require.False(t, MatchesPreference("openai/gpt-4o-mini", balanced["openai"]), "mini is excluded on balanced")
	require.True(t, MatchesPreference("anthropic/claude-sonnet-4.5", balanced["anthropic"]))
	require.False(t, MatchesPreference("anthropic/claude-opus-4.5", balanced["anthropic"]))
	require.False(t, MatchesPreference("google/gemini-3-flash", balanced["google"]))

	premium := vendorPreferences[TierPremium]
	require.True(t, MatchesPreference("openai/gpt-5.2-pro", premium["openai"]))
	require.True(t, MatchesPreference("anthropic/claude-opus-4.5", premium["anthropic"]))
	require.False(t, MatchesPreference("x-ai/grok-4.1-fast", premium["x-ai"]), "fast is excluded on premium")

	budget := vendorPreferences[TierBudget]
	require.True(t, MatchesPreference("openai/gpt-4o-mini", budget["openai"]))
	require.True(t, MatchesPreference("google/gemini-2.5-flash", budget["google"]))
	require.False(t, MatchesPreference("google/gemini-2.5-flash-lite", budget["google"]))
}

func TestModels_VendorFromID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "openai", vendorFromID("openai/gpt-5.2"))
	require.Equal(t, "x-ai", vendorFromID("x-ai/grok-4"))
	require.Equal(t, "", vendorFromID("no-vendor-prefix"))
}

func TestModels_EveryTierHasPreferencesForEveryFrontierVendor(t *testing.T) {
	t.Parallel()

	for _, tier := range Tiers {
		prefs, ok := vendorPreferences[tier]
		require.True(t, ok, "tier %s has no preference table", tier)
		for _, vendor := range FrontierVendors {
			_, ok := prefs[vendor]
			require.True(t, ok, "tier %s has no preferences for vendor %s", tier, vendor)
		}
	}
}
