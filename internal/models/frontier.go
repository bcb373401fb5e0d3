package models

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// FrontierModels returns the newest catalog model of each frontier vendor
// that passes the tier's preference patterns, in vendor seat order. Vendors
// with no matching model simply get no seat.
func (d *Discovery) FrontierModels(ctx context.Context, tier Tier) ([]string, error) {
	catalog, err := d.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	prefs := vendorPreferences[ParseTier(string(tier))]
	byVendor := make(map[string][]catalogEntry, len(FrontierVendors))
	for _, m := range catalog {
		vendor := vendorFromID(m.ID)
		pref, ok := prefs[vendor]
		if !ok {
			continue
		}
		if !MatchesPreference(m.ID, pref) {
			continue
		}
		byVendor[vendor] = append(byVendor[vendor], catalogEntry{id: m.ID, created: m.Created})
	}

	council := make([]string, 0, len(FrontierVendors)*d.cfg.CountPerVendor)
	for _, vendor := range FrontierVendors {
		candidates := byVendor[vendor]
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].created > candidates[j].created
		})
		for i, entry := range candidates {
			if i >= d.cfg.CountPerVendor {
				break
			}
			council = append(council, entry.id)
		}
	}

	if len(council) == 0 {
		return nil, errors.New("no catalog model matched the tier preferences")
	}
	return council, nil
}

type catalogEntry struct {
	id      string
	created int64
}

// Chairman returns the synthesis model: the first gemini-3-pro catalog
// entry that is neither a flash nor an image variant, or DefaultChairman.
func (d *Discovery) Chairman(ctx context.Context) (string, error) {
	catalog, err := d.fetchCatalog(ctx)
	if err != nil {
		return "", err
	}

	for _, m := range catalog {
		if strings.Contains(m.ID, "gemini-3-pro") && !strings.Contains(m.ID, "flash") && !strings.Contains(m.ID, "image") {
			return m.ID, nil
		}
	}
	return DefaultChairman, nil
}

// Resolve returns the council and chairman for a tier using the live
// catalog. Any discovery failure falls back to the static tier table with
// a warning, so Resolve always yields a usable composition.
func (d *Discovery) Resolve(ctx context.Context, tier Tier) (council []string, chairman string) {
	static := StaticTier(tier)

	council, err := d.FrontierModels(ctx, tier)
	if err != nil {
		if d.log != nil {
			d.log.Warn("models: dynamic council selection failed, using static tier", "tier", tier, "error", err)
		}
		council = static.Council
	}

	chairman, err = d.Chairman(ctx)
	if err != nil {
		if d.log != nil {
			d.log.Warn("models: dynamic chairman selection failed, using static tier", "tier", tier, "error", err)
		}
		chairman = static.Chairman
	}

	return council, chairman
}
