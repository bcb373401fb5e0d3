package models

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

func (d *Discovery) getCachedCatalog() []openrouter.Model {
	d.cacheMu.RLock()
	defer d.cacheMu.RUnlock()
	cached := d.cache.Get(catalogCacheKey)
	if cached == nil {
		return nil
	}
	return cached.Value()
}

func (d *Discovery) setCachedCatalog(catalog []openrouter.Model) {
	d.cacheMu.Lock()
	defer d.cacheMu.Unlock()
	d.cache.Set(catalogCacheKey, catalog, ttlcache.DefaultTTL)
	d.lastGood = catalog
	d.lastGoodAt = d.cfg.Clock.Now()
}

// staleCatalog returns the last good catalog and its age, or nil when no
// fetch has ever succeeded.
func (d *Discovery) staleCatalog() ([]openrouter.Model, time.Duration) {
	d.cacheMu.RLock()
	defer d.cacheMu.RUnlock()
	if d.lastGood == nil {
		return nil, 0
	}
	return d.lastGood, d.cfg.Clock.Since(d.lastGoodAt)
}
