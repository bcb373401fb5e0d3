// Package models selects council members and the chairman from the live
// OpenRouter catalog, falling back to static per-tier tables when discovery
// is unavailable.
package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jellydator/ttlcache/v3"
	"github.com/jonboulle/clockwork"

	"github.com/Realcryptoplato/llm-council/internal/metrics"
	"github.com/Realcryptoplato/llm-council/internal/openrouter"
)

const (
	// DefaultCacheTTL is how long a fetched catalog stays fresh.
	DefaultCacheTTL = time.Hour

	defaultCountPerVendor = 1
	catalogCacheKey       = "catalog"
	fetchMaxTries         = 3
)

// ModelLister fetches the model catalog, implemented by the OpenRouter
// client.
type ModelLister interface {
	ListModels(ctx context.Context) ([]openrouter.Model, error)
}

type DiscoveryConfig struct {
	Logger *slog.Logger
	Client ModelLister
	Clock  clockwork.Clock

	// CacheTTL bounds catalog freshness. Defaults to an hour.
	CacheTTL time.Duration

	// CountPerVendor is how many council seats each vendor gets.
	CountPerVendor int
}

func (c *DiscoveryConfig) Validate() error {
	if c.Client == nil {
		return errors.New("model lister client is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.CacheTTL < 0 {
		return errors.New("cache TTL must be greater than 0")
	}
	if c.CountPerVendor == 0 {
		c.CountPerVendor = defaultCountPerVendor
	}
	if c.CountPerVendor < 0 {
		return errors.New("count per vendor must be greater than 0")
	}
	return nil
}

// Discovery owns the catalog cache. The last good catalog is retained past
// its TTL so a failed refresh degrades to stale data instead of an error.
type Discovery struct {
	log *slog.Logger
	cfg *DiscoveryConfig

	cache   *ttlcache.Cache[string, []openrouter.Model]
	cacheMu sync.RWMutex

	lastGood   []openrouter.Model
	lastGoodAt time.Time
}

func NewDiscovery(cfg *DiscoveryConfig) (*Discovery, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid discovery config: %w", err)
	}

	// Freshness counts from the fetch; reads must not extend an entry's life.
	cache := ttlcache.New(
		ttlcache.WithTTL[string, []openrouter.Model](cfg.CacheTTL),
		ttlcache.WithDisableTouchOnHit[string, []openrouter.Model](),
	)

	return &Discovery{
		log:   cfg.Logger,
		cfg:   cfg,
		cache: cache,
	}, nil
}

// fetchCatalog returns the model catalog, from cache when fresh. A failed
// refresh serves the last good catalog with a warning that includes its
// age; the error surfaces only when no catalog was ever fetched.
func (d *Discovery) fetchCatalog(ctx context.Context) ([]openrouter.Model, error) {
	if cached := d.getCachedCatalog(); cached != nil {
		return cached, nil
	}

	catalog, err := backoff.Retry(ctx, func() ([]openrouter.Model, error) {
		return d.cfg.Client.ListModels(ctx)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(fetchMaxTries))
	if err != nil {
		metrics.ModelListFetchesTotal.WithLabelValues("failure").Inc()
		if stale, age := d.staleCatalog(); stale != nil {
			if d.log != nil {
				d.log.Warn("models: catalog refresh failed, serving stale catalog", "age", age, "error", err)
			}
			return stale, nil
		}
		return nil, fmt.Errorf("failed to fetch model catalog: %w", err)
	}

	metrics.ModelListFetchesTotal.WithLabelValues("success").Inc()
	d.setCachedCatalog(catalog)
	return catalog, nil
}
