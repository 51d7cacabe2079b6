package scraper

import (
	"fmt"
	"sort"

	"github.com/pricescope/backend/internal/domain"
	"github.com/pricescope/backend/internal/infrastructure/fetch"
)

// Registry maps site identifiers to adapter factories. It is constructed
// once at process start and never mutated afterwards; every NewAdapter
// call hands out a fresh adapter with its own fetch session.
type Registry struct {
	factories map[string]domain.AdapterFactory
}

// NewRegistry builds the registry with all supported site adapters, each
// created fresh per request around the shared fetch configuration.
func NewRegistry(fetchCfg fetch.Config) *Registry {
	r := &Registry{factories: make(map[string]domain.AdapterFactory)}

	for _, profile := range []func() Profile{
		AmazonProfile,
		FlipkartProfile,
		EbayProfile,
		BestBuyProfile,
		WalmartProfile,
	} {
		p := profile()
		r.factories[p.ID] = func() domain.SiteAdapter {
			return New(p, fetchCfg)
		}
	}

	return r
}

// NewAdapter creates a fresh adapter instance for the given site id.
func (r *Registry) NewAdapter(siteID string) (domain.SiteAdapter, error) {
	factory, ok := r.factories[siteID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrSiteUnknown, siteID)
	}
	return factory(), nil
}

// Sites returns the registered site identifiers in stable order.
func (r *Registry) Sites() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
