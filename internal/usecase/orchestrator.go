package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/pricescope/backend/internal/domain"
)

// AdapterRegistry hands out fresh adapter instances per site id. Fresh
// instances per request keep network sessions from being shared across
// requests.
type AdapterRegistry interface {
	NewAdapter(siteID string) (domain.SiteAdapter, error)
	Sites() []string
}

// Orchestrator fans a query out to site adapters concurrently and merges
// their results. A failing site contributes zero offers; it never aborts
// or degrades the other sites' results.
type Orchestrator struct {
	registry AdapterRegistry
}

// NewOrchestrator creates an orchestrator over an adapter registry.
func NewOrchestrator(registry AdapterRegistry) *Orchestrator {
	return &Orchestrator{registry: registry}
}

// ScrapeAll dispatches one adapter invocation per site id, waits for all
// of them, and concatenates the successful lists. Merge order across
// sites is unspecified; final ordering is the ranker's responsibility.
func (o *Orchestrator) ScrapeAll(ctx context.Context, siteIDs []string, query, country string) []domain.Offer {
	results := make([][]domain.Offer, len(siteIDs))

	var wg sync.WaitGroup
	for i, siteID := range siteIDs {
		wg.Add(1)
		go func(slot int, siteID string) {
			defer wg.Done()
			results[slot] = o.scrapeSite(ctx, siteID, query, country)
		}(i, siteID)
	}
	wg.Wait()

	var merged []domain.Offer
	for _, offers := range results {
		merged = append(merged, offers...)
	}

	log.Printf("[ORCH] merged %d offers from %d sites for query %q", len(merged), len(siteIDs), query)
	return merged
}

// scrapeSite runs a single adapter invocation with full failure
// isolation: errors and panics are logged here and translate to zero
// offers from that site. The adapter's session is released exactly once
// on every exit path. No invocation is retried.
func (o *Orchestrator) scrapeSite(ctx context.Context, siteID, query, country string) (offers []domain.Offer) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ORCH] %s: adapter panicked: %v", siteID, r)
			offers = nil
		}
	}()

	adapter, err := o.registry.NewAdapter(siteID)
	if err != nil {
		log.Printf("[ORCH] %s: %v", siteID, err)
		return nil
	}
	defer adapter.Close()

	offers, err = adapter.SearchProducts(ctx, query, country)
	if err != nil {
		log.Printf("[ORCH] %s: scrape failed: %v", siteID, err)
		return nil
	}

	log.Printf("[ORCH] %s: scraped %d offers", siteID, len(offers))
	return offers
}
