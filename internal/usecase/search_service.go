package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/pricescope/backend/internal/domain"
)

// SiteRouter resolves which sites to query for a country. The routing
// table is external to the scraping core and consumed read-only.
type SiteRouter interface {
	SitesFor(country string) []string
	SupportedCountries() []string
}

// SearchService wires routing, fan-out scraping and ranking into the
// single search operation the delivery layer calls.
type SearchService struct {
	router       SiteRouter
	orchestrator *Orchestrator
	ranker       *Ranker
}

// NewSearchService creates the search service with its collaborators.
func NewSearchService(router SiteRouter, orchestrator *Orchestrator, ranker *Ranker) *SearchService {
	return &SearchService{
		router:       router,
		orchestrator: orchestrator,
		ranker:       ranker,
	}
}

// Search resolves the site list for the country, scrapes all sites
// concurrently and returns the ranked offers. An empty slice is a valid
// outcome: no routable site produced a relevant offer.
func (s *SearchService) Search(ctx context.Context, request *domain.SearchRequest) ([]domain.Offer, error) {
	if request == nil || strings.TrimSpace(request.Query) == "" || strings.TrimSpace(request.Country) == "" {
		return nil, domain.ErrInvalidRequest
	}

	sites := s.router.SitesFor(request.Country)
	log.Printf("[SEARCH] query=%q country=%s sites=%v", request.Query, request.Country, sites)

	offers := s.orchestrator.ScrapeAll(ctx, sites, request.Query, request.Country)
	ranked := s.ranker.Rank(offers, request.Query)

	log.Printf("[SEARCH] %d of %d offers survived ranking", len(ranked), len(offers))
	return ranked, nil
}

// SupportedCountries exposes the routing table's explicitly mapped
// countries for the metadata endpoint.
func (s *SearchService) SupportedCountries() []string {
	return s.router.SupportedCountries()
}
