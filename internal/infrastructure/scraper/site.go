package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pricescope/backend/internal/domain"
	"github.com/pricescope/backend/internal/infrastructure/fetch"
)

// Profile captures everything site-specific: label, country tables and
// selector fallback chains. The extraction algorithm itself is identical
// across sites; a new site is added by supplying a profile, not new
// control flow.
type Profile struct {
	ID    string // registry key, e.g. "amazon"
	Label string // fixed human-readable site label, e.g. "Amazon"

	DomainByCountry   map[string]string
	CurrencyByCountry map[string]string
	// DefaultDomain serves countries missing from DomainByCountry. Empty
	// means the site is strict: unmapped countries yield no search URL.
	DefaultDomain   string
	DefaultCurrency string

	// SearchURLFormat receives (domain, URL-encoded query).
	SearchURLFormat string

	Selectors   Selectors
	LinkMarkers []string

	// MaxResults caps how many containers are parsed per page.
	MaxResults int

	// ExtraHeaders are layered on the fetch client (per-site quirks).
	ExtraHeaders map[string]string
}

// Site is the single adapter implementation, specialized per site purely
// through its Profile. It owns one fetch session for the lifetime of one
// request.
type Site struct {
	profile Profile
	client  *fetch.Client
}

// New creates a site adapter around a fresh fetch session.
func New(profile Profile, fetchCfg fetch.Config) *Site {
	if profile.MaxResults <= 0 {
		profile.MaxResults = 10
	}
	if len(profile.ExtraHeaders) > 0 {
		merged := make(map[string]string, len(fetchCfg.ExtraHeaders)+len(profile.ExtraHeaders))
		for k, v := range fetchCfg.ExtraHeaders {
			merged[k] = v
		}
		for k, v := range profile.ExtraHeaders {
			merged[k] = v
		}
		fetchCfg.ExtraHeaders = merged
	}

	return &Site{
		profile: profile,
		client:  fetch.NewClient(fetchCfg),
	}
}

// Website returns the site's fixed label.
func (s *Site) Website() string {
	return s.profile.Label
}

// domainFor resolves the country-specific domain, or "" for countries the
// site does not serve.
func (s *Site) domainFor(country string) string {
	if d, ok := s.profile.DomainByCountry[country]; ok {
		return d
	}
	return s.profile.DefaultDomain
}

// currencyFor assigns the currency from the country, never from the page.
func (s *Site) currencyFor(country string) string {
	if c, ok := s.profile.CurrencyByCountry[country]; ok {
		return c
	}
	if s.profile.DefaultCurrency != "" {
		return s.profile.DefaultCurrency
	}
	return "USD"
}

// ResolveSearchURL builds the country-specific search URL for a query.
func (s *Site) ResolveSearchURL(query, country string) string {
	host := s.domainFor(strings.ToUpper(country))
	if host == "" {
		return ""
	}
	return fmt.Sprintf(s.profile.SearchURLFormat, host, url.QueryEscape(query))
}

// SearchProducts fetches the search page and extracts offers. Failures
// at any stage yield an empty slice; "no content" is an expected outcome.
func (s *Site) SearchProducts(ctx context.Context, query, country string) ([]domain.Offer, error) {
	country = strings.ToUpper(country)

	searchURL := s.ResolveSearchURL(query, country)
	if searchURL == "" {
		log.Printf("[SCRAPE] %s: country %s not supported", s.profile.Label, country)
		return nil, nil
	}

	log.Printf("[SCRAPE] %s %s: %s", s.profile.Label, country, searchURL)

	html, err := s.client.Fetch(ctx, searchURL)
	if err != nil {
		log.Printf("[SCRAPE] %s %s: fetch failed: %v", s.profile.Label, country, err)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", s.profile.Label, err)
	}

	containers := findContainers(doc, s.profile.Selectors.Container)
	if containers == nil {
		log.Printf("[SCRAPE] %s %s: no product containers found", s.profile.Label, country)
		return nil, nil
	}

	var offers []domain.Offer
	containers.EachWithBreak(func(i int, container *goquery.Selection) bool {
		if i >= s.profile.MaxResults {
			return false
		}
		if offer := s.parseOffer(container, country); offer != nil && matchesQuery(offer.ProductName, query) {
			offers = append(offers, *offer)
		}
		return true
	})

	log.Printf("[SCRAPE] %s %s: parsed %d offers", s.profile.Label, country, len(offers))
	return offers, nil
}

// parseOffer extracts a single offer from a container, or nil when the
// container lacks a usable name or positive price. Rejection happens
// here, at extraction time, never downstream.
func (s *Site) parseOffer(container *goquery.Selection, country string) *domain.Offer {
	name := extractName(container, s.profile.Selectors.Title)
	if name == "" {
		return nil
	}

	price := extractPrice(container, s.profile.Selectors.Price)
	if price == "0" {
		return nil
	}

	return &domain.Offer{
		Link:         extractLink(container, s.profile.Selectors.Link, s.profile.LinkMarkers, s.domainFor(country)),
		Price:        price,
		Currency:     s.currencyFor(country),
		ProductName:  name,
		Website:      s.profile.Label,
		Availability: extractAvailability(container, s.profile.Selectors.Availability),
		Rating:       extractRating(container, s.profile.Selectors.Rating),
		ImageURL:     extractImage(container, s.profile.Selectors.Image),
	}
}

// Close releases the adapter's fetch session.
func (s *Site) Close() {
	s.client.Close()
}
