package domain

import "context"

// SiteAdapter translates a query+country pair into site-specific HTTP
// calls and structured offers. Implementations own one network session
// for the lifetime of a single request; callers must Close them on every
// exit path.
type SiteAdapter interface {
	// Website returns the fixed human-readable site label (e.g., "Amazon").
	Website() string

	// ResolveSearchURL builds the country-specific search URL for a query.
	// Returns an empty string when the site has no presence in the country.
	ResolveSearchURL(query, country string) string

	// SearchProducts fetches and parses the search results page. A site
	// that cannot serve the country, or whose page yields nothing usable,
	// returns an empty slice and no error.
	SearchProducts(ctx context.Context, query, country string) ([]Offer, error)

	// Close releases the adapter's network session. Idempotent.
	Close()
}

// AdapterFactory creates a fresh adapter instance. The registry hands out
// factories rather than instances so sessions are never shared across
// requests.
type AdapterFactory func() SiteAdapter
