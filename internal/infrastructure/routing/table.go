// Package routing holds the static country-to-site routing table. The
// table is read-only after construction; the scraping core consumes it
// but never mutates it.
package routing

import (
	"sort"
	"strings"
)

// defaultSites serve countries without an explicit mapping. Amazon and
// eBay are the two generally-available marketplaces, so an unknown
// country degrades to them instead of failing the whole request.
var defaultSites = []string{"amazon", "ebay"}

// Table resolves a country code to the ordered list of site identifiers
// worth querying for it.
type Table struct {
	countrySites map[string][]string
}

// NewTable builds the routing table with the supported country mappings.
func NewTable() *Table {
	return &Table{
		countrySites: map[string][]string{
			"US": {"amazon", "ebay", "bestbuy", "walmart"},
			"IN": {"amazon", "flipkart"},
			"UK": {"amazon", "ebay"},
			"CA": {"amazon", "ebay"},
			"DE": {"amazon", "ebay"},
			"FR": {"amazon", "ebay"},
			"JP": {"amazon", "ebay"},
			"AU": {"amazon", "ebay"},
			"SG": {"amazon", "ebay"},
			"MY": {"amazon", "ebay"},
			"TH": {"amazon", "ebay"},
			"BR": {"amazon", "ebay"},
			"MX": {"amazon", "ebay"},
		},
	}
}

// SitesFor returns the site identifiers mapped to a country, falling
// back to the default pair for unmapped countries.
func (t *Table) SitesFor(country string) []string {
	if sites, ok := t.countrySites[strings.ToUpper(country)]; ok {
		return sites
	}
	return defaultSites
}

// SupportedCountries returns all explicitly mapped country codes, sorted.
func (t *Table) SupportedCountries() []string {
	countries := make([]string, 0, len(t.countrySites))
	for country := range t.countrySites {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

// IsSupported reports whether a country has an explicit mapping.
func (t *Table) IsSupported(country string) bool {
	_, ok := t.countrySites[strings.ToUpper(country)]
	return ok
}
