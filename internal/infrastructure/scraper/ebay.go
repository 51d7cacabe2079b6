package scraper

// EbayProfile serves every country, falling back to the .com marketplace
// for countries without a local eBay domain.
func EbayProfile() Profile {
	return Profile{
		ID:    "ebay",
		Label: "eBay",
		DomainByCountry: map[string]string{
			"US": "ebay.com",
			"IN": "ebay.in",
			"UK": "ebay.co.uk",
			"CA": "ebay.ca",
			"DE": "ebay.de",
			"FR": "ebay.fr",
			"AU": "ebay.com.au",
		},
		CurrencyByCountry: map[string]string{
			"US": "USD",
			"IN": "INR",
		},
		DefaultDomain:   "ebay.com",
		DefaultCurrency: "USD",
		SearchURLFormat: "https://www.%s/sch/i.html?_nkw=%s&_sacat=0",
		Selectors: Selectors{
			Container: []string{"div.s-item__wrapper"},
			Title:     []string{"h3.s-item__title"},
			Price:     []string{"span.s-item__price"},
			Link:      []string{"a.s-item__link"},
			Image:     []string{"img"},
		},
		MaxResults: 10,
	}
}
