package scraper

// WalmartProfile is US-only. Walmart search results carry no stable image
// markup worth chasing, so the image chain is left empty.
func WalmartProfile() Profile {
	return Profile{
		ID:    "walmart",
		Label: "Walmart",
		DomainByCountry: map[string]string{
			"US": "walmart.com",
		},
		CurrencyByCountry: map[string]string{
			"US": "USD",
		},
		DefaultCurrency: "USD",
		SearchURLFormat: "https://www.%s/search?q=%s",
		Selectors: Selectors{
			Container: []string{"div[data-item-id]"},
			Title:     []string{`span[data-automation-id="product-title"]`},
			Price:     []string{"div.price-main", "span.price-current"},
			Link:      []string{"a"},
		},
		MaxResults: 10,
	}
}
