package scraper

// BestBuyProfile is US-only.
func BestBuyProfile() Profile {
	return Profile{
		ID:    "bestbuy",
		Label: "Best Buy",
		DomainByCountry: map[string]string{
			"US": "bestbuy.com",
		},
		CurrencyByCountry: map[string]string{
			"US": "USD",
		},
		DefaultCurrency: "USD",
		SearchURLFormat: "https://www.%s/site/searchpage.jsp?st=%s",
		Selectors: Selectors{
			Container: []string{"li.sku-item"},
			Title:     []string{"h4.sku-header"},
			Price:     []string{"span.sr-only", "span[aria-label]"},
			Link:      []string{"h4 a"},
			Image:     []string{"img"},
		},
		MaxResults: 10,
	}
}
