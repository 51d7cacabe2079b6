package scraper

// AmazonProfile covers Amazon's 19 country marketplaces. Selector chains
// reflect the several search-result layouts Amazon serves.
func AmazonProfile() Profile {
	return Profile{
		ID:    "amazon",
		Label: "Amazon",
		DomainByCountry: map[string]string{
			"US": "amazon.com",
			"IN": "amazon.in",
			"UK": "amazon.co.uk",
			"CA": "amazon.ca",
			"DE": "amazon.de",
			"FR": "amazon.fr",
			"IT": "amazon.it",
			"ES": "amazon.es",
			"JP": "amazon.co.jp",
			"AU": "amazon.com.au",
			"BR": "amazon.com.br",
			"MX": "amazon.com.mx",
			"NL": "amazon.nl",
			"SG": "amazon.sg",
			"AE": "amazon.ae",
			"SA": "amazon.sa",
			"PL": "amazon.pl",
			"TR": "amazon.com.tr",
			"SE": "amazon.se",
		},
		CurrencyByCountry: map[string]string{
			"US": "USD",
			"IN": "INR",
			"UK": "GBP",
			"CA": "CAD",
			"DE": "EUR",
			"FR": "EUR",
			"IT": "EUR",
			"ES": "EUR",
			"JP": "JPY",
			"AU": "AUD",
			"BR": "BRL",
			"MX": "MXN",
			"NL": "EUR",
			"SG": "SGD",
			"AE": "AED",
			"SA": "SAR",
			"PL": "PLN",
			"TR": "TRY",
			"SE": "SEK",
		},
		DefaultCurrency: "USD",
		SearchURLFormat: "https://www.%s/s?k=%s&ref=sr_pg_1",
		Selectors: Selectors{
			Container: []string{
				`div[data-component-type="s-search-result"]`,
				`div[data-asin]:not([data-asin=""])`,
				".s-result-item",
				".sg-col-inner .s-widget-container",
			},
			Title: []string{
				"h2 a span",
				"h2 .a-link-normal span",
				".s-size-mini span",
				"h2 span",
				".a-size-base-plus",
				".a-size-medium",
			},
			Price: []string{
				".a-price-whole",
				".a-price .a-offscreen",
				".a-price-symbol + .a-price-whole",
				".a-color-price",
				".sx-price-whole",
			},
			Link: []string{
				"h2 a",
				".a-link-normal",
				`a[href*="/dp/"]`,
				`a[href*="/gp/product/"]`,
			},
			Image: []string{
				".s-image",
				`img[data-image-latency="s-product-image"]`,
				".a-dynamic-image",
			},
			Rating: []string{
				".a-icon-alt",
				`span[aria-label*="stars"]`,
				".a-star-medium .a-icon-alt",
			},
			Availability: []string{
				".a-color-success",
				".a-color-price",
				`[data-cy="availability-recipe"]`,
				".a-size-base.a-color-secondary",
			},
		},
		LinkMarkers: []string{"/dp/", "/gp/product/"},
		MaxResults:  15,
		ExtraHeaders: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
			"Cache-Control":   "no-cache",
			"Pragma":          "no-cache",
			"Sec-Fetch-Dest":  "document",
			"Sec-Fetch-Mode":  "navigate",
			"Sec-Fetch-Site":  "none",
			"Sec-Fetch-User":  "?1",
		},
	}
}
