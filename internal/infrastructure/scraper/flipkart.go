package scraper

// FlipkartProfile is India-only; the empty DefaultDomain makes every
// other country resolve to no search URL.
func FlipkartProfile() Profile {
	return Profile{
		ID:    "flipkart",
		Label: "Flipkart",
		DomainByCountry: map[string]string{
			"IN": "flipkart.com",
		},
		CurrencyByCountry: map[string]string{
			"IN": "INR",
		},
		DefaultCurrency: "INR",
		SearchURLFormat: "https://www.%s/search?q=%s",
		Selectors: Selectors{
			Container: []string{"div._1AtVbE", "div._4rR01T"},
			Title:     []string{"div._4rR01T", "a.IRpwTa"},
			Price:     []string{"div._30jeq3._1_WHN1", "div._30jeq3"},
			Link:      []string{"a"},
			Image:     []string{"img"},
			Rating:    []string{"div._3LWZlK"},
		},
		MaxResults: 10,
	}
}
