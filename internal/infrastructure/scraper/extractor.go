package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pricescope/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	whitespaceRegex   = regexp.MustCompile(`\s+`)
	priceJunkRegex    = regexp.MustCompile(`[^\d.,]`)
	decimalRegex      = regexp.MustCompile(`\d+\.?\d*`)
	ratingOutOfRegex  = regexp.MustCompile(`(\d+\.?\d*)\s*out of`)
	leadingNumRegex   = regexp.MustCompile(`^(\d+\.?\d*)`)
	wordRegex         = regexp.MustCompile(`\b\w+\b`)
)

const (
	// minTitleLen rejects decorative/empty text fragments masquerading as titles.
	minTitleLen = 10
	// maxTitleLen caps product names before they leave the adapter.
	// Both limits count characters, not bytes (amazon.co.jp titles).
	maxTitleLen = 200
)

// Selectors holds a site's ordered fallback selector chains. Extraction
// tries each list in declared order and accepts the first usable value,
// which tolerates partial markup drift without an adapter rewrite.
type Selectors struct {
	Container    []string
	Title        []string
	Price        []string
	Link         []string
	Image        []string
	Rating       []string
	Availability []string
}

// imageAttrs are tried in priority order: direct source first, then
// lazy-load data attributes.
var imageAttrs = []string{"src", "data-src", "data-image-source"}

// inStockKeywords and outOfStockKeywords drive the availability scan.
var (
	inStockKeywords    = []string{"in stock", "available", "ships"}
	outOfStockKeywords = []string{"out of stock", "unavailable"}
)

// findContainers locates product containers using the fallback chain:
// the first selector yielding at least one element wins. Matches are
// never merged across selectors to avoid duplicate containers.
func findContainers(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// extractName returns the first selector match whose trimmed text is long
// enough to be a real title, whitespace-collapsed and length-capped.
func extractName(container *goquery.Selection, selectors []string) string {
	name := ""
	for _, sel := range selectors {
		container.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if utf8.RuneCountInString(text) > minTitleLen {
				text = whitespaceRegex.ReplaceAllString(text, " ")
				if runes := []rune(text); len(runes) > maxTitleLen {
					text = string(runes[:maxTitleLen])
				}
				name = text
				return false
			}
			return true
		})
		if name != "" {
			return name
		}
	}
	return ""
}

// extractPrice returns the first selector match that cleans to a positive
// decimal, or "0" when none does.
func extractPrice(container *goquery.Selection, selectors []string) string {
	price := "0"
	for _, sel := range selectors {
		container.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			cleaned := cleanPrice(el.Text())
			if v, err := strconv.ParseFloat(cleaned, 64); err == nil && v > 0 {
				price = cleaned
				return false
			}
			return true
		})
		if price != "0" {
			return price
		}
	}
	return "0"
}

// cleanPrice strips currency symbols and thousands separators and pulls
// the first decimal number out of the text. Currency is never inferred
// here; adapters assign it from the country.
func cleanPrice(text string) string {
	text = priceJunkRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, ",", "")

	match := decimalRegex.FindString(text)
	if match == "" {
		return "0"
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v <= 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// extractLink prefers hrefs carrying one of the site's product-path
// markers. Relative paths are resolved against the country domain.
func extractLink(container *goquery.Selection, selectors, markers []string, domain string) string {
	link := ""
	for _, sel := range selectors {
		container.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			href, ok := el.Attr("href")
			if !ok || href == "" {
				return true
			}
			if len(markers) > 0 && !containsAny(href, markers) {
				return true
			}
			switch {
			case strings.HasPrefix(href, "http"):
				link = href
			case strings.HasPrefix(href, "/"):
				link = "https://www." + domain + href
			default:
				return true
			}
			return false
		})
		if link != "" {
			return link
		}
	}
	return ""
}

// extractImage returns the first absolute image URL found across the
// priority-ordered source attributes.
func extractImage(container *goquery.Selection, selectors []string) string {
	img := ""
	for _, sel := range selectors {
		container.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			for _, attr := range imageAttrs {
				if src, ok := el.Attr(attr); ok && strings.HasPrefix(src, "http") {
					img = src
					return false
				}
			}
			return true
		})
		if img != "" {
			return img
		}
	}
	return ""
}

// extractRating parses a numeric rating from "N out of M" phrasing, then
// falls back to a bare leading number when it lies within [0,5].
func extractRating(container *goquery.Selection, selectors []string) *float64 {
	var rating *float64
	for _, sel := range selectors {
		container.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.TrimSpace(el.Text())
			if text == "" {
				return true
			}
			if m := ratingOutOfRegex.FindStringSubmatch(text); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					rating = &v
					return false
				}
			}
			if m := leadingNumRegex.FindStringSubmatch(text); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 && v <= 5 {
					rating = &v
					return false
				}
			}
			return true
		})
		if rating != nil {
			return rating
		}
	}
	return nil
}

// extractAvailability scans candidate elements for stock keywords. The
// first positive or negative keyword wins; no signal defaults to
// in stock.
func extractAvailability(container *goquery.Selection, selectors []string) string {
	availability := ""
	for _, sel := range selectors {
		container.Find(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.ToLower(strings.TrimSpace(el.Text()))
			if text == "" {
				return true
			}
			// Negative keywords first: "unavailable" would otherwise
			// substring-match "available".
			if containsAny(text, outOfStockKeywords) {
				availability = domain.AvailabilityOutOfStock
				return false
			}
			if containsAny(text, inStockKeywords) {
				availability = domain.AvailabilityInStock
				return false
			}
			return true
		})
		if availability != "" {
			return availability
		}
	}
	return domain.AvailabilityInStock
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// gateStopwords is the small fixed list used by the adapter-local
// relevance gate (the global ranker has its own copy of the same list).
var gateStopwords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "with": true,
}

// matchesQuery is the cheap adapter-local pre-filter: an offer is kept
// when the query has no meaningful terms, or at least one meaningful term
// appears in the product name. This drops obviously-unrelated containers
// (ads, accessories) before the heavier ranking stage.
func matchesQuery(productName, query string) bool {
	nameLower := strings.ToLower(productName)

	var terms []string
	for _, term := range wordRegex.FindAllString(strings.ToLower(query), -1) {
		if len(term) > 2 && !gateStopwords[term] {
			terms = append(terms, term)
		}
	}

	if len(terms) == 0 {
		return true
	}
	for _, term := range terms {
		if strings.Contains(nameLower, term) {
			return true
		}
	}
	return false
}
