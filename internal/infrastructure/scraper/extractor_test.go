package scraper

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFindContainers(t *testing.T) {
	t.Run("first matching selector wins, no merging", func(t *testing.T) {
		doc := parseDoc(t, `
			<div class="primary">one</div>
			<div class="primary">two</div>
			<div class="secondary">three</div>`)

		found := findContainers(doc, []string{".primary", ".secondary"})
		require.NotNil(t, found)
		// .secondary matches must not be merged in
		assert.Equal(t, 2, found.Length())
	})

	t.Run("falls back past empty selectors", func(t *testing.T) {
		doc := parseDoc(t, `<div class="secondary">three</div>`)

		found := findContainers(doc, []string{".primary", ".secondary"})
		require.NotNil(t, found)
		assert.Equal(t, 1, found.Length())
	})

	t.Run("nil when nothing matches", func(t *testing.T) {
		doc := parseDoc(t, `<p>no products here</p>`)
		assert.Nil(t, findContainers(doc, []string{".primary", ".secondary"}))
	})
}

func TestExtractName(t *testing.T) {
	t.Run("skips fragments below the minimum length", func(t *testing.T) {
		doc := parseDoc(t, `
			<div class="item">
				<span class="title">Ad</span>
				<span class="title">Wireless Bluetooth Earbuds with Case</span>
			</div>`)

		name := extractName(doc.Find(".item"), []string{".title"})
		assert.Equal(t, "Wireless Bluetooth Earbuds with Case", name)
	})

	t.Run("collapses internal whitespace", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="title">Wireless
				Bluetooth    Earbuds</span></div>`)

		name := extractName(doc.Find(".item"), []string{".title"})
		assert.Equal(t, "Wireless Bluetooth Earbuds", name)
	})

	t.Run("caps length at 200 characters", func(t *testing.T) {
		long := strings.Repeat("x", 300)
		doc := parseDoc(t, `<div class="item"><span class="title">`+long+`</span></div>`)

		name := extractName(doc.Find(".item"), []string{".title"})
		assert.Len(t, name, 200)
	})

	t.Run("caps multibyte titles on character boundaries", func(t *testing.T) {
		long := strings.Repeat("ノ", 250)
		doc := parseDoc(t, `<div class="item"><span class="title">`+long+`</span></div>`)

		name := extractName(doc.Find(".item"), []string{".title"})
		assert.Equal(t, 200, utf8.RuneCountInString(name))
		assert.True(t, utf8.ValidString(name))
	})

	t.Run("minimum length counts characters not bytes", func(t *testing.T) {
		// Four katakana characters span 12 bytes but are still a
		// fragment, not a title.
		doc := parseDoc(t, `<div class="item">
			<span class="title">イヤホン</span>
			<span class="title">ワイヤレスイヤホンケース</span>
		</div>`)

		name := extractName(doc.Find(".item"), []string{".title"})
		assert.Equal(t, "ワイヤレスイヤホンケース", name)
	})

	t.Run("tries fallback selectors in order", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><h2>A Perfectly Usable Product Title</h2></div>`)

		name := extractName(doc.Find(".item"), []string{".missing", "h2"})
		assert.Equal(t, "A Perfectly Usable Product Title", name)
	})

	t.Run("empty when nothing is usable", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="title">short</span></div>`)
		assert.Equal(t, "", extractName(doc.Find(".item"), []string{".title"}))
	})
}

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"₹1,299", "1299"},
		{"$1,299.00", "1299"},
		{"$12.99", "12.99"},
		{"EUR 89,99", "8999"}, // thousands-separator stripping is locale-naive
		{"1299", "1299"},
		{"Price unavailable", "0"},
		{"", "0"},
		{"0", "0"},
		{"-50", "50"}, // sign characters are junk-stripped before parsing
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanPrice(tt.in))
		})
	}
}

func TestExtractPrice(t *testing.T) {
	t.Run("first positive price wins", func(t *testing.T) {
		doc := parseDoc(t, `
			<div class="item">
				<span class="price-a">Out of stock</span>
				<span class="price-b">$49.99</span>
			</div>`)

		price := extractPrice(doc.Find(".item"), []string{".price-a", ".price-b"})
		assert.Equal(t, "49.99", price)
	})

	t.Run("zero when no selector yields a positive number", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="price">free!</span></div>`)
		assert.Equal(t, "0", extractPrice(doc.Find(".item"), []string{".price"}))
	})
}

func TestExtractLink(t *testing.T) {
	t.Run("prefers hrefs carrying a product marker", func(t *testing.T) {
		doc := parseDoc(t, `
			<div class="item">
				<a href="/ref=sponsored">ad</a>
				<a href="/dp/B0ABCD1234">product</a>
			</div>`)

		link := extractLink(doc.Find(".item"), []string{"a"}, []string{"/dp/"}, "amazon.in")
		assert.Equal(t, "https://www.amazon.in/dp/B0ABCD1234", link)
	})

	t.Run("absolute URLs pass through unchanged", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><a href="https://www.ebay.com/itm/1234">x</a></div>`)

		link := extractLink(doc.Find(".item"), []string{"a"}, nil, "ebay.com")
		assert.Equal(t, "https://www.ebay.com/itm/1234", link)
	})

	t.Run("empty when no href matches", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><a href="/gp/help">help</a></div>`)
		assert.Equal(t, "", extractLink(doc.Find(".item"), []string{"a"}, []string{"/dp/"}, "amazon.com"))
	})
}

func TestExtractImage(t *testing.T) {
	t.Run("direct source beats lazy-load attributes", func(t *testing.T) {
		doc := parseDoc(t, `
			<div class="item">
				<img class="pic" src="https://img.test/a.jpg" data-src="https://img.test/b.jpg"/>
			</div>`)

		assert.Equal(t, "https://img.test/a.jpg", extractImage(doc.Find(".item"), []string{".pic"}))
	})

	t.Run("falls back to data attributes", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><img class="pic" src="placeholder.gif" data-src="https://img.test/b.jpg"/></div>`)

		assert.Equal(t, "https://img.test/b.jpg", extractImage(doc.Find(".item"), []string{".pic"}))
	})

	t.Run("relative sources are ignored", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><img class="pic" src="/img/a.jpg"/></div>`)
		assert.Equal(t, "", extractImage(doc.Find(".item"), []string{".pic"}))
	})
}

func TestExtractRating(t *testing.T) {
	t.Run("parses out-of phrasing", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="stars">4.5 out of 5 stars</span></div>`)

		rating := extractRating(doc.Find(".item"), []string{".stars"})
		require.NotNil(t, rating)
		assert.Equal(t, 4.5, *rating)
	})

	t.Run("bare leading number within range", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="stars">4.1</span></div>`)

		rating := extractRating(doc.Find(".item"), []string{".stars"})
		require.NotNil(t, rating)
		assert.Equal(t, 4.1, *rating)
	})

	t.Run("bare number out of range is absent", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="stars">278</span></div>`)
		assert.Nil(t, extractRating(doc.Find(".item"), []string{".stars"}))
	})

	t.Run("no rating markup yields nil", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span>no stars</span></div>`)
		assert.Nil(t, extractRating(doc.Find(".item"), []string{".stars"}))
	})
}

func TestExtractAvailability(t *testing.T) {
	t.Run("in-stock keyword wins", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="stock">Only 2 left - ships today</span></div>`)
		assert.Equal(t, "In Stock", extractAvailability(doc.Find(".item"), []string{".stock"}))
	})

	t.Run("out-of-stock keyword wins", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="stock">Currently unavailable</span></div>`)
		assert.Equal(t, "Out of Stock", extractAvailability(doc.Find(".item"), []string{".stock"}))
	})

	t.Run("no signal defaults to In Stock", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"><span class="stock">Free delivery Tuesday</span></div>`)
		assert.Equal(t, "In Stock", extractAvailability(doc.Find(".item"), []string{".stock"}))
	})

	t.Run("empty selector chain defaults to In Stock", func(t *testing.T) {
		doc := parseDoc(t, `<div class="item"></div>`)
		assert.Equal(t, "In Stock", extractAvailability(doc.Find(".item"), nil))
	})
}

func TestMatchesQuery(t *testing.T) {
	t.Run("kept when a meaningful term appears", func(t *testing.T) {
		assert.True(t, matchesQuery("boAt Airdopes 141 Earbuds", "boat airdopes"))
	})

	t.Run("dropped when no term appears", func(t *testing.T) {
		assert.False(t, matchesQuery("Random USB Cable", "boat airdopes"))
	})

	t.Run("kept when query has no meaningful terms", func(t *testing.T) {
		assert.True(t, matchesQuery("Anything At All", "a an the"))
	})
}
