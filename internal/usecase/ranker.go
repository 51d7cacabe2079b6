package usecase

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pricescope/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	wordTokenRegex = regexp.MustCompile(`\b\w+\b`)
	numberRegex    = regexp.MustCompile(`\d+`)
)

// Score weights. Exact term overlap is the strongest relevance signal and
// dominates; sequence similarity catches near-matches and typos the term
// overlap misses; brand/model matching disambiguates generic-term
// collisions ("galaxy" the phone vs. anything else).
const (
	weightExactTerm  = 0.5
	weightSequence   = 0.3
	weightBrandModel = 0.2

	brandFamilyCredit = 0.5
	numericCredit     = 0.5

	defaultRelevanceThreshold = 0.3
)

// stopwords dropped during key-term extraction.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// brandAliases maps brand families to the names they appear under in
// queries and listings.
var brandAliases = map[string][]string{
	"apple":   {"apple", "iphone"},
	"samsung": {"samsung", "galaxy"},
	"boat":    {"boat"},
	"sony":    {"sony"},
	"lg":      {"lg"},
	"dell":    {"dell"},
	"hp":      {"hp", "hewlett"},
	"nike":    {"nike"},
	"adidas":  {"adidas"},
}

// RankerConfig holds configuration for the relevance ranker.
type RankerConfig struct {
	RelevanceThreshold float64
}

// Ranker scores offers against the original query, drops low-relevance
// candidates and orders the survivors. Scoring is deterministic: ranking
// the same candidate list twice yields identical output.
type Ranker struct {
	threshold float64
}

// NewRanker creates a ranker, defaulting the threshold when the
// configured value is out of range.
func NewRanker(config RankerConfig) *Ranker {
	threshold := config.RelevanceThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = defaultRelevanceThreshold
	}
	return &Ranker{threshold: threshold}
}

// scoredOffer pairs an offer with its ephemeral relevance score. The
// score exists only for filtering and sorting; it never appears in the
// returned shape.
type scoredOffer struct {
	offer domain.Offer
	score float64
}

// Rank scores every offer, drops those below the threshold (inclusive
// keep at exactly the threshold) and sorts by score descending with ties
// broken by numeric price ascending.
func (r *Ranker) Rank(offers []domain.Offer, query string) []domain.Offer {
	scored := make([]scoredOffer, 0, len(offers))
	for _, offer := range offers {
		score := r.Relevance(offer.ProductName, query)
		if score >= r.threshold {
			scored = append(scored, scoredOffer{offer: offer, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return numericPrice(scored[i].offer.Price) < numericPrice(scored[j].offer.Price)
	})

	ranked := make([]domain.Offer, len(scored))
	for i, s := range scored {
		ranked[i] = s.offer
	}
	return ranked
}

// Relevance computes the combined relevance score in [0,1] between a
// product name and a query.
func (r *Ranker) Relevance(productName, query string) float64 {
	if productName == "" || query == "" {
		return 0
	}

	name := strings.ToLower(strings.TrimSpace(productName))
	q := strings.ToLower(strings.TrimSpace(query))

	exact := exactTermScore(extractKeyTerms(name), extractKeyTerms(q))
	sequence := sequenceRatio(name, q)
	brandModel := brandModelScore(name, q)

	score := exact*weightExactTerm + sequence*weightSequence + brandModel*weightBrandModel
	return math.Min(score, 1.0)
}

// extractKeyTerms tokenizes on word boundaries and drops stopwords and
// terms of length <= 2.
func extractKeyTerms(text string) []string {
	var terms []string
	for _, term := range wordTokenRegex.FindAllString(strings.ToLower(text), -1) {
		if len(term) > 2 && !stopwords[term] {
			terms = append(terms, term)
		}
	}
	return terms
}

// exactTermScore is the fraction of query terms present among the
// product terms; 0 when the query has no meaningful terms.
func exactTermScore(productTerms, queryTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	set := make(map[string]bool, len(productTerms))
	for _, t := range productTerms {
		set[t] = true
	}

	matches := 0
	for _, t := range queryTerms {
		if set[t] {
			matches++
		}
	}
	return float64(matches) / float64(len(queryTerms))
}

// brandModelScore awards partial credit when both strings reference the
// same brand family, plus proportional credit for overlapping numeric
// substrings (model numbers). Capped at 1. Inputs are pre-lowercased.
func brandModelScore(productName, query string) float64 {
	score := 0.0

	for _, aliases := range brandAliases {
		if containsAnyAlias(query, aliases) && containsAnyAlias(productName, aliases) {
			score += brandFamilyCredit
		}
	}

	queryNumbers := numberRegex.FindAllString(query, -1)
	productNumbers := numberRegex.FindAllString(productName, -1)
	if len(queryNumbers) > 0 && len(productNumbers) > 0 {
		productSet := make(map[string]bool, len(productNumbers))
		for _, n := range productNumbers {
			productSet[n] = true
		}
		matches := 0
		for _, n := range queryNumbers {
			if productSet[n] {
				matches++
			}
		}
		score += float64(matches) / float64(len(queryNumbers)) * numericCredit
	}

	return math.Min(score, 1.0)
}

func containsAnyAlias(s string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(s, alias) {
			return true
		}
	}
	return false
}

// sequenceRatio is a Ratcliff/Obershelp matching-blocks similarity in
// [0,1]: twice the number of matching characters over the combined
// length, with matches found by recursing around the longest common
// substring.
func sequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

func matchingChars(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common substring via a rolling
// single-row DP; earliest block wins ties, matching SequenceMatcher.
func longestCommonBlock(a, b []rune) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > bestSize {
					bestSize = curr[j]
					bestA = i - curr[j]
					bestB = j - curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}

	return bestA, bestB, bestSize
}

// numericPrice parses a price string for tie-breaking. Adapters guarantee
// positive numeric prices, but the ranker must never panic, so anything
// unparseable sorts last.
func numericPrice(price string) float64 {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return math.MaxFloat64
	}
	return v
}
