package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Delta is the structured outcome of interpreting a free-text query. Set
// fields overwrite the corresponding FilterState dimensions; Search carries
// whatever text was left after stripping the matched phrases.
type Delta struct {
	Search    string
	Category  string
	Sort      string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	DealsOnly bool
	Matched   bool
}

// Apply overwrites the interpreted dimensions and leaves the rest alone.
func (d Delta) Apply(f *FilterState) {
	f.Search = d.Search
	if d.Category != "" {
		f.Category = d.Category
	}
	if d.Sort != "" {
		f.Sort = d.Sort
	}
	if d.MinPrice != nil {
		f.MinPrice = d.MinPrice
	}
	if d.MaxPrice != nil {
		f.MaxPrice = d.MaxPrice
	}
	if d.MinRating != nil {
		f.MinRating = d.MinRating
	}
	if d.DealsOnly {
		f.DealsOnly = true
	}
}

// Interpreter turns a natural-language query into a filter delta. The rules
// are locale- and catalog-specific, so they sit behind an interface and can
// be swapped without touching filtering or rendering.
type Interpreter interface {
	Interpret(text string) Delta
}

// KeywordInterpreter is the best-effort heuristic shipped with the store:
// price bounds from "under $50"/"over $20", a rating floor from
// "4 stars"/"top rated", a deals flag, and a coarse category from a fixed
// keyword set. Ambiguous or unmatched text passes through as plain search.
type KeywordInterpreter struct{}

var (
	reMaxPrice = regexp.MustCompile(`(?i)\b(?:under|below|less than|up to|cheaper than)\s*\$?\s*(\d+(?:\.\d+)?)`)
	reMinPrice = regexp.MustCompile(`(?i)\b(?:over|above|more than|at least)\s*\$?\s*(\d+(?:\.\d+)?)`)
	reStars    = regexp.MustCompile(`(?i)\b(\d(?:\.\d)?)\s*stars?(?:\s+(?:and up|or more|or better))?\b`)
	reTopRated = regexp.MustCompile(`(?i)\b(?:top[ -]rated|best rated|highest rated)\b`)
	reDeals    = regexp.MustCompile(`(?i)\b(?:deals?|discount(?:ed|s)?|on sale|bargains?)\b`)
)

var categoryRules = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Electronics", regexp.MustCompile(`(?i)\b(?:electronics?|gadgets?|tech)\b`)},
	{"Fashion", regexp.MustCompile(`(?i)\b(?:fashion|cloth(?:es|ing)|apparel|wear)\b`)},
	{"Home", regexp.MustCompile(`(?i)\b(?:home|kitchen|garden|furniture|decor)\b`)},
	{"Books", regexp.MustCompile(`(?i)\b(?:books?|novels?|reading)\b`)},
}

func (KeywordInterpreter) Interpret(text string) Delta {
	var delta Delta
	residual := text

	residual = extract(residual, reMaxPrice, func(groups []string) {
		if v, err := strconv.ParseFloat(groups[1], 64); err == nil {
			delta.MaxPrice = &v
			delta.Matched = true
		}
	})
	residual = extract(residual, reMinPrice, func(groups []string) {
		if v, err := strconv.ParseFloat(groups[1], 64); err == nil {
			delta.MinPrice = &v
			delta.Matched = true
		}
	})
	residual = extract(residual, reStars, func(groups []string) {
		if v, err := strconv.ParseFloat(groups[1], 64); err == nil && v >= 1 && v <= 5 {
			delta.MinRating = &v
			delta.Matched = true
		}
	})
	residual = extract(residual, reTopRated, func([]string) {
		if delta.MinRating == nil {
			floor := 4.0
			delta.MinRating = &floor
		}
		delta.Sort = SortRatingDesc
		delta.Matched = true
	})
	residual = extract(residual, reDeals, func([]string) {
		delta.DealsOnly = true
		delta.Matched = true
	})
	// When keywords for several categories appear, the one mentioned first
	// wins: "books for the garden" is a Books query, not a Home one.
	best, bestAt := -1, 0
	for i, rule := range categoryRules {
		if loc := rule.re.FindStringIndex(residual); loc != nil && (best < 0 || loc[0] < bestAt) {
			best, bestAt = i, loc[0]
		}
	}
	if best >= 0 {
		rule := categoryRules[best]
		residual = rule.re.ReplaceAllString(residual, " ")
		delta.Category = rule.name
		delta.Matched = true
	}

	delta.Search = tidy(residual)
	return delta
}

func extract(text string, re *regexp.Regexp, onMatch func(groups []string)) string {
	groups := re.FindStringSubmatch(text)
	if groups == nil {
		return text
	}
	onMatch(groups)
	return re.ReplaceAllString(text, " ")
}

var reJunk = regexp.MustCompile(`(?:\s|[,;.])+`)

// tidy collapses the holes left by stripped phrases and drops connector
// words that no longer connect anything.
func tidy(text string) string {
	text = reJunk.ReplaceAllString(text, " ")
	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		switch strings.ToLower(word) {
		case "and", "or", "for", "with", "in", "the", "a", "an":
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
