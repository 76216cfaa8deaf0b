// Package compare keeps the bounded compare selection and the local
// auto-compare shortcut. The server's compare endpoint stays the source of
// truth for the rendered recommendation; the local score only decides which
// products to send.
package compare

import (
	"context"
	"sort"

	"storefront/internal/catalog"
)

const (
	ratingWeight     = 2.0
	reviewCountCap   = 1000
	reviewDivisor    = 250.0
	priceDivisor     = 100.0
	dealBonus        = 1.5
	autoCompareCount = 3
)

// LocalScore ranks a product for auto-compare: weighted rating, a
// diminishing-returns review-count term capped at 1000, a price penalty, and
// a flat bonus when a deal price exists.
func LocalScore(p catalog.Product) float64 {
	score := 0.0
	if p.Rating != nil {
		score += *p.Rating * ratingWeight
	}
	if p.ReviewCount != nil {
		count := *p.ReviewCount
		if count > reviewCountCap {
			count = reviewCountCap
		}
		score += float64(count) / reviewDivisor
	}
	score -= p.Price / priceDivisor
	if p.DealPrice != nil && *p.DealPrice > 0 {
		score += dealBonus
	}
	return score
}

// AutoPick scores every visible product and returns the top 3 (or fewer) in
// descending score order.
func AutoPick(visible []catalog.Product) []catalog.Product {
	picked := append([]catalog.Product(nil), visible...)
	sort.SliceStable(picked, func(i, j int) bool {
		return LocalScore(picked[i]) > LocalScore(picked[j])
	})
	if len(picked) > autoCompareCount {
		picked = picked[:autoCompareCount]
	}
	return picked
}

// Engine pairs the selection with the server compare call.
type Engine struct {
	Selection *Selection
	store     catalog.Store
}

func NewEngine(store catalog.Store) *Engine {
	return &Engine{Selection: &Selection{}, store: store}
}

// Run posts the selected ids and returns the server's stat cards + summary.
func (e *Engine) Run(ctx context.Context) (*catalog.CompareResult, error) {
	if !e.Selection.CanRun() {
		return nil, ErrTooFew
	}
	return e.store.Compare(ctx, e.Selection.IDs())
}

// AutoCompare bypasses manual selection: it fills the selection with the
// top-scoring visible products and feeds them through the same run path.
func (e *Engine) AutoCompare(ctx context.Context, visible []catalog.Product) (*catalog.CompareResult, error) {
	picked := AutoPick(visible)
	if len(picked) < MinRunSize {
		return nil, ErrTooFew
	}
	e.Selection.Clear()
	for _, p := range picked {
		if _, err := e.Selection.Toggle(p.ID, p.Name); err != nil {
			return nil, err
		}
	}
	return e.Run(ctx)
}
