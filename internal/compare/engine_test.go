package compare

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/catalog"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

// stubStore records compare calls; the other catalog.Store methods are not
// exercised by the engine.
type stubStore struct {
	compared [][]int
	result   *catalog.CompareResult
	err      error
}

func (s *stubStore) List(context.Context, catalog.FilterState) ([]catalog.Product, error) {
	return nil, nil
}

func (s *stubStore) Get(context.Context, int) (*catalog.Product, error) { return nil, nil }

func (s *stubStore) Suggestions(context.Context, string, int) []string { return nil }

func (s *stubStore) Compare(_ context.Context, ids []int) (*catalog.CompareResult, error) {
	s.compared = append(s.compared, ids)
	return s.result, s.err
}

func TestLocalScore(t *testing.T) {
	tests := []struct {
		name     string
		product  catalog.Product
		expected float64
	}{
		{"bare product is just the price penalty", catalog.Product{Price: 100}, -1},
		{"rating weighted double", catalog.Product{Rating: fp(4.5)}, 9},
		{"review count capped at 1000", catalog.Product{ReviewCount: ip(5000)}, 4},
		{"deal bonus", catalog.Product{Price: 100, DealPrice: fp(80)}, -1 + 1.5},
		{
			"all terms",
			catalog.Product{Price: 50, Rating: fp(4), ReviewCount: ip(500), DealPrice: fp(40)},
			4*2 + 500/250.0 - 50/100.0 + 1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocalScore(tt.product); got != tt.expected {
				t.Errorf("LocalScore = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAutoPick(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Price: 20, Rating: fp(5)},
		{ID: 2, Price: 20, Rating: fp(3)},
		{ID: 3, Price: 20, Rating: fp(4)},
		{ID: 4, Price: 20, Rating: fp(4.5)},
		{ID: 5, Price: 20, Rating: fp(2)},
	}

	picked := AutoPick(products)
	if len(picked) != 3 {
		t.Fatalf("picked %d products, want 3", len(picked))
	}
	want := []int{1, 4, 3}
	for i := range want {
		if picked[i].ID != want[i] {
			t.Errorf("picked[%d] = %d, want %d (descending score order)", i, picked[i].ID, want[i])
		}
	}

	// Fewer than three visible: everything is picked, still ordered.
	picked = AutoPick(products[:2])
	if len(picked) != 2 || picked[0].ID != 1 {
		t.Errorf("short list pick = %v", picked)
	}
}

func TestEngine_RunRequiresTwo(t *testing.T) {
	store := &stubStore{}
	engine := NewEngine(store)
	engine.Selection.Toggle(1, "")

	if _, err := engine.Run(context.Background()); !errors.Is(err, ErrTooFew) {
		t.Fatalf("Run with one product err = %v, want ErrTooFew", err)
	}
	if len(store.compared) != 0 {
		t.Error("a gated run must not reach the server")
	}
}

func TestEngine_AutoCompare(t *testing.T) {
	store := &stubStore{result: &catalog.CompareResult{}}
	engine := NewEngine(store)

	// A stale manual selection is replaced by the auto pick.
	engine.Selection.Toggle(99, "Old")

	visible := []catalog.Product{
		{ID: 1, Rating: fp(5)},
		{ID: 2, Rating: fp(3)},
		{ID: 3, Rating: fp(4)},
		{ID: 4, Rating: fp(4.5)},
	}
	if _, err := engine.AutoCompare(context.Background(), visible); err != nil {
		t.Fatalf("AutoCompare: %v", err)
	}

	if len(store.compared) != 1 {
		t.Fatalf("compare calls = %d, want 1", len(store.compared))
	}
	got := store.compared[0]
	want := []int{1, 4, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("compared ids = %v, want %v", got, want)
		}
	}
	if engine.Selection.Has(99) {
		t.Error("auto compare should clear the manual selection first")
	}
}

func TestEngine_AutoCompareTooFew(t *testing.T) {
	engine := NewEngine(&stubStore{})
	if _, err := engine.AutoCompare(context.Background(), []catalog.Product{{ID: 1}}); !errors.Is(err, ErrTooFew) {
		t.Fatalf("err = %v, want ErrTooFew", err)
	}
}
