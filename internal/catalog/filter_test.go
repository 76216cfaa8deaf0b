package catalog

import (
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestFilterState_Query(t *testing.T) {
	tests := []struct {
		name     string
		filter   FilterState
		expected string
	}{
		{"defaults", DefaultFilter(), ""},
		{"search", FilterState{Search: "lamp", Sort: SortNewest}, "q=lamp"},
		{"default sort omitted", FilterState{Sort: SortNewest}, ""},
		{"non-default sort", FilterState{Sort: SortPriceAsc}, "sort=price_asc"},
		{"price bounds", FilterState{MinPrice: fp(10), MaxPrice: fp(49.5)}, "max_price=49.5&min_price=10"},
		{"deals and rating", FilterState{DealsOnly: true, MinRating: fp(4)}, "deals=1&min_rating=4"},
		{
			"everything",
			FilterState{Search: "desk lamp", Category: "Home", Sort: SortRatingDesc, MaxPrice: fp(50), DealsOnly: true, MinRating: fp(4)},
			"category=Home&deals=1&max_price=50&min_rating=4&q=desk+lamp&sort=rating_desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Query().Encode(); got != tt.expected {
				t.Errorf("Query() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFilterState_Chips(t *testing.T) {
	filter := FilterState{
		Search:    "lamp",
		Category:  "Home",
		Sort:      SortPriceAsc,
		MaxPrice:  fp(50),
		DealsOnly: true,
		MinRating: fp(4),
	}

	chips := filter.Chips()
	kinds := make([]string, len(chips))
	for i, c := range chips {
		kinds[i] = c.Kind
	}
	want := []string{ChipSearch, ChipCategory, ChipPrice, ChipDeals, ChipRating, ChipSort}
	if len(kinds) != len(want) {
		t.Fatalf("got %d chips %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("chip[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}

	// Bounded price collapses to one chip with both ends.
	filter.MinPrice = fp(10)
	for _, c := range filter.Chips() {
		if c.Kind == ChipPrice && c.Label != "$10–$50" {
			t.Errorf("price chip label = %q, want $10–$50", c.Label)
		}
	}
}

func TestFilterState_RemoveChip(t *testing.T) {
	filter := FilterState{
		Search:    "lamp",
		Category:  "Home",
		Sort:      SortPriceAsc,
		MinPrice:  fp(10),
		MaxPrice:  fp(50),
		DealsOnly: true,
		MinRating: fp(4),
	}

	filter.RemoveChip(ChipPrice)
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		t.Error("removing the price chip should clear both bounds")
	}
	if filter.Search != "lamp" || !filter.DealsOnly {
		t.Error("removing one chip must not touch other dimensions")
	}

	filter.RemoveChip(ChipSort)
	if filter.Sort != SortNewest {
		t.Errorf("sort after removal = %q, want %q", filter.Sort, SortNewest)
	}

	filter.Reset()
	if len(filter.Chips()) != 0 {
		t.Errorf("chips after Reset = %v, want none", filter.Chips())
	}
	if filter.Sort != SortNewest {
		t.Errorf("Reset sort = %q, want %q", filter.Sort, SortNewest)
	}
}

func TestFilterState_ApplyLocally(t *testing.T) {
	home := "Home"
	electronics := "Electronics"
	products := []Product{
		{ID: 1, Name: "LED Desk Lamp", Price: 29.99, Category: &home, Rating: fp(4.5)},
		{ID: 2, Name: "Wireless Speaker", Price: 89.99, Category: &electronics, Rating: fp(4.8), IsDeal: true, DealPrice: fp(59.99)},
		{ID: 3, Name: "Garden Tool Set", Price: 45.00, Category: &home, Rating: fp(3.9)},
		{ID: 4, Name: "USB-C Cable", Price: 9.99, Category: &electronics},
	}

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		got := FilterState{Search: "lamp"}.ApplyLocally(products)
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("got %v, want just the lamp", ids(got))
		}
	})

	t.Run("deal price is the effective price", func(t *testing.T) {
		got := FilterState{MaxPrice: fp(60)}.ApplyLocally(products)
		// The speaker's deal price (59.99) is under the cap even though its
		// list price is not.
		if !contains(got, 2) {
			t.Errorf("got %v, expected the discounted speaker to pass", ids(got))
		}
	})

	t.Run("rating floor drops unrated products", func(t *testing.T) {
		got := FilterState{MinRating: fp(4)}.ApplyLocally(products)
		if contains(got, 4) {
			t.Error("unrated product should not pass a rating floor")
		}
		if !contains(got, 1) || !contains(got, 2) {
			t.Errorf("got %v, want 1 and 2", ids(got))
		}
	})

	t.Run("price sort ascending", func(t *testing.T) {
		got := FilterState{Sort: SortPriceAsc}.ApplyLocally(products)
		for i := 1; i < len(got); i++ {
			if got[i-1].CurrentPrice() > got[i].CurrentPrice() {
				t.Fatalf("not sorted ascending: %v", ids(got))
			}
		}
	})

	t.Run("deals only", func(t *testing.T) {
		got := FilterState{DealsOnly: true}.ApplyLocally(products)
		if len(got) != 1 || got[0].ID != 2 {
			t.Errorf("got %v, want just the deal", ids(got))
		}
	})
}

func ids(products []Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func contains(products []Product, id int) bool {
	for _, p := range products {
		if p.ID == id {
			return true
		}
	}
	return false
}
