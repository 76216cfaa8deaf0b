package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Sort orders accepted by the products endpoint.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortNameAsc    = "name_asc"
	SortRatingDesc = "rating_desc"
)

// FilterState combines every catalog filter dimension into the single query
// the grid is driven by. The zero value plus SortNewest is the default view.
type FilterState struct {
	Search    string
	Category  string
	Sort      string
	MinPrice  *float64
	MaxPrice  *float64
	DealsOnly bool
	MinRating *float64
}

func DefaultFilter() FilterState {
	return FilterState{Sort: SortNewest}
}

// Query serializes the state to the products endpoint's parameters, omitting
// dimensions that are at their defaults.
func (f FilterState) Query() url.Values {
	values := url.Values{}
	if f.Search != "" {
		values.Set("q", f.Search)
	}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.Sort != "" && f.Sort != SortNewest {
		values.Set("sort", f.Sort)
	}
	if f.MinPrice != nil {
		values.Set("min_price", trimFloat(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		values.Set("max_price", trimFloat(*f.MaxPrice))
	}
	if f.DealsOnly {
		values.Set("deals", "1")
	}
	if f.MinRating != nil {
		values.Set("min_rating", trimFloat(*f.MinRating))
	}
	return values
}

// Chip kinds, one per removable filter dimension.
const (
	ChipSearch   = "search"
	ChipCategory = "category"
	ChipPrice    = "price"
	ChipDeals    = "deals"
	ChipRating   = "rating"
	ChipSort     = "sort"
)

type Chip struct {
	Kind  string
	Label string
}

// Chips derives the active-filter strip. Price bounds collapse into a single
// chip; the sort chip only appears when the order differs from the default.
func (f FilterState) Chips() []Chip {
	var chips []Chip
	if f.Search != "" {
		chips = append(chips, Chip{ChipSearch, fmt.Sprintf("Search: %q", f.Search)})
	}
	if f.Category != "" {
		chips = append(chips, Chip{ChipCategory, f.Category})
	}
	if label := f.priceLabel(); label != "" {
		chips = append(chips, Chip{ChipPrice, label})
	}
	if f.DealsOnly {
		chips = append(chips, Chip{ChipDeals, "Deals only"})
	}
	if f.MinRating != nil {
		chips = append(chips, Chip{ChipRating, fmt.Sprintf("%s★ & up", trimFloat(*f.MinRating))})
	}
	if f.Sort != "" && f.Sort != SortNewest {
		chips = append(chips, Chip{ChipSort, sortLabel(f.Sort)})
	}
	return chips
}

func (f FilterState) priceLabel() string {
	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		return fmt.Sprintf("$%s–$%s", trimFloat(*f.MinPrice), trimFloat(*f.MaxPrice))
	case f.MaxPrice != nil:
		return fmt.Sprintf("Under $%s", trimFloat(*f.MaxPrice))
	case f.MinPrice != nil:
		return fmt.Sprintf("Over $%s", trimFloat(*f.MinPrice))
	}
	return ""
}

// RemoveChip resets the dimension behind one chip to its default.
func (f *FilterState) RemoveChip(kind string) {
	switch kind {
	case ChipSearch:
		f.Search = ""
	case ChipCategory:
		f.Category = ""
	case ChipPrice:
		f.MinPrice, f.MaxPrice = nil, nil
	case ChipDeals:
		f.DealsOnly = false
	case ChipRating:
		f.MinRating = nil
	case ChipSort:
		f.Sort = SortNewest
	}
}

// Reset is the bulk "clear all" control.
func (f *FilterState) Reset() {
	*f = DefaultFilter()
}

func sortLabel(sortKey string) string {
	switch sortKey {
	case SortPriceAsc:
		return "Price: low to high"
	case SortPriceDesc:
		return "Price: high to low"
	case SortNameAsc:
		return "Name A–Z"
	case SortRatingDesc:
		return "Top rated"
	}
	return sortKey
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ApplyLocally filters and sorts a cached product list with the same
// semantics the backend applies, so the offline fallback view still honors
// the active filters. Search matches name, description, or category,
// case-insensitive.
func (f FilterState) ApplyLocally(products []Product) []Product {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if needle != "" {
			haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.CategoryName())
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if f.Category != "" && !strings.EqualFold(p.CategoryName(), f.Category) {
			continue
		}
		if f.DealsOnly && !p.IsDeal {
			continue
		}
		price := p.CurrentPrice()
		if f.MinPrice != nil && price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			continue
		}
		if f.MinRating != nil && (p.Rating == nil || *p.Rating < *f.MinRating) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CurrentPrice() < filtered[j].CurrentPrice() })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CurrentPrice() > filtered[j].CurrentPrice() })
	case SortNameAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name) })
	case SortRatingDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return ratingOf(filtered[i]) > ratingOf(filtered[j]) })
	}
	return filtered
}

func ratingOf(p Product) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
