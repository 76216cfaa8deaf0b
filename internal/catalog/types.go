package catalog

// Product mirrors the backend's product document. Only the server mutates
// products; the client holds a read-through cache invalidated on every
// successful list fetch.
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         float64          `json:"price"`
	ImageURL      *string          `json:"image_url,omitempty"`
	ImageURLs     []string         `json:"image_urls,omitempty"`
	Stock         int              `json:"stock"`
	Category      *string          `json:"category,omitempty"`
	AffiliateURL  *string          `json:"affiliate_url,omitempty"`
	Merchant      *string          `json:"merchant,omitempty"`
	Rating        *float64         `json:"rating,omitempty"`
	ReviewCount   *int             `json:"review_count,omitempty"`
	IsDeal        bool             `json:"is_deal"`
	DealPrice     *float64         `json:"deal_price,omitempty"`
	OriginalPrice *float64         `json:"original_price,omitempty"`
	Why           *WhyThisProduct  `json:"why_this_product,omitempty"`
}

// WhyThisProduct is the server-computed recommendation panel. The client
// renders it as-is and never synthesizes reasons of its own.
type WhyThisProduct struct {
	Reasons    []string `json:"reasons"`
	Confidence float64  `json:"confidence"`
}

// CurrentPrice prefers the deal price when one is set.
func (p Product) CurrentPrice() float64 {
	if p.DealPrice != nil && *p.DealPrice > 0 {
		return *p.DealPrice
	}
	return p.Price
}

// ListPrice is the strike-through price shown next to a deal.
func (p Product) ListPrice() float64 {
	if p.OriginalPrice != nil && *p.OriginalPrice > 0 {
		return *p.OriginalPrice
	}
	return p.Price
}

func (p Product) CategoryName() string {
	if p.Category != nil {
		return *p.Category
	}
	return ""
}

func (p Product) MerchantName() string {
	if p.Merchant != nil {
		return *p.Merchant
	}
	return ""
}

// CompareProduct is a product row in a comparison response, carrying the
// server-supplied score.
type CompareProduct struct {
	Product
	Score float64 `json:"score"`
}

// CompareSummary is the server's recommendation for a comparison run.
type CompareSummary struct {
	RecommendedProductID int      `json:"recommended_product_id"`
	RecommendedReason    string   `json:"recommended_reason"`
	Confidence           string   `json:"confidence"`
	KeyPoints            []string `json:"key_points"`
}

type CompareResult struct {
	Products []CompareProduct `json:"products"`
	Summary  CompareSummary   `json:"summary"`
}
