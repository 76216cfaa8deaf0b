package adminops

import (
	"errors"

	"storefront/internal/catalog"
	"storefront/internal/reviews"
)

// ErrNotConfirmed gates destructive operations behind an explicit
// confirmation step.
var ErrNotConfirmed = errors.New("operation not confirmed")

// Review moderation outcomes.
const (
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// ProductForm is the admin product editor. When ImagePath points at a local
// file the submission goes out as multipart carrying the same fields plus
// the file; otherwise it is a pure JSON body. Never both.
type ProductForm struct {
	Name          string   `validate:"required"`
	Description   string   `validate:"required"`
	Price         float64  `validate:"required,gt=0"`
	Stock         int      `validate:"min=0"`
	Category      string
	Merchant      string
	AffiliateURL  string `validate:"omitempty,url"`
	ImageURL      string
	ImageURLs     []string
	Rating        *float64 `validate:"omitempty,min=0,max=5"`
	ReviewCount   *int     `validate:"omitempty,min=0"`
	IsDeal        bool
	DealPrice     *float64 `validate:"omitempty,gt=0"`
	OriginalPrice *float64 `validate:"omitempty,gt=0"`
	ImagePath     string
}

// FormFromProduct prefills the editor, as the dashboard's Edit button did.
func FormFromProduct(p catalog.Product) ProductForm {
	form := ProductForm{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		Category:      p.CategoryName(),
		Merchant:      p.MerchantName(),
		ImageURLs:     append([]string(nil), p.ImageURLs...),
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		IsDeal:        p.IsDeal,
		DealPrice:     p.DealPrice,
		OriginalPrice: p.OriginalPrice,
	}
	if p.AffiliateURL != nil {
		form.AffiliateURL = *p.AffiliateURL
	}
	if p.ImageURL != nil {
		form.ImageURL = *p.ImageURL
	}
	return form
}

// PendingReview is a review awaiting moderation.
type PendingReview struct {
	reviews.Review
	Status      string `json:"status"`
	ProductName string `json:"product_name,omitempty"`
}

// ImportResult is the URL-import extraction outcome: a prefilled product
// plus the AI cleaner's diagnostic notes, passed through verbatim for
// operator review.
type ImportResult struct {
	Message          string          `json:"message"`
	Product          catalog.Product `json:"product"`
	AICleanerReport  []string        `json:"ai_cleaner_report"`
	AIExtractedSpecs []string        `json:"ai_extracted_specs"`
}
