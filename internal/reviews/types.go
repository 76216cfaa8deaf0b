package reviews

// Review is an approved product review as listed publicly.
type Review struct {
	ID               int     `json:"id"`
	ProductID        int     `json:"product_id"`
	ReviewerName     string  `json:"reviewer_name"`
	Rating           int     `json:"rating"`
	Title            string  `json:"title"`
	Body             string  `json:"body"`
	VerifiedPurchase bool    `json:"verified_purchase"`
	PhotoURL         *string `json:"photo_url,omitempty"`
	HelpfulCount     int     `json:"helpful_count"`
}

// Form is a review submission. Tags mirror the form's required inputs; the
// server does the real validation.
type Form struct {
	ReviewerName  string `validate:"required"`
	ReviewerEmail string `validate:"omitempty,email"`
	Rating        int    `validate:"required,min=1,max=5"`
	Title         string
	Body          string `validate:"required"`
	OrderNumber   string
	PhotoPath     string
}

// VoteResult is the helpful-vote response; AlreadyVoted means this profile's
// token was seen before and the control should be disabled.
type VoteResult struct {
	HelpfulCount int  `json:"helpful_count"`
	AlreadyVoted bool `json:"already_voted"`
}

// Stars renders the 1-5 star strip, clamping out-of-range ratings.
func Stars(rating int) string {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	out := make([]rune, 0, 5)
	for i := 0; i < rating; i++ {
		out = append(out, '★')
	}
	for i := rating; i < 5; i++ {
		out = append(out, '☆')
	}
	return string(out)
}
