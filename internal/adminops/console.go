// Package adminops is the back-office client: key-gated login, product CRUD
// (JSON or multipart with an attached image), URL-based product import,
// review moderation, and support-ticket triage.
package adminops

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/forms"
	"storefront/internal/httpx"
	"storefront/internal/state"
	"storefront/internal/support"
)

type Console struct {
	client  *httpx.Client
	profile *state.Store
	logger  *zap.SugaredLogger
}

func NewConsole(client *httpx.Client, profile *state.Store, logger *zap.SugaredLogger) *Console {
	return &Console{client: client, profile: profile, logger: logger}
}

// Login verifies the key against the backend before persisting it. Only a
// key that passed the round trip is stored and attached to later requests.
func (c *Console) Login(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &httpx.APIError{Code: "BAD_REQUEST", Message: "enter the admin key"}
	}
	body := struct {
		Key string `json:"key"`
	}{Key: key}
	if err := c.client.Post(ctx, "/admin/login", body, nil); err != nil {
		return err
	}
	return c.profile.SetAdminKey(key)
}

func (c *Console) Logout() error {
	return c.profile.ClearAdminKey()
}

func (c *Console) LoggedIn() bool {
	return c.profile.AdminMode() && c.profile.AdminKey() != ""
}

func (c *Console) CreateProduct(ctx context.Context, form ProductForm) (*catalog.Product, error) {
	return c.submitProduct(ctx, "/products/", "", form)
}

func (c *Console) UpdateProduct(ctx context.Context, id int, form ProductForm) (*catalog.Product, error) {
	return c.submitProduct(ctx, "", fmt.Sprintf("/products/%d", id), form)
}

// submitProduct picks exactly one encoding per submission: multipart when a
// local image file is attached, JSON otherwise.
func (c *Console) submitProduct(ctx context.Context, createPath, updatePath string, form ProductForm) (*catalog.Product, error) {
	if err := forms.Validate.Struct(form); err != nil {
		return nil, err
	}

	var product catalog.Product
	var err error
	switch {
	case form.ImagePath != "":
		body := form.multipart()
		if createPath != "" {
			err = c.client.PostMultipart(ctx, createPath, body, &product)
		} else {
			err = c.client.PutMultipart(ctx, updatePath, body, &product)
		}
	default:
		body := form.jsonBody()
		if createPath != "" {
			err = c.client.Post(ctx, createPath, body, &product)
		} else {
			err = c.client.Put(ctx, updatePath, body, &product)
		}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct fires only after the caller confirmed; the request never
// goes out otherwise.
func (c *Console) DeleteProduct(ctx context.Context, id int, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return c.client.Delete(ctx, fmt.Sprintf("/products/%d", id), nil)
}

// UploadImages attaches local files to an existing product via the
// multi-image endpoint.
func (c *Console) UploadImages(ctx context.Context, productID int, paths []string) (*catalog.Product, error) {
	if len(paths) == 0 {
		return nil, &httpx.APIError{Code: "BAD_REQUEST", Message: "no images provided"}
	}
	body := &httpx.Form{}
	for _, path := range paths {
		body.AttachFile("images", path)
	}
	var product catalog.Product
	if err := c.client.PostMultipart(ctx, fmt.Sprintf("/products/%d/images", productID), body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ImportURL submits an external URL for server-side extraction. The client
// does not interpret or validate the extracted content; it hands the
// prefilled form and the AI cleaner notes to the operator as-is.
func (c *Console) ImportURL(ctx context.Context, url string) (*ImportResult, error) {
	body := struct {
		URL string `json:"url"`
	}{URL: url}
	var result ImportResult
	if err := c.client.Post(ctx, "/admin/import-url", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Console) PendingReviews(ctx context.Context) ([]PendingReview, error) {
	var pending []PendingReview
	if err := c.client.Get(ctx, "/admin/reviews/pending", nil, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// ModerateReview sets the review's status and returns the refreshed pending
// list.
func (c *Console) ModerateReview(ctx context.Context, reviewID int, status string) ([]PendingReview, error) {
	if status != ReviewApproved && status != ReviewRejected {
		return nil, fmt.Errorf("unknown moderation status %q", status)
	}
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	if err := c.client.Post(ctx, fmt.Sprintf("/admin/reviews/%d/moderate", reviewID), body, nil); err != nil {
		return nil, err
	}
	return c.PendingReviews(ctx)
}

func (c *Console) Tickets(ctx context.Context) ([]support.Ticket, error) {
	var tickets []support.Ticket
	if err := c.client.Get(ctx, "/admin/support/tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// SetTicketStatus transitions a ticket and returns the refreshed list.
func (c *Console) SetTicketStatus(ctx context.Context, ticketID int, status string) ([]support.Ticket, error) {
	switch status {
	case support.TicketOpen, support.TicketInProgress, support.TicketResolved:
	default:
		return nil, fmt.Errorf("unknown ticket status %q", status)
	}
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	if err := c.client.Post(ctx, fmt.Sprintf("/admin/support/tickets/%d/status", ticketID), body, nil); err != nil {
		return nil, err
	}
	return c.Tickets(ctx)
}

func (f ProductForm) jsonBody() map[string]any {
	body := map[string]any{
		"name":        f.Name,
		"description": f.Description,
		"price":       f.Price,
		"stock":       f.Stock,
		"is_deal":     f.IsDeal,
	}
	setOptString := func(key, value string) {
		if value != "" {
			body[key] = value
		} else {
			body[key] = nil
		}
	}
	setOptString("category", f.Category)
	setOptString("merchant", f.Merchant)
	setOptString("affiliate_url", f.AffiliateURL)
	setOptString("image_url", f.ImageURL)
	if len(f.ImageURLs) > 0 {
		body["image_urls"] = f.ImageURLs
	}
	if f.Rating != nil {
		body["rating"] = *f.Rating
	}
	if f.ReviewCount != nil {
		body["review_count"] = *f.ReviewCount
	}
	if f.DealPrice != nil {
		body["deal_price"] = *f.DealPrice
	}
	if f.OriginalPrice != nil {
		body["original_price"] = *f.OriginalPrice
	}
	return body
}

func (f ProductForm) multipart() *httpx.Form {
	body := &httpx.Form{}
	body.Set("name", f.Name)
	body.Set("description", f.Description)
	body.Set("price", strconv.FormatFloat(f.Price, 'f', -1, 64))
	body.Set("stock", strconv.Itoa(f.Stock))
	body.Set("is_deal", strconv.FormatBool(f.IsDeal))
	if f.Category != "" {
		body.Set("category", f.Category)
	}
	if f.Merchant != "" {
		body.Set("merchant", f.Merchant)
	}
	if f.AffiliateURL != "" {
		body.Set("affiliate_url", f.AffiliateURL)
	}
	if f.ImageURL != "" {
		body.Set("image_url", f.ImageURL)
	}
	if f.Rating != nil {
		body.Set("rating", strconv.FormatFloat(*f.Rating, 'f', -1, 64))
	}
	if f.ReviewCount != nil {
		body.Set("review_count", strconv.Itoa(*f.ReviewCount))
	}
	if f.DealPrice != nil {
		body.Set("deal_price", strconv.FormatFloat(*f.DealPrice, 'f', -1, 64))
	}
	if f.OriginalPrice != nil {
		body.Set("original_price", strconv.FormatFloat(*f.OriginalPrice, 'f', -1, 64))
	}
	body.AttachFile("image_file", f.ImagePath)
	return body
}
