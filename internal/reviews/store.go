package reviews

import (
	"context"
	"fmt"
	"strconv"

	"storefront/internal/forms"
	"storefront/internal/httpx"
)

type Store interface {
	List(ctx context.Context, productID int) ([]Review, error)
	Submit(ctx context.Context, productID int, form Form) (string, error)
	Vote(ctx context.Context, reviewID int, voterToken string) (*VoteResult, error)
}

type APIStore struct {
	client *httpx.Client
}

func NewAPIStore(client *httpx.Client) *APIStore {
	return &APIStore{client: client}
}

func (s *APIStore) List(ctx context.Context, productID int) ([]Review, error) {
	var list []Review
	if err := s.client.Get(ctx, fmt.Sprintf("/products/%d/reviews", productID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Submit is always multipart so an optional photo can ride along.
func (s *APIStore) Submit(ctx context.Context, productID int, form Form) (string, error) {
	if err := forms.Validate.Struct(form); err != nil {
		return "", err
	}

	body := &httpx.Form{}
	body.Set("reviewer_name", form.ReviewerName)
	body.Set("reviewer_email", form.ReviewerEmail)
	body.Set("rating", strconv.Itoa(form.Rating))
	body.Set("title", form.Title)
	body.Set("body", form.Body)
	body.Set("order_number", form.OrderNumber)
	if form.PhotoPath != "" {
		body.AttachFile("photo", form.PhotoPath)
	}

	var reply struct {
		Message string `json:"message"`
	}
	if err := s.client.PostMultipart(ctx, fmt.Sprintf("/products/%d/reviews", productID), body, &reply); err != nil {
		return "", err
	}
	if reply.Message == "" {
		reply.Message = "Review submitted."
	}
	return reply.Message, nil
}

func (s *APIStore) Vote(ctx context.Context, reviewID int, voterToken string) (*VoteResult, error) {
	var result VoteResult
	err := s.client.Post(ctx, fmt.Sprintf("/products/reviews/%d/helpful", reviewID), struct{}{}, &result,
		httpx.WithHeader("X-Voter-Token", voterToken))
	if err != nil {
		return nil, err
	}
	return &result, nil
}
