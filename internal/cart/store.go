package cart

import (
	"context"
	"fmt"

	"storefront/internal/httpx"
)

// Store is the cart surface of the backend, keyed by session token.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Add(ctx context.Context, sessionID string, productID, quantity int) error
	SetQuantity(ctx context.Context, sessionID string, itemID, quantity int) error
	Remove(ctx context.Context, sessionID string, itemID int) error
}

type APIStore struct {
	client *httpx.Client
}

func NewAPIStore(client *httpx.Client) *APIStore {
	return &APIStore{client: client}
}

func (s *APIStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	var c Cart
	if err := s.client.Get(ctx, "/cart/"+sessionID, nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *APIStore) Add(ctx context.Context, sessionID string, productID, quantity int) error {
	body := struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}
	return s.client.Post(ctx, "/cart/"+sessionID+"/add", body, nil)
}

// SetQuantity updates one line. Quantity must be positive here; going to
// zero is a removal and callers route it through Remove instead.
func (s *APIStore) SetQuantity(ctx context.Context, sessionID string, itemID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	body := struct {
		ItemID   int `json:"item_id"`
		Quantity int `json:"quantity"`
	}{ItemID: itemID, Quantity: quantity}
	return s.client.Post(ctx, "/cart/"+sessionID, body, nil)
}

func (s *APIStore) Remove(ctx context.Context, sessionID string, itemID int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/cart/%s/remove/%d", sessionID, itemID), nil)
}
