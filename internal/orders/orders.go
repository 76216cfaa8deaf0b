// Package orders submits checkouts. Order numbers, totals, and statuses are
// all server-assigned.
package orders

import (
	"context"

	"storefront/internal/httpx"
)

// CheckoutForm carries the session token plus the customer contact fields.
// The validate tags mirror the checkout form's required inputs.
type CheckoutForm struct {
	SessionID     string `json:"session_id"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,phone"`
}

type Order struct {
	ID            int     `json:"id"`
	OrderNumber   string  `json:"order_number"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
}

// ContactMessage is the confirmation line shown with the order number.
func (o Order) ContactMessage() string {
	return "Thank you, " + o.CustomerName + "! We will contact you at " + o.CustomerPhone + " to complete the payment."
}

type Store interface {
	Place(ctx context.Context, form CheckoutForm) (*Order, error)
}

type APIStore struct {
	client *httpx.Client
}

func NewAPIStore(client *httpx.Client) *APIStore {
	return &APIStore{client: client}
}

func (s *APIStore) Place(ctx context.Context, form CheckoutForm) (*Order, error) {
	var order Order
	if err := s.client.Post(ctx, "/orders/", form, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
