package cart

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/orders"
	"storefront/internal/state"
)

// stubCartStore is an in-memory cart keyed by whatever session asks for it.
type stubCartStore struct {
	carts       map[string]*Cart
	setCalls    []int // quantities passed to SetQuantity
	removeCalls []int // item ids passed to Remove
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: map[string]*Cart{}}
}

func (s *stubCartStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	if c, ok := s.carts[sessionID]; ok {
		return c, nil
	}
	return &Cart{}, nil
}

func (s *stubCartStore) Add(_ context.Context, sessionID string, productID, quantity int) error {
	c := s.carts[sessionID]
	if c == nil {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	c.Items = append(c.Items, Item{ID: len(c.Items) + 1, Quantity: quantity})
	c.ItemCount += quantity
	return nil
}

func (s *stubCartStore) SetQuantity(_ context.Context, sessionID string, itemID, quantity int) error {
	s.setCalls = append(s.setCalls, quantity)
	return nil
}

func (s *stubCartStore) Remove(_ context.Context, sessionID string, itemID int) error {
	s.removeCalls = append(s.removeCalls, itemID)
	if c, ok := s.carts[sessionID]; ok {
		c.Items = nil
		c.ItemCount = 0
	}
	return nil
}

type stubOrderStore struct {
	placed []orders.CheckoutForm
	err    error
}

func (s *stubOrderStore) Place(_ context.Context, form orders.CheckoutForm) (*orders.Order, error) {
	s.placed = append(s.placed, form)
	if s.err != nil {
		return nil, s.err
	}
	return &orders.Order{
		OrderNumber:   "ORD-20260901-0001",
		CustomerName:  form.CustomerName,
		CustomerPhone: form.CustomerPhone,
	}, nil
}

func newTestFlow(t *testing.T) (*Flow, *stubCartStore, *stubOrderStore, *state.Store) {
	t.Helper()
	profile, err := state.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	carts := newStubCartStore()
	ords := &stubOrderStore{}
	return NewFlow(carts, ords, profile), carts, ords, profile
}

func TestFlow_AddAndRefresh(t *testing.T) {
	flow, _, _, _ := newTestFlow(t)
	ctx := context.Background()

	if flow.Phase() != PhaseEmpty {
		t.Fatal("new flow should start empty")
	}

	c, err := flow.AddItem(ctx, 12, 2)
	if err != nil {
		t.Fatal(err)
	}
	if c.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", c.ItemCount)
	}
	if flow.Phase() != PhasePopulated {
		t.Errorf("phase = %v, want populated", flow.Phase())
	}
}

func TestFlow_UpdateQuantityNeverSendsNonPositive(t *testing.T) {
	flow, carts, _, _ := newTestFlow(t)
	ctx := context.Background()
	flow.AddItem(ctx, 12, 1)

	for _, quantity := range []int{0, -3} {
		if _, err := flow.UpdateQuantity(ctx, 1, quantity); err != nil {
			t.Fatalf("UpdateQuantity(%d): %v", quantity, err)
		}
	}

	if len(carts.setCalls) != 0 {
		t.Errorf("SetQuantity received %v; non-positive targets must become removals", carts.setCalls)
	}
	if len(carts.removeCalls) != 2 {
		t.Errorf("Remove calls = %d, want 2", len(carts.removeCalls))
	}
}

func TestFlow_BeginCheckoutEmptyCart(t *testing.T) {
	flow, _, _, _ := newTestFlow(t)

	_, err := flow.BeginCheckout(context.Background())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if flow.Phase() != PhaseEmpty {
		t.Error("a rejected checkout must not advance the phase")
	}
}

func TestFlow_SubmitCheckout(t *testing.T) {
	flow, _, ords, profile := newTestFlow(t)
	ctx := context.Background()
	flow.AddItem(ctx, 12, 1)

	if _, err := flow.BeginCheckout(ctx); err != nil {
		t.Fatal(err)
	}
	before := profile.SessionID()

	order, err := flow.SubmitCheckout(ctx, orders.CheckoutForm{
		CustomerName:  "Jo Smith",
		CustomerEmail: "jo@example.com",
		CustomerPhone: "+15550100",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(ords.placed) != 1 {
		t.Fatalf("orders placed = %d, want 1", len(ords.placed))
	}
	if ords.placed[0].SessionID != before {
		t.Error("the order must carry the pre-checkout session token")
	}
	if profile.SessionID() == before {
		t.Error("session must rotate after a successful checkout")
	}
	if flow.Phase() != PhaseOrderPlaced {
		t.Errorf("phase = %v, want order placed", flow.Phase())
	}
	if flow.Current() != nil {
		t.Error("snapshot should clear once the order is placed")
	}
	if !strings.Contains(order.ContactMessage(), "Jo Smith") || !strings.Contains(order.ContactMessage(), "+15550100") {
		t.Errorf("confirmation line %q missing name or phone", order.ContactMessage())
	}
}

func TestFlow_SubmitCheckoutValidatesContact(t *testing.T) {
	flow, _, ords, _ := newTestFlow(t)
	ctx := context.Background()
	flow.AddItem(ctx, 12, 1)
	flow.BeginCheckout(ctx)

	tests := []struct {
		name string
		form orders.CheckoutForm
	}{
		{"missing name", orders.CheckoutForm{CustomerEmail: "jo@example.com", CustomerPhone: "+15550100"}},
		{"bad email", orders.CheckoutForm{CustomerName: "Jo", CustomerEmail: "not-an-email", CustomerPhone: "+15550100"}},
		{"bad phone", orders.CheckoutForm{CustomerName: "Jo", CustomerEmail: "jo@example.com", CustomerPhone: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := flow.SubmitCheckout(ctx, tt.form); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
	if len(ords.placed) != 0 {
		t.Errorf("invalid forms must not reach the server, placed %d", len(ords.placed))
	}
}
