package cart

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/forms"
	"storefront/internal/orders"
	"storefront/internal/state"
)

// Phase tracks the checkout flow: Empty -> Populated -> CheckoutPending ->
// OrderPlaced -> (session rotated) Empty.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhasePopulated
	PhaseCheckoutPending
	PhaseOrderPlaced
)

var ErrEmptyCart = errors.New("your cart is empty")

// Flow owns the client side of the cart lifecycle. Every mutation re-fetches
// the authoritative cart, and fetches are sequence-numbered so a stale
// response issued before a rapid add/remove can never overwrite a fresher
// total.
type Flow struct {
	store   Store
	orders  orders.Store
	profile *state.Store

	mu       sync.Mutex
	phase    Phase
	current  *Cart
	issued   uint64
	observed uint64
}

func NewFlow(store Store, orderStore orders.Store, profile *state.Store) *Flow {
	return &Flow{store: store, orders: orderStore, profile: profile}
}

func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Current returns the last accepted cart snapshot.
func (f *Flow) Current() *Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Refresh fetches the server cart for the active session and, when the
// response is still the latest issued, makes it the rendered snapshot.
func (f *Flow) Refresh(ctx context.Context) (*Cart, error) {
	f.mu.Lock()
	f.issued++
	seq := f.issued
	sessionID := f.profile.SessionID()
	f.mu.Unlock()

	fetched, err := f.store.Get(ctx, sessionID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq <= f.observed {
		// Superseded by a later fetch; keep whatever it rendered.
		return f.current, nil
	}
	f.observed = seq
	if err != nil {
		return f.current, err
	}
	f.current = fetched
	if fetched.Empty() {
		f.phase = PhaseEmpty
	} else if f.phase != PhaseCheckoutPending {
		f.phase = PhasePopulated
	}
	return f.current, nil
}

func (f *Flow) AddItem(ctx context.Context, productID, quantity int) (*Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	if err := f.store.Add(ctx, f.profile.SessionID(), productID, quantity); err != nil {
		return f.Current(), err
	}
	return f.Refresh(ctx)
}

// UpdateQuantity moves a line to the requested quantity. Zero or negative
// targets become removals; a negative-quantity request never reaches the
// server.
func (f *Flow) UpdateQuantity(ctx context.Context, itemID, quantity int) (*Cart, error) {
	sessionID := f.profile.SessionID()
	var err error
	if quantity <= 0 {
		err = f.store.Remove(ctx, sessionID, itemID)
	} else {
		err = f.store.SetQuantity(ctx, sessionID, itemID, quantity)
	}
	if err != nil {
		return f.Current(), err
	}
	return f.Refresh(ctx)
}

func (f *Flow) RemoveItem(ctx context.Context, itemID int) (*Cart, error) {
	if err := f.store.Remove(ctx, f.profile.SessionID(), itemID); err != nil {
		return f.Current(), err
	}
	return f.Refresh(ctx)
}

// BeginCheckout fetches the authoritative cart to build the order summary.
// An empty cart is an error and the flow stays where it was.
func (f *Flow) BeginCheckout(ctx context.Context) (*Cart, error) {
	fetched, err := f.store.Get(ctx, f.profile.SessionID())
	if err != nil {
		return nil, err
	}
	if fetched.Empty() {
		return nil, ErrEmptyCart
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = fetched
	f.phase = PhaseCheckoutPending
	return fetched, nil
}

// SubmitCheckout validates the contact fields, places the order, and on
// success rotates the session token so the next cart starts anonymous and
// empty.
func (f *Flow) SubmitCheckout(ctx context.Context, form orders.CheckoutForm) (*orders.Order, error) {
	form.SessionID = f.profile.SessionID()
	if err := forms.Validate.Struct(form); err != nil {
		return nil, err
	}

	order, err := f.orders.Place(ctx, form)
	if err != nil {
		return nil, err
	}

	if _, err := f.profile.RotateSession(); err != nil {
		return order, err
	}

	f.mu.Lock()
	f.phase = PhaseOrderPlaced
	f.current = nil
	f.mu.Unlock()
	return order, nil
}
