package cart

import "storefront/internal/catalog"

// Item is a server-held cart line with an embedded product snapshot.
type Item struct {
	ID       int             `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

// Cart is the server's authoritative view. Total and ItemCount are
// server-computed aggregates and are rendered verbatim; the client never
// recomputes them.
type Cart struct {
	ID        int     `json:"id"`
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}
