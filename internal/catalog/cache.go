package catalog

import (
	"encoding/json"

	"storefront/internal/state"
)

// Cache mirrors the last fetched product list into the durable profile so
// the grid still renders when the network is down. Strictly best-effort:
// write and decode failures are ignored.
type Cache struct {
	profile *state.Store
}

func NewCache(profile *state.Store) *Cache {
	return &Cache{profile: profile}
}

func (c *Cache) Put(products []Product) {
	if c == nil || c.profile == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	_ = c.profile.SetCachedProducts(raw)
}

func (c *Cache) Get() []Product {
	if c == nil || c.profile == nil {
		return nil
	}
	raw := c.profile.CachedProducts()
	if len(raw) == 0 {
		return nil
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil
	}
	return products
}
