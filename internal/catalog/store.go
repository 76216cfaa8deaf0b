package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"storefront/internal/httpx"
)

// Store is the product surface of the backend.
type Store interface {
	List(ctx context.Context, filter FilterState) ([]Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	Suggestions(ctx context.Context, q string, limit int) []string
	Compare(ctx context.Context, ids []int) (*CompareResult, error)
}

// APIStore talks to /products. Listing is read-through cached: every
// successful fetch overwrites the cache, and any failure falls back to the
// cached list with the active filters applied locally.
type APIStore struct {
	client *httpx.Client
	cache  *Cache
	logger *zap.SugaredLogger
}

func NewAPIStore(client *httpx.Client, cache *Cache, logger *zap.SugaredLogger) *APIStore {
	return &APIStore{client: client, cache: cache, logger: logger}
}

func (s *APIStore) List(ctx context.Context, filter FilterState) ([]Product, error) {
	var products []Product
	if err := s.client.Get(ctx, "/products/", filter.Query(), &products); err != nil {
		cached := s.cache.Get()
		if len(cached) == 0 {
			return nil, err
		}
		if s.logger != nil {
			s.logger.Warnw("product list unavailable, serving cached copy", "error", err)
		}
		return filter.ApplyLocally(cached), nil
	}
	s.cache.Put(products)
	return products, nil
}

func (s *APIStore) Get(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := s.client.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Suggestions is silent-degrade: autocomplete failure never surfaces.
func (s *APIStore) Suggestions(ctx context.Context, q string, limit int) []string {
	query := url.Values{}
	query.Set("q", q)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var suggestions []string
	if err := s.client.Get(ctx, "/products/suggestions", query, &suggestions); err != nil {
		if s.logger != nil {
			s.logger.Debugw("suggestions unavailable", "q", q, "error", err)
		}
		return nil
	}
	return suggestions
}

func (s *APIStore) Compare(ctx context.Context, ids []int) (*CompareResult, error) {
	body := struct {
		ProductIDs []int `json:"product_ids"`
	}{ProductIDs: ids}

	var result CompareResult
	if err := s.client.Post(ctx, "/products/compare", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
