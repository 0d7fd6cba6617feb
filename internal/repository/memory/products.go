// Package memory is an in-process store with the same semantics as the
// Postgres repositories. It backs STORE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sync"
	"time"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/model"
)

type ProductStore struct {
	mu       sync.RWMutex
	products []model.Product
	now      func() time.Time
}

func NewProductStore() *ProductStore {
	return &ProductStore{now: time.Now}
}

func (s *ProductStore) Insert(_ context.Context, in model.ProductInput) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 1
	for _, p := range s.products {
		if p.ID >= next {
			next = p.ID + 1
		}
	}

	p := model.Product{
		ID:        next,
		Name:      in.Name,
		Image:     in.Image,
		Category:  in.Category,
		NewPrice:  in.NewPrice,
		OldPrice:  in.OldPrice,
		Date:      s.now().UTC(),
		Available: true,
	}
	s.products = append(s.products, p)
	return p, nil
}

func (s *ProductStore) DeleteByID(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *ProductStore) List(_ context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *ProductStore) ListByCategory(_ context.Context, category string, limit int) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Product{}
	for _, p := range s.products {
		if len(out) == limit {
			break
		}
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductStore) GetByID(_ context.Context, id int) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, common.ErrNotFound
}
