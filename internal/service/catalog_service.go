package service

import (
	"context"
	"fmt"
	"strings"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/metrics"
	"fsanano/catalog-api/internal/model"
)

type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) AddProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	if in.Name == "" || in.Image == "" || in.Category == "" {
		return model.Product{}, fmt.Errorf("%w: name, image and category are required", common.ErrValidation)
	}
	in.Image = NormalizeImage(in.Image)

	p, err := s.products.Insert(ctx, in)
	if err != nil {
		return model.Product{}, err
	}
	metrics.ProductsAdded.Inc()
	return p, nil
}

// RemoveProduct deletes by business id. Unknown ids succeed silently.
func (s *CatalogService) RemoveProduct(ctx context.Context, id int) error {
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return err
	}
	metrics.ProductsRemoved.Inc()
	return nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return normalizeAll(products), nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int) (model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	p.Image = NormalizeImage(p.Image)
	return p, nil
}

// NewCollection drops the oldest product and returns the last
// NewCollectionSize of the rest.
func (s *CatalogService) NewCollection(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) < 2 {
		return []model.Product{}, nil
	}
	rest := products[1:]
	if len(rest) > model.NewCollectionSize {
		rest = rest[len(rest)-model.NewCollectionSize:]
	}
	return normalizeAll(rest), nil
}

func (s *CatalogService) PopularInCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.products.ListByCategory(ctx, category, model.PopularSize)
	if err != nil {
		return nil, err
	}
	return normalizeAll(products), nil
}

// NormalizeImage reduces an image reference to a bare filename: the part
// after the last "/images/" if present, else the last path segment.
func NormalizeImage(ref string) string {
	if i := strings.LastIndex(ref, "/images/"); i >= 0 {
		return ref[i+len("/images/"):]
	}
	return ref[strings.LastIndex(ref, "/")+1:]
}

func normalizeAll(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	for i, p := range products {
		p.Image = NormalizeImage(p.Image)
		out[i] = p
	}
	return out
}
