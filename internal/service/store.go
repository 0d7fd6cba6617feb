package service

import (
	"context"

	"fsanano/catalog-api/internal/model"
)

// ProductStore persists the catalog. Listing methods return products in
// insertion order.
type ProductStore interface {
	Insert(ctx context.Context, in model.ProductInput) (model.Product, error)
	DeleteByID(ctx context.Context, id int) error
	List(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)
	GetByID(ctx context.Context, id int) (model.Product, error)
}

// UserStore persists accounts and their carts. AdjustCartSlot must apply the
// delta atomically and never leave a slot below zero.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	AdjustCartSlot(ctx context.Context, userID string, slot, delta int) error
}
