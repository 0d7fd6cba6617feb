package service

import (
	"context"
	"fmt"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/metrics"
	"fsanano/catalog-api/internal/model"
)

type CartService struct {
	users UserStore
}

func NewCartService(users UserStore) *CartService {
	return &CartService{users: users}
}

func (s *CartService) AddToCart(ctx context.Context, userID string, slot int) error {
	return s.adjust(ctx, userID, slot, 1, "add")
}

// RemoveFromCart decrements the slot; an empty slot stays at zero.
func (s *CartService) RemoveFromCart(ctx context.Context, userID string, slot int) error {
	return s.adjust(ctx, userID, slot, -1, "remove")
}

func (s *CartService) GetCart(ctx context.Context, userID string) (model.Cart, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.CartData, nil
}

func (s *CartService) adjust(ctx context.Context, userID string, slot, delta int, op string) error {
	if !model.ValidSlot(slot) {
		return fmt.Errorf("%w: %d", common.ErrInvalidSlot, slot)
	}
	if err := s.users.AdjustCartSlot(ctx, userID, slot, delta); err != nil {
		return err
	}
	metrics.CartUpdates.WithLabelValues(op).Inc()
	return nil
}
