package memory

import (
	"context"
	"sync"
	"time"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/model"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
	now     func() time.Time
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (s *UserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[u.Email]; ok {
		return common.ErrDuplicateEmail
	}
	u.Date = s.now().UTC()
	s.byID[u.ID] = clone(u)
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(s.byID[id]), nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(u), nil
}

func (s *UserStore) AdjustCartSlot(_ context.Context, userID string, slot, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return common.ErrNotFound
	}
	if u.CartData == nil {
		u.CartData = model.Cart{}
	}
	u.CartData[slot] = max(u.CartData[slot]+delta, 0)
	return nil
}

// Count reports the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func clone(u *model.User) *model.User {
	c := *u
	c.CartData = make(model.Cart, len(u.CartData))
	for k, v := range u.CartData {
		c.CartData[k] = v
	}
	return &c
}
