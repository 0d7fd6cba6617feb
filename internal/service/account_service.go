package service

import (
	"context"
	"errors"
	"fmt"

	"fsanano/catalog-api/internal/auth"
	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/metrics"
	"fsanano/catalog-api/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CredentialsError explains why a login failed. It matches
// common.ErrInvalidCredentials with errors.Is.
type CredentialsError struct {
	Reason string
}

func (e *CredentialsError) Error() string { return e.Reason }

func (e *CredentialsError) Unwrap() error { return common.ErrInvalidCredentials }

var (
	errUnknownEmail  = &CredentialsError{Reason: "Wrong Email Id"}
	errWrongPassword = &CredentialsError{Reason: "Wrong password"}
)

type AccountService struct {
	users      UserStore
	tokens     auth.Issuer
	hashCost   int
	generateID func() string
}

func NewAccountService(users UserStore, tokens auth.Issuer) *AccountService {
	return &AccountService{
		users:      users,
		tokens:     tokens,
		hashCost:   bcrypt.DefaultCost,
		generateID: uuid.NewString,
	}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *AccountService) WithHashCost(cost int) *AccountService {
	s.hashCost = cost
	return s
}

// Signup registers a user with an empty cart and returns a token bound to
// the new user's id.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return "", common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrNotFound):
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := &model.User{
		ID:       s.generateID(),
		Name:     username,
		Email:    email,
		Password: string(hash),
		CartData: model.NewCart(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	metrics.Signups.Inc()

	return s.tokens.Issue(u.ID)
}

func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", errUnknownEmail
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", errWrongPassword
	}

	return s.tokens.Issue(u.ID)
}
