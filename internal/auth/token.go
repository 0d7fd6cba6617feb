// Package auth issues and verifies the stateless tokens that carry a user's
// storage id between requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"fsanano/catalog-api/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer hides the signing mechanism from the services that need tokens.
type Issuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type UserClaim struct {
	ID string `json:"id"`
}

// Claims encodes {"user":{"id":...}} next to the registered claims.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens. A zero ttl produces tokens that never expire.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := i.now()
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Verify(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing token", common.ErrUnauthenticated)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token expired", common.ErrUnauthenticated)
		}
		return "", fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}
	if !parsed.Valid || claims.User.ID == "" {
		return "", fmt.Errorf("%w: invalid token", common.ErrUnauthenticated)
	}

	return claims.User.ID, nil
}
