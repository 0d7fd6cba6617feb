package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	base
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{base{db: db}}
}

// Create inserts the user. A second user with the same email is rejected by
// the unique index and reported as common.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	cart, err := json.Marshal(u.CartData)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	err = r.getExecutor(ctx).QueryRow(ctx,
		`INSERT INTO users (id, name, email, password, cart_data)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING date`,
		u.ID, u.Name, u.Email, u.Password, cart).Scan(&u.Date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, "SELECT id, name, email, password, cart_data, date FROM users WHERE email = $1", email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.get(ctx, "SELECT id, name, email, password, cart_data, date FROM users WHERE id = $1", id)
}

// AdjustCartSlot adds delta to one cart slot in a single statement, flooring
// the result at zero.
func (r *UserRepository) AdjustCartSlot(ctx context.Context, userID string, slot, delta int) error {
	tag, err := r.getExecutor(ctx).Exec(ctx,
		`UPDATE users
		 SET cart_data = jsonb_set(cart_data, ARRAY[$2::text],
		     to_jsonb(GREATEST(COALESCE((cart_data->>$2::text)::int, 0) + $3::int, 0)))
		 WHERE id = $1`,
		userID, strconv.Itoa(slot), delta)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *UserRepository) get(ctx context.Context, sql string, arg any) (*model.User, error) {
	var (
		u    model.User
		cart []byte
	)
	err := r.getExecutor(ctx).QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &cart, &u.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := json.Unmarshal(cart, &u.CartData); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &u, nil
}
