package repository

import (
	"context"
	"errors"
	"fmt"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = "id, name, image, category, new_price, old_price, date, available"

type ProductRepository struct {
	base
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{base{db: db}}
}

// Insert stores a product under the next business id (max id + 1, or 1 on an
// empty catalog). The table lock serialises concurrent inserts so two callers
// can never compute the same id.
func (r *ProductRepository) Insert(ctx context.Context, in model.ProductInput) (model.Product, error) {
	var p model.Product
	err := r.RunAtomic(ctx, func(ctx context.Context) error {
		if _, err := r.getExecutor(ctx).Exec(ctx, "LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("failed to lock products: %w", err)
		}

		row := r.getExecutor(ctx).QueryRow(ctx,
			`INSERT INTO products (id, name, image, category, new_price, old_price)
			 SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM products
			 RETURNING `+productColumns,
			in.Name, in.Image, in.Category, in.NewPrice, in.OldPrice)
		var err error
		p, err = scanProduct(row)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		return nil
	})
	return p, err
}

// DeleteByID removes the product with the given business id. Deleting a
// missing id is not an error.
func (r *ProductRepository) DeleteByID(ctx context.Context, id int) error {
	if _, err := r.getExecutor(ctx).Exec(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// List returns every product in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products ORDER BY pk")
}

// ListByCategory returns up to limit products of the category in insertion order.
func (r *ProductRepository) ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products WHERE category = $1 ORDER BY pk LIMIT $2", category, limit)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (model.Product, error) {
	row := r.getExecutor(ctx).QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, common.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, err := r.getExecutor(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Category, &p.NewPrice, &p.OldPrice, &p.Date, &p.Available)
	return p, err
}
