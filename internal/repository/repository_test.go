package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/model"
	"fsanano/catalog-api/internal/repository"
	"fsanano/catalog-api/internal/repository/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))

	sqlDB := stdlib.OpenDBFromPool(pool)
	require.NoError(t, migrations.Up(ctx, sqlDB))

	for _, table := range []string{"products", "users"} {
		_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", table))
		require.NoError(t, err, "truncate %s", table)
	}
	return pool
}

func TestProductRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewProductRepository(pool)
	ctx := context.Background()

	for i, cat := range []string{"women", "men", "women"} {
		p, err := repo.Insert(ctx, model.ProductInput{
			Name: fmt.Sprintf("p%d", i+1), Image: "x.png", Category: cat, NewPrice: 10, OldPrice: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, p.ID)
		assert.True(t, p.Available)
		assert.False(t, p.Date.IsZero())
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "p1", all[0].Name)

	women, err := repo.ListByCategory(ctx, "women", 4)
	require.NoError(t, err)
	assert.Len(t, women, 2)

	require.NoError(t, repo.DeleteByID(ctx, 2))
	require.NoError(t, repo.DeleteByID(ctx, 2), "deleting a missing id is a no-op")
	_, err = repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, common.ErrNotFound)

	p, err := repo.Insert(ctx, model.ProductInput{Name: "p4", Image: "x.png", Category: "kid"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.ID)
}

func TestProductRepository_ConcurrentInserts(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewProductRepository(pool)
	ctx := context.Background()

	const n = 20
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(ctx, model.ProductInput{Name: "c", Image: "c.png", Category: "men"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestUserRepository_Integration(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u := &model.User{ID: "u-1", Name: "Ann", Email: "ann@example.com", Password: "hash", CartData: model.NewCart()}
	require.NoError(t, repo.Create(ctx, u))
	assert.False(t, u.Date.IsZero())

	dup := &model.User{ID: "u-2", Email: "ann@example.com", Password: "hash", CartData: model.NewCart()}
	assert.ErrorIs(t, repo.Create(ctx, dup), common.ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Len(t, got.CartData, model.CartSize)

	require.NoError(t, repo.AdjustCartSlot(ctx, "u-1", 7, 1))
	require.NoError(t, repo.AdjustCartSlot(ctx, "u-1", 7, 1))
	require.NoError(t, repo.AdjustCartSlot(ctx, "u-1", 8, -1))

	got, err = repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CartData[7])
	assert.Equal(t, 0, got.CartData[8])

	assert.ErrorIs(t, repo.AdjustCartSlot(ctx, "ghost", 1, 1), common.ErrNotFound)
	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
