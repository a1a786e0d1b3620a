package mysql_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/product"
	"github.com/example/storefront/internal/repository/mysql"
	"github.com/example/storefront/internal/testutil"
)

func TestProductQueries(t *testing.T) {
	db := testutil.NewDB(t)
	repo := mysql.NewProductRepository(db)
	ctx := context.Background()

	laptop := testutil.CreateProduct(t, db, "Laptop", 1_200_000, "Electronics")
	shirt := testutil.CreateProduct(t, db, "T-shirt", 150_000, "Clothing")
	phone := testutil.CreateProduct(t, db, "Smartphone", 800_000, "Electronics")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, laptop.ID, all[0].ID)

	electronics, err := repo.ListByCategory(ctx, "Electronics")
	require.NoError(t, err)
	assert.Len(t, electronics, 2)

	everything, err := repo.ListByCategory(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	byIDs, err := repo.ListByIDs(ctx, []int64{phone.ID, shirt.ID, 999})
	require.NoError(t, err)
	require.Len(t, byIDs, 2)
	assert.Equal(t, shirt.ID, byIDs[0].ID)

	none, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clothing", "Electronics"}, cats)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestProductUpsertKeepsExisting(t *testing.T) {
	db := testutil.NewDB(t)
	repo := mysql.NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &product.Product{ID: 1, Title: "Laptop", Price: 1_200_000}))
	require.NoError(t, repo.Upsert(ctx, &product.Product{ID: 1, Title: "Changed", Price: 1}))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Title)
	assert.Equal(t, float64(1_200_000), got.Price)
}
