package mysql_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/datamodels/order"
	"github.com/example/storefront/internal/repository/mysql"
	"github.com/example/storefront/internal/testutil"
)

func TestOrderUpdateStatusWhereTotalAbove(t *testing.T) {
	db := testutil.NewDB(t)
	repo := mysql.NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "John", "john@example.com")
	atBoundary := testutil.CreateOrder(t, db, u.ID, 500_000, order.StatusPending)
	above := testutil.CreateOrder(t, db, u.ID, 500_001, order.StatusPending)
	done := testutil.CreateOrder(t, db, u.ID, 900_000, order.StatusCompleted)
	other := testutil.CreateOrder(t, db, u.ID, 1_500_000, "shipped")

	n, err := repo.UpdateStatusWhereTotalAbove(ctx, 500_000, order.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.Equal(t, order.StatusPending, testutil.OrderStatus(t, db, atBoundary.ID))
	assert.Equal(t, order.StatusCompleted, testutil.OrderStatus(t, db, above.ID))
	assert.Equal(t, order.StatusCompleted, testutil.OrderStatus(t, db, done.ID))
	assert.Equal(t, order.StatusCompleted, testutil.OrderStatus(t, db, other.ID))

	n, err = repo.UpdateStatusWhereTotalAbove(ctx, 500_000, order.StatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrderCreateWithItems(t *testing.T) {
	db := testutil.NewDB(t)
	repo := mysql.NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "Jane", "jane@example.com")
	p := testutil.CreateProduct(t, db, "Laptop", 1_200_000, "Electronics")

	o := &order.Order{
		UserID: u.ID,
		Total:  1_200_000,
		Items:  []order.Item{{ProductID: p.ID, Quantity: 1}},
	}
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, p.ID, got.Items[0].ProductID)

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, o.ID+1)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
