package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rakaadi/storefront/internal/cart/app"
	"github.com/rakaadi/storefront/internal/cart/domain"
	"github.com/rakaadi/storefront/internal/cart/infra/memory"
)

func newService() *app.Service {
	return app.NewService(memory.NewStore())
}

func product(id string, cents int64) domain.Product {
	return domain.Product{
		ID:    id,
		Title: "Product " + id,
		Price: domain.Money{Currency: "USD", Amount: cents},
		Image: "/img/" + id + ".jpg",
	}
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("first add creates a quantity-1 line", func(t *testing.T) {
		svc := newService()

		bucket, err := svc.AddToCart(ctx, "a@x.com", product("p1", 1000))
		require.NoError(t, err)
		require.Len(t, bucket, 1)
		require.Equal(t, "p1", bucket[0].ProductID)
		require.Equal(t, int64(1), bucket[0].Quantity)
		require.Equal(t, int64(1000), bucket[0].Price.Amount)
	})

	t.Run("second add increments, never duplicates", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 1000))
		require.NoError(t, err)
		bucket, err := svc.AddToCart(ctx, "a@x.com", product("p1", 1000))
		require.NoError(t, err)

		require.Len(t, bucket, 1)
		require.Equal(t, int64(2), bucket[0].Quantity)

		totals, err := svc.Totals(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, int64(2), totals.Items)
		require.Equal(t, int64(2000), totals.Total.Amount)
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
		require.NoError(t, err)
		_, err = svc.AddToCart(ctx, "a@x.com", product("p2", 200))
		require.NoError(t, err)
		bucket, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
		require.NoError(t, err)

		require.Len(t, bucket, 2)
		require.Equal(t, "p1", bucket[0].ProductID)
		require.Equal(t, "p2", bucket[1].ProductID)
	})

	t.Run("empty user id is rejected", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "  ", product("p1", 100))
		require.ErrorIs(t, err, app.ErrInvalidInput)
	})
}

func TestIncreaseQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps an existing line", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
		require.NoError(t, err)

		bucket, err := svc.IncreaseQuantity(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		require.Equal(t, int64(2), bucket[0].Quantity)
	})

	t.Run("unknown product is a no-op, not a new line", func(t *testing.T) {
		svc := newService()

		bucket, err := svc.IncreaseQuantity(ctx, "b@x.com", "p9")
		require.NoError(t, err)
		require.Empty(t, bucket)

		queried, err := svc.Query(ctx, "b@x.com")
		require.NoError(t, err)
		require.Empty(t, queried)
	})
}

func TestDecreaseQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("above one it decrements", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 1000))
		require.NoError(t, err)
		_, err = svc.AddToCart(ctx, "a@x.com", product("p1", 1000))
		require.NoError(t, err)

		bucket, err := svc.DecreaseQuantity(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		require.Equal(t, int64(1), bucket[0].Quantity)
	})

	t.Run("at one the line is removed, never kept at zero", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 1000))
		require.NoError(t, err)

		bucket, err := svc.DecreaseQuantity(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		require.Empty(t, bucket)
	})

	t.Run("missing line is a no-op", func(t *testing.T) {
		svc := newService()

		bucket, err := svc.DecreaseQuantity(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		require.Empty(t, bucket)
	})

	t.Run("surviving quantities never drop below one", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
		require.NoError(t, err)
		_, err = svc.AddToCart(ctx, "a@x.com", product("p2", 200))
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			bucket, err := svc.DecreaseQuantity(ctx, "a@x.com", "p1")
			require.NoError(t, err)
			for _, it := range bucket {
				require.GreaterOrEqual(t, it.Quantity, int64(1))
			}
		}
	})
}

func TestDeleteFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("removes regardless of quantity", func(t *testing.T) {
		svc := newService()

		for i := 0; i < 3; i++ {
			_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
			require.NoError(t, err)
		}

		bucket, err := svc.DeleteFromCart(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		require.Empty(t, bucket)
	})

	t.Run("idempotent", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
		require.NoError(t, err)
		_, err = svc.AddToCart(ctx, "a@x.com", product("p2", 200))
		require.NoError(t, err)

		first, err := svc.DeleteFromCart(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		second, err := svc.DeleteFromCart(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("add then delete restores the pre-add bucket", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
		require.NoError(t, err)
		before, err := svc.Query(ctx, "a@x.com")
		require.NoError(t, err)

		_, err = svc.AddToCart(ctx, "a@x.com", product("p2", 200))
		require.NoError(t, err)
		after, err := svc.DeleteFromCart(ctx, "a@x.com", "p2")
		require.NoError(t, err)

		require.Equal(t, before, after)
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "a@x.com", product("p2", 200))
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "a@x.com"))

	bucket, err := svc.Query(ctx, "a@x.com")
	require.NoError(t, err)
	require.Empty(t, bucket)

	totals, err := svc.Totals(ctx, "a@x.com")
	require.NoError(t, err)
	require.Zero(t, totals.Items)
	require.Zero(t, totals.Total.Amount)
}

func TestTotals(t *testing.T) {
	ctx := context.Background()

	t.Run("sums quantities and exact prices", func(t *testing.T) {
		svc := newService()

		_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 1099))
		require.NoError(t, err)
		_, err = svc.AddToCart(ctx, "a@x.com", product("p1", 1099))
		require.NoError(t, err)
		_, err = svc.AddToCart(ctx, "a@x.com", product("p2", 550))
		require.NoError(t, err)

		totals, err := svc.Totals(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, int64(3), totals.Items)
		require.Equal(t, int64(2*1099+550), totals.Total.Amount)
		require.Equal(t, "USD", totals.Total.Currency)
	})

	t.Run("item count moves with every add and final decrease", func(t *testing.T) {
		svc := newService()

		before, err := svc.Totals(ctx, "a@x.com")
		require.NoError(t, err)

		_, err = svc.AddToCart(ctx, "a@x.com", product("p1", 100))
		require.NoError(t, err)
		afterAdd, err := svc.Totals(ctx, "a@x.com")
		require.NoError(t, err)
		require.Greater(t, afterAdd.Items, before.Items)

		_, err = svc.DecreaseQuantity(ctx, "a@x.com", "p1")
		require.NoError(t, err)
		afterDecrease, err := svc.Totals(ctx, "a@x.com")
		require.NoError(t, err)
		require.Less(t, afterDecrease.Items, afterAdd.Items)
	})
}

func TestUserIsolation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.AddToCart(ctx, "a@x.com", product("p1", 100))
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "b@x.com", product("p1", 100))
	require.NoError(t, err)

	_, err = svc.DeleteFromCart(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	bucketA, err := svc.Query(ctx, "a@x.com")
	require.NoError(t, err)
	require.Empty(t, bucketA)

	bucketB, err := svc.Query(ctx, "b@x.com")
	require.NoError(t, err)
	require.Len(t, bucketB, 1)
	require.Equal(t, int64(1), bucketB[0].Quantity)
}

func TestQueryDoesNotCreateBuckets(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	bucket, err := svc.Query(ctx, "ghost@x.com")
	require.NoError(t, err)
	require.Empty(t, bucket)

	// A second read behaves identically; reading has no side effects.
	again, err := svc.Query(ctx, "ghost@x.com")
	require.NoError(t, err)
	require.Equal(t, bucket, again)
}
