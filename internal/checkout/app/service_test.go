package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	items []CartItem
	err   error
}

func (f fakeCart) GetCart(ctx context.Context, userID string) ([]CartItem, error) {
	return f.items, f.err
}

type fakeCatalog struct {
	products map[string]Product
}

func (f fakeCatalog) GetProduct(ctx context.Context, productID string) (Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	catalog := fakeCatalog{products: map[string]Product{
		"p1": {ID: "p1", Title: "Backpack", Currency: "USD", Amount: 5499},
		"p2": {ID: "p2", Title: "Wallet", Currency: "USD", Amount: 1999},
	}}

	t.Run("totals use the stored add-time prices", func(t *testing.T) {
		cart := fakeCart{items: []CartItem{
			{ProductID: "p1", Title: "Backpack", Currency: "USD", UnitAmount: 4999, Quantity: 2},
			{ProductID: "p2", Title: "Wallet", Currency: "USD", UnitAmount: 1999, Quantity: 1},
		}}

		svc := NewService(cart, catalog, 4)
		quote, err := svc.Quote(ctx, "a@x.com")
		require.NoError(t, err)

		require.Equal(t, int64(3), quote.TotalItems)
		require.Equal(t, int64(2*4999+1999), quote.Total.Amount)
		require.Equal(t, "USD", quote.Total.Currency)

		require.Len(t, quote.Lines, 2)
		require.Equal(t, int64(4999), quote.Lines[0].UnitPrice.Amount)
		require.Equal(t, int64(5499), quote.Lines[0].CurrentPrice.Amount, "current price reflects the catalog")
		require.True(t, quote.Lines[0].Listed)
	})

	t.Run("delisted product stays priced but is flagged", func(t *testing.T) {
		cart := fakeCart{items: []CartItem{
			{ProductID: "p-gone", Title: "Discontinued", Currency: "USD", UnitAmount: 100, Quantity: 1},
		}}

		svc := NewService(cart, catalog, 4)
		quote, err := svc.Quote(ctx, "a@x.com")
		require.NoError(t, err)

		require.False(t, quote.Lines[0].Listed)
		require.Equal(t, int64(100), quote.Total.Amount)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc := NewService(fakeCart{}, catalog, 4)
		_, err := svc.Quote(ctx, "a@x.com")
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("line order survives the concurrent pricing", func(t *testing.T) {
		items := make([]CartItem, 0, 20)
		for i := 0; i < 10; i++ {
			items = append(items,
				CartItem{ProductID: "p1", Title: "Backpack", Currency: "USD", UnitAmount: 4999, Quantity: 1},
				CartItem{ProductID: "p2", Title: "Wallet", Currency: "USD", UnitAmount: 1999, Quantity: 1},
			)
		}

		svc := NewService(fakeCart{items: items}, catalog, 3)
		quote, err := svc.Quote(ctx, "a@x.com")
		require.NoError(t, err)

		for i, line := range quote.Lines {
			require.Equal(t, items[i].ProductID, line.ProductID)
		}
	})
}
