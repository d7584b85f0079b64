package adapter

import (
	"context"

	cartapp "github.com/rakaadi/storefront/internal/cart/app"
	checkoutapp "github.com/rakaadi/storefront/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, userID string) ([]checkoutapp.CartItem, error) {
	bucket, err := r.svc.Query(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(bucket))
	for _, it := range bucket {
		items = append(items, checkoutapp.CartItem{
			ProductID:  it.ProductID,
			Title:      it.Title,
			Currency:   it.Price.Currency,
			UnitAmount: it.Price.Amount,
			Quantity:   it.Quantity,
		})
	}
	return items, nil
}
