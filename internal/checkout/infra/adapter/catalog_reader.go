package adapter

import (
	"context"
	"errors"

	catalogapp "github.com/rakaadi/storefront/internal/catalog/app"
	checkoutapp "github.com/rakaadi/storefront/internal/checkout/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (checkoutapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return checkoutapp.Product{}, checkoutapp.ErrProductNotFound
	}
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:       p.ID,
		Title:    p.Title,
		Currency: p.Price.Currency,
		Amount:   p.Price.Amount,
	}, nil
}
