package app

import (
	"context"

	"github.com/rakaadi/storefront/internal/catalog/domain"
)

// ProductRepo is the read-only catalog source. Implementations must return
// products in a stable order and never mutate them after load.
type ProductRepo interface {
	All(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
}
