package app

import (
	"context"

	"github.com/rakaadi/storefront/internal/cart/domain"
)

// CartStore is the keyed bucket storage. Every method is total: unknown
// users and products are no-ops or empty results, never errors. Buckets are
// lazy; an absent key reads the same as an empty bucket. Each mutator
// returns the post-mutation snapshot of the affected bucket.
type CartStore interface {
	Get(ctx context.Context, userID string) (domain.Bucket, error)
	Add(ctx context.Context, userID string, p domain.Product) (domain.Bucket, error)
	Increase(ctx context.Context, userID, productID string) (domain.Bucket, error)
	Decrease(ctx context.Context, userID, productID string) (domain.Bucket, error)
	Remove(ctx context.Context, userID, productID string) (domain.Bucket, error)
	Clear(ctx context.Context, userID string) (domain.Bucket, error)
}
