package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rakaadi/storefront/internal/cart/domain"
)

var ErrInvalidInput = errors.New("invalid input")

// Service is the cart state engine. It validates the user identifier at the
// edge, delegates to the store, and publishes the resulting snapshot to
// subscribers after every mutation. All operations are total for well-formed
// input: unknown users or products are no-ops, never errors.
type Service struct {
	store CartStore
	subs  *publisher
}

func NewService(store CartStore) *Service {
	return &Service{
		store: store,
		subs:  newPublisher(),
	}
}

// AddToCart appends a quantity-1 line for p, or increments the existing
// line. The bucket is created on first use.
func (s *Service) AddToCart(ctx context.Context, userID string, p domain.Product) (domain.Bucket, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.ID) == "" {
		return nil, ErrInvalidInput
	}

	bucket, err := s.store.Add(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	s.subs.publish(userID, bucket)
	return bucket, nil
}

// IncreaseQuantity bumps an existing line by one. A missing line is a no-op;
// it never fabricates a line from a stale reference.
func (s *Service) IncreaseQuantity(ctx context.Context, userID, productID string) (domain.Bucket, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	bucket, err := s.store.Increase(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	s.subs.publish(userID, bucket)
	return bucket, nil
}

// DecreaseQuantity drops an existing line by one; a line at quantity 1 is
// removed outright. A missing line is a no-op.
func (s *Service) DecreaseQuantity(ctx context.Context, userID, productID string) (domain.Bucket, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	bucket, err := s.store.Decrease(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	s.subs.publish(userID, bucket)
	return bucket, nil
}

// DeleteFromCart removes the line regardless of quantity. Idempotent.
func (s *Service) DeleteFromCart(ctx context.Context, userID, productID string) (domain.Bucket, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	bucket, err := s.store.Remove(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	s.subs.publish(userID, bucket)
	return bucket, nil
}

// ClearCart empties the user's bucket. This is the only operation that
// empties a bucket deliberately; logout does not touch it.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	if err := checkUserID(userID); err != nil {
		return err
	}

	bucket, err := s.store.Clear(ctx, userID)
	if err != nil {
		return err
	}

	s.subs.publish(userID, bucket)
	return nil
}

// Query returns the current snapshot of the user's bucket. Reading never
// creates a bucket.
func (s *Service) Query(ctx context.Context, userID string) (domain.Bucket, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userID)
}

// Totals derives the item count and exact price sum from the current bucket.
func (s *Service) Totals(ctx context.Context, userID string) (domain.Totals, error) {
	bucket, err := s.Query(ctx, userID)
	if err != nil {
		return domain.Totals{}, err
	}
	return bucket.Totals(), nil
}

// Subscribe registers for snapshot updates of one user's bucket. The
// returned cancel must be called when the subscriber goes away.
func (s *Service) Subscribe(userID string) (<-chan Snapshot, func()) {
	return s.subs.subscribe(userID)
}

func checkUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	return nil
}
