// Package memory holds cart buckets in process memory for the lifetime of
// the application. Buckets are lazy: a user without cart activity has no
// entry, which reads identically to an empty bucket.
package memory

import (
	"context"
	"sync"

	"github.com/rakaadi/storefront/internal/cart/domain"
)

type Store struct {
	mu      sync.Mutex
	buckets map[string]domain.Bucket
}

func NewStore() *Store {
	return &Store{
		buckets: make(map[string]domain.Bucket),
	}
}

func (s *Store) Get(ctx context.Context, userID string) (domain.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buckets[userID].Clone(), nil
}

func (s *Store) Add(ctx context.Context, userID string, p domain.Product) (domain.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[userID]
	if i := bucket.Find(p.ID); i >= 0 {
		bucket[i].Quantity++
	} else {
		bucket = append(bucket, domain.Item{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  1,
		})
	}
	s.buckets[userID] = bucket

	return bucket.Clone(), nil
}

func (s *Store) Increase(ctx context.Context, userID, productID string) (domain.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[userID]
	if i := bucket.Find(productID); i >= 0 {
		bucket[i].Quantity++
	}

	return bucket.Clone(), nil
}

func (s *Store) Decrease(ctx context.Context, userID, productID string) (domain.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[userID]
	i := bucket.Find(productID)
	switch {
	case i < 0:
	case bucket[i].Quantity > 1:
		bucket[i].Quantity--
	default:
		bucket = append(bucket[:i], bucket[i+1:]...)
		s.buckets[userID] = bucket
	}

	return bucket.Clone(), nil
}

func (s *Store) Remove(ctx context.Context, userID, productID string) (domain.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[userID]
	if i := bucket.Find(productID); i >= 0 {
		bucket = append(bucket[:i], bucket[i+1:]...)
		s.buckets[userID] = bucket
	}

	return bucket.Clone(), nil
}

func (s *Store) Clear(ctx context.Context, userID string) (domain.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buckets[userID] = domain.Bucket{}
	return domain.Bucket{}, nil
}
