// Package memory keeps registered users in process memory. Accounts live
// for the application's session, matching the demo-storefront scope.
package memory

import (
	"context"
	"sync"

	"github.com/rakaadi/storefront/internal/identity/app"
	"github.com/rakaadi/storefront/internal/identity/domain"
)

type UserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byEmail: make(map[string]domain.User),
	}
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, app.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return domain.User{}, app.ErrEmailTaken
	}
	r.byEmail[u.Email] = u
	return u, nil
}
