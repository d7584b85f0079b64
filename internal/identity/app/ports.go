package app

import (
	"context"

	"github.com/rakaadi/storefront/internal/identity/domain"
)

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}
