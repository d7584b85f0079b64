package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rakaadi/storefront/internal/checkout/domain"
)

type CartReader interface {
	GetCart(ctx context.Context, userID string) ([]CartItem, error)
}

type CartItem struct {
	ProductID  string
	Title      string
	Currency   string
	UnitAmount int64
	Quantity   int64
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID       string
	Title    string
	Currency string
	Amount   int64
}

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProductNotFound = errors.New("product not found")
)

type Service struct {
	Cart    CartReader
	Catalog CatalogReader

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		Cart:          cart,
		Catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

// Quote prices the user's cart from the stored add-time prices and checks
// every line against the catalog's current listing concurrently. Lines whose
// product has left the catalog stay priced but are marked unlisted.
func (s *Service) Quote(ctx context.Context, userID string) (domain.Quote, error) {
	items, err := s.Cart.GetCart(ctx, userID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			line := domain.QuoteLine{
				ProductID: it.ProductID,
				Title:     it.Title,
				Quantity:  it.Quantity,
				UnitPrice: domain.Money{
					Currency: it.Currency,
					Amount:   it.UnitAmount,
				},
				LineTotal: domain.Money{
					Currency: it.Currency,
					Amount:   it.UnitAmount * it.Quantity,
				},
			}

			product, err := s.Catalog.GetProduct(ctx, it.ProductID)
			switch {
			case errors.Is(err, ErrProductNotFound):
				line.Listed = false
			case err != nil:
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			default:
				line.Listed = true
				line.CurrentPrice = domain.Money{
					Currency: product.Currency,
					Amount:   product.Amount,
				}
			}

			lines[idx] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	quote := domain.Quote{Lines: lines}
	for _, line := range lines {
		quote.TotalItems += line.Quantity
		quote.Total.Amount += line.LineTotal.Amount
	}
	quote.Total.Currency = lines[0].LineTotal.Currency

	return quote, nil
}
