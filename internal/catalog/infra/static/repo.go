// Package static serves the product catalog from an embedded seed file.
// The catalog is loaded once and never changes afterwards.
package static

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/rakaadi/storefront/internal/catalog/app"
	"github.com/rakaadi/storefront/internal/catalog/domain"
)

//go:embed products.json
var seedFS embed.FS

type productRow struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	PriceCents int64   `json:"price_cents"`
	Currency   string  `json:"currency"`
	Image      string  `json:"image"`
	Category   string  `json:"category"`
	Rating     float64 `json:"rating"`
}

type Repo struct {
	ordered []domain.Product
	byID    map[string]domain.Product
}

// NewRepo parses the embedded seed. File order is the catalog order.
func NewRepo() (*Repo, error) {
	raw, err := seedFS.ReadFile("products.json")
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var rows []productRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}

	r := &Repo{
		ordered: make([]domain.Product, 0, len(rows)),
		byID:    make(map[string]domain.Product, len(rows)),
	}

	for _, row := range rows {
		if row.ID == "" {
			return nil, fmt.Errorf("catalog seed: product without id")
		}
		if _, dup := r.byID[row.ID]; dup {
			return nil, fmt.Errorf("catalog seed: duplicate product id %q", row.ID)
		}
		if row.PriceCents < 0 {
			return nil, fmt.Errorf("catalog seed: negative price for %q", row.ID)
		}

		p := domain.Product{
			ID:       row.ID,
			Title:    row.Title,
			Price:    domain.Money{Currency: row.Currency, Amount: row.PriceCents},
			Image:    row.Image,
			Category: row.Category,
			Rating:   row.Rating,
		}
		r.ordered = append(r.ordered, p)
		r.byID[row.ID] = p
	}

	return r, nil
}

func (r *Repo) All(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.ordered))
	copy(out, r.ordered)
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}
