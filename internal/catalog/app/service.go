package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rakaadi/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	DefaultPageSize = 8
	MaxPageSize     = 100
)

// Sort keys accepted by Filter.Sort. Empty means catalog order.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitleAsc  = "title_asc"
	SortTitleDesc = "title_desc"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// Filter narrows and reorders the catalog. Stages apply as a pipeline:
// category, then title search, then price bounds, then sort.
type Filter struct {
	Category  string
	Query     string
	MinAmount int64
	MaxAmount int64 // 0 means no upper bound
	Sort      string
}

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// Categories returns the distinct category tags in catalog order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out, nil
}

// ListProducts applies the filter pipeline and returns one page of results.
// The cursor is the ID of the last product of the previous page; an empty
// next cursor means the result set is exhausted. Requesting past the end
// yields an empty page, not an error, so a repeated "load more" is harmless.
func (s *Service) ListProducts(ctx context.Context, f Filter, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, "", err
	}

	filtered := applyFilter(products, f)

	start := 0
	if cursor = strings.TrimSpace(cursor); cursor != "" {
		idx := -1
		for i, p := range filtered {
			if p.ID == cursor {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, "", ErrInvalidInput
		}
		start = idx + 1
	}

	if start >= len(filtered) {
		return []domain.Product{}, "", nil
	}

	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	page := make([]domain.Product, end-start)
	copy(page, filtered[start:end])

	nextCursor := ""
	if end < len(filtered) {
		nextCursor = page[len(page)-1].ID
	}

	return page, nextCursor, nil
}

func applyFilter(products []domain.Product, f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(products))

	category := strings.TrimSpace(f.Category)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	for _, p := range products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		if p.Price.Amount < f.MinAmount {
			continue
		}
		if f.MaxAmount > 0 && p.Price.Amount > f.MaxAmount {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.Amount < out[j].Price.Amount })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.Amount > out[j].Price.Amount })
	case SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortTitleDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title > out[j].Title })
	}

	return out
}
