package rest

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rakaadi/storefront/internal/catalog/app"
	"github.com/rakaadi/storefront/internal/catalog/domain"
	"github.com/rakaadi/storefront/internal/httpx"
)

type Handler struct {
	svc      *app.Service
	log      *slog.Logger
	pageSize int

	// loadMoreDelay simulates latency before follow-up pages; zero in tests.
	loadMoreDelay time.Duration
}

func NewHandler(svc *app.Service, log *slog.Logger, pageSize int, loadMoreDelay time.Duration) *Handler {
	if pageSize <= 0 {
		pageSize = app.DefaultPageSize
	}
	return &Handler{svc: svc, log: log, pageSize: pageSize, loadMoreDelay: loadMoreDelay}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.categories).Methods(http.MethodGet)
}

type productDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      string  `json:"price"`
	PriceCents int64   `json:"price_cents"`
	Currency   string  `json:"currency"`
	Image      string  `json:"image"`
	Category   string  `json:"category"`
	Rating     float64 `json:"rating"`
}

type productPageDTO struct {
	Products   []productDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := app.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
	}

	var err error
	if filter.MinAmount, err = parsePrice(q.Get("min_price")); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "min_price is not a valid price")
		return
	}
	if filter.MaxAmount, err = parsePrice(q.Get("max_price")); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "max_price is not a valid price")
		return
	}

	limit := h.pageSize
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be a positive integer")
			return
		}
	}

	cursor := q.Get("cursor")
	if cursor != "" && h.loadMoreDelay > 0 {
		select {
		case <-time.After(h.loadMoreDelay):
		case <-r.Context().Done():
			return
		}
	}

	products, next, err := h.svc.ListProducts(r.Context(), filter, limit, cursor)
	if errors.Is(err, app.ErrInvalidInput) {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "unknown cursor")
		return
	}
	if err != nil {
		h.log.Error("list products failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "INTERNAL", "failed to list products")
		return
	}

	page := productPageDTO{
		Products:   make([]productDTO, 0, len(products)),
		NextCursor: next,
	}
	for _, p := range products {
		page.Products = append(page.Products, toDTO(p))
	}

	httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.svc.GetProduct(r.Context(), id)
	switch {
	case errors.Is(err, app.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	case errors.Is(err, app.ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "product id is required")
		return
	case err != nil:
		h.log.Error("get product failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "INTERNAL", "failed to load product")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toDTO(p))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.log.Error("list categories failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "INTERNAL", "failed to list categories")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

func toDTO(p domain.Product) productDTO {
	return productDTO{
		ID:         p.ID,
		Title:      p.Title,
		Price:      httpx.FormatAmount(p.Price.Amount),
		PriceCents: p.Price.Amount,
		Currency:   p.Price.Currency,
		Image:      p.Image,
		Category:   p.Category,
		Rating:     p.Rating,
	}
}

// parsePrice converts a decimal price string ("19.99") to minor units.
func parsePrice(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, errors.New("invalid price")
	}
	return int64(math.Round(f * 100)), nil
}
