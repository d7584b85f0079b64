package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rakaadi/storefront/internal/checkout/app"
	"github.com/rakaadi/storefront/internal/checkout/domain"
	"github.com/rakaadi/storefront/internal/httpx"
	identityrest "github.com/rakaadi/storefront/internal/identity/rest"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/quote", h.quote).Methods(http.MethodGet)
}

type quoteLineDTO struct {
	ProductID    string `json:"product_id"`
	Title        string `json:"title"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	CurrentPrice string `json:"current_price,omitempty"`
	Listed       bool   `json:"listed"`
	LineTotal    string `json:"line_total"`
}

type quoteDTO struct {
	Lines      []quoteLineDTO `json:"lines"`
	TotalItems int64          `json:"total_items"`
	Total      string         `json:"total"`
	TotalCents int64          `json:"total_cents"`
	Currency   string         `json:"currency"`
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityrest.UserID(r.Context())

	quote, err := h.svc.Quote(r.Context(), userID)
	if errors.Is(err, app.ErrEmptyCart) {
		httpx.Error(w, http.StatusConflict, "EMPTY_CART", "cart is empty")
		return
	}
	if err != nil {
		h.log.Error("quote failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "INTERNAL", "failed to quote cart")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toQuoteDTO(quote))
}

func toQuoteDTO(q domain.Quote) quoteDTO {
	out := quoteDTO{
		Lines:      make([]quoteLineDTO, 0, len(q.Lines)),
		TotalItems: q.TotalItems,
		Total:      httpx.FormatAmount(q.Total.Amount),
		TotalCents: q.Total.Amount,
		Currency:   q.Total.Currency,
	}
	for _, line := range q.Lines {
		dto := quoteLineDTO{
			ProductID: line.ProductID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: httpx.FormatAmount(line.UnitPrice.Amount),
			Listed:    line.Listed,
			LineTotal: httpx.FormatAmount(line.LineTotal.Amount),
		}
		if line.Listed {
			dto.CurrentPrice = httpx.FormatAmount(line.CurrentPrice.Amount)
		}
		out.Lines = append(out.Lines, dto)
	}
	return out
}
