package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	cartapp "github.com/rakaadi/storefront/internal/cart/app"
	cartdomain "github.com/rakaadi/storefront/internal/cart/domain"
	catalogapp "github.com/rakaadi/storefront/internal/catalog/app"
	"github.com/rakaadi/storefront/internal/httpx"
	identityrest "github.com/rakaadi/storefront/internal/identity/rest"
	"github.com/rakaadi/storefront/internal/metrics"
)

// Handler dispatches view events into the cart engine. The product being
// added is resolved against the catalog here, so the engine only ever sees
// well-formed denormalized products.
type Handler struct {
	cart    *cartapp.Service
	catalog *catalogapp.Service
	log     *slog.Logger
}

func NewHandler(cart *cartapp.Service, catalog *catalogapp.Service, log *slog.Logger) *Handler {
	return &Handler{cart: cart, catalog: catalog, log: log}
}

// Register mounts the cart routes. The router is expected to already
// require an authenticated user.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("", h.getCart).Methods(http.MethodGet)
	r.HandleFunc("", h.clearCart).Methods(http.MethodDelete)
	r.HandleFunc("/items", h.addItem).Methods(http.MethodPost)
	r.HandleFunc("/items/{id}", h.deleteItem).Methods(http.MethodDelete)
	r.HandleFunc("/items/{id}/increase", h.increaseItem).Methods(http.MethodPost)
	r.HandleFunc("/items/{id}/decrease", h.decreaseItem).Methods(http.MethodPost)
}

type itemDTO struct {
	ProductID  string `json:"product_id"`
	Title      string `json:"title"`
	Price      string `json:"price"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
	Image      string `json:"image"`
	Quantity   int64  `json:"quantity"`
}

type bucketDTO struct {
	Items      []itemDTO `json:"items"`
	TotalItems int64     `json:"total_items"`
	Total      string    `json:"total"`
	TotalCents int64     `json:"total_cents"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityrest.UserID(r.Context())

	bucket, err := h.cart.Query(r.Context(), userID)
	if err != nil {
		h.writeError(w, "query cart", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toBucketDTO(bucket))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityrest.UserID(r.Context())

	var in addItemRequest
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), in.ProductID)
	switch {
	case errors.Is(err, catalogapp.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	case errors.Is(err, catalogapp.ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "product_id is required")
		return
	case err != nil:
		h.writeError(w, "resolve product", err)
		return
	}

	bucket, err := h.cart.AddToCart(r.Context(), userID, cartdomain.Product{
		ID:    product.ID,
		Title: product.Title,
		Price: cartdomain.Money{Currency: product.Price.Currency, Amount: product.Price.Amount},
		Image: product.Image,
	})
	if err != nil {
		h.writeError(w, "add to cart", err)
		return
	}

	metrics.RecordCartOp("add")
	httpx.WriteJSON(w, http.StatusOK, toBucketDTO(bucket))
}

func (h *Handler) increaseItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityrest.UserID(r.Context())

	bucket, err := h.cart.IncreaseQuantity(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, "increase quantity", err)
		return
	}

	metrics.RecordCartOp("increase")
	httpx.WriteJSON(w, http.StatusOK, toBucketDTO(bucket))
}

func (h *Handler) decreaseItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityrest.UserID(r.Context())

	bucket, err := h.cart.DecreaseQuantity(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, "decrease quantity", err)
		return
	}

	metrics.RecordCartOp("decrease")
	httpx.WriteJSON(w, http.StatusOK, toBucketDTO(bucket))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityrest.UserID(r.Context())

	bucket, err := h.cart.DeleteFromCart(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, "delete from cart", err)
		return
	}

	metrics.RecordCartOp("delete")
	httpx.WriteJSON(w, http.StatusOK, toBucketDTO(bucket))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityrest.UserID(r.Context())

	if err := h.cart.ClearCart(r.Context(), userID); err != nil {
		h.writeError(w, "clear cart", err)
		return
	}

	metrics.RecordCartOp("clear")
	httpx.WriteJSON(w, http.StatusOK, toBucketDTO(cartdomain.Bucket{}))
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, cartapp.ErrInvalidInput) {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "user id is required")
		return
	}
	h.log.Error("cart operation failed", slog.String("op", op), slog.Any("err", err))
	httpx.Error(w, http.StatusInternalServerError, "INTERNAL", "cart operation failed")
}

func toBucketDTO(bucket cartdomain.Bucket) bucketDTO {
	totals := bucket.Totals()

	out := bucketDTO{
		Items:      make([]itemDTO, 0, len(bucket)),
		TotalItems: totals.Items,
		Total:      httpx.FormatAmount(totals.Total.Amount),
		TotalCents: totals.Total.Amount,
	}
	for _, it := range bucket {
		out.Items = append(out.Items, itemDTO{
			ProductID:  it.ProductID,
			Title:      it.Title,
			Price:      httpx.FormatAmount(it.Price.Amount),
			PriceCents: it.Price.Amount,
			Currency:   it.Price.Currency,
			Image:      it.Image,
			Quantity:   it.Quantity,
		})
	}
	return out
}
