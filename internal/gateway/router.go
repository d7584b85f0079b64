// Package gateway composes the storefront's HTTP surface: the JSON API per
// bounded context, the cart snapshot stream, and the operational endpoints.
package gateway

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	cartrest "github.com/rakaadi/storefront/internal/cart/rest"
	catalogrest "github.com/rakaadi/storefront/internal/catalog/rest"
	checkoutrest "github.com/rakaadi/storefront/internal/checkout/rest"
	identityrest "github.com/rakaadi/storefront/internal/identity/rest"
	"github.com/rakaadi/storefront/internal/metrics"
)

type Deps struct {
	Log *slog.Logger

	Catalog  *catalogrest.Handler
	Cart     *cartrest.Handler
	CartWS   *cartrest.StreamHandler
	Checkout *checkoutrest.Handler
	Identity *identityrest.Handler
}

func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(Logging(d.Log), Metrics())

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(d.Identity.Authenticate)

	d.Identity.Register(api)
	d.Catalog.Register(api)

	// Cart mutations and reads are refused before the engine is touched
	// when no user is logged in.
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(identityrest.RequireUser)
	d.Checkout.Register(cart)
	d.Cart.Register(cart)

	r.Handle("/ws/cart", d.CartWS).Methods(http.MethodGet)

	return r
}
