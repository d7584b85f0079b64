package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rakaadi/storefront/internal/httpx"
	"github.com/rakaadi/storefront/internal/identity/app"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodPost)
}

type credentials struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type userDTO struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}

	token, user, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		httpx.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "email or password is wrong")
		return
	}
	if err != nil {
		h.log.Error("login failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "INTERNAL", "login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionDTO{
		Token: token,
		User:  userDTO{Email: user.Email, Name: user.Name},
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}

	user, err := h.svc.Register(r.Context(), in.Email, in.Name, in.Password)
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", "email and password are required")
		return
	case errors.Is(err, app.ErrEmailTaken):
		httpx.Error(w, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
		return
	case err != nil:
		h.log.Error("register failed", slog.Any("err", err))
		httpx.Error(w, http.StatusInternalServerError, "INTERNAL", "registration failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userDTO{Email: user.Email, Name: user.Name})
}

// logout is a client-side token discard; the server holds no session state.
// The cart bucket deliberately survives logout within the process lifetime.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
