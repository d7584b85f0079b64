package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/rakaadi/storefront/internal/httpx"
)

type contextKey struct{}

var userKey contextKey

// Authenticate resolves a bearer token to the current user identifier and
// stores it in the request context. Requests without a token pass through
// anonymous; RequireUser is the gate for protected routes.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token != "" {
			if userID, err := h.svc.Verify(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser refuses the request before any cart operation runs when no
// user is logged in, mirroring the storefront's "please login first" prompt.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			httpx.Error(w, http.StatusUnauthorized, "LOGIN_REQUIRED", "please login first")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user's identity key, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey).(string)
	return id, ok && id != ""
}

// WithUserID is used by tests and the websocket endpoint, which carries its
// token outside the Authorization header.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
