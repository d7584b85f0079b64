package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rakaadi/storefront/internal/identity/app"
	"github.com/rakaadi/storefront/internal/identity/infra/memory"
)

func testHandler(t *testing.T) (*Handler, *app.Service) {
	t.Helper()
	svc := app.NewService(memory.NewUserRepo(), []byte("test-secret"), time.Hour)
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))), svc
}

func TestRequireUser(t *testing.T) {
	h, svc := testHandler(t)

	_, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret")
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := h.Authenticate(RequireUser(inner))

	t.Run("no token -> 401 before the handler runs", func(t *testing.T) {
		gotUser = ""
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "LOGIN_REQUIRED")
		require.Empty(t, gotUser)
	})

	t.Run("garbage token -> 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer junk")
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token resolves the user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "a@x.com", gotUser)
	})
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserID(context.Background())
	require.False(t, ok)

	ctx := WithUserID(context.Background(), "a@x.com")
	id, ok := UserID(ctx)
	require.True(t, ok)
	require.Equal(t, "a@x.com", id)
}
