package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	cartapp "github.com/rakaadi/storefront/internal/cart/app"
)

// TokenVerifier resolves a session token to a user identifier. Browsers
// cannot set headers on websocket dials, so the token rides a query param.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

const wsWriteTimeout = 5 * time.Second

// StreamHandler pushes a snapshot of the user's bucket over a websocket
// after every mutation, starting with the current state on connect.
type StreamHandler struct {
	cart     *cartapp.Service
	verifier TokenVerifier
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewStreamHandler(cart *cartapp.Service, verifier TokenVerifier, log *slog.Logger) *StreamHandler {
	return &StreamHandler{
		cart:     cart,
		verifier: verifier,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	userID, err := h.verifier.Verify(token)
	if err != nil {
		http.Error(w, "please login first", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	updates, cancel := h.cart.Subscribe(userID)
	defer cancel()

	// Read pump: the client sends nothing meaningful, but reading is what
	// notices a closed peer.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	bucket, err := h.cart.Query(r.Context(), userID)
	if err != nil {
		return
	}
	if err := h.writeSnapshot(conn, cartapp.Snapshot{
		UserID: userID,
		Items:  bucket,
		Totals: bucket.Totals(),
	}); err != nil {
		return
	}

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := h.writeSnapshot(conn, snap); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (h *StreamHandler) writeSnapshot(conn *websocket.Conn, snap cartapp.Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(toBucketDTO(snap.Items))
}
