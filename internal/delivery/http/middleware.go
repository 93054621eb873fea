package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tiendaonline/backend/internal/entity"
)

type contextKey int

const identityKey contextKey = iota

// IdentityFrom extracts the authenticated caller injected by
// RequireAuth.
func IdentityFrom(ctx context.Context) (entity.Identity, bool) {
	id, ok := ctx.Value(identityKey).(entity.Identity)
	return id, ok
}

// bearerToken pulls the token out of the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", entity.ErrUnauthenticated)
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", fmt.Errorf("%w: malformed authorization header", entity.ErrUnauthenticated)
	}
	return token, nil
}

// requireAuth validates the bearer token and injects the caller's
// identity into the request context.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, err)
			return
		}

		id, err := h.authSvc.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// EnableCORS is a middleware to allow browser frontends to connect.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
