package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/vibratto/vibratto-backend/internal/auth"
	"github.com/vibratto/vibratto-backend/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity returns the authenticated identity stored by RequireAuth,
// or nil when the request was not authenticated.
func Identity(r *http.Request) *auth.Identity {
	id, _ := r.Context().Value(identityKey).(*auth.Identity)
	return id
}

// RequireAuth rejects requests without a valid bearer token and stores
// the verified identity on the request context.
func RequireAuth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeAuthError(w, models.NewUnauthorized("access denied, no token provided"))
				return
			}
			identity, err := verifier.Verify(token)
			if err != nil {
				log.Printf("[Auth] Rejected token on %s %s: %v", r.Method, r.URL.Path, err)
				writeAuthError(w, models.NewUnauthorized("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from the Authorization header or,
// for websocket handshakes, the "token" query parameter.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func writeAuthError(w http.ResponseWriter, apiErr *models.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status())
	json.NewEncoder(w).Encode(map[string]interface{}{"error": apiErr})
}
