package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const shopKey contextKeyType = "shop_domain"

// SessionClaims are the claims extracted from a merchant session token.
type SessionClaims struct {
	Shop  string `json:"shop"`
	Email string `json:"email"`
}

// TokenValidator validates a merchant session token and returns its claims.
// Token parsing and signature checks live with the caller; this middleware
// only consumes the injected validator.
type TokenValidator func(token string) (*SessionClaims, error)

// MerchantAuth validates the bearer token and injects the shop domain into
// context. Requests without a valid session are rejected with 401.
func MerchantAuth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, "invalid authorization header format")
				return
			}

			claims, err := validate(parts[1])
			if err != nil || claims.Shop == "" {
				writeAuthError(w, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), shopKey, claims.Shop)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ShopFromContext extracts the authenticated shop domain from the request context.
func ShopFromContext(ctx context.Context) string {
	if shop, ok := ctx.Value(shopKey).(string); ok {
		return shop
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":    false,
		"error": message,
	})
}
