// Package auth verifies the signed session tokens presented by the embedded
// merchant admin. Tokens are HS256 JWTs signed with the app's shared secret;
// the destination claim carries the shop the session belongs to.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utafrali/ShopReviews/pkg/middleware"
)

// sessionTokenClaims are the claims carried by a merchant session token.
type sessionTokenClaims struct {
	// Dest is the shop the token was issued for, e.g.
	// "https://demo.myshopify.com".
	Dest  string `json:"dest"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates merchant session tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for tokens signed with the given secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a session token, returning the session claims.
func (v *Verifier) Verify(tokenString string) (*middleware.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionTokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*sessionTokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token claims")
	}

	shop := shopFromDest(claims.Dest)
	if shop == "" {
		return nil, fmt.Errorf("session token has no destination shop")
	}

	return &middleware.SessionClaims{
		Shop:  shop,
		Email: claims.Email,
	}, nil
}

// Issue creates a signed session token for the given shop. Used by tests and
// local tooling; in production the platform issues the tokens.
func (v *Verifier) Issue(shop, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &sessionTokenClaims{
		Dest:  "https://" + shop,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shop,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "https://" + shop + "/admin",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// shopFromDest extracts the bare shop domain from a destination claim.
func shopFromDest(dest string) string {
	dest = strings.TrimSpace(dest)
	dest = strings.TrimPrefix(dest, "https://")
	dest = strings.TrimPrefix(dest, "http://")
	if i := strings.IndexByte(dest, '/'); i >= 0 {
		dest = dest[:i]
	}
	return strings.ToLower(dest)
}
