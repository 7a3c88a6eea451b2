// Package tenant derives the owning shop domain from an incoming request.
// Every query and mutation in the service is scoped to the resolved shop;
// when nothing resolves the caller must reject the request rather than guess.
package tenant

import (
	"net/http"
	"strings"
)

// Platform storefront conventions.
const (
	// HeaderShopDomain is set by the platform's app proxy on forwarded requests.
	HeaderShopDomain = "x-shopify-shop-domain"
	// QueryShop is the explicit query-parameter fallback used by legacy embeds.
	QueryShop = "shop"
	// StorefrontSuffix is the canonical storefront domain suffix. Host-based
	// inference only applies to hosts under this suffix.
	StorefrontSuffix = ".myshopify.com"
)

// Resolver resolves the tenant shop domain for a request.
type Resolver struct {
	suffix string
}

// NewResolver creates a resolver for the given storefront domain suffix.
// An empty suffix disables host-based inference entirely.
func NewResolver(suffix string) *Resolver {
	return &Resolver{suffix: suffix}
}

// Resolve returns the shop domain for the request, trying in order: the
// explicit shop header, the shop query parameter, and finally the forwarded
// or direct host when it matches the storefront suffix. The second return is
// false when no source matches.
func (r *Resolver) Resolve(req *http.Request) (string, bool) {
	if shop := strings.TrimSpace(req.Header.Get(HeaderShopDomain)); shop != "" {
		return strings.ToLower(shop), true
	}

	if shop := strings.TrimSpace(req.URL.Query().Get(QueryShop)); shop != "" {
		return strings.ToLower(shop), true
	}

	if r.suffix == "" {
		return "", false
	}

	host := req.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = req.Host
	}
	host = strings.ToLower(strings.TrimSpace(host))
	// Strip a port if present.
	if i := strings.LastIndex(host, ":"); i > 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}

	if host != "" && strings.HasSuffix(host, r.suffix) {
		return host, true
	}

	return "", false
}
