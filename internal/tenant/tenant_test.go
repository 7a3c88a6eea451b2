package tenant

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_HeaderWins(t *testing.T) {
	r := NewResolver(StorefrontSuffix)

	req := httptest.NewRequest("GET", "/apps/reviews/reviews?shop=other.myshopify.com", nil)
	req.Header.Set(HeaderShopDomain, "Demo.myshopify.com")
	req.Host = "third.myshopify.com"

	shop, ok := r.Resolve(req)
	assert.True(t, ok)
	assert.Equal(t, "demo.myshopify.com", shop)
}

func TestResolve_QueryParam(t *testing.T) {
	r := NewResolver(StorefrontSuffix)

	req := httptest.NewRequest("GET", "/apps/reviews/reviews?shop=demo.myshopify.com", nil)
	req.Host = "reviews.example.com"

	shop, ok := r.Resolve(req)
	assert.True(t, ok)
	assert.Equal(t, "demo.myshopify.com", shop)
}

func TestResolve_ForwardedHost(t *testing.T) {
	r := NewResolver(StorefrontSuffix)

	req := httptest.NewRequest("GET", "/apps/reviews/reviews", nil)
	req.Header.Set("X-Forwarded-Host", "demo.myshopify.com")
	req.Host = "internal-lb:8080"

	shop, ok := r.Resolve(req)
	assert.True(t, ok)
	assert.Equal(t, "demo.myshopify.com", shop)
}

func TestResolve_HostWithPort(t *testing.T) {
	r := NewResolver(StorefrontSuffix)

	req := httptest.NewRequest("GET", "/apps/reviews/reviews", nil)
	req.Host = "demo.myshopify.com:443"

	shop, ok := r.Resolve(req)
	assert.True(t, ok)
	assert.Equal(t, "demo.myshopify.com", shop)
}

func TestResolve_NonStorefrontHostRejected(t *testing.T) {
	r := NewResolver(StorefrontSuffix)

	req := httptest.NewRequest("GET", "/apps/reviews/reviews", nil)
	req.Host = "evil.example.com"

	_, ok := r.Resolve(req)
	assert.False(t, ok)
}

func TestResolve_NothingResolvable(t *testing.T) {
	r := NewResolver(StorefrontSuffix)

	req := httptest.NewRequest("GET", "/apps/reviews/reviews", nil)
	req.Host = ""

	_, ok := r.Resolve(req)
	assert.False(t, ok)
}

func TestResolve_EmptySuffixDisablesHostInference(t *testing.T) {
	r := NewResolver("")

	req := httptest.NewRequest("GET", "/apps/reviews/reviews", nil)
	req.Host = "demo.myshopify.com"

	_, ok := r.Resolve(req)
	assert.False(t, ok)
}
