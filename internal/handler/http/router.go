package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/ShopReviews/internal/service"
	"github.com/utafrali/ShopReviews/internal/tenant"
	"github.com/utafrali/ShopReviews/pkg/health"
	"github.com/utafrali/ShopReviews/pkg/middleware"
)

// NewRouter creates a chi router with all service routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	resolver *tenant.Resolver,
	healthHandler *health.Handler,
	sessionValidator middleware.TokenValidator,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("reviews"))

	// Probes and metrics
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/health/warm", healthHandler.WarmHandler(reviewService.Ping))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	publicHandler := NewPublicHandler(reviewService, resolver, logger)
	adminHandler := NewAdminHandler(reviewService, logger)

	// Public storefront proxy surface. The platform routes
	// /apps/<proxy-path>/reviews here; the proxy segment itself is opaque.
	r.Route("/apps/{proxy}/reviews", func(r chi.Router) {
		r.Use(CORS)
		r.MethodNotAllowed(publicHandler.MethodNotAllowed)

		r.Get("/", publicHandler.ListReviews)
		r.Post("/", publicHandler.SubmitReview)
	})

	// Merchant admin surface.
	r.Route("/admin/reviews", func(r chi.Router) {
		r.Use(middleware.MerchantAuth(sessionValidator))

		r.Get("/", adminHandler.ListReviews)
		r.Post("/moderate", adminHandler.Moderate)
	})

	return r
}
