package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/utafrali/ShopReviews/internal/form"
	"github.com/utafrali/ShopReviews/internal/service"
	"github.com/utafrali/ShopReviews/internal/tenant"
	apperrors "github.com/utafrali/ShopReviews/pkg/errors"
	"github.com/utafrali/ShopReviews/pkg/httputil"
	"github.com/utafrali/ShopReviews/pkg/logger"
)

// mediaFieldName is the multipart field carrying an attached file.
const mediaFieldName = "media"

// maxSubmissionBytes bounds the whole request body: the media cap plus 1 MiB
// of headroom for the remaining form fields.
const maxSubmissionBytes = service.MaxMediaSize + (1 << 20)

// PublicHandler serves the unauthenticated storefront proxy endpoints.
type PublicHandler struct {
	service  *service.ReviewService
	resolver *tenant.Resolver
	logger   *slog.Logger
}

// NewPublicHandler creates a new public HTTP handler.
func NewPublicHandler(svc *service.ReviewService, resolver *tenant.Resolver, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{
		service:  svc,
		resolver: resolver,
		logger:   logger,
	}
}

// CORS unconditionally applies permissive cross-origin headers and
// short-circuits pre-flight requests. The caller is an arbitrary storefront
// page, so no origin allow-list is possible here.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ListReviews handles GET /apps/{proxy}/reviews.
func (h *PublicHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	shop, ok := h.resolver.Resolve(r)
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("Missing shop: the request cannot be attributed to a store"), h.logger)
		return
	}
	r = r.WithContext(logger.WithShop(r.Context(), shop))

	var productID *int64
	if v := r.URL.Query().Get("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("product_id must be an integer"), h.logger)
			return
		}
		productID = &id
	}

	reviews, err := h.service.ListPublic(r.Context(), shop, productID, r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteOK(w, map[string]any{"reviews": reviews})
}

// SubmitReview handles POST /apps/{proxy}/reviews. The body may be JSON, a
// URL-encoded form, or a multipart form with an optional file part.
func (h *PublicHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	shop, _ := h.resolver.Resolve(r)
	if shop != "" {
		r = r.WithContext(logger.WithShop(r.Context(), shop))
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	vals, file, err := form.Parse(r, mediaFieldName)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("unreadable request body"), h.logger)
		return
	}
	if file != nil {
		defer file.Data.Close()
	}

	input := &service.SubmitInput{
		ShopDomain:    shop,
		ProductID:     form.ProductID.Resolve(vals),
		ProductHandle: form.ProductHandle.Resolve(vals),
		Rating:        form.Rating.Resolve(vals),
		Title:         form.Title.Resolve(vals),
		Body:          form.Body.Resolve(vals),
		FirstName:     form.FirstName.Resolve(vals),
		LastName:      form.LastName.Resolve(vals),
		Email:         form.Email.Resolve(vals),
		MediaURL:      form.MediaURL.Resolve(vals),
	}
	if file != nil {
		input.Media = &service.MediaUpload{
			FileName: file.Name,
			Size:     file.Size,
			Data:     file.Data,
		}
	}

	review, err := h.service.Submit(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteOK(w, map[string]any{"review": review})
}

// MethodNotAllowed writes the standard 405 envelope for the public surface.
func (h *PublicHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, r, apperrors.MethodNotAllowed(r.Method), h.logger)
}
