package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/ShopReviews/internal/service"
	"github.com/utafrali/ShopReviews/pkg/httputil"
	"github.com/utafrali/ShopReviews/pkg/middleware"
	"github.com/utafrali/ShopReviews/pkg/validator"
)

// AdminHandler serves the authenticated merchant moderation endpoints. The
// shop identity comes from the session middleware, never from the request
// body.
type AdminHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.ReviewService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// ModerateRequest is the JSON request body for a moderation action.
type ModerateRequest struct {
	ID     string `json:"id" validate:"required"`
	Intent string `json:"intent" validate:"required,oneof=approve trash restore delete"`
}

// ListReviews handles GET /admin/reviews?status=<s>. Unknown status filters
// list pending.
func (h *AdminHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	shop := middleware.ShopFromContext(r.Context())

	reviews, err := h.service.ListForModeration(r.Context(), shop, r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteOK(w, map[string]any{"reviews": reviews})
}

// Moderate handles POST /admin/reviews/moderate.
func (h *AdminHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	shop := middleware.ShopFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ModerateRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.Moderate(r.Context(), shop, req.ID, req.Intent); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteOK(w, map[string]any{"id": req.ID, "intent": req.Intent})
}
