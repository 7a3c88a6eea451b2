package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/ShopReviews/internal/cache"
	"github.com/utafrali/ShopReviews/internal/domain"
	"github.com/utafrali/ShopReviews/internal/event"
	"github.com/utafrali/ShopReviews/internal/repository"
	"github.com/utafrali/ShopReviews/internal/storage"
	apperrors "github.com/utafrali/ShopReviews/pkg/errors"
)

// MaxMediaSize is the upper bound for an attached media file (20 MiB).
const MaxMediaSize int64 = 20 << 20

// Listing caps per surface.
const (
	PublicListLimit     = 200
	ModerationListLimit = 100
)

// extPattern restricts stored file extensions to lowercase alphanumerics.
var extPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// ReviewService implements the ingestion and moderation business logic.
type ReviewService struct {
	repo     repository.ReviewRepository
	storage  storage.Storage
	cache    *cache.ListingCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	repo repository.ReviewRepository,
	store storage.Storage,
	listingCache *cache.ListingCache,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		repo:     repo,
		storage:  store,
		cache:    listingCache,
		producer: producer,
		logger:   logger,
	}
}

// MediaUpload is an optional file attached to a submission.
type MediaUpload struct {
	FileName string
	Size     int64
	Data     io.Reader
}

// SubmitInput holds the alias-normalized fields of a public submission.
// All values arrive as raw strings; parsing and validation happen here so
// every transport shape shares one code path.
type SubmitInput struct {
	ShopDomain    string
	ProductID     string
	ProductHandle string
	Rating        string
	Title         string
	Body          string
	FirstName     string
	LastName      string
	Email         string
	MediaURL      string
	Media         *MediaUpload
}

// Submit validates a public submission and creates a pending review. The
// validation sequence is fail-fast and precedes every side effect; a review
// is only ever created with status pending, regardless of anything the
// client submitted.
func (s *ReviewService) Submit(ctx context.Context, input *SubmitInput) (*domain.Review, error) {
	if input.ShopDomain == "" {
		return nil, apperrors.Unauthorized("Missing shop: the request cannot be attributed to a store")
	}

	productID, err := strconv.ParseInt(input.ProductID, 10, 64)
	if input.ProductID == "" || err != nil {
		return nil, apperrors.InvalidInput("product_id is required and must be an integer")
	}

	rating, err := strconv.ParseFloat(input.Rating, 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) || rating < 1 || rating > 5 {
		return nil, apperrors.InvalidInput("rating must be a number between 1 and 5")
	}

	if input.FirstName == "" || input.Body == "" {
		return nil, apperrors.InvalidInput("name and review body are required")
	}

	mediaURL := input.MediaURL
	var mediaKey string
	if input.Media != nil {
		result, err := s.uploadMedia(ctx, input.ShopDomain, productID, input.Media)
		if err != nil {
			return nil, err
		}
		// The stored object's URL wins over any media_url field in the body.
		mediaURL = result.URL
		mediaKey = result.Key
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:             uuid.New().String(),
		ShopDomain:     input.ShopDomain,
		ProductID:      productID,
		ProductHandle:  input.ProductHandle,
		Rating:         int(rating),
		Title:          input.Title,
		Body:           input.Body,
		AuthorName:     input.FirstName,
		AuthorLastName: input.LastName,
		AuthorEmail:    input.Email,
		MediaURL:       mediaURL,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if mediaKey != "" {
			// The upload is not reversed; the orphaned object is reaped out
			// of band.
			s.logger.ErrorContext(ctx, "review insert failed after media upload, object orphaned",
				slog.String("object_key", mediaKey),
				slog.String("error", err.Error()),
			)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.cache.Invalidate(ctx, review.ShopDomain)

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("shop_domain", review.ShopDomain),
		slog.Int64("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
		slog.Bool("has_media", review.MediaURL != ""),
	)

	return review, nil
}

func (s *ReviewService) uploadMedia(ctx context.Context, shop string, productID int64, media *MediaUpload) (*storage.UploadResult, error) {
	if media.Size > MaxMediaSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("media file exceeds the maximum size of %d bytes", MaxMediaSize))
	}
	if media.Size <= 0 {
		return nil, apperrors.InvalidInput("media file is empty")
	}

	key := fmt.Sprintf("reviews/%s/%d/%s.%s", shop, productID, uuid.New().String(), fileExtension(media.FileName))

	contentType := mime.TypeByExtension(filepath.Ext(media.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: contentType,
		Size:        media.Size,
		Data:        media.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	return result, nil
}

// fileExtension extracts a lowercase alphanumeric extension from the
// uploaded filename, defaulting to a generic one.
func fileExtension(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || !extPattern.MatchString(ext) {
		return "bin"
	}
	return ext
}

// ListPublic returns the storefront-facing listing for a shop, optionally
// narrowed to one product. Unknown status filters fall back to approved;
// results are capped and served from cache when possible.
func (s *ReviewService) ListPublic(ctx context.Context, shop string, productID *int64, statusRaw string) ([]domain.Review, error) {
	if shop == "" {
		return nil, apperrors.Unauthorized("Missing shop: the request cannot be attributed to a store")
	}

	status := domain.ParseStatus(statusRaw, domain.StatusApproved)

	if reviews, ok := s.cache.Get(ctx, shop, productID, status); ok {
		return reviews, nil
	}

	reviews, err := s.repo.List(ctx, repository.ListFilter{
		ShopDomain: shop,
		Status:     status,
		ProductID:  productID,
		Limit:      PublicListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	s.cache.Set(ctx, shop, productID, status, reviews)

	return reviews, nil
}

// ListForModeration returns the merchant-facing listing by status. Unknown
// status filters fall back to pending.
func (s *ReviewService) ListForModeration(ctx context.Context, shop, statusRaw string) ([]domain.Review, error) {
	if shop == "" {
		return nil, apperrors.Unauthorized("Missing shop: the request cannot be attributed to a store")
	}

	reviews, err := s.repo.List(ctx, repository.ListFilter{
		ShopDomain: shop,
		Status:     domain.ParseStatus(statusRaw, domain.StatusPending),
		Limit:      ModerationListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews for moderation: %w", err)
	}

	return reviews, nil
}

// Moderate applies a moderation intent to a review owned by the shop. A
// review that does not exist, or belongs to another shop, fails with
// not-found; tenant isolation must not leak existence through a different
// error. Exactly one repository write happens per call.
func (s *ReviewService) Moderate(ctx context.Context, shop, id, intentRaw string) error {
	if shop == "" {
		return apperrors.Unauthorized("Missing shop: the request cannot be attributed to a store")
	}

	intent, ok := domain.ParseIntent(intentRaw)
	if !ok {
		return apperrors.InvalidInput(fmt.Sprintf("unknown intent %q", intentRaw))
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.ShopDomain != shop {
		return apperrors.NotFound("review", id)
	}

	var newStatus domain.Status
	if intent == domain.IntentDelete {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
	} else {
		next, ok := domain.Transition(review.Status, intent)
		if !ok {
			return apperrors.InvalidInput(fmt.Sprintf("cannot %s a %s review", intent, review.Status))
		}
		if err := s.repo.UpdateStatus(ctx, id, next, time.Now().UTC()); err != nil {
			return fmt.Errorf("update review status: %w", err)
		}
		newStatus = next
	}

	s.cache.Invalidate(ctx, shop)

	if err := s.producer.PublishReviewModerated(ctx, shop, id, intent, newStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.moderated event",
			slog.String("review_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review moderated",
		slog.String("review_id", id),
		slog.String("shop_domain", shop),
		slog.String("intent", string(intent)),
	)

	return nil
}

// Ping performs a trivial read against the store, used by probes.
func (s *ReviewService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
