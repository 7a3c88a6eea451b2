package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/ShopReviews/internal/domain"
	pkgkafka "github.com/utafrali/ShopReviews/pkg/kafka"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewCreated   = "reviews.review.created"
	TopicReviewModerated = "reviews.review.moderated"
)

const (
	AggregateTypeReview = "review"
	SourceReviews       = "reviews-service"
)

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID         string `json:"id"`
	ShopDomain string `json:"shop_domain"`
	ProductID  int64  `json:"product_id,string"`
	Rating     int    `json:"rating"`
	HasMedia   bool   `json:"has_media"`
}

// ReviewModeratedData is the payload for a review.moderated event.
type ReviewModeratedData struct {
	ID         string        `json:"id"`
	ShopDomain string        `json:"shop_domain"`
	Intent     domain.Intent `json:"intent"`
	Status     domain.Status `json:"status,omitempty"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the reviews service. A nil
// kafka producer disables publishing.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	if p.kafka == nil {
		return nil
	}

	data := ReviewCreatedData{
		ID:         review.ID,
		ShopDomain: review.ShopDomain,
		ProductID:  review.ProductID,
		Rating:     review.Rating,
		HasMedia:   review.MediaURL != "",
	}

	evt, err := pkgkafka.NewEvent("review.created", review.ID, AggregateTypeReview, SourceReviews, data)
	if err != nil {
		return fmt.Errorf("build review.created event: %w", err)
	}

	return p.kafka.Publish(ctx, TopicReviewCreated, evt)
}

// PublishReviewModerated publishes a review.moderated event. Status is the
// resulting status for transitions and empty for deletes.
func (p *Producer) PublishReviewModerated(ctx context.Context, shop, id string, intent domain.Intent, status domain.Status) error {
	if p.kafka == nil {
		return nil
	}

	data := ReviewModeratedData{
		ID:         id,
		ShopDomain: shop,
		Intent:     intent,
		Status:     status,
	}

	evt, err := pkgkafka.NewEvent("review.moderated", id, AggregateTypeReview, SourceReviews, data)
	if err != nil {
		return fmt.Errorf("build review.moderated event: %w", err)
	}

	return p.kafka.Publish(ctx, TopicReviewModerated, evt)
}
