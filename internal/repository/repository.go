package repository

import (
	"context"
	"time"

	"github.com/utafrali/ShopReviews/internal/domain"
)

// ListFilter narrows a review listing. ShopDomain is mandatory: the
// repository never returns rows across tenants.
type ListFilter struct {
	ShopDomain string
	Status     domain.Status
	ProductID  *int64
	Limit      int
}

// ReviewRepository defines the persistence boundary for reviews.
type ReviewRepository interface {
	// Create inserts a new review row.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique identifier, regardless of
	// tenant. Callers enforce tenant isolation on the result.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// List returns reviews matching the filter, newest first, capped at
	// filter.Limit rows.
	List(ctx context.Context, filter ListFilter) ([]domain.Review, error)

	// UpdateStatus sets the status and updated_at of a review.
	UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error

	// Delete permanently removes a review row.
	Delete(ctx context.Context, id string) error

	// Ping performs a trivial read against the store.
	Ping(ctx context.Context) error
}
