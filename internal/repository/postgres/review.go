package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/ShopReviews/internal/domain"
	"github.com/utafrali/ShopReviews/internal/repository"
	"github.com/utafrali/ShopReviews/pkg/database"
	apperrors "github.com/utafrali/ShopReviews/pkg/errors"
)

const reviewColumns = `id, shop_domain, product_id, product_handle, rating, title, body,
	       author_name, author_last_name, author_email, media_url, status, created_at, updated_at`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review row.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, shop_domain, product_id, product_handle, rating, title, body,
		                     author_name, author_last_name, author_email, media_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	ctx, end := database.TraceQuery(ctx, "CreateReview", query)
	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.ShopDomain,
		review.ProductID,
		review.ProductHandle,
		review.Rating,
		review.Title,
		review.Body,
		review.AuthorName,
		review.AuthorLastName,
		review.AuthorEmail,
		review.MediaURL,
		review.Status,
		review.CreatedAt,
		review.UpdatedAt,
	)
	end(err)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetReview", query)
	row := r.pool.QueryRow(ctx, query, id)

	var rv domain.Review
	err := row.Scan(
		&rv.ID,
		&rv.ShopDomain,
		&rv.ProductID,
		&rv.ProductHandle,
		&rv.Rating,
		&rv.Title,
		&rv.Body,
		&rv.AuthorName,
		&rv.AuthorLastName,
		&rv.AuthorEmail,
		&rv.MediaURL,
		&rv.Status,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rv, nil
}

// List returns reviews for a tenant matching the filter, newest first.
func (r *ReviewRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Review, error) {
	if filter.ShopDomain == "" {
		return nil, apperrors.InvalidInput("shop domain filter is required")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE shop_domain = $1 AND status = $2`
	args := []any{filter.ShopDomain, filter.Status}

	if filter.ProductID != nil {
		query += ` AND product_id = $3`
		args = append(args, *filter.ProductID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	ctx, end := database.TraceQuery(ctx, "ListReviews", query)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.ShopDomain,
			&rv.ProductID,
			&rv.ProductHandle,
			&rv.Rating,
			&rv.Title,
			&rv.Body,
			&rv.AuthorName,
			&rv.AuthorLastName,
			&rv.AuthorEmail,
			&rv.MediaURL,
			&rv.Status,
			&rv.CreatedAt,
			&rv.UpdatedAt,
		); err != nil {
			end(err)
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	err = rows.Err()
	end(err)
	if err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}

// UpdateStatus sets the status and updated_at of a review.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	query := `UPDATE reviews SET status = $2, updated_at = $3 WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "UpdateReviewStatus", query)
	tag, err := r.pool.Exec(ctx, query, id, status, updatedAt)
	end(err)
	if err != nil {
		return fmt.Errorf("update review status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

// Delete permanently removes a review row.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteReview", query)
	tag, err := r.pool.Exec(ctx, query, id)
	end(err)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

// Ping performs a trivial read, used by the readiness and keep-warm probes.
func (r *ReviewRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.pool.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping reviews store: %w", err)
	}
	return nil
}
