package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ShopReviews/internal/domain"
	"github.com/utafrali/ShopReviews/internal/repository"
	"github.com/utafrali/ShopReviews/pkg/database"
	apperrors "github.com/utafrali/ShopReviews/pkg/errors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func int64Ptr(n int64) *int64 { return &n }

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

var reviewTestColumns = []string{
	"id", "shop_domain", "product_id", "product_handle", "rating", "title", "body",
	"author_name", "author_last_name", "author_email", "media_url", "status",
	"created_at", "updated_at",
}

func sampleReview() domain.Review {
	return domain.Review{
		ID:             "rev-1",
		ShopDomain:     "demo.myshopify.com",
		ProductID:      100,
		ProductHandle:  "blue-widget",
		Rating:         5,
		Title:          "Love it",
		Body:           "Great!",
		AuthorName:     "Amy",
		AuthorLastName: "Lee",
		AuthorEmail:    "amy@example.com",
		MediaURL:       "",
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func reviewRow(rv domain.Review) []any {
	return []any{
		rv.ID, rv.ShopDomain, rv.ProductID, rv.ProductHandle, rv.Rating, rv.Title, rv.Body,
		rv.AuthorName, rv.AuthorLastName, rv.AuthorEmail, rv.MediaURL, rv.Status,
		rv.CreatedAt, rv.UpdatedAt,
	}
}

func TestReviewRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(
			rv.ID, rv.ShopDomain, rv.ProductID, rv.ProductHandle, rv.Rating, rv.Title, rv.Body,
			rv.AuthorName, rv.AuthorLastName, rv.AuthorEmail, rv.MediaURL, rv.Status,
			rv.CreatedAt, rv.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectQuery("SELECT .+ FROM reviews WHERE id").
		WithArgs(rv.ID).
		WillReturnRows(pgxmock.NewRows(reviewTestColumns).AddRow(reviewRow(rv)...))

	result, err := repo.GetByID(context.Background(), rv.ID)
	require.NoError(t, err)
	assert.Equal(t, rv.ID, result.ID)
	assert.Equal(t, rv.ShopDomain, result.ShopDomain)
	assert.Equal(t, rv.ProductID, result.ProductID)
	assert.Equal(t, rv.Status, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM reviews WHERE id").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_List_ByStatus(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectQuery("SELECT .+ FROM reviews WHERE shop_domain").
		WithArgs(rv.ShopDomain, domain.StatusPending, 100).
		WillReturnRows(pgxmock.NewRows(reviewTestColumns).AddRow(reviewRow(rv)...))

	reviews, err := repo.List(context.Background(), repository.ListFilter{
		ShopDomain: rv.ShopDomain,
		Status:     domain.StatusPending,
		Limit:      100,
	})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, rv.ID, reviews[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_List_WithProductFilter(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectQuery("SELECT .+ FROM reviews WHERE shop_domain .+ AND product_id").
		WithArgs(rv.ShopDomain, domain.StatusApproved, rv.ProductID, 200).
		WillReturnRows(pgxmock.NewRows(reviewTestColumns))

	reviews, err := repo.List(context.Background(), repository.ListFilter{
		ShopDomain: rv.ShopDomain,
		Status:     domain.StatusApproved,
		ProductID:  int64Ptr(rv.ProductID),
		Limit:      200,
	})
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.NotNil(t, reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_List_MissingShopRejected(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	_, err := repo.List(context.Background(), repository.ListFilter{Status: domain.StatusPending})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_UpdateStatus_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectExec("UPDATE reviews SET status").
		WithArgs("rev-1", domain.StatusApproved, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), "rev-1", domain.StatusApproved, now)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_UpdateStatus_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectExec("UPDATE reviews SET status").
		WithArgs("missing-id", domain.StatusTrashed, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), "missing-id", domain.StatusTrashed, now)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectExec("DELETE FROM reviews").
		WithArgs("rev-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "rev-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectExec("DELETE FROM reviews").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Ping(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	assert.NoError(t, repo.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
