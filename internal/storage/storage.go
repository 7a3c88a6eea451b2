package storage

import (
	"context"
	"io"

	apperrors "github.com/utafrali/ShopReviews/pkg/errors"
)

// Storage defines the interface for review media storage.
type Storage interface {
	// Upload stores an object under key and returns its public URL.
	// The upload is non-overwriting: a key collision is an error, never a
	// silent replace.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// UploadInput holds the parameters for uploading an object.
type UploadInput struct {
	Key         string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the result of a successful upload.
type UploadResult struct {
	Key string
	URL string
}

// Unconfigured is the explicit "no bucket credentials" variant of Storage.
// Wiring it instead of a nil client keeps the missing-configuration failure
// mode a defined, testable error rather than a panic.
type Unconfigured struct{}

// NewUnconfigured creates the unconfigured storage variant.
func NewUnconfigured() *Unconfigured {
	return &Unconfigured{}
}

// Upload always fails, naming the missing configuration.
func (*Unconfigured) Upload(context.Context, *UploadInput) (*UploadResult, error) {
	return nil, apperrors.InvalidInput("media storage is not configured: missing bucket credentials")
}

// Ping reports the same missing configuration.
func (*Unconfigured) Ping(context.Context) error {
	return apperrors.InvalidInput("media storage is not configured: missing bucket credentials")
}
