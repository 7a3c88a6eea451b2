package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ShopReviews/internal/storage"
)

func TestUpload(t *testing.T) {
	s := New("https://media.test")

	result, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:         "reviews/demo.myshopify.com/100/abc.png",
		ContentType: "image/png",
		Size:        1024,
	})
	require.NoError(t, err)

	assert.Equal(t, "reviews/demo.myshopify.com/100/abc.png", result.Key)
	assert.Equal(t, "https://media.test/reviews/demo.myshopify.com/100/abc.png", result.URL)
	assert.True(t, s.Has("reviews/demo.myshopify.com/100/abc.png"))
}

func TestUpload_ExistingKeyFails(t *testing.T) {
	s := New("https://media.test")
	input := &storage.UploadInput{Key: "reviews/demo.myshopify.com/100/abc.png", Size: 1}

	_, err := s.Upload(context.Background(), input)
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), input)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	assert.NoError(t, New("https://media.test").Ping(context.Background()))
}
