package form

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSON(t *testing.T) {
	body := `{"product_id": 9223372036854775807, "rating": "5", "name": "Amy", "review": "Great!"}`
	req := httptest.NewRequest("POST", "/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	vals, file, err := Parse(req, "media")
	require.NoError(t, err)
	assert.Nil(t, file)

	// json.Number preserves precision beyond float64.
	assert.Equal(t, "9223372036854775807", ProductID.Resolve(vals))
	assert.Equal(t, "5", Rating.Resolve(vals))
	assert.Equal(t, "Amy", FirstName.Resolve(vals))
	assert.Equal(t, "Great!", Body.Resolve(vals))
}

func TestParse_JSONWithCharsetParam(t *testing.T) {
	req := httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"rating": 4}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	vals, _, err := Parse(req, "media")
	require.NoError(t, err)
	assert.Equal(t, "4", Rating.Resolve(vals))
}

func TestParse_MalformedJSONYieldsEmptyValues(t *testing.T) {
	req := httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"rating": `))
	req.Header.Set("Content-Type", "application/json")

	vals, file, err := Parse(req, "media")
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Empty(t, vals)
}

func TestParse_MissingContentTypeFallsBackToJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"rating": 3}`))

	vals, _, err := Parse(req, "media")
	require.NoError(t, err)
	assert.Equal(t, "3", Rating.Resolve(vals))
}

func TestParse_URLEncoded(t *testing.T) {
	data := url.Values{}
	data.Set("productId", "100")
	data.Set("rating", "5")
	data.Set("firstName", "Amy")
	data.Set("body", "Great!")

	req := httptest.NewRequest("POST", "/reviews", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	vals, file, err := Parse(req, "media")
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.Equal(t, "100", ProductID.Resolve(vals))
	assert.Equal(t, "Amy", FirstName.Resolve(vals))
}

func TestParse_MultipartWithFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("product_id", "42"))
	require.NoError(t, mw.WriteField("rating", "4"))

	fw, err := mw.CreateFormFile("media", "photo.JPG")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/reviews", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	vals, file, err := Parse(req, "media")
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "photo.JPG", file.Name)
	assert.Equal(t, int64(len("fake image bytes")), file.Size)
	assert.Equal(t, "42", ProductID.Resolve(vals))
}

func TestParse_MultipartEmptyFileIgnored(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_, err := mw.CreateFormFile("media", "empty.png")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/reviews", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, file, err := Parse(req, "media")
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestResolve_AliasOrder(t *testing.T) {
	vals := Values{"name": "fallback", "firstName": "primary"}
	assert.Equal(t, "primary", FirstName.Resolve(vals))

	vals = Values{"author_name": "oldest"}
	assert.Equal(t, "oldest", FirstName.Resolve(vals))

	assert.Equal(t, "", FirstName.Resolve(Values{}))
}

func TestResolve_ScalarCoercion(t *testing.T) {
	vals := Values{
		"rating":     json.Number("5"),
		"title":      true,
		"product_id": float64(100),
	}
	assert.Equal(t, "5", Rating.Resolve(vals))
	assert.Equal(t, "true", Title.Resolve(vals))
	assert.Equal(t, "100", ProductID.Resolve(vals))
}

func TestResolve_NonScalarsCoerceToEmpty(t *testing.T) {
	vals := Values{
		"body":  map[string]any{"nested": "object"},
		"title": []any{"list"},
		"name":  nil,
	}
	assert.Equal(t, "", Body.Resolve(vals))
	assert.Equal(t, "", Title.Resolve(vals))
	assert.Equal(t, "", FirstName.Resolve(vals))
}

func TestResolve_TrimsWhitespace(t *testing.T) {
	vals := Values{"name": "  Amy  "}
	assert.Equal(t, "Amy", FirstName.Resolve(vals))
}
