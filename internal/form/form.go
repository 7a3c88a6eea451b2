// Package form normalizes the loosely-typed public review submission. The
// storefront widget has shipped several field-name generations (camelCase,
// snake_case, and bare names), and posts as JSON, a URL-encoded form, or a
// multipart form carrying a file. This package turns any of those shapes into
// one flat value map plus an optional uploaded file, and resolves each
// logical field through an ordered alias table.
package form

import (
	"encoding/json"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

// maxFormMemory bounds the in-memory portion of multipart parsing; larger
// file parts spill to temp files.
const maxFormMemory = 8 << 20

// File is an uploaded multipart file part.
type File struct {
	Name string
	Size int64
	Data multipart.File
}

// Values holds the raw submitted fields keyed by their submitted names.
// Values originating from JSON keep their decoded types (string, json.Number,
// bool); form-encoded values are always strings.
type Values map[string]any

// Parse reads the request body according to its content type and returns the
// normalized values plus the uploaded file from fileField, if any. Unknown or
// missing content types are parsed as best-effort JSON; a body that fails to
// parse yields empty values rather than an error, matching the endpoint's
// lenient contract.
func Parse(r *http.Request, fileField string) (Values, *File, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return Values{}, nil, nil
		}
		return fromURLValues(r.PostForm), nil, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return Values{}, nil, nil
		}
		vals := fromURLValues(r.MultipartForm.Value)

		file, header, err := r.FormFile(fileField)
		if err != nil || header.Size == 0 {
			return vals, nil, nil
		}
		return vals, &File{Name: header.Filename, Size: header.Size, Data: file}, nil

	default:
		// JSON, or anything unrecognized treated as best-effort JSON.
		vals := Values{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&vals); err != nil {
			return Values{}, nil, nil
		}
		return vals, nil, nil
	}
}

func fromURLValues(src map[string][]string) Values {
	vals := make(Values, len(src))
	for k, vv := range src {
		if len(vv) > 0 {
			vals[k] = vv[0]
		}
	}
	return vals
}

// Aliases is the ordered list of accepted raw keys for one logical field;
// resolution picks the first key present in the submission.
type Aliases []string

// Accepted alias tables, oldest widget field names last.
var (
	ProductID     = Aliases{"productId", "product_id"}
	ProductHandle = Aliases{"product_handle", "productHandle", "handle"}
	Rating        = Aliases{"rating"}
	Title         = Aliases{"title"}
	Body          = Aliases{"body", "review"}
	FirstName     = Aliases{"firstName", "name", "author_name"}
	LastName      = Aliases{"lastName", "family_name", "last_name"}
	Email         = Aliases{"email", "author_email"}
	MediaURL      = Aliases{"mediaUrl", "media_url"}
)

// Resolve returns the first present alias coerced to a trimmed string.
// Scalars coerce through their natural string form; anything non-scalar
// (including a file-typed value) coerces to the empty string; a file is
// never stringified into a field.
func (a Aliases) Resolve(vals Values) string {
	for _, key := range a {
		v, ok := vals[key]
		if !ok {
			continue
		}
		return strings.TrimSpace(coerce(v))
	}
	return ""
}

func coerce(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return ""
	default:
		return ""
	}
}
