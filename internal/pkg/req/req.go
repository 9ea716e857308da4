/*
Package req provides helpers for parsing HTML form submissions.

Login and post creation are plain browser forms, sent either URL-encoded or as
multipart data; both encodings are accepted.
*/
package req

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"livefeed/internal/pkg/errs"
)

const (
	// MaxFormMemory is the memory ParseMultipartForm may use for non-file fields.
	MaxFormMemory int64 = 1 << 20 // 1 MB

	// MaxFormBodySize caps the whole request body, enforced via http.MaxBytesReader.
	MaxFormBodySize int64 = 2 << 20 // 2 MB
)

// ParseForm parses the request body as URL-encoded or multipart form data.
func ParseForm(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBodySize)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	switch mediaType {
	case "multipart/form-data":
		err = r.ParseMultipartForm(MaxFormMemory)
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	default:
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// RequiredField returns the named form field, failing with ErrInvalidParams when the
// field was not submitted at all. An empty value that was submitted is accepted.
func RequiredField(r *http.Request, name string) (string, *errs.CustomError) {
	values, ok := r.Form[name]
	if !ok || len(values) == 0 {
		return "", errs.NewError(errs.ErrInvalidParams)
	}
	return values[0], nil
}
