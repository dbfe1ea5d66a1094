// Package imageform reads multipart forms that carry an optional image file
// and uploads that file to the image host.
package imageform

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/louisbranch/pawprint/internal/services/web/integration/imagehost"
)

const (
	// Field is the name of the file input.
	Field = "image"
	// MaxFormBytes bounds the whole multipart body.
	MaxFormBytes = imagehost.MaxImageBytes + 1<<20

	keyTooLarge    = "validation.image_too_large"
	keyUnsupported = "validation.image"
	keyFailed      = "validation.image_upload"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Parse reads a multipart form from r. Urlencoded bodies are accepted so
// forms without a file still parse. A non-empty return is the message key
// for the image field.
func Parse(w http.ResponseWriter, r *http.Request) string {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	err := r.ParseMultipartForm(MaxFormBytes)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, http.ErrNotMultipart):
		return ""
	case errors.As(err, &tooLarge):
		return keyTooLarge
	default:
		return keyFailed
	}
}

// Upload stores the form's image file. A form without a file returns two
// empty strings; on failure the second value is the message key.
func Upload(ctx context.Context, r *http.Request, uploader Uploader) (string, string) {
	file, header, err := r.FormFile(Field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", ""
	}
	if err != nil {
		return "", keyFailed
	}
	defer file.Close()
	if header.Size > imagehost.MaxImageBytes {
		return "", keyTooLarge
	}
	url, err := uploader.Upload(ctx, header.Filename, file)
	switch {
	case err == nil:
		return url, ""
	case errors.Is(err, imagehost.ErrTooLarge):
		return "", keyTooLarge
	case errors.Is(err, imagehost.ErrUnsupportedType):
		return "", keyUnsupported
	default:
		log.Printf("image upload failed file=%q err=%v", header.Filename, err)
		return "", keyFailed
	}
}
