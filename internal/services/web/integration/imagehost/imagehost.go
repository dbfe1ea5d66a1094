// Package imagehost uploads pet and campaign images to an unsigned-upload
// image host and returns their public URL.
package imagehost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/louisbranch/pawprint/internal/platform/timeouts"
)

// MaxImageBytes bounds accepted uploads.
const MaxImageBytes = 5 << 20

var (
	// ErrTooLarge rejects images over MaxImageBytes.
	ErrTooLarge = errors.New("image exceeds size limit")
	// ErrUnsupportedType rejects non-image uploads.
	ErrUnsupportedType = errors.New("unsupported image type")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Config configures the uploader.
type Config struct {
	UploadURL    string
	UploadPreset string
	HTTPClient   *http.Client
}

// Uploader posts images to the host.
type Uploader struct {
	uploadURL string
	preset    string
	http      *http.Client
}

// New validates cfg.
func New(cfg Config) (*Uploader, error) {
	raw := strings.TrimSpace(cfg.UploadURL)
	parsed, err := url.Parse(raw)
	if raw == "" || err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("image upload url %q is invalid", raw)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeouts.Upload}
	}
	return &Uploader{uploadURL: raw, preset: strings.TrimSpace(cfg.UploadPreset), http: client}, nil
}

// Upload sends the image read from r and returns its secure URL. The
// content type is sniffed from the first bytes.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrTooLarge
	}
	contentType := http.DetectContentType(data)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	name := strings.TrimSuffix(path.Base(strings.TrimSpace(filename)), path.Ext(filename))
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	name = name + "-" + uuid.NewString()[:8] + ext

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if u.preset != "" {
		if err := form.WriteField("upload_preset", u.preset); err != nil {
			return "", fmt.Errorf("write upload preset: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload image: status %d", resp.StatusCode)
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if payload.SecureURL != "" {
		return payload.SecureURL, nil
	}
	if payload.URL != "" {
		return payload.URL, nil
	}
	return "", errors.New("upload response missing url")
}
