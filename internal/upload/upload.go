// Package upload pushes images to the external image host and hands back
// public URLs. Uploads are best effort: callers fall back to a generated
// placeholder when the host is down, they never block a flow on it.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/Nafiz001/booknest-client/internal/logger"

	"go.uber.org/zap"
)

const maxImageSize = 5 << 20 // host rejects anything bigger

var (
	ErrTooLarge     = errors.New("image exceeds the 5MB limit")
	ErrUploadFailed = errors.New("image upload failed")
)

type Uploader struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewUploader(baseURL, apiKey string) *Uploader {
	return &Uploader{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// hostResponse is the image host's envelope; only the public URL matters.
type hostResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload sends the image as multipart form data and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, filename string, image io.Reader) (string, error) {
	log := logger.FromCtx(ctx).With(zap.String("filename", filename))

	data, err := io.ReadAll(io.LimitReader(image, maxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageSize {
		return "", ErrTooLarge
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s?key=%s", u.baseURL, url.QueryEscape(u.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("image host rejected upload",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var parsed hostResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return "", ErrUploadFailed
	}

	log.Info("image uploaded", zap.String("url", parsed.Data.URL))
	return parsed.Data.URL, nil
}

// PlaceholderAvatar builds the generated-initials avatar used whenever no
// image was uploaded.
func PlaceholderAvatar(name string) string {
	if name == "" {
		name = "User"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) +
		"&size=150&background=2563eb&color=fff"
}
