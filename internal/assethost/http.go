package assethost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/vitrina/vitrina/internal/domain"
)

// HTTPHost implements Host against an image upload API.
//
// The upload is a multipart POST: the fixed access credential under the
// "key" field and the binary under the "image" field. A successful response
// is JSON with the asset's public URL at data.url; anything else is a hard
// failure.
type HTTPHost struct {
	uploadURL string
	apiKey    string
	client    *http.Client
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// NewHTTPHost creates an asset host client for the given upload endpoint.
func NewHTTPHost(uploadURL, apiKey string) *HTTPHost {
	return &HTTPHost{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload sends the image to the host and returns its public URL.
func (h *HTTPHost) Upload(ctx context.Context, image domain.ImagePayload) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("key", h.apiKey); err != nil {
		return "", fmt.Errorf("failed to write key field: %w", err)
	}

	part, err := writer.CreateFormFile("image", image.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return "", fmt.Errorf("failed to write image payload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("asset host error (status %d): %s", resp.StatusCode, string(body))
	}

	var result uploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Data.URL == "" {
		return "", fmt.Errorf("asset host response missing data.url")
	}

	return result.Data.URL, nil
}
