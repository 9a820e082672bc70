package assethost

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vitrina/vitrina/internal/domain"
)

// LocalHost implements Host using the local filesystem.
// Development implementation; the returned URLs are paths relative to the
// process's static file route.
type LocalHost struct {
	basePath string // Root directory for image storage (e.g. "./web/static/uploads")
	baseURL  string // URL prefix images are served under (e.g. "/uploads")
}

// NewLocalHost creates a local filesystem asset host.
// basePath is created if it does not exist.
func NewLocalHost(basePath, baseURL string) (*LocalHost, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}

	return &LocalHost{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Upload writes the image under a fresh name and returns its serving URL.
func (h *LocalHost) Upload(ctx context.Context, image domain.ImagePayload) (string, error) {
	name := uuid.New().String() + path.Ext(image.Filename)
	fullPath := filepath.Join(h.basePath, name)

	if err := os.WriteFile(fullPath, image.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path.Join(h.baseURL, name), nil
}
