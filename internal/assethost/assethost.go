// Package assethost stores uploaded product images on an external host and
// returns their public URLs. Uploaded assets are never deleted by this
// package; a persist failure after an upload leaves the asset orphaned on
// the host (the gateway surfaces that condition).
package assethost

import (
	"context"

	"github.com/vitrina/vitrina/internal"
	"github.com/vitrina/vitrina/internal/domain"
)

// Host defines the interface for image hosting.
// Implementations can use an HTTP upload API, an S3-compatible bucket, or
// the local filesystem.
type Host interface {
	// Upload sends the binary payload to the host and returns the public
	// URL the stored image is reachable at.
	Upload(ctx context.Context, image domain.ImagePayload) (string, error)
}

// New creates a Host implementation based on configuration.
func New(cfg internal.AssetConfig) (Host, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalHost(cfg.LocalPath, cfg.LocalURL)
	case "http":
		return NewHTTPHost(cfg.UploadURL, cfg.APIKey), nil
	case "s3":
		return NewS3Host(S3Config{
			Endpoint:    cfg.S3Endpoint,
			AccessKeyID: cfg.S3AccessKeyID,
			SecretKey:   cfg.S3SecretKey,
			BucketName:  cfg.S3BucketName,
			PublicURL:   cfg.S3PublicURL,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
