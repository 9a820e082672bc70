package assethost

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vitrina/vitrina/internal/domain"
)

// S3Config contains configuration for bucket-backed image hosting.
// Endpoint supports S3-compatible services (Cloudflare R2, MinIO); leave it
// empty for AWS S3 proper.
type S3Config struct {
	Endpoint    string
	AccessKeyID string
	SecretKey   string
	BucketName  string
	PublicURL   string
}

// S3Host implements Host using an S3-compatible bucket.
type S3Host struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Host creates a bucket-backed asset host.
func NewS3Host(cfg S3Config) (*S3Host, error) {
	if cfg.AccessKeyID == "" || cfg.SecretKey == "" {
		return nil, ErrS3CredentialsRequired
	}
	if cfg.BucketName == "" {
		return nil, ErrS3BucketRequired
	}

	credsProvider := credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID,
		cfg.SecretKey,
		"",
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credsProvider),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Host{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores the image under a fresh key and returns its public URL.
func (h *S3Host) Upload(ctx context.Context, image domain.ImagePayload) (string, error) {
	key := objectKey(image.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(image.Data),
	}
	if image.ContentType != "" {
		input.ContentType = aws.String(image.ContentType)
	}

	if _, err := h.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to bucket: %w", err)
	}

	return h.url(key), nil
}

func (h *S3Host) url(key string) string {
	if h.publicURL != "" {
		return fmt.Sprintf("%s/%s", h.publicURL, key)
	}
	return key
}

// objectKey derives a collision-free bucket key, keeping the original
// extension so hosts serve the right content type.
func objectKey(filename string) string {
	return "products/" + uuid.New().String() + path.Ext(filename)
}
