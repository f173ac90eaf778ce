// Package storage keeps uploaded document files in an S3-compatible object
// store, or in memory when no store is configured.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	legalapp "github.com/lawai/backend/internal/application/legal"
	infraconfig "github.com/lawai/backend/internal/infrastructure/config"
	"github.com/lawai/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const defaultPresignExpiration = 15 * time.Minute

// ErrStorageKeyRequired is returned for operations called without an object key
var ErrStorageKeyRequired = errors.New("storage key is required")

var _ legalapp.FileStorage = (*S3FileStorage)(nil)

// S3FileStorage stores document files in any S3-compatible backend
// (AWS S3, MinIO, RustFS...).
type S3FileStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// S3Option configures an S3FileStorage
type S3Option func(*S3FileStorage)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) S3Option {
	return func(s *S3FileStorage) {
		s.logger = logger
	}
}

// WithPresignExpiration overrides the default download URL lifetime
func WithPresignExpiration(d time.Duration) S3Option {
	return func(s *S3FileStorage) {
		s.presignExpiration = d
	}
}

// NewS3FileStorage creates an S3FileStorage from configuration
func NewS3FileStorage(cfg *infraconfig.StorageConfig, opts ...S3Option) (*S3FileStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	switch {
	case cfg.Bucket == "":
		return nil, errors.New("storage bucket is required")
	case cfg.AccessKey == "":
		return nil, errors.New("storage access key is required")
	case cfg.SecretKey == "":
		return nil, errors.New("storage secret key is required")
	}

	endpoint, err := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	s := &S3FileStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		presignExpiration: cfg.PresignExpiration,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presignExpiration <= 0 {
		s.presignExpiration = defaultPresignExpiration
	}
	return s, nil
}

func normalizeEndpoint(endpoint string, useSSL bool) (string, error) {
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		scheme := "http://"
		if useSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid storage endpoint %q", endpoint)
	}
	return strings.TrimSuffix(endpoint, "/"), nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *S3FileStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var alreadyOwned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &alreadyOwned) {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores data under storageKey
func (s *S3FileStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrStorageKeyRequired
	}
	ctx, span := s.startSpan(ctx, "s3.put_object", storageKey)
	defer span.End()
	telemetry.SetAttribute(span, "storage.size", len(data))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(storageKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to upload object: %w", err)
	}
	telemetry.SetOK(span)
	return nil
}

// GenerateDownloadURL presigns a GET for storageKey. A non-positive
// expiresIn falls back to the configured lifetime.
func (s *S3FileStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrStorageKeyRequired
	}
	if expiresIn <= 0 {
		expiresIn = s.presignExpiration
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate download URL: %w", err)
	}
	return req.URL, time.Now().Add(expiresIn), nil
}

// DeleteObject removes storageKey; deleting a missing object succeeds
func (s *S3FileStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return ErrStorageKeyRequired
	}
	ctx, span := s.startSpan(ctx, "s3.delete_object", storageKey)
	defer span.End()

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	}); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to delete object: %w", err)
	}
	telemetry.SetOK(span)
	return nil
}

// Bucket returns the bucket name
func (s *S3FileStorage) Bucket() string {
	return s.bucket
}

func (s *S3FileStorage) startSpan(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, name,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute("storage.bucket", s.bucket),
		telemetry.WithAttribute("storage.key", key),
	)
}
