// Package s3 keeps exported list snapshots in an S3-compatible bucket
// (AWS S3, Aliyun OSS, MinIO).
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Snapshot URL modes.
const (
	URLModePresigned = "presigned"
	URLModeProxy     = "proxy"
)

// PresignExpiry bounds how long a shared snapshot link stays valid.
const PresignExpiry = 24 * time.Hour

const defaultRegion = "us-east-1"

// Config describes the snapshot bucket.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PathStyle is required by MinIO.
	PathStyle bool
	URLMode   string
	// ProxyPrefix is the console route that streams snapshots in proxy mode.
	ProxyPrefix string
}

// Storage stores snapshots as bucket objects.
type Storage struct {
	api         *s3.Client
	presign     *s3.PresignClient
	bucket      string
	urlMode     string
	proxyPrefix string
}

// New validates cfg and builds the bucket client. No request is sent.
func New(cfg Config) (*Storage, error) {
	if err := normalize(&cfg); err != nil {
		return nil, err
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
	return &Storage{
		api:         api,
		presign:     s3.NewPresignClient(api),
		bucket:      cfg.Bucket,
		urlMode:     cfg.URLMode,
		proxyPrefix: cfg.ProxyPrefix,
	}, nil
}

func normalize(cfg *Config) error {
	switch {
	case cfg.Bucket == "":
		return errors.New("snapshot bucket is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return errors.New("access key and secret key are required")
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	switch cfg.URLMode {
	case "":
		cfg.URLMode = URLModePresigned
	case URLModePresigned, URLModeProxy:
	default:
		return fmt.Errorf("unsupported url mode: %s", cfg.URLMode)
	}
	return nil
}

func (s *Storage) object(key string) (*string, *string) {
	return aws.String(s.bucket), aws.String(key)
}

func (s *Storage) PutObject(ctx context.Context, key string, data io.Reader, contentType string, size int64) error {
	bucket, k := s.object(key)
	input := &s3.PutObjectInput{Bucket: bucket, Key: k, Body: data, ContentType: aws.String(contentType)}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.api.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return nil
}

func (s *Storage) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	bucket, k := s.object(key)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{Bucket: bucket, Key: k})
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return out.Body, nil
}

func (s *Storage) DeleteObject(ctx context.Context, key string) error {
	bucket, k := s.object(key)
	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: bucket, Key: k}); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

// ObjectExists treats a 404 from HeadObject as absence, not failure.
func (s *Storage) ObjectExists(ctx context.Context, key string) (bool, error) {
	bucket, k := s.object(key)
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: bucket, Key: k})
	var notFound *types.NotFound
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &notFound):
		return false, nil
	}
	return false, fmt.Errorf("head snapshot %s: %w", key, err)
}

// GenerateURL returns the console route in proxy mode and a presigned link otherwise.
func (s *Storage) GenerateURL(ctx context.Context, key string) (string, error) {
	if s.urlMode == URLModeProxy {
		return s.proxyPrefix + strings.TrimPrefix(key, "/"), nil
	}
	bucket, k := s.object(key)
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{Bucket: bucket, Key: k},
		func(o *s3.PresignOptions) { o.Expires = PresignExpiry })
	if err != nil {
		return "", fmt.Errorf("presign snapshot %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *Storage) Type() string { return "s3" }
