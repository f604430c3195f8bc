package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type S3Config struct {
	Endpoint        string // empty for AWS; set for MinIO/R2
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore uploads bootcamp photos to a public bucket.
type S3ImageStore struct {
	client objectPutter
	bucket string
	base   string
	log    zerolog.Logger
}

func NewS3ImageStore(ctx context.Context, cfg S3Config, log zerolog.Logger) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3ImageStore(client, cfg, log), nil
}

func newS3ImageStore(client objectPutter, cfg S3Config, log zerolog.Logger) *S3ImageStore {
	return &S3ImageStore{
		client: client,
		bucket: cfg.Bucket,
		base:   objectBaseURL(cfg),
		log:    log.With().Str("component", "s3_image_store").Logger(),
	}
}

// objectBaseURL is the public prefix objects are reachable under.
func objectBaseURL(cfg S3Config) string {
	if cfg.Endpoint != "" {
		ep := strings.TrimRight(cfg.Endpoint, "/")
		if cfg.UsePathStyle {
			return ep + "/" + cfg.Bucket
		}
		scheme, host, ok := strings.Cut(ep, "://")
		if !ok {
			return ep + "/" + cfg.Bucket
		}
		return scheme + "://" + cfg.Bucket + "." + host
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

func (s *S3ImageStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("put object failed")
		return "", domain.ErrStorageUnavailable(err)
	}
	return s.base + "/" + key, nil
}
