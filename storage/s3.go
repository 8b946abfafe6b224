package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// S3Store keeps blobs in an S3 bucket under an optional key prefix. Selected
// with UPLOAD_STORAGE=s3; credentials come from the default AWS chain.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

func NewS3Store(ctx context.Context, bucket, prefix string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 blob store requires a bucket name")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
		logger: log.With().Str("component", "s3Store").Logger(),
	}, nil
}

func (s *S3Store) key(name string) string {
	return path.Join(s.prefix, path.Base(name))
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("putting blob %s to s3: %w", name, err)
	}

	s.logger.Debug().Str("blob", name).Str("bucket", s.bucket).Msg("Saved blob to S3")
	return nil
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("deleting blob %s from s3: %w", name, err)
	}

	s.logger.Debug().Str("blob", name).Str("bucket", s.bucket).Msg("Deleted blob from S3")
	return nil
}
