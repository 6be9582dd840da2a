package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"clscraper/pkg/config"
	"clscraper/pkg/errors"
	"clscraper/pkg/logger"
)

// S3Sink writes batches as CSV objects into an S3-compatible bucket
// using path-style keys: <prefix>/<endpoint>/<name>
type S3Sink struct {
	client *minio.Client
	bucket string
	prefix string
	logger logger.Logger
}

// NewS3Sink creates an object storage sink. Missing endpoint, bucket or
// credentials are a configuration error surfaced here, before any fetch
// attempt begins.
func NewS3Sink(cfg *config.S3Config, log logger.Logger) (*S3Sink, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "S3 endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "S3 bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "S3 credentials are required")
	}
	if log == nil {
		log = logger.GetLogger()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrorTypeConfig, "create S3 client: %v", err)
	}

	return &S3Sink{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.KeyPrefix,
		logger: log,
	}, nil
}

// Write uploads the batch and returns its object key. PutObject only
// returns once the upload is confirmed, which is what permits the caller
// to advance the checkpoint.
func (s *S3Sink) Write(ctx context.Context, batch *Batch, hint NamingHint) (string, error) {
	data, err := encodeCSV(batch)
	if err != nil {
		return "", errors.Newf(errors.ErrorTypeStorage, "encode batch: %v", err)
	}

	key := path.Join(s.prefix, hint.Endpoint, hint.FileName())

	_, err = s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return "", errors.Newf(errors.ErrorTypeStorage, "put object %s: %v", key, err)
	}

	s.logger.InfoWithFields("batch uploaded", map[string]interface{}{
		"bucket":  s.bucket,
		"key":     key,
		"records": len(batch.Rows),
	})

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
