// Package storage uploads food photos to object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sony/gobreaker/v2"

	"github.com/illineats/backend/config"
	"github.com/illineats/backend/internal/logging"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("object storage temporarily unavailable")

// ObjectStore stores and deletes objects by key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// s3API is the subset of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// BreakerSettings tune the circuit breaker around S3 calls.
type BreakerSettings struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// DefaultBreakerSettings trip after five consecutive failures and probe again after 30 seconds.
var DefaultBreakerSettings = BreakerSettings{FailureThreshold: 5, OpenTimeout: 30 * time.Second}

// S3Store writes objects to a bucket behind a circuit breaker.
type S3Store struct {
	api     s3API
	bucket  string
	urlFor  func(key string) string
	breaker *gobreaker.CircuitBreaker[string]
}

var _ ObjectStore = (*S3Store)(nil)

// NewS3Store creates a store for the configured bucket.
func NewS3Store(cfg *config.S3Config) *S3Store {
	return newS3Store(cfg.Client, cfg.BucketName, cfg.ObjectURL, DefaultBreakerSettings)
}

func newS3Store(api s3API, bucket string, urlFor func(string) string, bs BreakerSettings) *S3Store {
	settings := gobreaker.Settings{
		Name:        "s3:" + bucket,
		MaxRequests: 1,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Storage circuit breaker state changed")
		},
	}
	return &S3Store{
		api:     api,
		bucket:  bucket,
		urlFor:  urlFor,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Put uploads body under key and returns its public URL.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	url, err := s.breaker.Execute(func() (string, error) {
		_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          body,
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(size),
		})
		if err != nil {
			return "", err
		}
		return s.urlFor(key), nil
	})
	if err != nil {
		return "", wrap("upload", key, err)
	}
	return url, nil
}

// Delete removes the object under key.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.breaker.Execute(func() (string, error) {
		_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return "", err
	})
	if err != nil {
		return wrap("delete", key, err)
	}
	return nil
}

func wrap(op, key string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("failed to %s %s: %w", op, key, ErrUnavailable)
	}
	return fmt.Errorf("failed to %s %s: %w", op, key, err)
}
