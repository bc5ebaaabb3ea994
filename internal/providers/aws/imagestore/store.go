// Package imagestore uploads recipe images to Amazon S3.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

// Client defines the S3 operations used by Store.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ Client = (*s3.Client)(nil)

// Store writes images under recipes/{userId}/{recipeId}/ and returns their public URL.
type Store struct {
	client  Client
	bucket  string
	baseURL string
	logger  *slog.Logger
	newID   func() string
}

// NewStore creates an image store for bucket. baseURL is the public prefix the object key is
// appended to.
func NewStore(client Client, bucket, baseURL string, log *slog.Logger) *Store {
	return &Store{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  log,
		newID:   uuid.NewString,
	}
}

// ObjectKey returns the key an image for the recipe is stored under.
func ObjectKey(ownerID string, recipeID int64, name, ext string) string {
	return fmt.Sprintf("recipes/%s/%d/%s.%s", ownerID, recipeID, name, ext)
}

// Upload stores data with the given content type and returns its URL. Every upload gets a fresh
// object name so a replaced image never overwrites the previous object.
func (s *Store) Upload(
	ctx context.Context,
	ownerID string,
	recipeID int64,
	contentType, ext string,
	data []byte,
) (string, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, s.logger)

	key := ObjectKey(ownerID, recipeID, s.newID(), ext)

	logArgs := []any{
		"operation", "S3.PutObject",
		"bucket", s.bucket,
		"key", key,
		"size", len(data),
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", apperrors.ErrImageUploadFailed(err)
	}

	return s.baseURL + "/" + key, nil
}
