package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/GuilhermeFusuma/portifolio/errs"
)

// FileStore accepts an uploaded blob plus its original filename and
// returns the stored filename. Callers record the returned name and never
// touch file bytes beyond handing them over.
type FileStore interface {
	Store(ctx context.Context, originalFilename string, body io.Reader, contentType string) (string, error)
}

var allowedExtensions = map[string]string{
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".gif":  "image",
	".mp4":  "video",
	".mov":  "video",
	".avi":  "video",
	".pdf":  "document",
}

// FileTypeOf classifies a filename by extension, or returns an invalid
// field error for extensions outside the allow-list.
func FileTypeOf(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fileType, ok := allowedExtensions[ext]
	if !ok {
		return "", errs.NewInvalidFieldError("file", fmt.Sprintf("extension %q is not allowed", ext))
	}
	return fileType, nil
}

// S3Store uploads blobs to an S3 bucket under uuid-prefixed keys.
type S3Store struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

func NewS3Store(ctx context.Context, bucket string, logger zerolog.Logger) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		logger: logger.With().Str("service", "storage").Logger(),
	}, nil
}

// Store validates the extension, uploads the blob and returns the stored
// filename.
func (s *S3Store) Store(ctx context.Context, originalFilename string, body io.Reader, contentType string) (string, error) {
	if _, err := FileTypeOf(originalFilename); err != nil {
		return "", err
	}

	stored := StoredFilename(originalFilename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(stored),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", stored, err)
	}

	s.logger.Debug().Str("key", stored).Msg("file stored")
	return stored, nil
}

// DisabledStore stands in when no storage bucket is configured. Every
// upload fails with a clear error instead of a nil dereference.
type DisabledStore struct{}

func (DisabledStore) Store(context.Context, string, io.Reader, string) (string, error) {
	return "", errs.NewInternalError("file storage is not configured")
}

// StoredFilename builds a collision-free storage key from the original
// name: a fresh uuid plus the sanitized lowercase extension.
func StoredFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return uuid.NewString() + ext
}
