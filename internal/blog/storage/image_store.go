// Package storage provides blob-backed storage for blog images.
package storage

import (
	"context"
	"io"
	"strings"

	"gocloud.dev/blob"

	// Bucket drivers registered for blob.OpenBucket URL schemes.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	apperrors "github.com/allisson/blogs/internal/errors"
)

// ImageStore persists uploaded blog images and returns a public URL for them.
type ImageStore interface {
	Save(ctx context.Context, key string, contentType string, content io.Reader) (url string, err error)
}

// BlobImageStore implements ImageStore on top of a gocloud.dev bucket, so the
// same code serves local directories (file://) in development and object
// stores in production.
type BlobImageStore struct {
	bucket  *blob.Bucket
	baseURL string
}

// NewBlobImageStore creates a BlobImageStore. baseURL is the public prefix
// under which stored keys are reachable.
func NewBlobImageStore(bucket *blob.Bucket, baseURL string) *BlobImageStore {
	return &BlobImageStore{
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Save writes the image under key and returns its public URL.
func (s *BlobImageStore) Save(
	ctx context.Context,
	key string,
	contentType string,
	content io.Reader,
) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open image writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		// Abort the write so no partial object is left behind
		_ = writer.Close()
		return "", apperrors.Wrap(err, "failed to write image")
	}

	if err := writer.Close(); err != nil {
		return "", apperrors.Wrap(err, "failed to finalize image write")
	}

	return s.baseURL + "/" + key, nil
}

// OpenBucket opens the bucket referenced by the URL (file://, mem://, etc).
func OpenBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open image bucket")
	}
	return bucket, nil
}
