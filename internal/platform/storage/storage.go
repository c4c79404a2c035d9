// Package storage provides the blob store boundary used for receipt uploads.
// The store itself is an external collaborator; this package only knows how
// to push bytes into a bucket and derive the public retrieval URL.
package storage

import (
	"context"
	"errors"
)

// ErrBucketNotFound indicates the target bucket does not exist or is
// misconfigured. Callers treat this as a degraded condition: the parent
// operation proceeds without an attachment instead of failing.
var ErrBucketNotFound = errors.New("storage bucket not found")

// BlobStore uploads files and resolves their public URLs.
type BlobStore interface {
	// Upload stores the given bytes under bucket/path.
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	// PublicURL returns the retrieval URL for an uploaded object. It is
	// assumed to always resolve once Upload has succeeded.
	PublicURL(bucket, path string) string
}
