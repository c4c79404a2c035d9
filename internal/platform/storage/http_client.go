package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPBlobStore talks to a Supabase-style storage API over HTTP:
// objects are created with POST {base}/object/{bucket}/{path} and retrieved
// from {base}/object/public/{bucket}/{path}.
type HTTPBlobStore struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

var _ BlobStore = (*HTTPBlobStore)(nil)

// NewHTTPBlobStore creates a blob store client for the given base URL.
func NewHTTPBlobStore(baseURL, serviceKey string) *HTTPBlobStore {
	return &HTTPBlobStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores the given bytes under bucket/path.
func (s *HTTPBlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/object/%s/%s", s.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := string(body)
	if bucketMissing(resp.StatusCode, msg) {
		return fmt.Errorf("%w: bucket %q (status %d)", ErrBucketNotFound, bucket, resp.StatusCode)
	}
	return fmt.Errorf("upload to %s/%s failed with status %d: %s", bucket, path, resp.StatusCode, msg)
}

// PublicURL returns the retrieval URL for an uploaded object.
func (s *HTTPBlobStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, bucket, path)
}

// bucketMissing classifies an upload failure as the degraded
// bucket-misconfiguration case rather than a hard storage failure.
func bucketMissing(status int, body string) bool {
	if status == http.StatusNotFound {
		return true
	}
	return strings.Contains(body, "Bucket") || strings.Contains(body, "not found")
}
