// Package gcs implements the blob store on Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"

	"medreport-backend/internal/shared/telemetry"
)

// signedURLValidity is how long a minted retrieval link stays usable.
const signedURLValidity = 15 * time.Minute

const blobPrefix = "medical_reports"

// Store uploads originals to a GCS bucket and signs retrieval links. A Store
// with no bucket handle is the explicit unavailable state: every operation
// yields an empty string.
type Store struct {
	bucket *storage.BucketHandle
}

// New connects to the named bucket using ambient credentials.
func New(ctx context.Context, bucketName string) (*Store, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("gcs: bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}
	return &Store{bucket: client.Bucket(bucketName)}, nil
}

// Disabled returns the unavailable sentinel store.
func Disabled() *Store {
	return &Store{}
}

// Available reports whether the store is backed by a real bucket.
func (s *Store) Available() bool {
	return s.bucket != nil
}

// Upload writes the local file to medical_reports/{userID}/{fileName}. The
// per-user prefix keeps one subject's files from colliding with or being
// enumerated under another's. Failures are logged and degrade to "".
func (s *Store) Upload(ctx context.Context, localPath, fileName, userID string) string {
	if !s.Available() {
		return ""
	}

	blobPath := fmt.Sprintf("%s/%s/%s", blobPrefix, userID, fileName)

	f, err := os.Open(localPath)
	if err != nil {
		telemetry.Error("storage.upload.failed", map[string]any{"blob_path": blobPath, "err": err})
		return ""
	}
	defer f.Close()

	w := s.bucket.Object(blobPath).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		telemetry.Error("storage.upload.failed", map[string]any{"blob_path": blobPath, "err": err})
		return ""
	}
	if err := w.Close(); err != nil {
		telemetry.Error("storage.upload.failed", map[string]any{"blob_path": blobPath, "err": err})
		return ""
	}

	return blobPath
}

// SignedURL mints a V4 signed GET link valid for fifteen minutes from now.
// Each call produces a fresh link with its own expiry.
func (s *Store) SignedURL(blobPath string) string {
	if !s.Available() || blobPath == "" {
		return ""
	}

	url, err := s.bucket.SignedURL(blobPath, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(signedURLValidity),
	})
	if err != nil {
		telemetry.Error("storage.sign.failed", map[string]any{"blob_path": blobPath, "err": err})
		return ""
	}
	return url
}
