// Package object defines the blob storage contract for uploaded originals.
package object

import "context"

// BlobStore stores uploaded files and mints short-lived retrieval links.
// Both operations degrade to an empty string instead of failing: losing the
// stored original never aborts the surrounding request.
type BlobStore interface {
	// Upload copies the local file into per-user storage and returns its
	// blob path, or "" when the store is unavailable or the write failed.
	Upload(ctx context.Context, localPath, fileName, userID string) string

	// SignedURL returns a fresh time-limited link for the blob path, or ""
	// when the store is unavailable or the path is empty. Links are minted
	// at read time only and never persisted.
	SignedURL(blobPath string) string
}
