package gcs

import (
	"context"
	"testing"
)

func TestDisabledStoreDegradesToEmpty(t *testing.T) {
	s := Disabled()

	if s.Available() {
		t.Fatalf("disabled store must report unavailable")
	}
	if got := s.Upload(context.Background(), "/tmp/whatever.pdf", "whatever.pdf", "u1"); got != "" {
		t.Fatalf("expected empty blob path from disabled store, got %q", got)
	}
	if got := s.SignedURL("medical_reports/u1/whatever.pdf"); got != "" {
		t.Fatalf("expected empty signed url from disabled store, got %q", got)
	}
}

func TestSignedURLEmptyBlobPath(t *testing.T) {
	s := Disabled()
	if got := s.SignedURL(""); got != "" {
		t.Fatalf("expected empty signed url for empty blob path, got %q", got)
	}
}

func TestNewRequiresBucketName(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty bucket name")
	}
}
