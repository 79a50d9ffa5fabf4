package reports

import (
	"context"
	"time"

	"medreport-backend/internal/pipeline"
	"medreport-backend/internal/shared/telemetry"
	"medreport-backend/internal/storage/object"
)

// timestampLayout is fixed-width so lexicographic order matches chronological
// order in the store's string sort.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// Service contains the business logic for processing and serving reports.
type Service struct {
	Pipeline pipeline.Processor
	Blobs    object.BlobStore
	Repo     Repo

	// now is swappable for tests.
	now func() time.Time
}

// NewService constructs a Service.
func NewService(p pipeline.Processor, blobs object.BlobStore, repo Repo) *Service {
	return &Service{Pipeline: p, Blobs: blobs, Repo: repo, now: time.Now}
}

// ProcessUpload runs the extraction/analysis pipeline over the temp file,
// uploads the original to blob storage and persists the record. Storage and
// persistence failures degrade (empty blob path / report ID) instead of
// failing the call; only pipeline failures propagate.
func (s *Service) ProcessUpload(ctx context.Context, userID, originalName, storedName, tempPath, extension string) (UploadResult, error) {
	text, aiAnalysis, err := s.Pipeline.Process(ctx, tempPath, extension)
	if err != nil {
		return UploadResult{}, err
	}

	blobPath := s.Blobs.Upload(ctx, tempPath, storedName, userID)

	report := Report{
		UserID:        userID,
		Filename:      originalName,
		BlobPath:      blobPath,
		ExtractedText: text,
		AIAnalysis:    aiAnalysis,
		UploadedAt:    s.now().UTC().Format(timestampLayout),
	}

	reportID, err := s.Repo.Create(ctx, userID, report)
	if err != nil {
		telemetry.Warn("report.persist.failed", map[string]any{
			"user_id": userID,
			"err":     err,
		})
		reportID = ""
	}

	return UploadResult{
		Filename:      originalName,
		ExtractedText: text,
		AIAnalysis:    aiAnalysis,
		ReportID:      reportID,
	}, nil
}

// ListReports returns the user's reports newest first, each with a freshly
// signed retrieval link when a stored original exists.
func (s *Service) ListReports(ctx context.Context, userID string, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	out, err := s.Repo.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].FileURL = s.Blobs.SignedURL(out[i].BlobPath)
	}
	return out, nil
}

// GetReport fetches one report with a freshly signed retrieval link.
func (s *Service) GetReport(ctx context.Context, userID, reportID string) (Report, error) {
	rep, err := s.Repo.Get(ctx, userID, reportID)
	if err != nil {
		return Report{}, err
	}
	rep.FileURL = s.Blobs.SignedURL(rep.BlobPath)
	return rep, nil
}
