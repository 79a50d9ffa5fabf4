package ocr

import (
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/genproto/googleapis/rpc/status"
)

func pageResponse(text string) *visionpb.AnnotateImageResponse {
	if text == "" {
		return &visionpb.AnnotateImageResponse{}
	}
	return &visionpb.AnnotateImageResponse{
		FullTextAnnotation: &visionpb.TextAnnotation{Text: text},
	}
}

func TestJoinPageTexts(t *testing.T) {
	got := joinPageTexts([]string{"first page\n", "second page"})
	want := "--- Page 1 ---\nfirst page\n\n--- Page 2 ---\nsecond page"
	if got != want {
		t.Fatalf("joined output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestJoinPageTextsDropsEmptyPages(t *testing.T) {
	got := joinPageTexts([]string{"alpha", "   \n\t", "gamma"})

	if strings.Contains(got, "--- Page 2 ---") {
		t.Fatalf("empty page should be dropped, got %q", got)
	}
	// The original page index is preserved for pages after a dropped one.
	if !strings.Contains(got, "--- Page 3 ---\ngamma") {
		t.Fatalf("expected page 3 marker to survive, got %q", got)
	}
	if !strings.HasPrefix(got, "--- Page 1 ---\nalpha") {
		t.Fatalf("expected page 1 block first, got %q", got)
	}
}

func TestJoinPageTextsAllEmpty(t *testing.T) {
	if got := joinPageTexts([]string{"", "  "}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestJoinFilePages(t *testing.T) {
	fileResp := &visionpb.AnnotateFileResponse{
		Responses: []*visionpb.AnnotateImageResponse{
			pageResponse("Hemoglobin 13.5 g/dL"),
			pageResponse(""),
			pageResponse("Glucose 92 mg/dL"),
		},
	}

	got, err := joinFilePages(fileResp)
	if err != nil {
		t.Fatalf("joinFilePages: %v", err)
	}
	want := "--- Page 1 ---\nHemoglobin 13.5 g/dL\n\n--- Page 3 ---\nGlucose 92 mg/dL"
	if got != want {
		t.Fatalf("joined output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestJoinFilePagesPageErrorAborts(t *testing.T) {
	fileResp := &visionpb.AnnotateFileResponse{
		Responses: []*visionpb.AnnotateImageResponse{
			pageResponse("fine"),
			{Error: &status.Status{Message: "page decode failed"}},
		},
	}

	_, err := joinFilePages(fileResp)
	if err == nil {
		t.Fatalf("expected error for failing page")
	}
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtractPDFRejectsNonPDF(t *testing.T) {
	v := NewVisionExtractorWithClient(nil)
	_, err := v.ExtractPDF(t.Context(), []byte("not a pdf"))
	if err == nil {
		t.Fatalf("expected error for non-PDF payload")
	}
	if !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("expected ErrInvalidPDF, got %v", err)
	}
}
