package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeExtractor struct {
	text     string
	err      error
	pdfCalls int
	imgCalls int
}

func (f *fakeExtractor) ExtractImage(ctx context.Context, data []byte) (string, error) {
	f.imgCalls++
	return f.text, f.err
}

func (f *fakeExtractor) ExtractPDF(ctx context.Context, data []byte) (string, error) {
	f.pdfCalls++
	return f.text, f.err
}

type fakeAnalyzer struct {
	out   string
	err   error
	calls int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.out, f.err
}

func tempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.bin")
	if err := os.WriteFile(path, []byte("payload"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestProcessDispatchesByExtension(t *testing.T) {
	ext := &fakeExtractor{text: "extracted medical content"}
	an := &fakeAnalyzer{out: "explanation"}
	p := New(ext, an)
	path := tempFile(t)

	if _, _, err := p.Process(context.Background(), path, "pdf"); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if ext.pdfCalls != 1 || ext.imgCalls != 0 {
		t.Fatalf("expected pdf dispatch, got pdf=%d img=%d", ext.pdfCalls, ext.imgCalls)
	}

	for _, imageExt := range []string{"png", "jpg", "jpeg", "gif", "PNG"} {
		if _, _, err := p.Process(context.Background(), path, imageExt); err != nil {
			t.Fatalf("%s: %v", imageExt, err)
		}
	}
	if ext.imgCalls != 5 {
		t.Fatalf("expected 5 image dispatches, got %d", ext.imgCalls)
	}
}

func TestProcessUnsupportedExtension(t *testing.T) {
	p := New(&fakeExtractor{}, &fakeAnalyzer{})

	_, _, err := p.Process(context.Background(), tempFile(t), "txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestProcessShortCircuitsOnNearEmptyText(t *testing.T) {
	an := &fakeAnalyzer{out: "should not run"}
	p := New(&fakeExtractor{text: "  ab  "}, an)

	text, aiAnalysis, err := p.Process(context.Background(), tempFile(t), "png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty extracted text, got %q", text)
	}
	if aiAnalysis != MsgNoReadableText {
		t.Fatalf("expected no-readable-text message, got %q", aiAnalysis)
	}
	if an.calls != 0 {
		t.Fatalf("analyzer must not be called, got %d calls", an.calls)
	}
}

func TestProcessMinimumCountsCharactersNotBytes(t *testing.T) {
	// Five two-byte runes: enough characters even though the byte count
	// alone would already clear a byte-measured threshold at four runes.
	an := &fakeAnalyzer{out: "explanation"}
	p := New(&fakeExtractor{text: "ééééé"}, an)

	text, aiAnalysis, err := p.Process(context.Background(), tempFile(t), "png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if text != "ééééé" || aiAnalysis != "explanation" {
		t.Fatalf("unexpected outputs: %q / %q", text, aiAnalysis)
	}

	an = &fakeAnalyzer{out: "should not run"}
	p = New(&fakeExtractor{text: "éééé"}, an)
	_, aiAnalysis, err = p.Process(context.Background(), tempFile(t), "png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if aiAnalysis != MsgNoReadableText {
		t.Fatalf("four characters must short-circuit, got %q", aiAnalysis)
	}
	if an.calls != 0 {
		t.Fatalf("analyzer must not be called for near-empty text")
	}
}

func TestProcessExtractionFailureAborts(t *testing.T) {
	cause := errors.New("ocr down")
	an := &fakeAnalyzer{}
	p := New(&fakeExtractor{err: cause}, an)

	_, _, err := p.Process(context.Background(), tempFile(t), "pdf")
	if !errors.Is(err, cause) {
		t.Fatalf("expected extraction failure to propagate, got %v", err)
	}
	if an.calls != 0 {
		t.Fatalf("analyzer must not run after extraction failure")
	}
}

func TestProcessReturnsBothOutputs(t *testing.T) {
	p := New(&fakeExtractor{text: "Hemoglobin 13.5 g/dL"}, &fakeAnalyzer{out: "all good"})

	text, aiAnalysis, err := p.Process(context.Background(), tempFile(t), "jpeg")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if text != "Hemoglobin 13.5 g/dL" || aiAnalysis != "all good" {
		t.Fatalf("unexpected outputs: %q / %q", text, aiAnalysis)
	}
}

func TestProcessMissingFile(t *testing.T) {
	p := New(&fakeExtractor{}, &fakeAnalyzer{})

	_, _, err := p.Process(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"), "pdf")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
