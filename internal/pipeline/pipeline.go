// Package pipeline composes text extraction and AI analysis for one uploaded
// file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"medreport-backend/internal/ocr"
)

// ErrUnsupportedType is returned for extensions outside the allowed set.
var ErrUnsupportedType = errors.New("unsupported file type")

// MsgNoReadableText is returned as the analysis when a file yields no usable
// text. The pipeline terminates successfully without invoking the analyzer.
const MsgNoReadableText = "No readable text found in the document. Please ensure the image is clear and contains text."

// minExtractedChars is the trimmed length below which extracted text is
// treated as unreadable.
const minExtractedChars = 5

// Analyzer produces the patient-facing explanation for extracted text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

// Processor runs the full extract-then-analyze pipeline on a local file.
type Processor interface {
	Process(ctx context.Context, filePath, extension string) (extractedText, aiAnalysis string, err error)
}

var _ Processor = (*Pipeline)(nil)

// Pipeline is the production Processor.
type Pipeline struct {
	Extractor ocr.Extractor
	Analyzer  Analyzer
}

// New constructs a Pipeline.
func New(extractor ocr.Extractor, analyzer Analyzer) *Pipeline {
	return &Pipeline{Extractor: extractor, Analyzer: analyzer}
}

// Process extracts text from the file at filePath according to its extension
// and, when enough text came out, analyzes it. Extraction failures abort the
// call; near-empty extractions short-circuit to the fixed no-text analysis.
func (p *Pipeline) Process(ctx context.Context, filePath, extension string) (string, string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", "", fmt.Errorf("process file: read %s: %w", filePath, err)
	}

	var text string
	switch strings.ToLower(extension) {
	case "pdf":
		text, err = p.Extractor.ExtractPDF(ctx, data)
	case "png", "jpg", "jpeg", "gif":
		text, err = p.Extractor.ExtractImage(ctx, data)
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, extension)
	}
	if err != nil {
		return "", "", fmt.Errorf("process file: %w", err)
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractedChars {
		return "", MsgNoReadableText, nil
	}

	aiAnalysis, err := p.Analyzer.Analyze(ctx, text)
	if err != nil {
		return "", "", fmt.Errorf("process file: %w", err)
	}

	return text, aiAnalysis, nil
}
