// Package ocr extracts text from uploaded medical documents using the Google
// Cloud Vision API. Images go through document text detection directly; PDFs
// are processed page by page, with per-page text joined under "--- Page N ---"
// markers and pages yielding no text dropped from the output.
package ocr

import "context"

// Extractor converts a raw document into plain text.
type Extractor interface {
	// ExtractImage runs OCR over a single raster image.
	ExtractImage(ctx context.Context, data []byte) (string, error)

	// ExtractPDF runs OCR over every page of a PDF and joins the non-empty
	// page texts in page order.
	ExtractPDF(ctx context.Context, data []byte) (string, error)
}
