package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const pdfMimeType = "application/pdf"

// VisionExtractor implements Extractor on the Cloud Vision API.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionExtractor creates an extractor with credentials from the
// environment: inline GOOGLE_CREDENTIALS JSON takes precedence, then
// application default credentials.
func NewVisionExtractor(ctx context.Context) (*VisionExtractor, error) {
	const op = "NewVisionExtractor"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return nil, wrapError(op, ErrMissingCredentials, err.Error())
	}

	return &VisionExtractor{client: client}, nil
}

// NewVisionExtractorWithClient wraps an existing client (for testing).
func NewVisionExtractorWithClient(client *vision.ImageAnnotatorClient) *VisionExtractor {
	return &VisionExtractor{client: client}
}

// ExtractImage runs document text detection over a single image and returns
// the trimmed text.
func (v *VisionExtractor) ExtractImage(ctx context.Context, data []byte) (string, error) {
	const op = "ExtractImage"

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", wrapError(op, ErrExtractionFailed, err.Error())
	}
	if len(resp.Responses) == 0 {
		return "", wrapError(op, ErrExtractionFailed, "no response from Vision API")
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return "", wrapError(op, ErrExtractionFailed, annotated.Error.Message)
	}

	return strings.TrimSpace(imageText(annotated)), nil
}

// ExtractPDF runs document text detection over every page of a PDF and joins
// the non-empty page texts with page markers.
func (v *VisionExtractor) ExtractPDF(ctx context.Context, data []byte) (string, error) {
	const op = "ExtractPDF"

	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return "", wrapError(op, ErrInvalidPDF, "missing PDF header")
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  data,
					MimeType: pdfMimeType,
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", wrapError(op, ErrExtractionFailed, err.Error())
	}
	if len(resp.Responses) == 0 {
		return "", wrapError(op, ErrExtractionFailed, "no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return "", wrapError(op, ErrExtractionFailed, fileResp.Error.Message)
	}

	text, err := joinFilePages(fileResp)
	if err != nil {
		return "", wrapError(op, err, "")
	}
	return text, nil
}

// Close closes the underlying Vision client.
func (v *VisionExtractor) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

// joinFilePages assembles the OCR text of a multi-page file response. Any
// per-page error aborts the whole extraction; no partial result is returned.
func joinFilePages(fileResp *visionpb.AnnotateFileResponse) (string, error) {
	pages := make([]string, 0, len(fileResp.Responses))
	for i, page := range fileResp.Responses {
		if page.Error != nil {
			return "", fmt.Errorf("%w: page %d: %s", ErrExtractionFailed, i+1, page.Error.Message)
		}
		pages = append(pages, imageText(page))
	}
	return joinPageTexts(pages), nil
}

// joinPageTexts formats per-page texts as "--- Page N ---" blocks separated
// by a blank line. Pages that OCR to whitespace only are dropped entirely;
// page numbers are 1-indexed and keep their original position.
func joinPageTexts(pages []string) string {
	var blocks []string
	for i, text := range pages {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("--- Page %d ---\n%s", i+1, trimmed))
	}
	return strings.Join(blocks, "\n\n")
}

func imageText(resp *visionpb.AnnotateImageResponse) string {
	if resp == nil || resp.FullTextAnnotation == nil {
		return ""
	}
	return resp.FullTextAnnotation.Text
}
