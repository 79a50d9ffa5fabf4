package ocr

import (
	"errors"
	"fmt"
)

var (
	// ErrExtractionFailed is returned when the Vision API cannot process the
	// document.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrInvalidPDF is returned when the payload is not a valid PDF document.
	ErrInvalidPDF = errors.New("invalid or corrupted PDF document")

	// ErrMissingCredentials is returned when no Google Cloud credentials are
	// available in the environment.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials")
)

// Error wraps extraction failures with the failing operation and extra detail.
type Error struct {
	Op      string
	Err     error
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var oe *Error
	if errors.As(err, &oe) {
		return err
	}
	return &Error{Op: op, Err: err, Details: details}
}
