package reports

// Report is one processed upload, immutable once created. UploadedAt is a
// fixed-width UTC timestamp string and the sole sort key. FileURL is derived
// at read time from BlobPath and never persisted.
type Report struct {
	ReportID      string `json:"report_id" firestore:"-"`
	UserID        string `json:"user_id" firestore:"user_id"`
	Filename      string `json:"filename" firestore:"filename"`
	BlobPath      string `json:"blob_path" firestore:"blob_path"`
	ExtractedText string `json:"extracted_text" firestore:"extracted_text"`
	AIAnalysis    string `json:"ai_analysis" firestore:"ai_analysis"`
	UploadedAt    string `json:"uploaded_at" firestore:"uploaded_at"`
	FileURL       string `json:"file_url,omitempty" firestore:"-"`
}

// UploadResult is what the upload endpoint returns to the caller. ReportID
// stays empty when persistence was unavailable or failed; the text and
// analysis are returned regardless.
type UploadResult struct {
	Filename      string
	ExtractedText string
	AIAnalysis    string
	ReportID      string
}
