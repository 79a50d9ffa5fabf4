package reports

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medreport-backend/internal/shared/server/middleware"
	"medreport-backend/internal/shared/server/respond"
	"medreport-backend/internal/shared/telemetry"
	"medreport-backend/internal/shared/util"
)

// maxUploadBytes caps the request body at 10 MiB.
const maxUploadBytes = 10 << 20

var allowedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// Handler wires the report HTTP endpoints to the service.
type Handler struct {
	Svc       *Service
	UploadDir string
}

// NewHandler constructs a Handler writing temp files under uploadDir.
func NewHandler(svc *Service, uploadDir string) *Handler {
	return &Handler{Svc: svc, UploadDir: uploadDir}
}

// RegisterRoutes attaches the authenticated report routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/reports/:user_id", h.list)
	rg.GET("/report/:report_id", h.detail)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if c.Request.ContentLength > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "File size exceeds 10MB limit")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "File size exceeds 10MB limit")
			return
		}
		respond.Error(c, http.StatusBadRequest, "No file provided")
		return
	}
	if strings.TrimSpace(fileHeader.Filename) == "" {
		respond.Error(c, http.StatusBadRequest, "No file selected")
		return
	}

	originalName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid file name")
		return
	}

	// Validate the extension before anything touches the disk so rejected
	// uploads leave no temp file behind.
	extension := util.FileExtension(originalName)
	if _, ok := allowedExtensions[extension]; !ok {
		respond.Error(c, http.StatusBadRequest, "Invalid file type. Allowed types: pdf, png, jpg, jpeg, gif")
		return
	}

	storedName := uuid.NewString() + "_" + originalName
	tempPath := filepath.Join(h.UploadDir, storedName)
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			telemetry.Warn("upload.temp.cleanup.failed", map[string]any{"path": tempPath, "err": err})
		}
	}()

	result, err := h.Svc.ProcessUpload(c.Request.Context(), userID, originalName, storedName, tempPath, extension)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}

	respond.OK(c, gin.H{
		"success":        true,
		"filename":       result.Filename,
		"extracted_text": result.ExtractedText,
		"ai_analysis":    result.AIAnalysis,
		"report_id":      result.ReportID,
		"message":        "File processed successfully",
	})
}

func (h *Handler) list(c *gin.Context) {
	authenticatedUID := middleware.UserIDFromContext(c)
	userID := c.Param("user_id")

	if authenticatedUID != userID {
		respond.Error(c, http.StatusForbidden, "Unauthorized: You can only access your own reports")
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	reports, err := h.Svc.ListReports(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			respond.Error(c, http.StatusServiceUnavailable, "Database not available")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to retrieve reports")
		return
	}
	if reports == nil {
		reports = []Report{}
	}

	respond.OK(c, gin.H{
		"success": true,
		"user_id": userID,
		"count":   len(reports),
		"reports": reports,
	})
}

func (h *Handler) detail(c *gin.Context) {
	authenticatedUID := middleware.UserIDFromContext(c)
	reportID := c.Param("report_id")
	c.Set("reportId", reportID)

	userID := c.Query("user_id")
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "user_id parameter is required")
		return
	}
	if authenticatedUID != userID {
		respond.Error(c, http.StatusForbidden, "Unauthorized: You can only access your own reports")
		return
	}

	report, err := h.Svc.GetReport(c.Request.Context(), userID, reportID)
	if err != nil {
		switch {
		case errors.Is(err, ErrStoreUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "Database not available")
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Report not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to retrieve report")
		}
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"report":  report,
	})
}
