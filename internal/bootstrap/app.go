// Package bootstrap constructs the application's external clients once at
// startup and wires them into the router. Identity verification and the
// OCR/generation pipeline are hard requirements; the document store and blob
// storage degrade to explicit unavailable sentinels when they cannot be
// initialized.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"medreport-backend/internal/analysis"
	"medreport-backend/internal/identity"
	"medreport-backend/internal/llm/gemini"
	"medreport-backend/internal/ocr"
	"medreport-backend/internal/pipeline"
	"medreport-backend/internal/reports"
	"medreport-backend/internal/shared/config"
	"medreport-backend/internal/shared/server"
	"medreport-backend/internal/shared/telemetry"
	"medreport-backend/internal/storage/object"
	"medreport-backend/internal/storage/object/gcs"
)

// App holds the constructed dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Verifier       identity.Verifier
	Blobs          object.BlobStore
	ReportsRepo    reports.Repo
	ReportsService *reports.Service
	ReportsHandler *reports.Handler

	closers []func() error
}

// Build prepares all dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	telemetry.Setup(cfg.Debug)

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("bootstrap: FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("bootstrap: create upload dir: %w", err)
	}

	app := &App{Config: cfg}

	verifier, err := identity.NewFirebaseVerifier(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	app.Verifier = verifier

	extractor, err := ocr.NewVisionExtractor(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	app.closers = append(app.closers, extractor.Close)

	llmClient, err := gemini.NewClient(ctx, cfg.ProjectID, cfg.VertexRegion, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	app.closers = append(app.closers, llmClient.Close)

	app.Blobs = buildBlobStore(ctx, cfg)
	app.ReportsRepo = buildReportsRepo(ctx, cfg, app)

	proc := pipeline.New(extractor, analysis.New(llmClient))
	app.ReportsService = reports.NewService(proc, app.Blobs, app.ReportsRepo)
	app.ReportsHandler = reports.NewHandler(app.ReportsService, cfg.UploadDir)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Verifier:       app.Verifier,
		ReportsHandler: app.ReportsHandler,
	})

	return app, nil
}

// Close releases the external clients.
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			telemetry.Warn("bootstrap.close.failed", map[string]any{"err": err})
		}
	}
}

func buildBlobStore(ctx context.Context, cfg config.Config) object.BlobStore {
	store, err := gcs.New(ctx, cfg.StorageBucket)
	if err != nil {
		telemetry.Warn("bootstrap.storage.unavailable", map[string]any{
			"bucket": cfg.StorageBucket,
			"err":    err,
		})
		return gcs.Disabled()
	}
	return store
}

func buildReportsRepo(ctx context.Context, cfg config.Config, app *App) reports.Repo {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		telemetry.Warn("bootstrap.firestore.unavailable", map[string]any{
			"project": cfg.ProjectID,
			"err":     err,
		})
		return reports.UnavailableRepo{}
	}
	app.closers = append(app.closers, client.Close)
	return reports.NewFirestoreRepo(client)
}
