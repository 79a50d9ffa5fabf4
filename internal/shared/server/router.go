package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medreport-backend/internal/identity"
	"medreport-backend/internal/reports"
	"medreport-backend/internal/shared/config"
	"medreport-backend/internal/shared/server/middleware"
	"medreport-backend/internal/shared/server/respond"
)

const serviceVersion = "1.0.0"

// RouterDeps carries the dependencies the router wires together.
type RouterDeps struct {
	Config         config.Config
	Verifier       identity.Verifier
	ReportsHandler *reports.Handler
}

// NewRouter constructs the gin engine with middleware and routes registered.
// The health endpoint is public; everything else re-verifies the bearer
// credential per request.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"status":  "running",
			"service": "Medical Report Analyzer API",
			"version": serviceVersion,
			"endpoints": gin.H{
				"upload":        "POST /upload",
				"user_reports":  "GET /reports/<user_id>",
				"report_detail": "GET /report/<report_id>",
			},
		})
	})

	authed := r.Group("/", middleware.Auth(deps.Verifier))
	deps.ReportsHandler.RegisterRoutes(authed)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Endpoint not found")
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
