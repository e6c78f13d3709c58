package http

import (
	"html/template"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/config"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds /api/v1 requests when RouterConfig.Timeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig is what SetupRouter mounts. Nil handlers are skipped.
type RouterConfig struct {
	Logger    *slog.Logger
	AppConfig *config.AppConfig

	HealthHandler    *handlers.HealthHandler
	DashboardHandler *handlers.DashboardHandler
	ReportHandler    *handlers.ReportHandler

	// Templates must be set together with DashboardHandler.
	Templates *template.Template

	Timeout time.Duration
}

// SetupRouter installs the global chain and mounts the routes:
//
//	/, /images/:name       dashboard page and report images
//	/-/live, /-/ready, ...  probes, build info and metrics
//	/api/v1/reports/...    report JSON and downloads, under a deadline
//
// The chain runs recovery first so panics in any later middleware are
// answered, and the span is started before metrics and logging so both see
// its trace ID. Unmatched paths get the JSON 404 envelope.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Tracing(cfg.AppConfig.Name),
		telemetry.RequestMetrics(),
		middleware.Logging(cfg.Logger),
	)
	engine.NoRoute(routeNotFound)

	if h := cfg.HealthHandler; h != nil {
		h.RegisterHealthRoutes(engine)
	}

	if h := cfg.DashboardHandler; h != nil {
		engine.SetHTMLTemplate(cfg.Templates)
		h.RegisterDashboardRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api/v1", middleware.Deadline(timeout))

	if h := cfg.ReportHandler; h != nil {
		h.RegisterReportRoutes(api)
	}
}
