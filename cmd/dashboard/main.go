// Command dashboard serves the Vivino market analysis dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/images"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/sqlite"
	"github.com/jsamuelsen/wine-dashboard/internal/app"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/config"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/metrics"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/telemetry"
	"github.com/jsamuelsen/wine-dashboard/internal/ports"
)

// Set with -ldflags "-X main.Version=... -X main.Commit=... -X main.BuildTime=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the profile named by APP_ENVIRONMENT, "local" when unset.
func loadConfig() (*config.Config, error) {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	f := cfg.Log.File

	return logging.New(&logging.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Service:      cfg.App.Name,
		Version:      cfg.App.Version,
		RedactFields: cfg.Log.RedactFields,
		File: logging.FileConfig{
			Enabled:    f.Enabled,
			Path:       f.Path,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		},
	})
}

// run serves until ctx is cancelled by a signal or the listener fails.
func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting dashboard",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("database", cfg.Database.Path),
	)

	otelProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		// ctx is already cancelled on the signal path.
		if err := otelProvider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("flushing telemetry", slog.Any("error", err))
		}
	}()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Open fails on a missing file or a schema without the report tables.
	store, err := sqlite.Open(ctx, sqlite.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Logger:          logger,
		Metrics:         m,
	})
	if err != nil {
		return fmt.Errorf("opening wine database: %w", err)
	}

	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing wine database", slog.Any("error", err))
		}
	}()

	imageStore := images.NewStore(cfg.Assets.ImagesDir)

	readiness := ports.NewHealthRegistry(ports.WithCheckTimeout(cfg.Server.HealthTimeout))
	for _, c := range []ports.HealthChecker{store, imageStore} {
		if err := readiness.Register(c); err != nil {
			return fmt.Errorf("registering %s health check: %w", c.Name(), err)
		}
	}

	catalog := cfg.Reports.Catalog()

	reports := app.NewReportService(app.ReportServiceConfig{
		Repository: store,
		Images:     imageStore,
		Catalog:    &catalog,
		Metrics:    m,
		Logger:     logger,
	})

	tmpl, err := handlers.DashboardTemplate()
	if err != nil {
		return err
	}

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:           logger,
		AppConfig:        &cfg.App,
		HealthHandler:    handlers.NewHealthHandler(readiness, handlers.NewBuildInfo(Version, Commit, BuildTime)),
		DashboardHandler: handlers.NewDashboardHandler(reports, imageStore),
		ReportHandler:    handlers.NewReportHandler(reports),
		Templates:        tmpl,
		Timeout:          cfg.Server.RequestTimeout,
	})

	return serve(ctx, logger, server, cfg.Server.ShutdownTimeout)
}

// serve starts server and drains it when ctx is done. A listener failure
// ends serve without draining.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server, grace time.Duration) error {
	failed := server.Start()

	select {
	case err, ok := <-failed:
		if !ok {
			return errors.New("http server stopped unexpectedly")
		}

		return err

	case <-ctx.Done():
		logger.Info("shutdown requested", slog.Duration("grace", grace))
	}

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
	defer cancel()

	if err := server.Shutdown(drainCtx); err != nil {
		return err
	}

	logger.Info("dashboard stopped")

	return nil
}
