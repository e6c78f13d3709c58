//go:build integration

package integration

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/jsamuelsen/wine-dashboard/internal/adapters/http"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/images"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/sqlite"
	"github.com/jsamuelsen/wine-dashboard/internal/app"
	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/config"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/metrics"
	"github.com/jsamuelsen/wine-dashboard/internal/ports"
)

const datasetSchema = `
CREATE TABLE countries (code TEXT PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE regions (id INTEGER PRIMARY KEY, name TEXT NOT NULL, country_code TEXT NOT NULL);
CREATE TABLE wines (id INTEGER PRIMARY KEY, name TEXT NOT NULL, region_id INTEGER NOT NULL,
    ratings_average REAL, ratings_count INTEGER, url TEXT);
CREATE TABLE vintages (id INTEGER PRIMARY KEY, wine_id INTEGER NOT NULL, name TEXT NOT NULL,
    year INTEGER, ratings_average REAL, ratings_count INTEGER, price_euros REAL, price_discounted_from REAL);
CREATE TABLE grapes (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE most_used_grapes_per_country (grape_id INTEGER NOT NULL, country_code TEXT NOT NULL, wines_count INTEGER);
CREATE TABLE keywords (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE keywords_wine (keyword_id INTEGER NOT NULL, wine_id INTEGER NOT NULL,
    group_name TEXT, keyword_type TEXT, count INTEGER);`

const datasetRows = `
INSERT INTO countries (code, name) VALUES ('fr', 'France'), ('ar', 'Argentina');
INSERT INTO regions (id, name, country_code) VALUES (1, 'Bordeaux', 'fr'), (2, 'Mendoza', 'ar');
INSERT INTO wines (id, name, region_id, ratings_average, ratings_count, url) VALUES
    (1, 'Château Lune', 1, 4.5, 9000, 'https://wines.test/1'),
    (2, 'Bodega Sol', 2, 4.2, 4000, 'https://wines.test/2'),
    (3, 'Clos Gris', 1, 3.9, 2500, 'https://wines.test/3');
INSERT INTO vintages (id, wine_id, name, year, ratings_average, ratings_count, price_euros, price_discounted_from) VALUES
    (10, 1, 'Château Lune 2015', 2015, 4.6, 800, 45.0, NULL),
    (11, 2, 'Bodega Sol 2019', 2019, 4.3, 120, 18.5, NULL),
    (12, 3, 'Clos Gris N.V.', 'N.V.', 4.4, 300, 12.0, NULL),
    (13, 3, 'Clos Gris 2020', 2020, 4.1, 60, 9.0, 15.0);
INSERT INTO grapes (id, name) VALUES (2, 'Cabernet Sauvignon'), (5, 'Merlot'), (10, 'Malbec');
INSERT INTO most_used_grapes_per_country (grape_id, country_code, wines_count) VALUES
    (2, 'fr', 500), (5, 'fr', 400), (10, 'ar', 700);
INSERT INTO keywords (id, name) VALUES (1, 'coffee'), (2, 'toast'), (3, 'green apple'), (4, 'cream'), (5, 'citrus');
INSERT INTO keywords_wine (keyword_id, wine_id, group_name, keyword_type, count) VALUES
    (1, 1, 'oak', 'primary', 40), (2, 1, 'oak', 'primary', 35), (3, 1, 'tree_fruit', 'primary', 20),
    (4, 1, 'microbio', 'primary', 15), (5, 1, 'citrus_fruit', 'primary', 12),
    (1, 2, 'oak', 'primary', 50), (2, 2, 'oak', 'secondary', 50);`

// writeDataset creates a populated database file and returns its path.
func writeDataset(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vivino.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(datasetSchema)
	require.NoError(t, err)
	_, err = db.Exec(datasetRows)
	require.NoError(t, err)

	return path
}

// writeImages creates placeholder report images and returns their directory.
func writeImages(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range domain.ImageNames() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("\x89PNG\r\n\x1a\n"), 0o600))
	}

	return dir
}

// writeConfig writes a base.yaml pointing at the fixtures and returns the
// config directory.
func writeConfig(t testing.TB, dbPath, imagesDir string) string {
	t.Helper()

	dir := t.TempDir()
	base := "app:\n  environment: test\n" +
		"database:\n  path: " + dbPath + "\n" +
		"assets:\n  images_dir: " + imagesDir + "\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(base), 0o600))

	return dir
}

// dashboard is the fully wired application behind an httptest server.
type dashboard struct {
	server *httptest.Server
	store  *sqlite.Store
	cfg    *config.Config
}

// startDashboard wires config, store, service and router the same way the
// binary does and serves them on a loopback listener.
func startDashboard(t testing.TB) *dashboard {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg, err := config.LoadFrom(writeConfig(t, writeDataset(t), writeImages(t)), "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())

	store, err := sqlite.Open(context.Background(), sqlite.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Logger:          logger,
		Metrics:         m,
	})
	require.NoError(t, err)

	registry := ports.NewHealthRegistry(ports.WithCheckTimeout(cfg.Server.HealthTimeout))
	require.NoError(t, registry.Register(store))

	imageStore := images.NewStore(cfg.Assets.ImagesDir)
	require.NoError(t, registry.Register(imageStore))

	catalog := cfg.Reports.Catalog()

	svc := app.NewReportService(app.ReportServiceConfig{
		Repository: store,
		Images:     imageStore,
		Catalog:    &catalog,
		Metrics:    m,
		Logger:     logger,
	})

	tmpl, err := handlers.DashboardTemplate()
	require.NoError(t, err)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:           logger,
		AppConfig:        &cfg.App,
		HealthHandler:    handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "abc123", "now")),
		DashboardHandler: handlers.NewDashboardHandler(svc, imageStore),
		ReportHandler:    handlers.NewReportHandler(svc),
		Templates:        tmpl,
		Timeout:          cfg.Server.RequestTimeout,
	})

	srv := httptest.NewServer(engine)

	t.Cleanup(func() {
		srv.Close()
		_ = store.Close()
	})

	return &dashboard{server: srv, store: store, cfg: cfg}
}
