package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wine-dashboard/internal/app"
	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/mocks"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/config"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serverConfig(maxBody int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: maxBody,
	}
}

func TestServer_Addr(t *testing.T) {
	cfg := serverConfig(1 << 20)
	cfg.Host, cfg.Port = "0.0.0.0", 8501

	assert.Equal(t, "0.0.0.0:8501", New(cfg, discardLogger()).Addr())

	cfg.Host = "::1"
	assert.Equal(t, "[::1]:8501", New(cfg, discardLogger()).Addr())
}

func TestServer_ServesUntilShutdown(t *testing.T) {
	srv := New(serverConfig(1<<20), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	errCh := srv.Start()

	addr := srv.Addr()
	require.NotEqual(t, "127.0.0.1:0", addr)

	resp, err := http.Get("http://" + addr + "/ping")
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, ok := <-errCh:
		assert.False(t, ok, "unexpected error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("error channel not closed after shutdown")
	}
}

func TestServer_StartReportsBindFailure(t *testing.T) {
	first := New(serverConfig(1<<20), discardLogger())
	_ = first.Start()

	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)

	cfg := serverConfig(1 << 20)
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	err, ok := <-New(cfg, discardLogger()).Start()
	require.True(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on 127.0.0.1:"+port)
}

func TestServer_LimitsBody(t *testing.T) {
	srv := New(serverConfig(16), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.String(http.StatusOK, "%d", len(b))
	})

	tests := []struct {
		body string
		want int
	}{
		{"top-grapes", http.StatusOK},
		{strings.Repeat("x", 17), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body)))
		assert.Equal(t, tt.want, w.Code, tt.body)
	}
}

type routerFixture struct {
	engine *gin.Engine
	repo   *mocks.MockWineRepository
	images *mocks.MockImageStore
}

func newRouterFixture(t *testing.T, timeout time.Duration) *routerFixture {
	t.Helper()

	f := &routerFixture{
		engine: gin.New(),
		repo:   mocks.NewMockWineRepository(t),
		images: mocks.NewMockImageStore(t),
	}

	svc := app.NewReportService(app.ReportServiceConfig{
		Repository: f.repo,
		Images:     f.images,
		Metrics:    metrics.New(prometheus.NewRegistry()),
		Logger:     discardLogger(),
	})

	tmpl, err := handlers.DashboardTemplate()
	require.NoError(t, err)

	SetupRouter(f.engine, RouterConfig{
		Logger:           discardLogger(),
		AppConfig:        &config.AppConfig{Name: "wine-dashboard", Environment: "test", Version: "test"},
		HealthHandler:    handlers.NewHealthHandler(nil, handlers.BuildInfo{}),
		DashboardHandler: handlers.NewDashboardHandler(svc, f.images),
		ReportHandler:    handlers.NewReportHandler(svc),
		Templates:        tmpl,
		Timeout:          timeout,
	})

	return f
}

func (f *routerFixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

// TestSetupRouter tests the full route table.
func TestSetupRouter(t *testing.T) {
	f := newRouterFixture(t, 30*time.Second)

	routes := make(map[string]bool)
	for _, r := range f.engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /images/:name",
		"GET /api/v1/reports",
		"GET /api/v1/reports/:report",
		"GET /api/v1/reports/:report/export",
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
	} {
		assert.True(t, routes[want], "missing route: %s", want)
	}
}

// TestSetupRouter_Dashboard tests the page served at the root.
func TestSetupRouter_Dashboard(t *testing.T) {
	f := newRouterFixture(t, 30*time.Second)
	f.repo.EXPECT().HighlightedWines(mock.Anything, domain.DefaultHighlightFilter()).
		Return([]domain.HighlightedVintage{}, nil)

	w := f.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Vivino market analysis</title>")
	assert.Contains(t, body, "Vivino Market Analysis")
	assert.Contains(t, body, "By César Mendoza, Fré Van Oers and Sam Veldeman")
	assert.Contains(t, w.Header().Get("X-Request-ID"), "-")
}

// TestSetupRouter_ReportAPI tests the JSON report routes behind the timeout group.
func TestSetupRouter_ReportAPI(t *testing.T) {
	f := newRouterFixture(t, 30*time.Second)

	t.Run("list", func(t *testing.T) {
		w := f.get("/api/v1/reports")
		require.Equal(t, http.StatusOK, w.Code)

		var got []dto.ReportSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 6)
	})

	t.Run("request context has deadline", func(t *testing.T) {
		f.repo.EXPECT().TasteKeywordWines(mock.Anything, mock.Anything).
			RunAndReturn(func(ctx context.Context, _ domain.TasteKeywordQuery) ([]domain.TasteKeywordRow, error) {
				_, ok := ctx.Deadline()
				assert.True(t, ok)

				return nil, nil
			}).Once()

		w := f.get("/api/v1/reports/wines-with-taste-keywords")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown report", func(t *testing.T) {
		w := f.get("/api/v1/reports/best-wines")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestSetupRouter_NoRoute tests the JSON 404 for unknown paths.
func TestSetupRouter_NoRoute(t *testing.T) {
	f := newRouterFixture(t, 0)

	w := f.get("/reports")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
}

// TestSetupRouterWithNilHandlers tests router setup with only the app config.
func TestSetupRouterWithNilHandlers(t *testing.T) {
	engine := gin.New()

	cfg := RouterConfig{
		Logger:    discardLogger(),
		AppConfig: &config.AppConfig{Name: "wine-dashboard"},
		Timeout:   30 * time.Second,
	}

	require.NotPanics(t, func() {
		SetupRouter(engine, cfg)
	})
}
