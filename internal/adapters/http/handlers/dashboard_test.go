package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

func TestDashboardTemplate(t *testing.T) {
	tmpl, err := DashboardTemplate()
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup(DashboardTemplateName))
}

func TestDashboard_DefaultsToHighlight(t *testing.T) {
	f := newHandlerFixture(t)
	f.repo.EXPECT().HighlightedWines(mock.Anything, domain.DefaultHighlightFilter()).Return(sampleVintages(), nil)

	w := f.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "<title>Vivino market analysis</title>")
	assert.Contains(t, body, "<h1>Vivino Market Analysis</h1>")
	assert.Contains(t, body, "By César Mendoza, Fré Van Oers and Sam Veldeman")
	assert.Contains(t, body, `<link rel="icon"`)

	for _, m := range domain.ReportModes() {
		assert.Contains(t, body, ">"+m.Title()+"</option>")
	}

	assert.Contains(t, body, `value="highlight-10-wines" selected`)
	assert.Contains(t, body, `name="min_count" min="0" max="37000" step="100" value="30"`)
	assert.Contains(t, body, `name="min_ratings" min="0" max="5" step="0.1" value="0"`)
	assert.Contains(t, body, `name="max_price" min="0" max="100" step="1" value="100"`)
	assert.Contains(t, body, "<th>vintage_name</th>")
	assert.Contains(t, body, "<td>Château Test 2015</td>")
	assert.Contains(t, body, "/api/v1/reports/highlight-10-wines/export?format=csv")
	assert.NotContains(t, body, "<svg")
}

func TestDashboard_ChartReport(t *testing.T) {
	f := newHandlerFixture(t)
	f.repo.EXPECT().TopWinesPerGrape(mock.Anything, []int64{2, 5, 10}, mock.Anything).Return([]domain.GrapeRanking{
		{WineName: "Alpha", RatingsAverage: 4.6, RatingsCount: 5000, GrapeName: "Cabernet Sauvignon"},
		{WineName: "Beta", RatingsAverage: 4.5, RatingsCount: 4000, GrapeName: "Merlot"},
	}, nil)

	w := f.get("/?report=Top+5+wines+for+top+3+grapes")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `value="top-5-wines-for-top-3-grapes" selected`)
	assert.Contains(t, body, "The 5 best rated wines, based on the top 3 most common grapes gloabally.")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "Cabernet Sauvignon")
	assert.NotContains(t, body, `type="range"`)
	assert.NotContains(t, body, "<table>")
}

func TestDashboard_ImageReport(t *testing.T) {
	f := newHandlerFixture(t)
	f.images.EXPECT().Resolve(mock.Anything, domain.FocusOnArgentinaImage).
		Return(&domain.Image{Name: domain.FocusOnArgentinaImage, Path: "/srv/output/FocusOnArgentina.png"}, nil)

	w := f.get("/?report=focus-on-argentina")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `<img src="/images/FocusOnArgentina.png"`)
	assert.Contains(t, body, "<h3>Country Leaderboards</h3>")
	assert.NotContains(t, body, "/srv/output")
	assert.NotContains(t, body, "Download")
}

func TestDashboard_ErrorPages(t *testing.T) {
	t.Run("slider out of range", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.get("/?max_price=500")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `class="error"`)
		assert.Contains(t, w.Body.String(), "Vivino Market Analysis")
		assert.Contains(t, w.Body.String(), "Request ID: <code>"+w.Header().Get("X-Request-ID")+"</code>")
	})

	t.Run("unknown report", func(t *testing.T) {
		f := newHandlerFixture(t)

		w := f.get("/?report=nope")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `value="highlight-10-wines" selected`)
	})

	t.Run("missing image", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.images.EXPECT().Resolve(mock.Anything, domain.CountryLeaderboardImage).
			Return(nil, domain.NewNotFoundError("image", domain.CountryLeaderboardImage))

		w := f.get("/?report=country-leaderboards")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "CountryLeaderboard.png")
	})

	t.Run("store unavailable", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.repo.EXPECT().TasteKeywordWines(mock.Anything, mock.Anything).
			Return(nil, domain.NewUnavailableError("sqlite", "no such table: keywords"))

		w := f.get("/?report=wines-with-taste-keywords")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "no such table")
	})
}

func TestDashboard_Image(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, domain.CountryLeaderboardImage)
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	f := newHandlerFixture(t)
	f.images.EXPECT().Resolve(mock.Anything, domain.CountryLeaderboardImage).
		Return(&domain.Image{Name: domain.CountryLeaderboardImage, Path: path}, nil)
	f.images.EXPECT().Resolve(mock.Anything, "secrets.txt").
		Return(nil, domain.NewNotFoundError("image", "secrets.txt"))

	w := f.get("/images/CountryLeaderboard.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))

	w = f.get("/images/secrets.txt")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadLinks(t *testing.T) {
	filter := domain.HighlightFilter{MinRatingsAverage: 4.2, MaxPrice: 30, MinRatingsCount: 1500}

	links := downloadLinks(domain.ReportHighlightWines, filter)
	require.Len(t, links, 2)
	assert.Equal(t, "csv", links[0].Label)
	assert.Equal(t,
		"/api/v1/reports/highlight-10-wines/export?format=csv&max_price=30&min_count=1500&min_ratings=4.2",
		links[0].URL)

	links = downloadLinks(domain.ReportTasteKeywords, filter)
	assert.Equal(t, "/api/v1/reports/wines-with-taste-keywords/export?format=xlsx", links[1].URL)
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "4.5", formatCell(4.5))
	assert.Equal(t, "18", formatCell(18.0))
	assert.Equal(t, "1200", formatCell(int64(1200)))
	assert.Equal(t, "2015", formatCell(2015))
	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "Brut", formatCell("Brut"))
}
