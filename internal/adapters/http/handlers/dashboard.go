package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wine-dashboard/internal/adapters/export"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/wine-dashboard/internal/app"
	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
	"github.com/jsamuelsen/wine-dashboard/internal/ports"
)

// DashboardTemplateName is the HTML template rendered by Dashboard.
const DashboardTemplateName = "dashboard.html.tmpl"

// Page chrome.
const (
	AppTitle     = "Vivino Market Analysis"
	PageTitle    = "Vivino market analysis"
	FooterCredit = "By César Mendoza, Fré Van Oers and Sam Veldeman"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DashboardTemplate parses the embedded page templates.
func DashboardTemplate() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"cell": formatCell,
		"add":  func(a, b float64) float64 { return a + b },
		"sub":  func(a, b float64) float64 { return a - b },
		"mid":  func(a, b float64) float64 { return (a + b) / 2 },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard templates: %w", err)
	}

	return tmpl, nil
}

// DashboardHandler serves the HTML dashboard and its images.
type DashboardHandler struct {
	service *app.ReportService
	images  ports.ImageStore
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *app.ReportService, images ports.ImageStore) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		images:  images,
	}
}

type dashboardPage struct {
	AppTitle  string
	PageTitle string
	Footer    string
	Options   []reportOption
	Sliders   []sliderView
	Error     *pageError
	View      *domain.ReportView
	Table     *domain.Table
	Chart     *chartView
	ImageURL  string
	Downloads []downloadLink
}

type reportOption struct {
	Slug     string
	Title    string
	Selected bool
}

type sliderView struct {
	domain.Slider
	Value   float64
	Display string
}

type pageError struct {
	Status     int
	StatusText string
	Message    string
	RequestID  string
}

type downloadLink struct {
	Label string
	URL   string
}

// Dashboard handles GET /
// Renders the sidebar and the selected report. Every widget change submits
// the form again, so the page is a pure function of its query string.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	page := &dashboardPage{
		AppTitle:  AppTitle,
		PageTitle: PageTitle,
		Footer:    FooterCredit,
	}

	var q dto.ReportQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		h.fail(c, page, domain.DefaultReportMode, domain.DefaultHighlightFilter(), err)
		return
	}

	mode, err := q.Mode()
	if err != nil {
		h.fail(c, page, domain.DefaultReportMode, domain.DefaultHighlightFilter(), err)
		return
	}

	filter := q.Filter()
	page.selectMode(mode, filter)

	ctx := logging.WithReport(c.Request.Context(), string(mode))

	view, err := h.service.Render(ctx, mode, filter)
	if err != nil {
		h.fail(c, page, mode, filter, err)
		return
	}

	page.show(view, filter)

	c.HTML(http.StatusOK, DashboardTemplateName, page)
}

// Image handles GET /images/:name
// Serves one of the pre-rendered report images.
func (h *DashboardHandler) Image(c *gin.Context) {
	img, err := h.images.Resolve(c.Request.Context(), c.Param("name"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.File(img.Path)
}

// RegisterDashboardRoutes registers the page and image routes on the engine.
func (h *DashboardHandler) RegisterDashboardRoutes(engine *gin.Engine) {
	engine.GET("/", h.Dashboard)
	engine.GET("/images/:name", h.Image)
}

func (h *DashboardHandler) fail(
	c *gin.Context,
	page *dashboardPage,
	mode domain.ReportMode,
	filter domain.HighlightFilter,
	err error,
) {
	status, resp := dto.FromDomainError(err)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("dashboard render failed",
			"status", status,
			"error", err.Error(),
		)
	}

	page.selectMode(mode, filter)
	page.Error = &pageError{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    resp.Error.Message,
		RequestID:  middleware.GetRequestID(c),
	}

	c.HTML(status, DashboardTemplateName, page)
}

// selectMode fills the sidebar for the selected mode.
func (p *dashboardPage) selectMode(mode domain.ReportMode, filter domain.HighlightFilter) {
	p.Options = p.Options[:0]
	for _, m := range domain.ReportModes() {
		p.Options = append(p.Options, reportOption{
			Slug:     string(m),
			Title:    m.Title(),
			Selected: m == mode,
		})
	}

	p.Sliders = p.Sliders[:0]
	for _, s := range mode.Sliders() {
		v := filter.Value(s.Name)
		p.Sliders = append(p.Sliders, sliderView{
			Slider:  s,
			Value:   v,
			Display: strconv.FormatFloat(v, 'f', -1, 64),
		})
	}
}

// show places the rendered report in the main panel.
func (p *dashboardPage) show(view *domain.ReportView, filter domain.HighlightFilter) {
	p.View = view

	switch view.Kind {
	case domain.KindTable:
		p.Table = view.Table
	case domain.KindChart:
		if view.Chart != nil {
			p.Chart = newChartView(view.Chart)
		}
	case domain.KindImage:
		if view.Image != nil {
			p.ImageURL = "/images/" + url.PathEscape(view.Image.Name)
		}
	}

	if view.Table != nil {
		p.Downloads = downloadLinks(view.Mode, filter)
	}
}

// downloadLinks points at the export endpoint with the current widget values.
func downloadLinks(mode domain.ReportMode, filter domain.HighlightFilter) []downloadLink {
	links := make([]downloadLink, 0, 2)

	for _, f := range []export.Format{export.FormatCSV, export.FormatXLSX} {
		q := url.Values{}
		q.Set("format", string(f))

		for _, s := range mode.Sliders() {
			q.Set(s.Name, strconv.FormatFloat(filter.Value(s.Name), 'f', -1, 64))
		}

		links = append(links, downloadLink{
			Label: string(f),
			URL:   "/api/v1/reports/" + url.PathEscape(string(mode)) + "/export?" + q.Encode(),
		})
	}

	return links
}

func formatCell(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
