package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wine-dashboard/internal/adapters/export"
	"github.com/jsamuelsen/wine-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/wine-dashboard/internal/app"
	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
)

// ReportHandler serves the report JSON API and table downloads.
type ReportHandler struct {
	service *app.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *app.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// ListReports handles GET /api/v1/reports
// Returns every report in sidebar order with its widgets.
func (h *ReportHandler) ListReports(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewReportSummaries())
}

// GetReport handles GET /api/v1/reports/:report
// Renders one report with the slider values from the query string.
func (h *ReportHandler) GetReport(c *gin.Context) {
	view, ok := h.render(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, view)
}

// ExportReport handles GET /api/v1/reports/:report/export?format=csv|xlsx
// Streams the report table as a download. Image reports have no table.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view, ok := h.render(c)
	if !ok {
		return
	}

	if view.Table == nil {
		dto.HandleError(c, domain.NewValidationErrorWithValue(
			"report", "report has no table to export", string(view.Mode),
		))

		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, view.Mode, view.Table); err != nil {
		dto.HandleError(c, fmt.Errorf("exporting %s: %w", view.Mode, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.FileName(view.Mode)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// render binds the query, parses the mode and renders it. On failure the
// error response has already been written.
func (h *ReportHandler) render(c *gin.Context) (*domain.ReportView, bool) {
	var q dto.ReportQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleError(c, err)
		return nil, false
	}

	q.Report = c.Param("report")

	mode, err := q.Mode()
	if err != nil {
		dto.HandleError(c, domain.NewNotFoundError("report", q.Report))
		return nil, false
	}

	ctx := logging.WithReport(c.Request.Context(), string(mode))

	view, err := h.service.Render(ctx, mode, q.Filter())
	if err != nil {
		dto.HandleError(c, err)
		return nil, false
	}

	return view, true
}

// RegisterReportRoutes registers report routes on the given router group.
func (h *ReportHandler) RegisterReportRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("", h.ListReports)
	reports.GET("/:report", h.GetReport)
	reports.GET("/:report/export", h.ExportReport)
}
