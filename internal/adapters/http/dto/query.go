package dto

import "github.com/jsamuelsen/wine-dashboard/internal/domain"

// ReportQuery carries the dashboard widget values. Slider parameters are
// optional; absent values take the slider default.
type ReportQuery struct {
	Report     string   `form:"report"      json:"report"                validate:"omitempty,report"`
	MinCount   *float64 `form:"min_count"   json:"min_count,omitempty"   validate:"omitempty,gte=0,lte=37000"`
	MinRatings *float64 `form:"min_ratings" json:"min_ratings,omitempty" validate:"omitempty,gte=0,lte=5"`
	MaxPrice   *float64 `form:"max_price"   json:"max_price,omitempty"   validate:"omitempty,gte=0,lte=100"`
	Format     string   `form:"format"      json:"format,omitempty"      validate:"omitempty,oneof=csv xlsx CSV XLSX"`
}

// Mode parses the selected report. An empty selection is the default report.
func (q *ReportQuery) Mode() (domain.ReportMode, error) {
	return domain.ParseReportMode(q.Report)
}

// Filter returns the highlight thresholds, defaulting missing sliders.
func (q *ReportQuery) Filter() domain.HighlightFilter {
	f := domain.DefaultHighlightFilter()

	if q.MinCount != nil {
		f.MinRatingsCount = *q.MinCount
	}

	if q.MinRatings != nil {
		f.MinRatingsAverage = *q.MinRatings
	}

	if q.MaxPrice != nil {
		f.MaxPrice = *q.MaxPrice
	}

	return f
}

// Validate checks the thresholds against the slider bounds.
func (q *ReportQuery) Validate() error {
	return q.Filter().Validate()
}

// ReportSummary describes one entry of the report list.
type ReportSummary struct {
	Slug    string          `json:"slug"`
	Title   string          `json:"title"`
	Kind    string          `json:"kind"`
	Sliders []domain.Slider `json:"sliders,omitempty"`
}

// NewReportSummaries lists every report in sidebar order.
func NewReportSummaries() []ReportSummary {
	modes := domain.ReportModes()
	out := make([]ReportSummary, 0, len(modes))

	for _, m := range modes {
		out = append(out, ReportSummary{
			Slug:    string(m),
			Title:   m.Title(),
			Kind:    string(m.Kind()),
			Sliders: m.Sliders(),
		})
	}

	return out
}
