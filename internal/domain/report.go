package domain

import (
	"fmt"
	"math"
	"strings"
)

// ReportMode identifies one of the six dashboard reports by its URL slug.
type ReportMode string

// Report modes, in sidebar order.
const (
	ReportHighlightWines     ReportMode = "highlight-10-wines"
	ReportTasteKeywords      ReportMode = "wines-with-taste-keywords"
	ReportTopGrapes          ReportMode = "top-5-wines-for-top-3-grapes"
	ReportCabernetSauvignon  ReportMode = "top-5-wines-with-cabernet-sauvignon"
	ReportCountryLeaderboard ReportMode = "country-leaderboards"
	ReportFocusOnArgentina   ReportMode = "focus-on-argentina"
)

var reportTitles = map[ReportMode]string{
	ReportHighlightWines:     "Highlight 10 wines",
	ReportTasteKeywords:      "Wines with taste keywords",
	ReportTopGrapes:          "Top 5 wines for top 3 grapes",
	ReportCabernetSauvignon:  "Top 5 wines with Cabernet Sauvignon",
	ReportCountryLeaderboard: "Country Leaderboards",
	ReportFocusOnArgentina:   "Focus on Argentina",
}

// Pre-rendered images, relative to the configured images directory.
const (
	CountryLeaderboardImage = "CountryLeaderboard.png"
	FocusOnArgentinaImage   = "FocusOnArgentina.png"
)

var reportImages = map[ReportMode]string{
	ReportCountryLeaderboard: CountryLeaderboardImage,
	ReportFocusOnArgentina:   FocusOnArgentinaImage,
}

// ImageNames returns the file names of every pre-rendered report image.
func ImageNames() []string {
	return []string{CountryLeaderboardImage, FocusOnArgentinaImage}
}

// ImageName returns the pre-rendered image shown by the mode, or "" when the
// mode is query-backed.
func (m ReportMode) ImageName() string {
	return reportImages[m]
}

// Kind returns how the mode is presented.
func (m ReportMode) Kind() ReportKind {
	switch m {
	case ReportHighlightWines:
		return KindTable
	case ReportCountryLeaderboard, ReportFocusOnArgentina:
		return KindImage
	default:
		return KindChart
	}
}

// ReportModes returns every report mode in sidebar order.
func ReportModes() []ReportMode {
	return []ReportMode{
		ReportHighlightWines,
		ReportTasteKeywords,
		ReportTopGrapes,
		ReportCabernetSauvignon,
		ReportCountryLeaderboard,
		ReportFocusOnArgentina,
	}
}

// DefaultReportMode is selected when no mode is requested.
const DefaultReportMode = ReportHighlightWines

// Title returns the literal sidebar label of the mode.
func (m ReportMode) Title() string {
	return reportTitles[m]
}

// ParseReportMode accepts either a slug or the literal sidebar label.
// An empty value yields the default mode.
func ParseReportMode(raw string) (ReportMode, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultReportMode, nil
	}

	for _, m := range ReportModes() {
		if raw == string(m) || raw == m.Title() {
			return m, nil
		}
	}

	return "", NewValidationErrorWithValue("report", "unknown report", raw)
}

// Slider describes a numeric filter widget.
type Slider struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Slider names double as query parameter names.
const (
	SliderMinRatingsCount   = "min_count"
	SliderMinRatingsAverage = "min_ratings"
	SliderMaxPrice          = "max_price"
)

// Widgets of the highlight report, in display order.
var (
	MinRatingsCountSlider = Slider{
		Name: SliderMinRatingsCount, Label: "Minimum Ratings Count",
		Min: 0, Max: 37000, Step: 100, Default: 30,
	}
	MinRatingsAverageSlider = Slider{
		Name: SliderMinRatingsAverage, Label: "Minimum Ratings Average",
		Min: 0, Max: 5, Step: 0.1, Default: 0,
	}
	MaxPriceSlider = Slider{
		Name: SliderMaxPrice, Label: "Maximum Price (Euros)",
		Min: 0, Max: 100, Step: 1, Default: 100,
	}
)

// Sliders returns the widgets shown for the mode. Only the highlight report has any.
func (m ReportMode) Sliders() []Slider {
	if m != ReportHighlightWines {
		return nil
	}

	return []Slider{MinRatingsCountSlider, MinRatingsAverageSlider, MaxPriceSlider}
}

// Contains reports whether v lies within the slider bounds.
func (s Slider) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= s.Min && v <= s.Max
}

// HighlightFilter holds the thresholds of the highlight report.
type HighlightFilter struct {
	MinRatingsAverage float64
	MaxPrice          float64
	MinRatingsCount   float64
}

// DefaultHighlightFilter returns the slider defaults.
func DefaultHighlightFilter() HighlightFilter {
	return HighlightFilter{
		MinRatingsAverage: MinRatingsAverageSlider.Default,
		MaxPrice:          MaxPriceSlider.Default,
		MinRatingsCount:   MinRatingsCountSlider.Default,
	}
}

// Validate checks every threshold against its slider bounds.
func (f HighlightFilter) Validate() error {
	checks := []struct {
		slider Slider
		value  float64
	}{
		{MinRatingsCountSlider, f.MinRatingsCount},
		{MinRatingsAverageSlider, f.MinRatingsAverage},
		{MaxPriceSlider, f.MaxPrice},
	}

	for _, c := range checks {
		if !c.slider.Contains(c.value) {
			return NewValidationErrorWithValue(
				c.slider.Name,
				fmt.Sprintf("must be between %g and %g", c.slider.Min, c.slider.Max),
				c.value,
			)
		}
	}

	return nil
}

// Matches applies the highlight thresholds to a row.
// The rating count bound is exclusive, the same predicate the query uses.
func (f HighlightFilter) Matches(v HighlightedVintage) bool {
	return v.RatingsAverage >= f.MinRatingsAverage &&
		v.PriceEuros <= f.MaxPrice &&
		float64(v.RatingsCount) > f.MinRatingsCount
}

// ReportKind is how a report is presented.
type ReportKind string

// Report kinds.
const (
	KindTable ReportKind = "table"
	KindChart ReportKind = "chart"
	KindImage ReportKind = "image"
)

// Image references a pre-rendered report image.
type Image struct {
	Name string `json:"name"`
	Path string `json:"-"`
}

// ReportView is the rendered outcome of one report.
type ReportView struct {
	Mode     ReportMode `json:"mode"`
	Title    string     `json:"title"`
	Kind     ReportKind `json:"kind"`
	Headings []string   `json:"headings,omitempty"`
	Sliders  []Slider   `json:"sliders,omitempty"`
	Table    *Table     `json:"table,omitempty"`
	Chart    *Chart     `json:"chart,omitempty"`
	Image    *Image     `json:"image,omitempty"`
}

// Value returns the threshold bound to the named slider.
func (f HighlightFilter) Value(name string) float64 {
	switch name {
	case SliderMinRatingsCount:
		return f.MinRatingsCount
	case SliderMinRatingsAverage:
		return f.MinRatingsAverage
	case SliderMaxPrice:
		return f.MaxPrice
	default:
		return 0
	}
}
