// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Map a report mode and widget values to one query
//   - Reshape query rows into labeled tables and charts
//   - Handle cross-cutting concerns (logging, render metrics)
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters)
//   - SQL (that's the sqlite adapter)
//   - Core domain rules (that's the domain layer)
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/metrics"
	"github.com/jsamuelsen/wine-dashboard/internal/ports"
)

// Column labels of the report tables.
var (
	HighlightColumns    = []string{"id", "vintage_name", "ratings_average", "year", "price_euros", "ratings_count", "url"}
	TasteKeywordColumns = []string{"name_wine", "group_name", "count"}
	GrapeRankingColumns = []string{"wine", "ratings_average", "ratings_count", "grape"}
)

var reportHeadings = map[domain.ReportMode][]string{
	domain.ReportTasteKeywords: {
		"Wines that have all identified primary keywords provided in the data.",
		`Conclusion is that this mainly serves for "Brute Champagne" wines`,
	},
	domain.ReportTopGrapes: {
		"The 5 best rated wines, based on the top 3 most common grapes gloabally.",
	},
	domain.ReportCabernetSauvignon: {
		"This is specially for our VIP client.",
		`It shows our selection of the top 5 recommended wines of "Cabernet Sauvignon".`,
	},
	domain.ReportCountryLeaderboard: {"Country Leaderboards"},
	domain.ReportFocusOnArgentina:   {"Country Leaderboards"},
}

// ReportService renders dashboard reports. It holds no per-request state:
// every render is a function of the mode and the widget values.
type ReportService struct {
	repo    ports.WineRepository
	images  ports.ImageStore
	catalog domain.Catalog
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// ReportServiceConfig contains the dependencies of the report service.
type ReportServiceConfig struct {
	Repository ports.WineRepository
	Images     ports.ImageStore
	Catalog    *domain.Catalog // nil uses domain.DefaultCatalog
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// NewReportService creates a report service. It panics when the repository or
// image store is missing.
func NewReportService(cfg ReportServiceConfig) *ReportService {
	if cfg.Repository == nil {
		panic("app: NewReportService requires a Repository")
	}

	if cfg.Images == nil {
		panic("app: NewReportService requires an Images store")
	}

	catalog := domain.DefaultCatalog()
	if cfg.Catalog != nil {
		catalog = *cfg.Catalog
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ReportService{
		repo:    cfg.Repository,
		images:  cfg.Images,
		catalog: catalog,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// Sliders returns the widgets shown for the mode.
func (s *ReportService) Sliders(mode domain.ReportMode) []domain.Slider {
	return mode.Sliders()
}

// Render produces the view of one report. The filter is only read by the
// highlight report.
func (s *ReportService) Render(
	ctx context.Context,
	mode domain.ReportMode,
	filter domain.HighlightFilter,
) (*domain.ReportView, error) {
	logger := logging.FromContextOr(ctx, s.logger).With(slog.String("report", string(mode)))

	view := &domain.ReportView{
		Mode:     mode,
		Title:    mode.Title(),
		Kind:     mode.Kind(),
		Headings: reportHeadings[mode],
		Sliders:  mode.Sliders(),
	}

	var err error

	switch mode {
	case domain.ReportHighlightWines:
		view.Table, err = s.highlightTable(ctx, filter)
	case domain.ReportTasteKeywords:
		view.Table, view.Chart, err = s.tasteKeywordChart(ctx)
	case domain.ReportTopGrapes:
		view.Table, view.Chart, err = s.grapeChart(ctx, s.catalog.TopGrapeIDs, domain.AggregateAvg)
	case domain.ReportCabernetSauvignon:
		view.Table, view.Chart, err = s.grapeChart(ctx, []int64{s.catalog.FeaturedGrapeID}, domain.AggregateSum)
	case domain.ReportCountryLeaderboard, domain.ReportFocusOnArgentina:
		view.Image, err = s.images.Resolve(ctx, mode.ImageName())
	default:
		err = domain.NewValidationErrorWithValue("report", "unknown report", string(mode))
	}

	if err != nil {
		logger.ErrorContext(ctx, "failed to render report", slog.Any("error", err))
		return nil, fmt.Errorf("rendering %s: %w", mode, err)
	}

	s.metrics.IncReportRendered(string(mode), string(view.Kind))

	logger.DebugContext(ctx, "rendered report", slog.String("kind", string(view.Kind)))

	return view, nil
}

// highlightTable re-applies the thresholds to the query rows and keeps the
// first HighlightRowLimit of them.
func (s *ReportService) highlightTable(ctx context.Context, filter domain.HighlightFilter) (*domain.Table, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.HighlightedWines(ctx, filter)
	if err != nil {
		return nil, err
	}

	t := domain.NewTable(HighlightColumns...)

	for _, v := range rows {
		if !filter.Matches(v) {
			continue
		}

		err := t.Append(v.ID, v.VintageName, v.RatingsAverage, v.Year.Value, v.PriceEuros, v.RatingsCount, v.URL)
		if err != nil {
			return nil, err
		}
	}

	return t.Head(s.catalog.HighlightRowLimit), nil
}

func (s *ReportService) tasteKeywordChart(ctx context.Context) (*domain.Table, *domain.Chart, error) {
	rows, err := s.repo.TasteKeywordWines(ctx, s.catalog.TasteKeywordQuery())
	if err != nil {
		return nil, nil, err
	}

	t := domain.NewTable(TasteKeywordColumns...)
	for _, r := range rows {
		if err := t.Append(r.WineName, r.GroupLabel, r.Count); err != nil {
			return nil, nil, err
		}
	}

	chart, err := BuildHistogram(t, "name_wine", "count", "group_name", domain.AggregateSum)
	if err != nil {
		return nil, nil, err
	}

	return t, chart, nil
}

func (s *ReportService) grapeChart(ctx context.Context, grapeIDs []int64, agg string) (*domain.Table, *domain.Chart, error) {
	query := s.catalog.GrapeRankingQuery()

	var (
		rows []domain.GrapeRanking
		err  error
	)

	if len(grapeIDs) == 1 {
		rows, err = s.repo.TopWinesForGrape(ctx, grapeIDs[0], query)
	} else {
		rows, err = s.repo.TopWinesPerGrape(ctx, grapeIDs, query)
	}

	if err != nil {
		return nil, nil, err
	}

	t := domain.NewTable(GrapeRankingColumns...)
	for _, r := range rows {
		if err := t.Append(r.WineName, r.RatingsAverage, r.RatingsCount, r.GrapeName); err != nil {
			return nil, nil, err
		}
	}

	chart, err := BuildHistogram(t, "wine", "ratings_average", "grape", agg)
	if err != nil {
		return nil, nil, err
	}

	return t, chart, nil
}
