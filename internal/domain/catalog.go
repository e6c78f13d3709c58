package domain

// Default report constants. Each is overridable through the reports.* configuration keys.
var (
	// DefaultTopGrapeIDs are the three most common grapes globally.
	DefaultTopGrapeIDs = []int64{2, 5, 10}

	// DefaultTasteKeywords is the tasting-note set every selected wine must carry.
	DefaultTasteKeywords = []string{"coffee", "toast", "green apple", "cream", "citrus"}
)

const (
	// DefaultFeaturedGrapeID is Cabernet Sauvignon.
	DefaultFeaturedGrapeID int64 = 2

	// DefaultTasteKeywordMinCount is the exclusive lower bound on keyword occurrences.
	DefaultTasteKeywordMinCount = 10

	// DefaultTasteKeywordType restricts keyword links to a single keyword type.
	DefaultTasteKeywordType = "primary"

	// DefaultGrapeRankingMinCount is the exclusive lower bound on a wine's rating count.
	DefaultGrapeRankingMinCount = 2000

	// DefaultGrapeRankingLimit is the number of wines kept per grape.
	DefaultGrapeRankingLimit = 5

	// DefaultHighlightRowLimit is the number of rows shown by the highlight report.
	DefaultHighlightRowLimit = 10
)

// Catalog carries the fixed identifiers and thresholds used by the reports.
type Catalog struct {
	TopGrapeIDs          []int64
	FeaturedGrapeID      int64
	TasteKeywords        []string
	TasteKeywordMinCount int
	TasteKeywordType     string
	GrapeRankingMinCount int
	GrapeRankingLimit    int
	HighlightRowLimit    int
}

// DefaultCatalog returns the catalog with the dataset's standard identifiers.
func DefaultCatalog() Catalog {
	return Catalog{
		TopGrapeIDs:          append([]int64(nil), DefaultTopGrapeIDs...),
		FeaturedGrapeID:      DefaultFeaturedGrapeID,
		TasteKeywords:        append([]string(nil), DefaultTasteKeywords...),
		TasteKeywordMinCount: DefaultTasteKeywordMinCount,
		TasteKeywordType:     DefaultTasteKeywordType,
		GrapeRankingMinCount: DefaultGrapeRankingMinCount,
		GrapeRankingLimit:    DefaultGrapeRankingLimit,
		HighlightRowLimit:    DefaultHighlightRowLimit,
	}
}

// TasteKeywordQuery parameterizes the taste-keyword co-occurrence query.
type TasteKeywordQuery struct {
	Keywords    []string
	MinCount    int
	KeywordType string
}

// TasteKeywordQuery derives the keyword query parameters from the catalog.
func (c Catalog) TasteKeywordQuery() TasteKeywordQuery {
	return TasteKeywordQuery{
		Keywords:    c.TasteKeywords,
		MinCount:    c.TasteKeywordMinCount,
		KeywordType: c.TasteKeywordType,
	}
}

// GrapeRankingQuery parameterizes one arm of the per-grape ranking.
type GrapeRankingQuery struct {
	MinRatingsCount int
	Limit           int
}

// GrapeRankingQuery derives the ranking parameters from the catalog.
func (c Catalog) GrapeRankingQuery() GrapeRankingQuery {
	return GrapeRankingQuery{
		MinRatingsCount: c.GrapeRankingMinCount,
		Limit:           c.GrapeRankingLimit,
	}
}
