package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

// Query names used for spans, logs and metric labels.
const (
	queryHighlightedWines  = "highlighted_wines"
	queryTasteKeywordWines = "taste_keyword_wines"
	queryTopWinesForGrape  = "top_wines_for_grape"
)

const highlightedWinesSQL = `
SELECT v.id, v.name, v.ratings_average, v.year, v.price_euros, v.ratings_count, w.url
FROM vintages AS v
JOIN wines AS w ON v.wine_id = w.id
WHERE v.ratings_average >= ?
  AND v.price_euros <= ?
  AND v.ratings_count > ?
  AND v.year IS NOT NULL
  AND v.year != '` + domain.NonVintageLabel + `'
  AND v.price_discounted_from IS NULL
ORDER BY v.price_euros, v.id`

// HighlightedWines implements ports.WineRepository.
func (s *Store) HighlightedWines(ctx context.Context, filter domain.HighlightFilter) (result []domain.HighlightedVintage, err error) {
	ctx, done := s.instrument(ctx, queryHighlightedWines)
	defer func() { done(len(result), err) }()

	rows, err := s.db.QueryContext(ctx, highlightedWinesSQL,
		filter.MinRatingsAverage, filter.MaxPrice, filter.MinRatingsCount)
	if err != nil {
		return nil, fmt.Errorf("querying highlighted wines: %w", err)
	}
	defer rows.Close()

	result = make([]domain.HighlightedVintage, 0)
	for rows.Next() {
		var (
			v    domain.HighlightedVintage
			year sql.NullString
			url  sql.NullString
		)

		if err := rows.Scan(&v.ID, &v.VintageName, &v.RatingsAverage, &year, &v.PriceEuros, &v.RatingsCount, &url); err != nil {
			return nil, fmt.Errorf("scanning highlighted wine: %w", err)
		}

		v.Year = domain.ParseYear(year.String)
		if !v.Year.Valid {
			s.logger.DebugContext(ctx, "skipping vintage with unparsable year",
				slog.Int64("vintage_id", v.ID),
				slog.String("year", year.String),
			)

			continue
		}

		v.URL = url.String
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating highlighted wines: %w", err)
	}

	return result, nil
}

// tasteKeywordSQL builds the two-phase keyword query for n keywords.
// The inner query keeps wines where every keyword passes the count and
// type filters; the outer query sums occurrences per wine name and keyword
// group. Links without a group never count. A group spanning several
// keywords is labelled with the alphabetically first one.
func tasteKeywordSQL(n int) string {
	in := placeholders(n)

	having := make([]string, n)
	for i := range having {
		having[i] = "SUM(CASE WHEN k.name = ? THEN 1 ELSE 0 END) > 0"
	}

	return `
SELECT w.name, kw.group_name || '(' || MIN(k.name) || ')' AS group_label, SUM(kw.count)
FROM wines AS w
JOIN keywords_wine AS kw ON kw.wine_id = w.id
JOIN keywords AS k ON k.id = kw.keyword_id
WHERE w.id IN (
    SELECT kw.wine_id
    FROM keywords_wine AS kw
    JOIN keywords AS k ON k.id = kw.keyword_id
    WHERE k.name IN (` + in + `)
      AND kw.count > ?
      AND kw.keyword_type = ?
      AND kw.group_name IS NOT NULL
    GROUP BY kw.wine_id
    HAVING ` + strings.Join(having, "\n       AND ") + `
)
  AND k.name IN (` + in + `)
  AND kw.count > ?
  AND kw.keyword_type = ?
  AND kw.group_name IS NOT NULL
GROUP BY w.name, kw.group_name
ORDER BY w.name, kw.group_name`
}

func tasteKeywordArgs(q domain.TasteKeywordQuery) []any {
	args := make([]any, 0, 3*len(q.Keywords)+4)

	for _, k := range q.Keywords {
		args = append(args, k)
	}

	args = append(args, q.MinCount, q.KeywordType)

	for _, k := range q.Keywords {
		args = append(args, k)
	}

	for _, k := range q.Keywords {
		args = append(args, k)
	}

	return append(args, q.MinCount, q.KeywordType)
}

// TasteKeywordWines implements ports.WineRepository.
func (s *Store) TasteKeywordWines(ctx context.Context, q domain.TasteKeywordQuery) (result []domain.TasteKeywordRow, err error) {
	if len(q.Keywords) == 0 {
		return nil, domain.NewValidationError("keywords", "at least one keyword is required")
	}

	ctx, done := s.instrument(ctx, queryTasteKeywordWines)
	defer func() { done(len(result), err) }()

	rows, err := s.db.QueryContext(ctx, tasteKeywordSQL(len(q.Keywords)), tasteKeywordArgs(q)...)
	if err != nil {
		return nil, fmt.Errorf("querying taste keyword wines: %w", err)
	}
	defer rows.Close()

	result = make([]domain.TasteKeywordRow, 0)
	for rows.Next() {
		var r domain.TasteKeywordRow
		if err := rows.Scan(&r.WineName, &r.GroupLabel, &r.Count); err != nil {
			return nil, fmt.Errorf("scanning taste keyword row: %w", err)
		}

		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating taste keyword rows: %w", err)
	}

	return result, nil
}

const topWinesForGrapeSQL = `
SELECT w.name, w.ratings_average, w.ratings_count, g.name
FROM wines AS w
JOIN regions AS r ON r.id = w.region_id
JOIN countries AS c ON c.code = r.country_code
JOIN most_used_grapes_per_country AS mg ON mg.country_code = c.code
JOIN grapes AS g ON g.id = mg.grape_id
WHERE mg.grape_id = ?
  AND w.ratings_count > ?
ORDER BY w.ratings_average DESC, w.ratings_count DESC, w.id
LIMIT ?`

// TopWinesForGrape implements ports.WineRepository.
func (s *Store) TopWinesForGrape(ctx context.Context, grapeID int64, q domain.GrapeRankingQuery) (result []domain.GrapeRanking, err error) {
	ctx, done := s.instrument(ctx, queryTopWinesForGrape)
	defer func() { done(len(result), err) }()

	rows, err := s.db.QueryContext(ctx, topWinesForGrapeSQL, grapeID, q.MinRatingsCount, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("querying top wines for grape %d: %w", grapeID, err)
	}
	defer rows.Close()

	result = make([]domain.GrapeRanking, 0, q.Limit)
	for rows.Next() {
		var r domain.GrapeRanking
		if err := rows.Scan(&r.WineName, &r.RatingsAverage, &r.RatingsCount, &r.GrapeName); err != nil {
			return nil, fmt.Errorf("scanning grape ranking: %w", err)
		}

		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grape rankings: %w", err)
	}

	return result, nil
}

// TopWinesPerGrape implements ports.WineRepository. The arms are independent
// statements and run concurrently; results keep the order of grapeIDs.
func (s *Store) TopWinesPerGrape(ctx context.Context, grapeIDs []int64, q domain.GrapeRankingQuery) ([]domain.GrapeRanking, error) {
	arms := make([][]domain.GrapeRanking, len(grapeIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range grapeIDs {
		g.Go(func() error {
			rows, err := s.TopWinesForGrape(gctx, id, q)
			if err != nil {
				return err
			}

			arms[i] = rows

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]domain.GrapeRanking, 0, len(grapeIDs)*q.Limit)
	for _, arm := range arms {
		result = append(result, arm...)
	}

	return result, nil
}

// placeholders returns n comma-separated bind markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
