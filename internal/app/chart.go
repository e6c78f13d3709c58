package app

import (
	"fmt"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

// chartColors is the series palette, assigned in first-seen group order.
var chartColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildHistogram aggregates the y column of a table into a stacked categorical
// histogram: one bar per distinct x value, one segment per distinct color
// value. Categories and series keep the order in which they first appear.
// agg is domain.AggregateSum or domain.AggregateAvg.
func BuildHistogram(t *domain.Table, x, y, color, agg string) (*domain.Chart, error) {
	if agg != domain.AggregateSum && agg != domain.AggregateAvg {
		return nil, fmt.Errorf("unsupported aggregate %q", agg)
	}

	xi, yi, ci := t.ColumnIndex(x), t.ColumnIndex(y), t.ColumnIndex(color)
	for name, idx := range map[string]int{x: xi, y: yi, color: ci} {
		if idx < 0 {
			return nil, fmt.Errorf("table has no column %q", name)
		}
	}

	type cell struct {
		sum   float64
		count int
	}

	var (
		categories []string
		groups     []string
		catIndex   = make(map[string]int)
		grpIndex   = make(map[string]int)
		cells      = make(map[[2]int]*cell)
	)

	for rowNum, row := range t.Rows {
		cat := fmt.Sprint(row[xi])
		grp := fmt.Sprint(row[ci])

		v, ok := toFloat(row[yi])
		if !ok {
			return nil, fmt.Errorf("row %d: column %q is not numeric: %v", rowNum, y, row[yi])
		}

		c, seen := catIndex[cat]
		if !seen {
			c = len(categories)
			catIndex[cat] = c
			categories = append(categories, cat)
		}

		g, seen := grpIndex[grp]
		if !seen {
			g = len(groups)
			grpIndex[grp] = g
			groups = append(groups, grp)
		}

		key := [2]int{c, g}
		if cells[key] == nil {
			cells[key] = &cell{}
		}

		cells[key].sum += v
		cells[key].count++
	}

	series := make([]domain.ChartSeries, len(groups))
	for g, name := range groups {
		values := make([]float64, len(categories))

		for c := range categories {
			acc := cells[[2]int{c, g}]
			if acc == nil {
				continue
			}

			values[c] = acc.sum
			if agg == domain.AggregateAvg {
				values[c] = acc.sum / float64(acc.count)
			}
		}

		series[g] = domain.ChartSeries{
			Name:   name,
			Color:  chartColors[g%len(chartColors)],
			Values: values,
		}
	}

	return &domain.Chart{
		XLabel:     x,
		YLabel:     y,
		ColorLabel: color,
		Aggregate:  agg,
		Categories: categories,
		Series:     series,
	}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
