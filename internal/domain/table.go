package domain

import "fmt"

// Table is a labeled row set. Every row has one cell per column.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable creates an empty table with the given column labels.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns, Rows: make([][]any, 0)}
}

// Append adds a row. The cell count must match the column count.
func (t *Table) Append(cells ...any) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}

	t.Rows = append(t.Rows, cells)

	return nil
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}

	return -1
}

// Head returns a table holding at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}

	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	return &Table{Columns: t.Columns, Rows: t.Rows[:n:n]}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Chart aggregation functions.
const (
	AggregateSum = "sum"
	AggregateAvg = "avg"
)

// Chart is a categorical histogram: one stacked bar per category,
// one segment per colour group.
type Chart struct {
	XLabel     string        `json:"xLabel"`
	YLabel     string        `json:"yLabel"`
	ColorLabel string        `json:"colorLabel"`
	Aggregate  string        `json:"aggregate"`
	Categories []string      `json:"categories"`
	Series     []ChartSeries `json:"series"`
}

// ChartSeries is one colour group. Values align with Chart.Categories;
// a category absent from the group has value 0.
type ChartSeries struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// CategoryTotal returns the stacked height of the category at index i.
func (c *Chart) CategoryTotal(i int) float64 {
	var total float64
	for _, s := range c.Series {
		if i < len(s.Values) {
			total += s.Values[i]
		}
	}

	return total
}

// MaxTotal returns the tallest stacked bar.
func (c *Chart) MaxTotal() float64 {
	var maxTotal float64
	for i := range c.Categories {
		if t := c.CategoryTotal(i); t > maxTotal {
			maxTotal = t
		}
	}

	return maxTotal
}
