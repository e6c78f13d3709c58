package domain

import (
	"strconv"
	"strings"
)

// NonVintageLabel is the sentinel the dataset stores in place of a year
// for undated bottlings.
const NonVintageLabel = "N.V."

// Year is an optional vintage year. Undated vintages have Valid == false.
type Year struct {
	Value int
	Valid bool
}

// ParseYear converts a stored year value into a Year.
// Empty strings, the N.V. sentinel and non-numeric values yield an absent year.
func ParseYear(raw string) Year {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NonVintageLabel {
		return Year{}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return Year{}
	}

	return Year{Value: v, Valid: true}
}

// String returns the year as text, or the N.V. label when absent.
func (y Year) String() string {
	if !y.Valid {
		return NonVintageLabel
	}

	return strconv.Itoa(y.Value)
}

// HighlightedVintage is one row of the highlighted wines report:
// a dated, non-discounted vintage joined to its wine.
type HighlightedVintage struct {
	ID             int64
	VintageName    string
	RatingsAverage float64
	Year           Year
	PriceEuros     float64
	RatingsCount   int64
	URL            string
}

// TasteKeywordRow is the summed occurrence count of one keyword group for one wine.
type TasteKeywordRow struct {
	WineName   string
	GroupLabel string
	Count      int64
}

// GrapeRanking is a wine ranked within the most-used grape of its country.
type GrapeRanking struct {
	WineName       string
	RatingsAverage float64
	RatingsCount   int64
	GrapeName      string
}
