// Package export writes report tables as downloadable CSV or XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

// Format is a download file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// ParseFormat validates a format query value. Empty defaults to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", domain.NewValidationErrorWithValue("format", "must be csv or xlsx", raw)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv; charset=utf-8"
}

// FileName returns the download name for a report.
func (f Format) FileName(mode domain.ReportMode) string {
	return fmt.Sprintf("%s.%s", mode, f)
}

// SheetName derives a valid worksheet name from a report mode.
func SheetName(mode domain.ReportMode) string {
	name := string(mode)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}

	return name
}

// Write encodes the table in the given format.
func Write(w io.Writer, format Format, mode domain.ReportMode, t *domain.Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, SheetName(mode), t)
	default:
		return domain.NewValidationErrorWithValue("format", "must be csv or xlsx", string(format))
	}
}

// WriteCSV writes a header row followed by one record per table row.
func WriteCSV(w io.Writer, t *domain.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, cell := range row {
			record[j] = formatCell(cell)
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteXLSX writes the table to a single worksheet with a styled header row.
func WriteXLSX(w io.Writer, sheet string, t *domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	f.SetActiveSheet(index)

	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("removing default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#7B1E3A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for col, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}

		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("writing header %q: %w", name, err)
		}

		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("styling header %q: %w", name, err)
		}
	}

	for r, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	for col := range t.Columns {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(sheet, name, name, 18); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}

	return nil
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(c, 10)
	case int:
		return strconv.Itoa(c)
	default:
		return fmt.Sprint(c)
	}
}
