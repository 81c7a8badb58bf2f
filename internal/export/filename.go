package export

import (
	"fmt"

	"presupuesto/internal/analytics"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// Filename builds the download name for an export of the given format.
func Filename(format string, w analytics.Window) string {
	switch format {
	case FormatCSV:
		return fmt.Sprintf("expenses_%s_%s.csv", w.Start, w.End)
	case FormatXLSX:
		return fmt.Sprintf("export_%s_%s.xlsx", w.Start, w.End)
	default:
		return fmt.Sprintf("export_%s_%s.%s", w.Start, w.End, format)
	}
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}
