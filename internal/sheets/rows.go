package sheets

import (
	"fmt"
	"regexp"
	"strings"

	"presupuesto/internal/analytics"
	"presupuesto/internal/export"
)

const maxTitleLength = 100

var invalidTitleChars = regexp.MustCompile(`[\[\]\*\?/\\:']`)

// ExportRows flattens an export into spreadsheet rows: each block starts
// with its section name and header and blocks are separated by an empty row.
func ExportRows(data *analytics.ExportData) [][]interface{} {
	var rows [][]interface{}
	for i, t := range export.Tables(data) {
		if i > 0 {
			rows = append(rows, []interface{}{})
		}
		rows = append(rows, []interface{}{t.Name}, toRow(t.Header))
		for _, r := range t.Rows {
			rows = append(rows, toRow(r))
		}
	}
	return rows
}

// ExportTitle names the tab for one export job.
func ExportTitle(userID int64, w analytics.Window, jobID string) string {
	short := jobID
	if len(short) > 8 {
		short = short[:8]
	}
	return SanitizeTitle(fmt.Sprintf("Export %d %s %s %s", userID, w.Start, w.End, short))
}

// SanitizeTitle removes characters Sheets rejects in tab names and caps
// the length.
func SanitizeTitle(s string) string {
	s = strings.TrimSpace(invalidTitleChars.ReplaceAllString(s, " "))
	if s == "" {
		s = "Export"
	}
	if r := []rune(s); len(r) > maxTitleLength {
		s = string(r[:maxTitleLength])
	}
	return s
}

func toRow(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
