package sheets

import (
	"strings"
	"testing"

	"presupuesto/internal/analytics"
	"presupuesto/internal/core"
)

func TestExportRows(t *testing.T) {
	w := analytics.Window{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 31)}
	data := &analytics.ExportData{
		Period: w,
		Expenses: []analytics.ExportExpense{{Expense: core.Expense{
			Type: core.Purchase, Amount: core.Money{Cents: 1234}, Description: "Book", Date: core.NewDate(2024, 1, 3),
		}}},
		Income:  []core.Income{},
		Summary: analytics.DashboardSummary{Period: w, Balance: core.Money{Cents: -1234}},
	}

	rows := ExportRows(data)
	if got := rows[0][0]; got != "EXPENSES" {
		t.Fatalf("first row should be the expense section, got %v", got)
	}
	if got := rows[2][4]; got != "12.34" {
		t.Fatalf("amount cell = %v, want 12.34", got)
	}
	if len(rows[3]) != 0 {
		t.Fatalf("expected blank separator row, got %v", rows[3])
	}
	if got := rows[4][0]; got != "SUMMARY" {
		t.Fatalf("income block should be skipped when empty, got %v", got)
	}
	last := rows[len(rows)-1]
	if last[0] != "Balance" || last[1] != "-12.34" {
		t.Fatalf("unexpected balance row %v", last)
	}
}

func TestSanitizeTitle(t *testing.T) {
	cases := map[string]string{
		"Export 1 2024-01-01":  "Export 1 2024-01-01",
		"a/b:c?":               "a b c",
		"   ":                  "Export",
		"[x]'y'":               "x  y",
		strings.Repeat("z", 150): strings.Repeat("z", 100),
	}
	for in, want := range cases {
		if got := SanitizeTitle(in); got != want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExportTitle(t *testing.T) {
	w := analytics.Window{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 31)}
	got := ExportTitle(7, w, "0f8fad5b-d9cb-469f-a165-70867728950e")
	if got != "Export 7 2024-01-01 2024-01-31 0f8fad5b" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestExportRowsKeepsFormulasLiteral(t *testing.T) {
	w := analytics.Window{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 31)}
	data := &analytics.ExportData{
		Period: w,
		Expenses: []analytics.ExportExpense{{Expense: core.Expense{
			Type: core.Purchase, Amount: core.Money{Cents: 100}, Description: `=IMPORTXML("http://x","//a")`,
			Notes: "+1", Date: core.NewDate(2024, 1, 3),
		}}},
		Summary: analytics.DashboardSummary{Period: w},
	}

	row := ExportRows(data)[2]
	if got := row[3]; got != `'=IMPORTXML("http://x","//a")` {
		t.Fatalf("description cell = %v", got)
	}
	if got := row[5]; got != "'+1" {
		t.Fatalf("notes cell = %v", got)
	}
}
