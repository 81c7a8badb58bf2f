// Package export renders assembled export data as CSV, XLSX or plain row
// tables. Encoders only see analytics.ExportData and never touch the store.
package export

import (
	"strings"
	"unicode"

	"presupuesto/internal/analytics"
)

const (
	SectionExpenses = "EXPENSES"
	SectionIncome   = "INCOME"
	SectionSummary  = "SUMMARY"

	uncategorized = "Uncategorized"

	formulaPrefixes = "=+-@"
)

// Table is one titled block of rows with a header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

var (
	expenseHeader = []string{"Date", "Type", "Category", "Description", "Amount", "Notes"}
	incomeHeader  = []string{"Date", "Source", "Amount", "Recurring", "Frequency", "Notes"}
	summaryHeader = []string{"Metric", "Value"}
)

// Tables lays the export out as expense, income and summary blocks. Expense
// and income blocks are left out when they have no rows.
func Tables(data *analytics.ExportData) []Table {
	var out []Table
	if len(data.Expenses) > 0 {
		t := Table{Name: SectionExpenses, Header: expenseHeader}
		for _, e := range data.Expenses {
			t.Rows = append(t.Rows, []string{
				e.Date.String(),
				string(e.Type),
				categoryLabel(e),
				Clean(e.Description),
				e.Amount.String(),
				Clean(e.Notes),
			})
		}
		out = append(out, t)
	}
	if len(data.Income) > 0 {
		t := Table{Name: SectionIncome, Header: incomeHeader}
		for _, i := range data.Income {
			t.Rows = append(t.Rows, []string{
				i.Date.String(),
				Clean(i.Source),
				i.Amount.String(),
				yesNo(i.IsRecurring),
				string(i.Frequency),
				Clean(i.Notes),
			})
		}
		out = append(out, t)
	}
	s := data.Summary
	out = append(out, Table{
		Name:   SectionSummary,
		Header: summaryHeader,
		Rows: [][]string{
			{"Start date", data.Period.Start.String()},
			{"End date", data.Period.End.String()},
			{"Total income", s.Income.Total.String()},
			{"Total expenses", s.Expenses.Total.String()},
			{"Balance", s.Balance.String()},
		},
	})
	return out
}

// Clean strips control characters and surrounding whitespace from free text.
// Text that a spreadsheet would evaluate as a formula is prefixed with a
// quote so it stays literal.
func Clean(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s != "" && strings.ContainsRune(formulaPrefixes, rune(s[0])) {
		s = "'" + s
	}
	return s
}

func categoryLabel(e analytics.ExportExpense) string {
	if e.CategoryName == "" {
		return uncategorized
	}
	return Clean(e.CategoryName)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
