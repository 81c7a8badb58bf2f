package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"presupuesto/internal/analytics"
)

const (
	sheetExpenses = "Expenses"
	sheetIncome   = "Income"
	sheetSummary  = "Summary"

	amountFormat = "#,##0.00"
)

// WriteXLSX renders the export as a workbook with Expenses, Income (when
// present) and Summary sheets. Amounts are numeric cells.
func WriteXLSX(w io.Writer, data *analytics.ExportData) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#34495E"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	numFmt := amountFormat
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("create amount style: %w", err)
	}
	st := styles{header: headerStyle, amount: amountStyle}

	if err := f.SetSheetName("Sheet1", sheetExpenses); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeExpenseSheet(f, st, data); err != nil {
		return err
	}
	if len(data.Income) > 0 {
		if _, err := f.NewSheet(sheetIncome); err != nil {
			return fmt.Errorf("create income sheet: %w", err)
		}
		if err := writeIncomeSheet(f, st, data); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, st, data); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

type styles struct {
	header int
	amount int
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write %s header: %w", sheet, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeExpenseSheet(f *excelize.File, st styles, data *analytics.ExportData) error {
	if err := writeHeader(f, sheetExpenses, expenseHeader, st.header); err != nil {
		return err
	}
	for i, e := range data.Expenses {
		row := i + 2
		values := []any{e.Date.String(), string(e.Type), categoryLabel(e), Clean(e.Description), e.Amount.Decimal().InexactFloat64(), Clean(e.Notes)}
		if err := setRow(f, sheetExpenses, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetExpenses, cell("E", row), cell("E", row), st.amount); err != nil {
			return fmt.Errorf("style expense amount: %w", err)
		}
	}
	return f.SetColWidth(sheetExpenses, "A", "F", 18)
}

func writeIncomeSheet(f *excelize.File, st styles, data *analytics.ExportData) error {
	if err := writeHeader(f, sheetIncome, incomeHeader, st.header); err != nil {
		return err
	}
	for i, inc := range data.Income {
		row := i + 2
		values := []any{inc.Date.String(), Clean(inc.Source), inc.Amount.Decimal().InexactFloat64(), yesNo(inc.IsRecurring), string(inc.Frequency), Clean(inc.Notes)}
		if err := setRow(f, sheetIncome, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetIncome, cell("C", row), cell("C", row), st.amount); err != nil {
			return fmt.Errorf("style income amount: %w", err)
		}
	}
	return f.SetColWidth(sheetIncome, "A", "F", 18)
}

func writeSummarySheet(f *excelize.File, st styles, data *analytics.ExportData) error {
	if err := writeHeader(f, sheetSummary, summaryHeader, st.header); err != nil {
		return err
	}
	s := data.Summary
	rows := [][]any{
		{"Start date", data.Period.Start.String()},
		{"End date", data.Period.End.String()},
		{"Total income", s.Income.Total.Decimal().InexactFloat64()},
		{"Total expenses", s.Expenses.Total.Decimal().InexactFloat64()},
		{"Balance", s.Balance.Decimal().InexactFloat64()},
	}
	for i, values := range rows {
		row := i + 2
		if err := setRow(f, sheetSummary, row, values); err != nil {
			return err
		}
		if i >= 2 {
			if err := f.SetCellStyle(sheetSummary, cell("B", row), cell("B", row), st.amount); err != nil {
				return fmt.Errorf("style summary amount: %w", err)
			}
		}
	}
	return f.SetColWidth(sheetSummary, "A", "B", 20)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
