package analytics

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"presupuesto/internal/core"
)

// Export assembles the window's raw records, newest first, together with
// the dashboard summary for the same window. Unknown export types fall back
// to ExportAll.
func (e *Engine) Export(ctx context.Context, userID int64, start, end, exportType string) (*ExportData, error) {
	w, err := NormalizeWindow(start, end, e.now())
	if err != nil {
		return nil, err
	}
	typ := ParseExportType(exportType)

	data := &ExportData{
		Period:   w,
		Type:     typ,
		Expenses: []ExportExpense{},
		Income:   []core.Income{},
	}

	var (
		expenses []core.Expense
		income   []core.Income
		cats     []core.Category
		summary  *DashboardSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	if typ.includesExpenses() {
		g.Go(func() error {
			rows, err := e.store.QueryExpenses(gctx, userID, w.expenseFilter())
			if err != nil {
				return fmt.Errorf("query expenses: %w", err)
			}
			expenses = rows
			return nil
		})
		g.Go(func() error {
			rows, err := e.store.QueryCategories(gctx, userID, core.CategoryFilter{})
			if err != nil {
				return fmt.Errorf("query categories: %w", err)
			}
			cats = rows
			return nil
		})
	}
	if typ.includesIncome() {
		g.Go(func() error {
			rows, err := e.store.QueryIncome(gctx, userID, w.incomeFilter())
			if err != nil {
				return fmt.Errorf("query income: %w", err)
			}
			income = rows
			return nil
		})
	}
	g.Go(func() error {
		s, err := e.summarize(gctx, userID, w)
		if err != nil {
			return err
		}
		summary = s
		return nil
	})
	if err := g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "Export query failed", "user_id", userID, "window", w.String(), "error", err)
		return nil, err
	}

	idx := categoryIndex(cats)
	for _, ex := range expenses {
		row := ExportExpense{Expense: ex}
		if ex.CategoryID != nil {
			if c, ok := idx[*ex.CategoryID]; ok {
				row.CategoryName = c.Name
				row.CategoryColor = c.Color
			}
		}
		data.Expenses = append(data.Expenses, row)
	}
	sort.SliceStable(data.Expenses, func(i, j int) bool {
		return newerFirst(data.Expenses[i].Date, data.Expenses[i].ID, data.Expenses[j].Date, data.Expenses[j].ID)
	})

	data.Income = append(data.Income, income...)
	sort.SliceStable(data.Income, func(i, j int) bool {
		return newerFirst(data.Income[i].Date, data.Income[i].ID, data.Income[j].Date, data.Income[j].ID)
	})

	data.Summary = *summary
	e.logger.DebugContext(ctx, "Export assembled",
		"user_id", userID,
		"window", w.String(),
		"type", string(typ),
		"expenses", len(data.Expenses),
		"income", len(data.Income),
	)
	return data, nil
}

func newerFirst(d1 core.Date, id1 int64, d2 core.Date, id2 int64) bool {
	if !d1.Equal(d2.Time) {
		return d1.After(d2.Time)
	}
	return id1 > id2
}
