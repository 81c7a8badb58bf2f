package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"presupuesto/internal/core"
)

// Dashboard summarises income, expenses and top categories for the window.
// Empty bounds default to the current month up to today.
func (e *Engine) Dashboard(ctx context.Context, userID int64, start, end string) (*DashboardSummary, error) {
	w, err := NormalizeWindow(start, end, e.now())
	if err != nil {
		return nil, err
	}
	return e.summarize(ctx, userID, w)
}

func (e *Engine) summarize(ctx context.Context, userID int64, w Window) (*DashboardSummary, error) {
	var (
		expenses []core.Expense
		income   []core.Income
		cats     []core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := e.store.QueryExpenses(gctx, userID, w.expenseFilter())
		if err != nil {
			return fmt.Errorf("query expenses: %w", err)
		}
		expenses = rows
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.QueryIncome(gctx, userID, w.incomeFilter())
		if err != nil {
			return fmt.Errorf("query income: %w", err)
		}
		income = rows
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
	if err := g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "Dashboard query failed", "user_id", userID, "window", w.String(), "error", err)
		return nil, err
	}

	s := buildSummary(w, expenses, income, cats)
	e.logger.DebugContext(ctx, "Dashboard computed",
		"user_id", userID,
		"window", w.String(),
		"expenses", len(expenses),
		"income", len(income),
	)
	return s, nil
}

func buildSummary(w Window, expenses []core.Expense, income []core.Income, cats []core.Category) *DashboardSummary {
	s := &DashboardSummary{
		Period:        w,
		TopCategories: []CategoryTotal{},
	}

	inc := sumIncome(income)
	var recurring tally
	for _, i := range income {
		if i.IsRecurring {
			recurring.add(i.Amount)
		}
	}
	s.Income = IncomeSummary{
		Total:          inc.total,
		Count:          inc.count,
		Average:        inc.average(),
		RecurringTotal: recurring.total,
		RecurringCount: recurring.count,
	}

	byType := tallyByType(expenses)
	s.Expenses.ByType = make([]TypeBreakdown, 0, len(byType))
	for _, typ := range sortedKeys(byType) {
		t := byType[typ]
		s.Expenses.ByType = append(s.Expenses.ByType, TypeBreakdown{
			Type:    typ,
			Count:   t.count,
			Total:   t.total,
			Average: t.average(),
		})
	}
	s.Expenses.Total = sumExpenses(expenses).total
	s.Balance = s.Income.Total.Sub(s.Expenses.Total)

	idx := categoryIndex(cats)
	tallies := categoryTallies(expenses, idx)
	for _, id := range rankCategories(tallies) {
		if len(s.TopCategories) == topCategoryLimit {
			break
		}
		c := idx[id]
		s.TopCategories = append(s.TopCategories, CategoryTotal{
			ID:           c.ID,
			Name:         c.Name,
			Color:        c.Color,
			Icon:         c.Icon,
			ExpenseCount: tallies[id].count,
			TotalAmount:  tallies[id].total,
		})
	}
	return s
}
