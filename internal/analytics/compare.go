package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Compare computes income, expense and balance metrics for two windows and
// the change from the first to the second.
func (e *Engine) Compare(ctx context.Context, userID int64, in ComparisonInput) (*ComparisonReport, error) {
	for _, s := range []string{in.Period1Start, in.Period1End, in.Period2Start, in.Period2End} {
		if s == "" {
			return nil, ErrMissingComparisonWindow
		}
	}
	now := e.now()
	w1, err := NormalizeWindow(in.Period1Start, in.Period1End, now)
	if err != nil {
		return nil, fmt.Errorf("period 1: %w", err)
	}
	w2, err := NormalizeWindow(in.Period2Start, in.Period2End, now)
	if err != nil {
		return nil, fmt.Errorf("period 2: %w", err)
	}

	var p1, p2 PeriodMetrics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := e.periodMetrics(gctx, userID, w1)
		if err != nil {
			return err
		}
		p1 = m
		return nil
	})
	g.Go(func() error {
		m, err := e.periodMetrics(gctx, userID, w2)
		if err != nil {
			return err
		}
		p2 = m
		return nil
	})
	if err := g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "Compare query failed", "user_id", userID, "error", err)
		return nil, err
	}

	report := &ComparisonReport{
		Period1: p1,
		Period2: p2,
		Comparison: Comparison{
			Income: Change{
				Difference:       p2.Income.Total.Sub(p1.Income.Total),
				PercentageChange: percentChange(p1.Income.Total, p2.Income.Total),
			},
			Expenses: Change{
				Difference:       p2.Expenses.Total.Sub(p1.Expenses.Total),
				PercentageChange: percentChange(p1.Expenses.Total, p2.Expenses.Total),
			},
			Balance: Difference{Difference: p2.Balance.Sub(p1.Balance)},
		},
	}
	e.logger.DebugContext(ctx, "Compare computed", "user_id", userID, "period1", w1.String(), "period2", w2.String())
	return report, nil
}

func (e *Engine) periodMetrics(ctx context.Context, userID int64, w Window) (PeriodMetrics, error) {
	expenses, err := e.store.QueryExpenses(ctx, userID, w.expenseFilter())
	if err != nil {
		return PeriodMetrics{}, fmt.Errorf("query expenses: %w", err)
	}
	income, err := e.store.QueryIncome(ctx, userID, w.incomeFilter())
	if err != nil {
		return PeriodMetrics{}, fmt.Errorf("query income: %w", err)
	}

	inc := sumIncome(income)
	m := PeriodMetrics{
		Period: w,
		Income: CountedTotal{Total: inc.total, Count: inc.count},
	}
	byType := tallyByType(expenses)
	m.Expenses.ByType = make([]TypeTotal, 0, len(byType))
	for _, typ := range sortedKeys(byType) {
		m.Expenses.ByType = append(m.Expenses.ByType, TypeTotal{Type: typ, Total: byType[typ].total, Count: byType[typ].count})
	}
	m.Expenses.Total = sumExpenses(expenses).total
	m.Balance = m.Income.Total.Sub(m.Expenses.Total)
	return m, nil
}
