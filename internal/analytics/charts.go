package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"presupuesto/internal/core"
)

// Charts buckets the window's expenses (per type) and income by groupBy and
// distributes expenses across categories.
func (e *Engine) Charts(ctx context.Context, userID int64, start, end, groupBy string) (*ChartData, error) {
	w, err := NormalizeWindow(start, end, e.now())
	if err != nil {
		return nil, err
	}
	g := ParseGranularity(groupBy)

	var (
		expenses []core.Expense
		income   []core.Income
		cats     []core.Category
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		rows, err := e.store.QueryExpenses(gctx, userID, w.expenseFilter())
		if err != nil {
			return fmt.Errorf("query expenses: %w", err)
		}
		expenses = rows
		return nil
	})
	eg.Go(func() error {
		rows, err := e.store.QueryIncome(gctx, userID, w.incomeFilter())
		if err != nil {
			return fmt.Errorf("query income: %w", err)
		}
		income = rows
		return nil
	})
	eg.Go(func() error {
		rows, err := e.store.QueryCategories(gctx, userID, core.CategoryFilter{})
		if err != nil {
			return fmt.Errorf("query categories: %w", err)
		}
		cats = rows
		return nil
	})
	if err := eg.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "Charts query failed", "user_id", userID, "window", w.String(), "error", err)
		return nil, err
	}

	data := &ChartData{
		Period: w,
		TimeSeries: TimeSeries{
			Expenses: expenseSeries(expenses, g),
			Income:   incomeSeries(income, g),
		},
		Distribution: Distribution{ByCategory: categoryDistribution(expenses, cats)},
		GroupBy:      g,
	}
	e.logger.DebugContext(ctx, "Charts computed",
		"user_id", userID,
		"window", w.String(),
		"group_by", string(g),
		"points", len(data.TimeSeries.Expenses)+len(data.TimeSeries.Income),
	)
	return data, nil
}

func expenseSeries(rows []core.Expense, g Granularity) []ExpensePoint {
	buckets := make(map[string]map[core.ExpenseType]*tally)
	for _, e := range rows {
		key := BucketKey(e.Date, g)
		byType, ok := buckets[key]
		if !ok {
			byType = make(map[core.ExpenseType]*tally)
			buckets[key] = byType
		}
		t, ok := byType[e.Type]
		if !ok {
			t = &tally{}
			byType[e.Type] = t
		}
		t.add(e.Amount)
	}

	points := []ExpensePoint{}
	for _, period := range sortedKeys(buckets) {
		for _, typ := range sortedKeys(buckets[period]) {
			points = append(points, ExpensePoint{Period: period, Type: typ, Total: buckets[period][typ].total})
		}
	}
	return points
}

func incomeSeries(rows []core.Income, g Granularity) []IncomePoint {
	buckets := make(map[string]*tally)
	for _, i := range rows {
		key := BucketKey(i.Date, g)
		t, ok := buckets[key]
		if !ok {
			t = &tally{}
			buckets[key] = t
		}
		t.add(i.Amount)
	}

	points := []IncomePoint{}
	for _, period := range sortedKeys(buckets) {
		points = append(points, IncomePoint{Period: period, Total: buckets[period].total})
	}
	return points
}

func categoryDistribution(rows []core.Expense, cats []core.Category) []CategoryShare {
	idx := categoryIndex(cats)
	tallies := categoryTallies(rows, idx)

	shares := []CategoryShare{}
	for _, id := range rankCategories(tallies) {
		c := idx[id]
		shares = append(shares, CategoryShare{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
			Type:  c.Type,
			Total: tallies[id].total,
			Count: tallies[id].count,
		})
	}
	return shares
}
