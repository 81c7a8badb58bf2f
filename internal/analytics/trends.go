package analytics

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"presupuesto/internal/core"
)

// Trends reports monthly totals per expense type for the last periods
// calendar months (the current one included), the per-type spread of those
// totals, and recent expenses that exceed twice the user's all-time average
// for their type.
func (e *Engine) Trends(ctx context.Context, userID int64, periods int) (*TrendReport, error) {
	periods = clamp(periods, MinPeriods, MaxPeriods)
	today := e.today()
	from := today.StartOfMonth().AddMonths(-(periods - 1))
	to := today.EndOfMonth()

	var (
		recent  []core.Expense
		history []core.Expense
		cats    []core.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := e.store.QueryExpenses(gctx, userID, core.ExpenseFilter{From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("query expenses: %w", err)
		}
		recent = rows
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.QueryExpenses(gctx, userID, core.ExpenseFilter{})
		if err != nil {
			return fmt.Errorf("query expense history: %w", err)
		}
		history = rows
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
		e.logger.ErrorContext(ctx, "Trends query failed", "user_id", userID, "periods", periods, "error", err)
		return nil, err
	}

	monthly := monthlyTypeTallies(recent)
	report := &TrendReport{
		MonthlyTrends:   monthlyTrends(monthly),
		Averages:        monthlySpread(monthly),
		Anomalies:       findAnomalies(history, categoryIndex(cats), today.AddMonths(-anomalyLookbackMonths)),
		PeriodsAnalyzed: periods,
	}
	e.logger.DebugContext(ctx, "Trends computed",
		"user_id", userID,
		"periods", periods,
		"months", len(monthly),
		"anomalies", len(report.Anomalies),
	)
	return report, nil
}

// monthlyTypeTallies keys tallies by YYYY-MM then expense type.
func monthlyTypeTallies(rows []core.Expense) map[string]map[core.ExpenseType]*tally {
	out := make(map[string]map[core.ExpenseType]*tally)
	for _, e := range rows {
		month := e.Date.MonthKey()
		byType, ok := out[month]
		if !ok {
			byType = make(map[core.ExpenseType]*tally)
			out[month] = byType
		}
		t, ok := byType[e.Type]
		if !ok {
			t = &tally{}
			byType[e.Type] = t
		}
		t.add(e.Amount)
	}
	return out
}

func monthlyTrends(monthly map[string]map[core.ExpenseType]*tally) []MonthlyTrend {
	months := sortedKeys(monthly)
	trends := []MonthlyTrend{}
	for i := len(months) - 1; i >= 0; i-- {
		byType := monthly[months[i]]
		for _, typ := range sortedKeys(byType) {
			t := byType[typ]
			trends = append(trends, MonthlyTrend{
				Month:   months[i],
				Type:    typ,
				Total:   t.total,
				Count:   t.count,
				Average: t.average(),
			})
		}
	}
	return trends
}

// monthlySpread computes mean, max and min of each type's monthly totals,
// considering only months in which the type occurs.
func monthlySpread(monthly map[string]map[core.ExpenseType]*tally) []TypeAverages {
	type spread struct {
		sum      tally
		min, max core.Money
	}
	byType := make(map[core.ExpenseType]*spread)
	for _, types := range monthly {
		for typ, t := range types {
			s, ok := byType[typ]
			if !ok {
				s = &spread{min: t.total, max: t.total}
				byType[typ] = s
			}
			s.sum.add(t.total)
			if t.total.Cents < s.min.Cents {
				s.min = t.total
			}
			if t.total.Cents > s.max.Cents {
				s.max = t.total
			}
		}
	}

	out := []TypeAverages{}
	for _, typ := range sortedKeys(byType) {
		s := byType[typ]
		out = append(out, TypeAverages{
			Type:            typ,
			AvgMonthlyTotal: s.sum.average(),
			MaxMonthlyTotal: s.max,
			MinMonthlyTotal: s.min,
		})
	}
	return out
}

// findAnomalies flags expenses dated on or after since whose amount is
// strictly greater than twice the all-time average of their type. The
// comparison is done on exact cent totals (amount*count > 2*sum).
func findAnomalies(history []core.Expense, cats map[int64]core.Category, since core.Date) []Anomaly {
	averages := tallyByType(history)

	found := []Anomaly{}
	for _, e := range history {
		if e.Date.Before(since.Time) {
			continue
		}
		t := averages[e.Type]
		if e.Amount.Cents*int64(t.count) <= 2*t.total.Cents {
			continue
		}
		a := Anomaly{
			ID:          e.ID,
			Type:        e.Type,
			Amount:      e.Amount,
			Description: e.Description,
			Date:        e.Date,
			TypeAverage: t.average(),
		}
		if e.CategoryID != nil {
			if c, ok := cats[*e.CategoryID]; ok {
				a.CategoryName = c.Name
			}
		}
		found = append(found, a)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if !found[i].Date.Equal(found[j].Date.Time) {
			return found[i].Date.After(found[j].Date.Time)
		}
		return found[i].ID > found[j].ID
	})
	if len(found) > anomalyLimit {
		found = found[:anomalyLimit]
	}
	return found
}
