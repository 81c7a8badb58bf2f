package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"presupuesto/internal/core"
)

const forecastConfidence = "low"

// Predictions projects the next monthsAhead months by repeating the average
// monthly spend per type from the last three calendar months against the
// user's recurring monthly income. Every projected month is identical.
func (e *Engine) Predictions(ctx context.Context, userID int64, monthsAhead int) (*Forecast, error) {
	monthsAhead = clamp(monthsAhead, MinMonthsAhead, MaxMonthsAhead)
	today := e.today()
	from := today.StartOfMonth().AddMonths(-(forecastHistoryMonths - 1))
	to := today

	var (
		expenses  []core.Expense
		recurring []core.Income
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := e.store.QueryExpenses(gctx, userID, core.ExpenseFilter{From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("query expenses: %w", err)
		}
		expenses = rows
		return nil
	})
	g.Go(func() error {
		yes, monthly := true, core.Monthly
		rows, err := e.store.QueryIncome(gctx, userID, core.IncomeFilter{Recurring: &yes, Frequency: &monthly})
		if err != nil {
			return fmt.Errorf("query recurring income: %w", err)
		}
		recurring = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "Predictions query failed", "user_id", userID, "error", err)
		return nil, err
	}

	f := &Forecast{
		Historical: HistoricalBasis{
			MonthlyExpenses:        typeMonthlyAverages(expenses),
			RecurringMonthlyIncome: sumIncome(recurring).total,
		},
		Predictions:   make([]MonthPrediction, 0, monthsAhead),
		BasedOnMonths: forecastHistoryMonths,
		Confidence:    forecastConfidence,
	}

	var spend core.Money
	for _, avg := range f.Historical.MonthlyExpenses {
		spend = spend.Add(avg.AvgMonthly)
	}
	base := today.StartOfMonth()
	for i := 1; i <= monthsAhead; i++ {
		byType := make(map[core.ExpenseType]core.Money, len(f.Historical.MonthlyExpenses))
		for _, avg := range f.Historical.MonthlyExpenses {
			byType[avg.Type] = avg.AvgMonthly
		}
		f.Predictions = append(f.Predictions, MonthPrediction{
			Month:             base.AddMonths(i).MonthKey(),
			PredictedIncome:   f.Historical.RecurringMonthlyIncome,
			PredictedExpenses: byType,
			PredictedBalance:  f.Historical.RecurringMonthlyIncome.Sub(spend),
		})
	}

	e.logger.DebugContext(ctx, "Predictions computed",
		"user_id", userID,
		"months_ahead", monthsAhead,
		"expenses", len(expenses),
	)
	return f, nil
}

// typeMonthlyAverages averages each type's monthly totals over the months in
// which that type has at least one expense.
func typeMonthlyAverages(rows []core.Expense) []TypeMonthlyAverage {
	monthly := monthlyTypeTallies(rows)
	byType := make(map[core.ExpenseType]*tally)
	for _, types := range monthly {
		for typ, t := range types {
			acc, ok := byType[typ]
			if !ok {
				acc = &tally{}
				byType[typ] = acc
			}
			acc.add(t.total)
		}
	}

	out := make([]TypeMonthlyAverage, 0, len(byType))
	for _, typ := range sortedKeys(byType) {
		acc := byType[typ]
		out = append(out, TypeMonthlyAverage{
			Type:           typ,
			AvgMonthly:     acc.average(),
			MonthsWithData: acc.count,
		})
	}
	return out
}
