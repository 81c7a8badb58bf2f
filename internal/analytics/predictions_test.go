package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presupuesto/internal/core"
	"presupuesto/internal/storage/memory"
)

func TestPredictionsFlatForecast(t *testing.T) {
	s := memory.New()
	addExpense(t, s, 1, core.Purchase, 99999, "2023-12-31") // before the three month history
	addExpense(t, s, 1, core.Purchase, 30000, "2024-01-15")
	addExpense(t, s, 1, core.Purchase, 10000, "2024-03-02")
	addExpense(t, s, 1, core.Payment, 4500, "2024-02-10")
	addIncome(t, s, 1, 200000, "2023-06-01", true, core.Monthly)
	addIncome(t, s, 1, 5000, "2024-02-01", true, core.Weekly)
	addIncome(t, s, 1, 100000, "2024-02-01", false, core.Monthly)

	got, err := newTestEngine(s).Predictions(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, got.BasedOnMonths)
	assert.Equal(t, "low", got.Confidence)
	assert.Equal(t, money(200000), got.Historical.RecurringMonthlyIncome)
	assert.Equal(t, []TypeMonthlyAverage{
		{Type: core.Payment, AvgMonthly: money(4500), MonthsWithData: 1},
		{Type: core.Purchase, AvgMonthly: money(20000), MonthsWithData: 2},
	}, got.Historical.MonthlyExpenses)

	require.Len(t, got.Predictions, 3)
	assert.Equal(t, "2024-04", got.Predictions[0].Month)
	assert.Equal(t, "2024-05", got.Predictions[1].Month)
	assert.Equal(t, "2024-06", got.Predictions[2].Month)
	for _, p := range got.Predictions {
		assert.Equal(t, money(200000), p.PredictedIncome)
		assert.Equal(t, map[core.ExpenseType]core.Money{
			core.Payment:  money(4500),
			core.Purchase: money(20000),
		}, p.PredictedExpenses)
		assert.Equal(t, money(200000-4500-20000), p.PredictedBalance)
	}
}

func TestPredictionsClampAndEmptyHistory(t *testing.T) {
	e := newTestEngine(memory.New())

	got, err := e.Predictions(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, got.Predictions, 6)
	assert.Equal(t, "2024-09", got.Predictions[5].Month)
	assert.Empty(t, got.Historical.MonthlyExpenses)
	assert.True(t, got.Predictions[0].PredictedBalance.IsZero())
	assert.NotNil(t, got.Predictions[0].PredictedExpenses)

	got, err = e.Predictions(context.Background(), 1, -2)
	require.NoError(t, err)
	assert.Len(t, got.Predictions, 1)
}

func TestPredictionsYearRollover(t *testing.T) {
	s := memory.New()
	e := NewEngine(s, WithClock(func() time.Time { return time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC) }))

	got, err := e.Predictions(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "2024-12", got.Predictions[0].Month)
	assert.Equal(t, "2025-01", got.Predictions[1].Month)
	assert.Equal(t, "2025-02", got.Predictions[2].Month)
}
