package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"presupuesto/internal/amqp"
	"presupuesto/internal/analytics"
	"presupuesto/internal/analytics/mocks"
	"presupuesto/internal/core"
	sheetsmem "presupuesto/internal/sheets/memory"
	"presupuesto/internal/storage/memory"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newEngine(s analytics.RecordStore) *analytics.Engine {
	return analytics.NewEngine(s, analytics.WithClock(func() time.Time { return fixedNow }))
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	d, err := core.ParseDate("2024-03-02")
	require.NoError(t, err)
	_, err = s.AddExpense(core.Expense{UserID: 4, Type: core.Purchase, Amount: core.Money{Cents: 1250}, Description: "Groceries", Date: d})
	require.NoError(t, err)
	_, err = s.AddIncome(core.Income{UserID: 4, Source: "Salary", Amount: core.Money{Cents: 300000}, Date: d, Frequency: core.Monthly, IsRecurring: true})
	require.NoError(t, err)
	return s
}

func TestHandleExportRequest(t *testing.T) {
	writer := sheetsmem.New()
	w := NewExportWorker(newEngine(seededStore(t)), writer)

	msg := amqp.NewExportRequestMessage(4, "2024-03-01", "2024-03-15", "all")
	require.NoError(t, w.HandleExportRequest(context.Background(), msg))

	exports := writer.Exports()
	require.Len(t, exports, 1)
	got := exports[0]
	assert.Contains(t, got.Title, "Export 4 2024-03-01 2024-03-15 "+msg.JobID[:8])
	require.Len(t, got.Data.Expenses, 1)
	require.Len(t, got.Data.Income, 1)
	assert.Equal(t, core.Money{Cents: 298750}, got.Data.Summary.Balance)
	assert.Equal(t, []interface{}{"EXPENSES"}, got.Rows[0])
}

func TestHandleExportRequestInvalidWindowIsAcked(t *testing.T) {
	writer := sheetsmem.New()
	w := NewExportWorker(newEngine(seededStore(t)), writer)

	msg := amqp.NewExportRequestMessage(4, "2024-03-20", "2024-03-01", "")
	assert.NoError(t, w.HandleExportRequest(context.Background(), msg))
	assert.Empty(t, writer.Exports())
}

func TestHandleExportRequestWriterFailure(t *testing.T) {
	writer := sheetsmem.New()
	writer.FailWith(errors.New("quota exceeded"))
	w := NewExportWorker(newEngine(seededStore(t)), writer)

	err := w.HandleExportRequest(context.Background(), amqp.NewExportRequestMessage(4, "", "", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write export")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestHandleExportRequestStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRecordStore(ctrl)
	boom := errors.New("database is locked")
	store.EXPECT().QueryExpenses(gomock.Any(), int64(4), gomock.Any()).Return(nil, boom).AnyTimes()
	store.EXPECT().QueryIncome(gomock.Any(), int64(4), gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().QueryCategories(gomock.Any(), int64(4), gomock.Any()).Return(nil, nil).AnyTimes()

	writer := sheetsmem.New()
	err := NewExportWorker(newEngine(store), writer).
		HandleExportRequest(context.Background(), amqp.NewExportRequestMessage(4, "", "", ""))
	require.ErrorIs(t, err, boom)
	assert.False(t, analytics.IsValidationError(err))
	assert.Empty(t, writer.Exports())
}
