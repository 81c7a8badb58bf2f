package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"presupuesto/internal/analytics/mocks"
)

func failingStore(t *testing.T, err error) *mocks.MockRecordStore {
	t.Helper()
	store := mocks.NewMockRecordStore(gomock.NewController(t))
	store.EXPECT().QueryExpenses(gomock.Any(), int64(1), gomock.Any()).Return(nil, err).AnyTimes()
	store.EXPECT().QueryIncome(gomock.Any(), int64(1), gomock.Any()).Return(nil, err).AnyTimes()
	store.EXPECT().QueryCategories(gomock.Any(), int64(1), gomock.Any()).Return(nil, err).AnyTimes()
	return store
}

func TestOperationsPropagateStoreFailure(t *testing.T) {
	boom := errors.New("database is locked")

	tests := []struct {
		name string
		run  func(*Engine) (any, error)
	}{
		{"charts", func(e *Engine) (any, error) {
			return e.Charts(context.Background(), 1, "", "", "week")
		}},
		{"trends", func(e *Engine) (any, error) {
			return e.Trends(context.Background(), 1, 6)
		}},
		{"predictions", func(e *Engine) (any, error) {
			return e.Predictions(context.Background(), 1, 3)
		}},
		{"export all", func(e *Engine) (any, error) {
			return e.Export(context.Background(), 1, "", "", "all")
		}},
		{"export income", func(e *Engine) (any, error) {
			return e.Export(context.Background(), 1, "2024-01-01", "2024-01-31", "income")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run(newTestEngine(failingStore(t, boom)))
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.False(t, IsValidationError(err))
			assert.Nil(t, got)
		})
	}
}
