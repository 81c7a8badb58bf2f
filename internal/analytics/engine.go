// Package analytics computes read-only financial summaries over a user's
// expenses and income. The engine owns no data: every call reads a fresh
// snapshot through a RecordStore and aggregates it in memory.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"presupuesto/internal/core"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_store.go -package=mocks

// RecordStore is the read contract the engine needs. Implementations scope
// every row to userID and return expenses and income ordered by date then
// id, both ascending. Categories are those shared or owned by the user.
type RecordStore interface {
	QueryExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) ([]core.Expense, error)
	QueryIncome(ctx context.Context, userID int64, f core.IncomeFilter) ([]core.Income, error)
	QueryCategories(ctx context.Context, userID int64, f core.CategoryFilter) ([]core.Category, error)
}

// Engine answers analytics queries. It holds no per-user state and is safe
// for concurrent use.
type Engine struct {
	store  RecordStore
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Engine)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(store RecordStore, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) today() core.Date {
	return core.DateOf(e.now())
}
