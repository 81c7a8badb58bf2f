// Package storage is the SQLite-backed record store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"presupuesto/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable; used by readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) QueryExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) ([]core.Expense, error) {
	items, err := r.queries.ListExpenses(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) QueryIncome(ctx context.Context, userID int64, f core.IncomeFilter) ([]core.Income, error) {
	items, err := r.queries.ListIncome(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) QueryCategories(ctx context.Context, userID int64, f core.CategoryFilter) ([]core.Category, error) {
	items, err := r.queries.ListCategories(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// InsertExpense stores a validated expense. Only seeding and tests write
// through the repository.
func (r *SQLiteRepository) InsertExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	id, err := r.queries.CreateExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", id,
		"user_id", e.UserID,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.String())
	return id, nil
}

func (r *SQLiteRepository) InsertIncome(ctx context.Context, i core.Income) (int64, error) {
	if i.Frequency == "" {
		i.Frequency = core.Once
	}
	if err := i.Validate(); err != nil {
		return 0, err
	}
	id, err := r.queries.CreateIncome(ctx, i)
	if err != nil {
		return 0, fmt.Errorf("create income: %w", err)
	}
	slog.DebugContext(ctx, "Income saved to SQLite",
		"id", id,
		"user_id", i.UserID,
		"amount_cents", i.Amount.Cents,
		"date", i.Date.String())
	return id, nil
}

func (r *SQLiteRepository) InsertCategory(ctx context.Context, c core.Category) (int64, error) {
	id, err := r.queries.CreateCategory(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

// Seed inserts every record in one transaction. Ids in the input are
// ignored; expense category references are remapped to the new ids.
func (r *SQLiteRepository) Seed(ctx context.Context, cats []core.Category, expenses []core.Expense, income []core.Income) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	remap := make(map[int64]int64, len(cats))
	for _, c := range cats {
		id, err := q.CreateCategory(ctx, c)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		remap[c.ID] = id
	}
	for _, e := range expenses {
		if e.CategoryID != nil {
			if id, ok := remap[*e.CategoryID]; ok {
				e.CategoryID = &id
			}
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("seed expense %q: %w", e.Description, err)
		}
		if _, err := q.CreateExpense(ctx, e); err != nil {
			return fmt.Errorf("seed expense %q: %w", e.Description, err)
		}
	}
	for _, i := range income {
		if i.Frequency == "" {
			i.Frequency = core.Once
		}
		if err := i.Validate(); err != nil {
			return fmt.Errorf("seed income %q: %w", i.Source, err)
		}
		if _, err := q.CreateIncome(ctx, i); err != nil {
			return fmt.Errorf("seed income %q: %w", i.Source, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	slog.InfoContext(ctx, "Seed data loaded",
		"categories", len(cats),
		"expenses", len(expenses),
		"income", len(income))
	return nil
}
