package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"presupuesto/internal/core"
)

const timestampLayout = "2006-01-02 15:04:05"

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the parameterised statements. Only fixed SQL fragments are
// concatenated; every value travels as a bind argument.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const listExpenses = `SELECT id, user_id, category_id, type, amount_cents, description, date, notes, created_at, updated_at
FROM expenses
WHERE user_id = ?`

func (q *Queries) ListExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) ([]core.Expense, error) {
	query := listExpenses
	args := []interface{}{userID}
	if f.Type != nil {
		query += " AND type = ?"
		args = append(args, string(*f.Type))
	}
	if f.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *f.CategoryID)
	}
	query, args = appendDateRange(query, args, f.From, f.To)
	query += " ORDER BY date ASC, id ASC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []core.Expense{}
	for rows.Next() {
		var (
			e                    core.Expense
			categoryID           sql.NullInt64
			typ, day             string
			notes                sql.NullString
			createdAt, updatedAt string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &categoryID, &typ, &e.Amount.Cents, &e.Description, &day, &notes, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if categoryID.Valid {
			id := categoryID.Int64
			e.CategoryID = &id
		}
		e.Type = core.ExpenseType(typ)
		if e.Date, err = core.ParseDate(day); err != nil {
			return nil, fmt.Errorf("expense %d: bad date %q: %w", e.ID, day, err)
		}
		e.Notes = notes.String
		e.CreatedAt = parseTimestamp(createdAt)
		e.UpdatedAt = parseTimestamp(updatedAt)
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listIncome = `SELECT id, user_id, source, amount_cents, date, is_recurring, frequency, notes
FROM income
WHERE user_id = ?`

func (q *Queries) ListIncome(ctx context.Context, userID int64, f core.IncomeFilter) ([]core.Income, error) {
	query := listIncome
	args := []interface{}{userID}
	if f.Recurring != nil {
		query += " AND is_recurring = ?"
		args = append(args, boolToInt(*f.Recurring))
	}
	if f.Frequency != nil {
		query += " AND frequency = ?"
		args = append(args, string(*f.Frequency))
	}
	query, args = appendDateRange(query, args, f.From, f.To)
	query += " ORDER BY date ASC, id ASC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []core.Income{}
	for rows.Next() {
		var (
			i         core.Income
			day, freq string
			recurring int64
			notes     sql.NullString
		)
		if err := rows.Scan(&i.ID, &i.UserID, &i.Source, &i.Amount.Cents, &day, &recurring, &freq, &notes); err != nil {
			return nil, err
		}
		if i.Date, err = core.ParseDate(day); err != nil {
			return nil, fmt.Errorf("income %d: bad date %q: %w", i.ID, day, err)
		}
		i.IsRecurring = recurring != 0
		i.Frequency = core.Frequency(freq)
		i.Notes = notes.String
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCategories = `SELECT id, user_id, name, type, color, icon
FROM expense_categories
WHERE (user_id = ? OR user_id IS NULL)`

func (q *Queries) ListCategories(ctx context.Context, userID int64, f core.CategoryFilter) ([]core.Category, error) {
	query := listCategories
	args := []interface{}{userID}
	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, f.Type)
	}
	if len(f.IDs) > 0 {
		query += " AND id IN (" + strings.TrimSuffix(strings.Repeat("?,", len(f.IDs)), ",") + ")"
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY id ASC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []core.Category{}
	for rows.Next() {
		var (
			c     core.Category
			owner sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &owner, &c.Name, &c.Type, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		if owner.Valid {
			id := owner.Int64
			c.UserID = &id
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createExpense = `INSERT INTO expenses (user_id, category_id, type, amount_cents, description, date, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	var categoryID sql.NullInt64
	if e.CategoryID != nil {
		categoryID = sql.NullInt64{Int64: *e.CategoryID, Valid: true}
	}
	row := q.db.QueryRowContext(ctx, createExpense,
		e.UserID, categoryID, string(e.Type), e.Amount.Cents, e.Description, e.Date.String(), nullString(e.Notes))
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createIncome = `INSERT INTO income (user_id, source, amount_cents, date, is_recurring, frequency, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreateIncome(ctx context.Context, i core.Income) (int64, error) {
	row := q.db.QueryRowContext(ctx, createIncome,
		i.UserID, i.Source, i.Amount.Cents, i.Date.String(), boolToInt(i.IsRecurring), string(i.Frequency), nullString(i.Notes))
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createCategory = `INSERT INTO expense_categories (user_id, name, type, color, icon)
VALUES (?, ?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	var owner sql.NullInt64
	if c.UserID != nil {
		owner = sql.NullInt64{Int64: *c.UserID, Valid: true}
	}
	typ := c.Type
	if typ == "" {
		typ = "expense"
	}
	color := c.Color
	if color == "" {
		color = "#6c757d"
	}
	row := q.db.QueryRowContext(ctx, createCategory, owner, c.Name, typ, color, c.Icon)
	var id int64
	err := row.Scan(&id)
	return id, err
}

func appendDateRange(query string, args []interface{}, from, to *core.Date) (string, []interface{}) {
	if from != nil {
		query += " AND date >= ?"
		args = append(args, from.String())
	}
	if to != nil {
		query += " AND date <= ?"
		args = append(args, to.String())
	}
	return query, args
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
