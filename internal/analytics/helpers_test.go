package analytics

import (
	"testing"
	"time"

	"presupuesto/internal/core"
	"presupuesto/internal/storage/memory"
)

// fixedNow is "today" for every engine built by newTestEngine.
var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestEngine(s RecordStore) *Engine {
	return NewEngine(s, WithClock(func() time.Time { return fixedNow }))
}

func date(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func addExpense(t *testing.T, s *memory.Store, userID int64, typ core.ExpenseType, cents int64, day string, categoryID ...int64) int64 {
	t.Helper()
	e := core.Expense{
		UserID:      userID,
		Type:        typ,
		Amount:      core.Money{Cents: cents},
		Description: string(typ) + " " + day,
		Date:        date(t, day),
	}
	if len(categoryID) > 0 {
		id := categoryID[0]
		e.CategoryID = &id
	}
	id, err := s.AddExpense(e)
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	return id
}

func addIncome(t *testing.T, s *memory.Store, userID int64, cents int64, day string, recurring bool, freq core.Frequency) int64 {
	t.Helper()
	id, err := s.AddIncome(core.Income{
		UserID:      userID,
		Source:      "source " + day,
		Amount:      core.Money{Cents: cents},
		Date:        date(t, day),
		IsRecurring: recurring,
		Frequency:   freq,
	})
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	return id
}

func addCategory(t *testing.T, s *memory.Store, id int64, name string, owner *int64) {
	t.Helper()
	if _, err := s.AddCategory(core.Category{ID: id, UserID: owner, Name: name, Type: "expense", Color: "#000000"}); err != nil {
		t.Fatalf("add category: %v", err)
	}
}

func money(cents int64) core.Money { return core.Money{Cents: cents} }
