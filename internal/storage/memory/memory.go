// Package memory is an in-process record store used by the memory backend,
// demos and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"presupuesto/internal/core"
)

type Store struct {
	mu         sync.RWMutex
	nextID     int64
	expenses   []core.Expense
	income     []core.Income
	categories []core.Category
}

// Seed is the on-disk shape accepted by NewFromFile.
type Seed struct {
	Categories []core.Category `json:"categories"`
	Expenses   []core.Expense  `json:"expenses"`
	Income     []core.Income   `json:"income"`
}

func New() *Store {
	return &Store{}
}

// NewFromFile loads a JSON seed. A missing path yields an empty store.
func NewFromFile(path string) (*Store, error) {
	s := New()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(b, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := s.Load(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Load adds every record of the seed, keeping explicit ids.
func (s *Store) Load(seed Seed) error {
	for _, c := range seed.Categories {
		if _, err := s.AddCategory(c); err != nil {
			return err
		}
	}
	for _, e := range seed.Expenses {
		if _, err := s.AddExpense(e); err != nil {
			return err
		}
	}
	for _, i := range seed.Income {
		if _, err := s.AddIncome(i); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) AddCategory(c core.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.assignID(c.ID)
	s.categories = append(s.categories, c)
	return c.ID, nil
}

func (s *Store) AddExpense(e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.assignID(e.ID)
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *Store) AddIncome(i core.Income) (int64, error) {
	if i.Frequency == "" {
		i.Frequency = core.Once
	}
	if err := i.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i.ID = s.assignID(i.ID)
	s.income = append(s.income, i)
	return i.ID, nil
}

// assignID keeps an explicit id or hands out the next free one. Caller
// holds the lock.
func (s *Store) assignID(id int64) int64 {
	if id == 0 {
		s.nextID++
		return s.nextID
	}
	if id > s.nextID {
		s.nextID = id
	}
	return id
}

func (s *Store) QueryExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) ([]core.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []core.Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID && f.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return olderFirst(out[i].Date, out[i].ID, out[j].Date, out[j].ID)
	})
	return out, nil
}

func (s *Store) QueryIncome(ctx context.Context, userID int64, f core.IncomeFilter) ([]core.Income, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []core.Income{}
	for _, i := range s.income {
		if i.UserID == userID && f.Matches(i) {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return olderFirst(out[a].Date, out[a].ID, out[b].Date, out[b].ID)
	})
	return out, nil
}

func (s *Store) QueryCategories(ctx context.Context, userID int64, f core.CategoryFilter) ([]core.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []core.Category{}
	for _, c := range s.categories {
		if c.VisibleTo(userID) && f.Matches(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func olderFirst(d1 core.Date, id1 int64, d2 core.Date, id2 int64) bool {
	if !d1.Equal(d2.Time) {
		return d1.Before(d2.Time)
	}
	return id1 < id2
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
