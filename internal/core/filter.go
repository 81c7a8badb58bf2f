package core

// ExpenseFilter narrows an expense query. Nil fields do not constrain.
// From and To are inclusive.
type ExpenseFilter struct {
	Type       *ExpenseType
	CategoryID *int64
	From       *Date
	To         *Date
}

type IncomeFilter struct {
	From      *Date
	To        *Date
	Recurring *bool
	Frequency *Frequency
}

// CategoryFilter narrows the categories visible to a user (shared or owned).
// An empty IDs slice means every visible category.
type CategoryFilter struct {
	IDs  []int64
	Type string
}

func (f ExpenseFilter) Matches(e Expense) bool {
	if f.Type != nil && e.Type != *f.Type {
		return false
	}
	if f.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *f.CategoryID) {
		return false
	}
	return inRange(e.Date, f.From, f.To)
}

func (f IncomeFilter) Matches(i Income) bool {
	if f.Recurring != nil && i.IsRecurring != *f.Recurring {
		return false
	}
	if f.Frequency != nil && i.Frequency != *f.Frequency {
		return false
	}
	return inRange(i.Date, f.From, f.To)
}

func (f CategoryFilter) Matches(c Category) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if len(f.IDs) == 0 {
		return true
	}
	for _, id := range f.IDs {
		if id == c.ID {
			return true
		}
	}
	return false
}

func inRange(d Date, from, to *Date) bool {
	if from != nil && d.Before(from.Time) {
		return false
	}
	if to != nil && d.After(to.Time) {
		return false
	}
	return true
}
