package analytics

import (
	"fmt"
	"time"

	"presupuesto/internal/core"
)

// Window is an inclusive calendar date range.
type Window struct {
	Start core.Date `json:"start_date"`
	End   core.Date `json:"end_date"`
}

// NormalizeWindow resolves a possibly empty start/end pair against today.
// A missing start becomes the first day of today's month and a missing end
// becomes today. Both bounds must be real YYYY-MM-DD dates with start <= end.
func NormalizeWindow(start, end string, today time.Time) (Window, error) {
	now := core.DateOf(today)

	w := Window{Start: now.StartOfMonth(), End: now}
	if start != "" {
		d, err := core.ParseDate(start)
		if err != nil {
			return Window{}, fmt.Errorf("%w: invalid start date %q", ErrInvalidDateRange, start)
		}
		w.Start = d
	}
	if end != "" {
		d, err := core.ParseDate(end)
		if err != nil {
			return Window{}, fmt.Errorf("%w: invalid end date %q", ErrInvalidDateRange, end)
		}
		w.End = d
	}
	if w.Start.After(w.End.Time) {
		return Window{}, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidDateRange, w.Start, w.End)
	}
	return w, nil
}

// Contains reports whether d falls inside the window, bounds included.
func (w Window) Contains(d core.Date) bool {
	return !d.Before(w.Start.Time) && !d.After(w.End.Time)
}

func (w Window) String() string {
	return w.Start.String() + ".." + w.End.String()
}

func (w Window) expenseFilter() core.ExpenseFilter {
	from, to := w.Start, w.End
	return core.ExpenseFilter{From: &from, To: &to}
}

func (w Window) incomeFilter() core.IncomeFilter {
	from, to := w.Start, w.End
	return core.IncomeFilter{From: &from, To: &to}
}
