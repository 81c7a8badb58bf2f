package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"presupuesto/internal/core"
)

type tally struct {
	total core.Money
	count int
}

func (t *tally) add(m core.Money) {
	t.total = t.total.Add(m)
	t.count++
}

func (t tally) average() core.Money {
	return core.AverageOf(t.total, t.count)
}

func sumExpenses(rows []core.Expense) tally {
	var t tally
	for _, e := range rows {
		t.add(e.Amount)
	}
	return t
}

func sumIncome(rows []core.Income) tally {
	var t tally
	for _, i := range rows {
		t.add(i.Amount)
	}
	return t
}

func tallyByType(rows []core.Expense) map[core.ExpenseType]*tally {
	out := make(map[core.ExpenseType]*tally)
	for _, e := range rows {
		t, ok := out[e.Type]
		if !ok {
			t = &tally{}
			out[e.Type] = t
		}
		t.add(e.Amount)
	}
	return out
}

// sortedKeys returns map keys in ascending lexical order.
func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func categoryIndex(cats []core.Category) map[int64]core.Category {
	idx := make(map[int64]core.Category, len(cats))
	for _, c := range cats {
		idx[c.ID] = c
	}
	return idx
}

// categoryTallies groups expenses by category. Expenses without a category,
// or whose category is not visible, are left out.
func categoryTallies(rows []core.Expense, cats map[int64]core.Category) map[int64]*tally {
	out := make(map[int64]*tally)
	for _, e := range rows {
		if e.CategoryID == nil {
			continue
		}
		if _, ok := cats[*e.CategoryID]; !ok {
			continue
		}
		t, ok := out[*e.CategoryID]
		if !ok {
			t = &tally{}
			out[*e.CategoryID] = t
		}
		t.add(e.Amount)
	}
	return out
}

// rankCategories orders category ids by total descending, id ascending.
func rankCategories(tallies map[int64]*tally) []int64 {
	ids := make([]int64, 0, len(tallies))
	for id := range tallies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := tallies[ids[i]].total.Cents, tallies[ids[j]].total.Cents
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// percentChange is (to-from)/from*100 rounded to two decimals, or 0 when
// from is zero.
func percentChange(from, to core.Money) float64 {
	if from.Cents == 0 {
		return 0
	}
	diff := decimal.NewFromInt(to.Cents - from.Cents)
	pct := diff.Div(decimal.NewFromInt(from.Cents)).Mul(decimal.NewFromInt(100)).Round(2)
	return pct.InexactFloat64()
}
