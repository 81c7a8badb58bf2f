package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	Payment      ExpenseType = "payment"
	Purchase     ExpenseType = "purchase"
	SmallExpense ExpenseType = "small_expense"
)

const (
	Once     Frequency = "once"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Annual   Frequency = "annual"
)

// DateLayout is the only accepted textual date form.
const DateLayout = "2006-01-02"

type (
	ExpenseType string

	Frequency string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID          int64       `json:"id"`
		UserID      int64       `json:"user_id"`
		CategoryID  *int64      `json:"category_id,omitempty"`
		Type        ExpenseType `json:"type"`
		Amount      Money       `json:"amount"`
		Description string      `json:"description"`
		Date        Date        `json:"date"`
		Notes       string      `json:"notes,omitempty"`
		CreatedAt   time.Time   `json:"created_at"`
		UpdatedAt   time.Time   `json:"updated_at"`
	}

	Income struct {
		ID          int64     `json:"id"`
		UserID      int64     `json:"user_id"`
		Source      string    `json:"source"`
		Amount      Money     `json:"amount"`
		Date        Date      `json:"date"`
		IsRecurring bool      `json:"is_recurring"`
		Frequency   Frequency `json:"frequency"`
		Notes       string    `json:"notes,omitempty"`
	}

	// Category labels expenses. A nil UserID marks a shared category.
	Category struct {
		ID     int64  `json:"id"`
		UserID *int64 `json:"user_id,omitempty"`
		Name   string `json:"name"`
		Type   string `json:"type"`
		Color  string `json:"color"`
		Icon   string `json:"icon"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidExpenseType = errors.New("invalid expense type")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptySource        = errors.New("empty income source")
	ErrMissingUser        = errors.New("missing user id")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ExpenseTypes lists every expense type in canonical order.
func ExpenseTypes() []ExpenseType {
	return []ExpenseType{Payment, Purchase, SmallExpense}
}

func (t ExpenseType) IsValid() bool {
	switch t {
	case Payment, Purchase, SmallExpense:
		return true
	default:
		return false
	}
}

func (f Frequency) IsValid() bool {
	switch f {
	case Once, Weekly, Biweekly, Monthly, Annual:
		return true
	default:
		return false
	}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a strict YYYY-MM-DD string. Surrounding whitespace and
// impossible dates such as 2024-02-30 are rejected.
func ParseDate(s string) (Date, error) {
	if !datePattern.MatchString(s) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MonthKey returns the YYYY-MM form of the date.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// StartOfMonth returns the first day of the date's month.
func (d Date) StartOfMonth() Date {
	return NewDate(d.Year(), int(d.Month()), 1)
}

// EndOfMonth returns the last day of the date's month.
func (d Date) EndOfMonth() Date {
	return Date{Time: d.StartOfMonth().AddDate(0, 1, -1)}
}

// AddMonths shifts the date by n calendar months with time.AddDate
// normalisation (Mar 31 - 1 month = Mar 3 in non leap years).
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.AddDate(0, n, 0)}
}

// IsEmpty returns true if the date is zero
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (e Expense) Validate() error {
	if e.UserID == 0 {
		return ErrMissingUser
	}
	if !e.Type.IsValid() {
		return ErrInvalidExpenseType
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (i Income) Validate() error {
	if i.UserID == 0 {
		return ErrMissingUser
	}
	if strings.TrimSpace(i.Source) == "" {
		return ErrEmptySource
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if !i.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	return nil
}

// VisibleTo reports whether the category is shared or owned by userID.
func (c Category) VisibleTo(userID int64) bool {
	return c.UserID == nil || *c.UserID == userID
}
