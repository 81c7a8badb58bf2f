package analytics

import (
	"fmt"
	"strings"

	"presupuesto/internal/core"
)

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// Granularity is the time-series bucket size.
type Granularity string

// ParseGranularity maps user input to a Granularity, falling back to Day
// for anything unrecognised.
func ParseGranularity(s string) Granularity {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case Week:
		return Week
	case Month:
		return Month
	default:
		return Day
	}
}

// BucketKey labels the bucket d belongs to. Keys sort lexically in
// chronological order. Weeks use ISO-8601 numbering (Monday start, week 1
// holds the year's first Thursday) and are labelled with the ISO week-year,
// so 2024-12-30 is 2025-W01.
func BucketKey(d core.Date, g Granularity) string {
	switch g {
	case Week:
		year, week := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Month:
		return d.MonthKey()
	default:
		return d.String()
	}
}
