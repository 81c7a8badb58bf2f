package analytics

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPeriods     = 6
	MinPeriods         = 1
	MaxPeriods         = 12
	DefaultMonthsAhead = 3
	MinMonthsAhead     = 1
	MaxMonthsAhead     = 6

	forecastHistoryMonths = 3
	anomalyLookbackMonths = 3
	anomalyLimit          = 10
	topCategoryLimit      = 5
)

// ExportType selects which record kinds an export carries.
type ExportType string

const (
	ExportAll      ExportType = "all"
	ExportExpenses ExportType = "expenses"
	ExportIncome   ExportType = "income"
)

// ParseExportType falls back to ExportAll for unknown values.
func ParseExportType(s string) ExportType {
	switch ExportType(strings.ToLower(strings.TrimSpace(s))) {
	case ExportExpenses:
		return ExportExpenses
	case ExportIncome:
		return ExportIncome
	default:
		return ExportAll
	}
}

func (t ExportType) includesExpenses() bool { return t != ExportIncome }

func (t ExportType) includesIncome() bool { return t != ExportExpenses }

// ParsePeriods coerces the trends period count. Missing or non-numeric input
// yields the default; numeric input is returned as-is and clamped by Trends.
func ParsePeriods(s string) int {
	return parseCount(s, DefaultPeriods)
}

// ParseMonthsAhead coerces the forecast horizon the same way.
func ParseMonthsAhead(s string) int {
	return parseCount(s, DefaultMonthsAhead)
}

func parseCount(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
