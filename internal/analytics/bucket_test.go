package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketKey(t *testing.T) {
	cases := []struct {
		day  string
		g    Granularity
		want string
	}{
		{"2024-01-05", Day, "2024-01-05"},
		{"2024-01-05", Month, "2024-01"},
		{"2024-01-05", Week, "2024-W01"},
		{"2024-12-30", Week, "2025-W01"},
		{"2021-01-03", Week, "2020-W53"},
		{"2024-03-10", Week, "2024-W10"},
		{"2024-03-11", Week, "2024-W11"},
	}
	for _, tc := range cases {
		t.Run(string(tc.g)+" "+tc.day, func(t *testing.T) {
			assert.Equal(t, tc.want, BucketKey(date(t, tc.day), tc.g))
		})
	}
}

func TestParseGranularity(t *testing.T) {
	assert.Equal(t, Day, ParseGranularity(""))
	assert.Equal(t, Day, ParseGranularity("yearly"))
	assert.Equal(t, Week, ParseGranularity("week"))
	assert.Equal(t, Month, ParseGranularity(" Month "))
}

func TestParseCounts(t *testing.T) {
	assert.Equal(t, DefaultPeriods, ParsePeriods(""))
	assert.Equal(t, DefaultPeriods, ParsePeriods("abc"))
	assert.Equal(t, 3, ParsePeriods("3"))
	assert.Equal(t, 3, ParsePeriods("3.7"))
	assert.Equal(t, 0, ParsePeriods("0"))
	assert.Equal(t, -4, ParsePeriods("-4"))
	assert.Equal(t, DefaultMonthsAhead, ParseMonthsAhead(" "))
	assert.Equal(t, 5, ParseMonthsAhead("5"))

	assert.Equal(t, 1, clamp(0, MinPeriods, MaxPeriods))
	assert.Equal(t, 12, clamp(99, MinPeriods, MaxPeriods))
	assert.Equal(t, 7, clamp(7, MinPeriods, MaxPeriods))
}

func TestParseExportType(t *testing.T) {
	assert.Equal(t, ExportAll, ParseExportType(""))
	assert.Equal(t, ExportAll, ParseExportType("everything"))
	assert.Equal(t, ExportExpenses, ParseExportType("expenses"))
	assert.Equal(t, ExportIncome, ParseExportType("INCOME"))
}
