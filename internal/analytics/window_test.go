package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWindowDefaults(t *testing.T) {
	w, err := NormalizeWindow("", "", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", w.Start.String())
	assert.Equal(t, "2024-03-15", w.End.String())

	w, err = NormalizeWindow("2024-01-01", "", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", w.Start.String())
	assert.Equal(t, "2024-03-15", w.End.String())

	// today in a non-UTC zone keeps its own calendar day
	tokyo := time.FixedZone("JST", 9*3600)
	w, err = NormalizeWindow("", "", time.Date(2024, 4, 1, 2, 0, 0, 0, tokyo))
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", w.Start.String())
	assert.Equal(t, "2024-04-01", w.End.String())
}

func TestNormalizeWindowValidation(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		ok         bool
	}{
		{"explicit", "2024-01-01", "2024-01-31", true},
		{"single day", "2024-02-29", "2024-02-29", true},
		{"start after end", "2024-02-01", "2024-01-31", false},
		{"impossible day", "2024-02-30", "2024-03-01", false},
		{"bad month", "2024-13-01", "2024-12-31", false},
		{"wrong layout", "01/02/2024", "2024-02-10", false},
		{"short fields", "2024-1-1", "2024-02-10", false},
		{"end before default start", "", "2024-02-10", false},
		{"garbage end", "2024-01-01", "soon", false},
		{"padded start", " 2024-01-01", "2024-01-31", false},
		{"trailing newline end", "2024-01-01", "2024-01-31\n", false},
		{"blank start", "   ", "2024-01-31", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeWindow(tc.start, tc.end, fixedNow)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDateRange))
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestWindowContains(t *testing.T) {
	w, err := NormalizeWindow("2024-01-01", "2024-01-31", fixedNow)
	require.NoError(t, err)
	assert.True(t, w.Contains(date(t, "2024-01-01")))
	assert.True(t, w.Contains(date(t, "2024-01-31")))
	assert.False(t, w.Contains(date(t, "2024-02-01")))
	assert.False(t, w.Contains(date(t, "2023-12-31")))
}
