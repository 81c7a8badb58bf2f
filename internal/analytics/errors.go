package analytics

import "errors"

var (
	// ErrInvalidDateRange covers malformed dates, impossible calendar dates
	// and windows whose start is after their end.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrMissingComparisonWindow is returned when any of the four comparison
	// bounds is absent.
	ErrMissingComparisonWindow = errors.New("both comparison periods require start and end dates")
)

// IsValidationError reports whether err was caused by caller input rather
// than by the record store.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) || errors.Is(err, ErrMissingComparisonWindow)
}
