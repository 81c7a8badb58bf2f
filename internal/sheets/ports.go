// Package sheets publishes exports to spreadsheet backends.
package sheets

import (
	"context"

	"presupuesto/internal/analytics"
)

// Ports for outbound adapters.
type (
	// ExportWriter stores one export under the given title and returns a
	// reference to where it landed.
	ExportWriter interface {
		WriteExport(ctx context.Context, title string, data *analytics.ExportData) (ref string, err error)
	}
)
