package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"presupuesto/internal/analytics"
)

// WriteCSV writes every table as a titled section separated by blank lines.
func WriteCSV(w io.Writer, data *analytics.ExportData) error {
	cw := csv.NewWriter(w)
	for i, t := range Tables(data) {
		if i > 0 {
			if err := cw.Write(nil); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		if err := cw.Write([]string{t.Name}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if err := cw.Write(t.Header); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
