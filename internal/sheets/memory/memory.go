// Package memory keeps exports in process. The worker tests use it in place
// of the Google Sheets writer.
package memory

import (
	"context"
	"fmt"
	"sync"

	"presupuesto/internal/analytics"
	ports "presupuesto/internal/sheets"
)

// Export is one recorded WriteExport call.
type Export struct {
	Ref   string
	Title string
	Rows  [][]interface{}
	Data  *analytics.ExportData
}

type Writer struct {
	mu      sync.Mutex
	exports []Export
	err     error
}

var _ ports.ExportWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

// FailWith makes every later WriteExport return err. Pass nil to recover.
func (w *Writer) FailWith(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

// WriteExport records the export and returns a synthetic reference.
func (w *Writer) WriteExport(ctx context.Context, title string, data *analytics.ExportData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return "", w.err
	}
	ref := fmt.Sprintf("mem:%d", len(w.exports)+1)
	w.exports = append(w.exports, Export{
		Ref:   ref,
		Title: ports.SanitizeTitle(title),
		Rows:  ports.ExportRows(data),
		Data:  data,
	})
	return ref, nil
}

// Exports returns a copy of everything written so far.
func (w *Writer) Exports() []Export {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Export(nil), w.exports...)
}
