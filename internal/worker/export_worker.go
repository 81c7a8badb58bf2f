package worker

import (
	"context"
	"fmt"
	"log/slog"

	"presupuesto/internal/amqp"
	"presupuesto/internal/analytics"
	"presupuesto/internal/sheets"
)

// ExportWorker turns queued export requests into spreadsheet tabs.
type ExportWorker struct {
	engine *analytics.Engine
	writer sheets.ExportWriter
}

func NewExportWorker(engine *analytics.Engine, writer sheets.ExportWriter) *ExportWorker {
	return &ExportWorker{
		engine: engine,
		writer: writer,
	}
}

// HandleExportRequest assembles the export and writes it out. Requests that
// can never succeed (bad dates) are logged and swallowed so the message is
// acked; store and sheets failures are returned so the broker requeues.
func (w *ExportWorker) HandleExportRequest(ctx context.Context, msg *amqp.ExportRequestMessage) error {
	slog.InfoContext(ctx, "Processing export request",
		"job_id", msg.JobID,
		"user_id", msg.UserID,
		"start_date", msg.StartDate,
		"end_date", msg.EndDate,
		"type", msg.Type)

	data, err := w.engine.Export(ctx, msg.UserID, msg.StartDate, msg.EndDate, msg.Type)
	if err != nil {
		if analytics.IsValidationError(err) {
			slog.WarnContext(ctx, "Dropping invalid export request",
				"job_id", msg.JobID, "error", err)
			return nil
		}
		return fmt.Errorf("assemble export: %w", err)
	}

	title := sheets.ExportTitle(msg.UserID, data.Period, msg.JobID)
	ref, err := w.writer.WriteExport(ctx, title, data)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	slog.InfoContext(ctx, "Export written",
		"job_id", msg.JobID,
		"ref", ref,
		"expenses", len(data.Expenses),
		"income", len(data.Income))
	return nil
}
