package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"presupuesto/internal/amqp"
	"presupuesto/internal/analytics"
)

// ErrExportQueueUnavailable is returned when sheets exports are requested
// but no message broker is configured.
var ErrExportQueueUnavailable = errors.New("export queue unavailable")

// ExportPublisher enqueues export jobs for the export worker.
type ExportPublisher interface {
	PublishExportRequest(ctx context.Context, msg *amqp.ExportRequestMessage) error
}

// ExportJob acknowledges an accepted export request.
type ExportJob struct {
	JobID  string               `json:"job_id"`
	Period analytics.Window     `json:"period"`
	Type   analytics.ExportType `json:"type"`
}

// ExportService validates export requests and hands them to the queue.
type ExportService struct {
	publisher ExportPublisher
	now       func() time.Time
}

// NewExportService creates the service. A nil publisher leaves the service
// usable for validation but every request fails with ErrExportQueueUnavailable.
func NewExportService(publisher ExportPublisher, now func() time.Time) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{publisher: publisher, now: now}
}

// RequestSheetsExport checks the window up front so bad input is reported to
// the caller instead of being discovered by the worker, then publishes a job
// carrying the resolved dates.
func (s *ExportService) RequestSheetsExport(ctx context.Context, userID int64, start, end, exportType string) (*ExportJob, error) {
	w, err := analytics.NormalizeWindow(start, end, s.now())
	if err != nil {
		return nil, err
	}
	if s.publisher == nil {
		return nil, ErrExportQueueUnavailable
	}

	typ := analytics.ParseExportType(exportType)
	msg := amqp.NewExportRequestMessage(userID, w.Start.String(), w.End.String(), string(typ))
	if err := s.publisher.PublishExportRequest(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export request",
			"job_id", msg.JobID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExportQueueUnavailable, err)
	}

	slog.InfoContext(ctx, "Export request queued",
		"job_id", msg.JobID, "user_id", userID, "period", w.String(), "type", typ)
	return &ExportJob{JobID: msg.JobID, Period: w, Type: typ}, nil
}
