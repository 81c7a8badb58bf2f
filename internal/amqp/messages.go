package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportRequestMessage asks the export worker to assemble one export and
// push it to Google Sheets. Dates are the resolved YYYY-MM-DD window bounds,
// so the job covers the same days no matter when the worker runs.
type ExportRequestMessage struct {
	JobID     string    `json:"job_id"`
	UserID    int64     `json:"user_id"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExportRequestMessage creates a message with a fresh job id.
func NewExportRequestMessage(userID int64, startDate, endDate, exportType string) *ExportRequestMessage {
	return &ExportRequestMessage{
		JobID:     uuid.NewString(),
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Type:      exportType,
		Timestamp: time.Now(),
	}
}

func (m *ExportRequestMessage) Validate() error {
	if _, err := uuid.Parse(m.JobID); err != nil {
		return fmt.Errorf("invalid job id %q: %w", m.JobID, err)
	}
	if m.UserID <= 0 {
		return errors.New("missing user id")
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *ExportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExportRequestMessageFromJSON decodes and validates a message body.
func ExportRequestMessageFromJSON(data []byte) (*ExportRequestMessage, error) {
	var msg ExportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
