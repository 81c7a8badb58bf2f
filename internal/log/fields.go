package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldWindow     = "window"
	FieldJobID      = "job_id"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAnalytics = "analytics"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentBackend   = "backend"
	ComponentCLI       = "cli"
)

// Operations name the engine entry points in logs and error responses.
const (
	OpDashboard   = "dashboard"
	OpCharts      = "charts"
	OpTrends      = "trends"
	OpPredictions = "predictions"
	OpCompare     = "compare"
	OpExport      = "export"
	OpSheets      = "sheets_export"
)
