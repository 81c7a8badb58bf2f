package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"presupuesto/internal/analytics"
	applog "presupuesto/internal/log"
	"presupuesto/internal/middleware/security"
	"presupuesto/internal/services"
)

type userIDKey struct{}

// requireUser rejects requests without a positive numeric X-User-ID.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseUserID(r.Header.Get(HeaderUserID))
		if !ok {
			UnauthorizedError("missing or invalid " + HeaderUserID + " header").Write(w)
			return
		}
		logger := applog.FromContext(r.Context()).With(applog.FieldUserID, id)
		ctx := context.WithValue(r.Context(), userIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(applog.NewContext(ctx, logger)))
	})
}

func parseUserID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func userFrom(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey{}).(int64)
	return id
}

// writeError maps an operation error to a response. Caller mistakes are
// echoed; anything else is logged and hidden behind a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger := applog.FromContext(r.Context())
	switch {
	case analytics.IsValidationError(err):
		logger.Debug("Rejected request", applog.FieldOperation, op, applog.FieldError, err)
		BadRequestError(err.Error()).Write(w)
	case errors.Is(err, services.ErrExportQueueUnavailable):
		logger.Warn("Export queue unavailable", applog.FieldOperation, op, applog.FieldError, err)
		ServiceUnavailableError("sheets export is not available right now").Write(w)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		logger.Debug("Request canceled", applog.FieldOperation, op)
	default:
		logger.Error("Request failed", applog.FieldOperation, op, applog.FieldError, err)
		InternalServerError("internal server error").Write(w)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Raw(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	}).Write(w)
}

// handleReady reports whether the record store answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"store": "not_configured"}
	status, code := "ready", http.StatusOK

	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			applog.FromContext(r.Context()).Warn("Readiness check failed", applog.FieldError, err)
			checks["store"] = "failed"
			status, code = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	}

	NewJSONResponse().Status(code).Raw(map[string]any{
		"status": status,
		"checks": checks,
	}).Write(w)
}

// handleMetrics exposes request, guard and rate limit counters in plain
// text.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	sec := s.guard.GetMetrics()
	tr := s.traceMiddleware.GetMetrics()

	var b strings.Builder
	fmt.Fprintf(&b, "# Application\n")
	fmt.Fprintf(&b, "uptime_seconds %d\n", int64(time.Since(s.startedAt).Seconds()))
	fmt.Fprintf(&b, "requests_total %d\n", tr.TotalRequests)
	fmt.Fprintf(&b, "request_duration_avg_us %d\n", tr.AverageResponseTime)
	fmt.Fprintf(&b, "# Security\n")
	fmt.Fprintf(&b, "blocked_requests_total %d\n", sec.Blocked)
	for _, reason := range security.Reasons() {
		fmt.Fprintf(&b, "blocked_requests{reason=%q} %d\n", reason, sec.ByReason[reason])
	}
	fmt.Fprintf(&b, "invalid_forwarded_headers_total %d\n", sec.InvalidForwarded)
	if s.rateLimiter != nil {
		rl := s.rateLimiter.GetMetrics()
		fmt.Fprintf(&b, "# Rate limiting\n")
		fmt.Fprintf(&b, "rate_limit_hits_total %d\n", rl.TotalHits)
		fmt.Fprintf(&b, "rate_limit_clients %d\n", rl.ClientCount)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}
