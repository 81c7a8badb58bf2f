package http

import (
	"net/http"

	"presupuesto/internal/analytics"
	applog "presupuesto/internal/log"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := s.engine.Dashboard(r.Context(), userFrom(r), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		s.writeError(w, r, applog.OpDashboard, err)
		return
	}
	OK(summary).Write(w)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	charts, err := s.engine.Charts(r.Context(), userFrom(r), q.Get("start_date"), q.Get("end_date"), q.Get("group_by"))
	if err != nil {
		s.writeError(w, r, applog.OpCharts, err)
		return
	}
	OK(charts).Write(w)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	periods := analytics.ParsePeriods(r.URL.Query().Get("periods"))
	report, err := s.engine.Trends(r.Context(), userFrom(r), periods)
	if err != nil {
		s.writeError(w, r, applog.OpTrends, err)
		return
	}
	OK(report).Write(w)
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	months := analytics.ParseMonthsAhead(r.URL.Query().Get("months_ahead"))
	forecast, err := s.engine.Predictions(r.Context(), userFrom(r), months)
	if err != nil {
		s.writeError(w, r, applog.OpPredictions, err)
		return
	}
	OK(forecast).Write(w)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := s.engine.Compare(r.Context(), userFrom(r), analytics.ComparisonInput{
		Period1Start: q.Get("period1_start"),
		Period1End:   q.Get("period1_end"),
		Period2Start: q.Get("period2_start"),
		Period2End:   q.Get("period2_end"),
	})
	if err != nil {
		s.writeError(w, r, applog.OpCompare, err)
		return
	}
	OK(report).Write(w)
}
