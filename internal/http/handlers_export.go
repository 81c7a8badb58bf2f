package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"presupuesto/internal/analytics"
	"presupuesto/internal/export"
	applog "presupuesto/internal/log"
)

const maxExportRequestBytes = 4 << 10

// exportRequest is the body accepted by the sheets export route. Query
// parameters of the same name fill fields the body leaves empty.
type exportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
}

func (s *Server) assembleExport(r *http.Request) (*analytics.ExportData, error) {
	q := r.URL.Query()
	return s.engine.Export(r.Context(), userFrom(r), q.Get("start_date"), q.Get("end_date"), q.Get("type"))
}

func (s *Server) handleExportData(w http.ResponseWriter, r *http.Request) {
	data, err := s.assembleExport(r)
	if err != nil {
		s.writeError(w, r, applog.OpExport, err)
		return
	}
	OK(data).Write(w)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.serveDownload(w, r, export.FormatCSV, export.WriteCSV)
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	s.serveDownload(w, r, export.FormatXLSX, export.WriteXLSX)
}

// serveDownload renders into a buffer first so an encoding failure can still
// produce an error envelope instead of a truncated attachment.
func (s *Server) serveDownload(w http.ResponseWriter, r *http.Request, format string, encode func(io.Writer, *analytics.ExportData) error) {
	data, err := s.assembleExport(r)
	if err != nil {
		s.writeError(w, r, applog.OpExport, err)
		return
	}

	var buf bytes.Buffer
	if err := encode(&buf, data); err != nil {
		s.writeError(w, r, applog.OpExport, err)
		return
	}

	name := export.Filename(format, data.Period)
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	applog.FromContext(r.Context()).Info("Export downloaded",
		applog.FieldOperation, applog.OpExport,
		applog.FieldWindow, data.Period.String(),
		"format", format,
		"expenses", len(data.Expenses),
		"income", len(data.Income),
		"bytes", buf.Len())
}

// handleExportSheets queues a spreadsheet export and answers 202 with the
// job descriptor.
func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExportRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequestError("invalid JSON body").Write(w)
		return
	}
	q := r.URL.Query()
	if req.StartDate == "" {
		req.StartDate = q.Get("start_date")
	}
	if req.EndDate == "" {
		req.EndDate = q.Get("end_date")
	}
	if req.Type == "" {
		req.Type = q.Get("type")
	}

	job, err := s.exports.RequestSheetsExport(r.Context(), userFrom(r), req.StartDate, req.EndDate, req.Type)
	if err != nil {
		s.writeError(w, r, applog.OpSheets, err)
		return
	}

	applog.FromContext(r.Context()).Info("Sheets export queued",
		applog.FieldJobID, job.JobID,
		applog.FieldWindow, job.Period.String())
	OK(job).Status(http.StatusAccepted).Write(w)
}
