package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"investor-reporting/internal/export"
	"investor-reporting/internal/metrics"
	"investor-reporting/internal/pipeline"
	"investor-reporting/internal/store"
)

// Server is the HTTP boundary: it translates requests into pipeline and
// store calls and stage failures into a single bad-request class.
type Server struct {
	pipeline *pipeline.Pipeline
	store    *store.Store
	export   *export.Service
	log      *slog.Logger
}

func New(p *pipeline.Pipeline, st *store.Store, ex *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{pipeline: p, store: st, export: ex, log: logger}
}

// Routes returns a chi.Router with all entry points mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/file", s.handleUpload)
	r.Post("/reports", s.handleSubmit)
	r.Get("/reports", s.handleListReports)
	r.Get("/reports/draft", s.handleCurrentDraft)
	r.Get("/reports/export", s.handleExport)
	r.Get("/fields", s.handleFields)
	return r
}

// handleUpload accepts a multipart document upload, runs the extraction
// pipeline, and returns the validated metrics record as a flat JSON object
// with absent fields serialized as null.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	form, err := s.pipeline.Extract(r.Context(), data, header.Filename)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse %s: %v", header.Filename, err))
		return
	}
	s.writeJSON(w, http.StatusOK, form)
}

// handleSubmit appends a full report — metrics record plus explicit state —
// to the store, bypassing extraction. The record is validated as strictly as
// extraction output.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FormData json.RawMessage       `json:"form_data"`
		State    store.SubmissionState `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("decode report: %v", err))
		return
	}
	if !body.State.Valid() {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown state %q", body.State))
		return
	}
	form, err := metrics.Validate(body.FormData)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid form_data: %v", err))
		return
	}

	s.store.Append(store.Report{FormData: form, State: body.State})
	w.WriteHeader(http.StatusNoContent)
}

// handleCurrentDraft returns the metrics of the current draft, or 204 when
// the sequence is empty or the last report is finalized.
func (s *Server) handleCurrentDraft(w http.ResponseWriter, r *http.Request) {
	form, ok := s.store.CurrentDraft()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, form)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Reports())
}

// handleFields serves the field table so the form UI can render tooltips
// from the same descriptions the prompt reference uses.
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, metrics.Fields)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.export.ReportsXLSX()
	if err != nil {
		s.log.Error("server.export.failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reports.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("server.write_response.failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.log.Warn("server.request.rejected", "status", status, "error", msg)
	s.writeJSON(w, status, map[string]string{"error": msg})
}
