// Package server exposes scans and stored reports over HTTP.
//
// Routes:
//
//	POST /api/scans        run a scan and store the resulting report
//	GET  /api/reports      list stored report summaries
//	GET  /api/reports/{id} fetch one report, ?format=markdown for text
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/report"
	"github.com/refgraph/refgraph/pkg/scanner"
	"github.com/refgraph/refgraph/pkg/store"
)

// Options configures a Server.
type Options struct {
	// Store persists scan reports. Required.
	Store store.Store

	// Scan is applied to every scan request; per-request fields
	// override the top-N only.
	Scan scanner.Options

	// TopN bounds ranking tables in stored reports.
	TopN int

	// Logger receives request and scan logs. Defaults to log.Default.
	Logger *log.Logger
}

// Server handles the HTTP API.
type Server struct {
	store  store.Store
	scan   scanner.Options
	topN   int
	logger *log.Logger
}

// New creates a Server and its router.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  opts.Store,
		scan:   opts.Scan,
		topN:   opts.TopN,
		logger: logger,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Route("/api", func(r chi.Router) {
		r.Post("/scans", s.handleScan)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})
	return r
}

type scanRequest struct {
	// Root is the directory to scan. Required.
	Root string `json:"root"`

	// Name labels the stored report.
	Name string `json:"name,omitempty"`

	// Top overrides the server's ranking bound when positive.
	Top int `json:"top,omitempty"`
}

type scanResponse struct {
	ID string `json:"id"`
	report.Report
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "invalid request body")
		return
	}
	if req.Root == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidRoot, "root is required")
		return
	}

	start := time.Now()
	g, err := scanner.Scan(r.Context(), req.Root, s.scan)
	if err != nil {
		s.logger.Error("scan failed", "root", req.Root, "error", err)
		code := apperrors.GetCode(err)
		if code == "" {
			code = apperrors.ErrCodeScanFailed
		}
		writeError(w, http.StatusUnprocessableEntity, code, apperrors.UserMessage(err))
		return
	}

	topN := s.topN
	if req.Top > 0 {
		topN = req.Top
	}
	rep := report.Build(g, report.Options{Root: req.Root, TopN: topN})
	rep.Name = req.Name

	id, err := s.store.Save(r.Context(), rep)
	if err != nil {
		s.logger.Error("save report failed", "root", req.Root, "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreFailed, "failed to store report")
		return
	}
	rep.ID = id

	s.logger.Info("scan complete",
		"root", req.Root,
		"nodes", rep.NodeCount,
		"edges", rep.EdgeCount,
		"duration", time.Since(start))

	writeJSON(w, http.StatusCreated, scanResponse{ID: id, Report: rep})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list reports failed", "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreFailed, "failed to list reports")
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rep, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeReportNotFound, "report not found")
		return
	}
	if err != nil {
		s.logger.Error("get report failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrCodeStoreFailed, "failed to load report")
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		if err := rep.Markdown(w); err != nil {
			s.logger.Error("render report failed", "id", id, "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code apperrors.Code, msg string) {
	writeJSON(w, status, map[string]string{"code": string(code), "error": msg})
}
