// Package server wires the moderation services onto an HTTP surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"videomod/internal/conf"
	"videomod/internal/pkg/engine"
	"videomod/internal/pkg/pagination"
	"videomod/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// Server wraps the stdlib http.Server with a chi mux.
type Server struct {
	srv             *http.Server
	shutdownTimeout conf.Duration
	maxUploadBytes  int64
	moderation      *service.ModerationService
	admin           *service.AdminService
	log             *log.Helper
}

// NewHTTPServer creates the HTTP server with all routes mounted.
func NewHTTPServer(c *conf.Server, moderation *service.ModerationService, admin *service.AdminService, logger log.Logger) *Server {
	s := &Server{
		shutdownTimeout: c.HTTP.ShutdownTimeout,
		maxUploadBytes:  c.HTTP.MaxUploadBytes,
		moderation:      moderation,
		admin:           admin,
		log:             log.NewHelper(logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/moderation", s.handleModerate)
		r.Get("/decisions", s.handleListDecisions)
		r.Get("/decisions/recent", s.handleRecentDecisions)
		r.Get("/decisions/{id}", s.handleGetDecision)
		r.Get("/statistics", s.handleStatistics)
		r.Get("/history/export", s.handleExportHistory)
		r.Delete("/history", s.handleClearHistory)

		r.Route("/admin/fraud-terms", func(r chi.Router) {
			r.Get("/", s.handleListFraudTerms)
			r.Post("/", s.handleAddFraudTerm)
			r.Post("/rebuild", s.handleRebuildFraudTerms)
			r.Delete("/{term}", s.handleRemoveFraudTerm)
		})
	})

	s.srv = &http.Server{
		Addr:         c.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  c.HTTP.ReadTimeout.AsDuration(),
		WriteTimeout: c.HTTP.WriteTimeout.AsDuration(),
	}
	return s
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.log.Infof("http listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout.AsDuration())
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleModerate accepts a multipart upload (field "video", optional
// "config" JSON part with policy overrides) and returns the decision.
func (s *Server) handleModerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing video file")
		return
	}
	defer file.Close()

	var overrides service.ConfigOverrides
	if raw := r.FormValue("config"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			writeError(w, http.StatusBadRequest, "invalid config overrides: "+err.Error())
			return
		}
	}

	decision, err := s.moderation.ModerateUpload(r.Context(), file, header.Filename, overrides)
	if err != nil {
		s.writeModerationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

func (s *Server) writeModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, engine.ErrSourceUnreadable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Errorf("moderation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "moderation failed")
	}
}

func (s *Server) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	decision, err := s.moderation.GetDecision(r.Context(), id)
	if err != nil {
		s.log.Errorf("decision lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "decision lookup failed")
		return
	}
	if decision == nil {
		writeError(w, http.StatusNotFound, "decision not found")
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

func (s *Server) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	outcome := r.URL.Query().Get("outcome")

	resp, err := s.moderation.ListDecisions(r.Context(), outcome, pagination.NewOffsetRequest(page, pageSize))
	if err != nil {
		s.log.Errorf("decision list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "decision list failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecentDecisions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	writeJSON(w, http.StatusOK, s.moderation.RecentDecisions(limit))
}

func (s *Server) handleStatistics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.moderation.Statistics())
}

func (s *Server) handleExportHistory(w http.ResponseWriter, _ *http.Request) {
	raw, err := s.moderation.ExportHistory()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, _ *http.Request) {
	s.moderation.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

type addFraudTermRequest struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	AddedBy  string `json:"added_by"`
}

func (s *Server) handleAddFraudTerm(w http.ResponseWriter, r *http.Request) {
	var req addFraudTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Term == "" {
		writeError(w, http.StatusBadRequest, "term is required")
		return
	}
	if req.AddedBy == "" {
		req.AddedBy = "manual"
	}
	if err := s.admin.AddFraudTerm(r.Context(), req.Term, req.Category, req.AddedBy); err != nil {
		s.log.Errorf("add fraud term failed: %v", err)
		writeError(w, http.StatusInternalServerError, "add fraud term failed")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveFraudTerm(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	if err := s.admin.RemoveFraudTerm(r.Context(), term); err != nil {
		s.log.Errorf("remove fraud term failed: %v", err)
		writeError(w, http.StatusInternalServerError, "remove fraud term failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFraudTerms(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > pagination.MaxLimit {
		limit = pagination.DefaultLimit
	}

	entries, total, err := s.admin.ListFraudTerms(r.Context(), r.URL.Query().Get("category"), int32(limit), int32(offset))
	if err != nil {
		s.log.Errorf("list fraud terms failed: %v", err)
		writeError(w, http.StatusInternalServerError, "list fraud terms failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"terms": entries, "total": total})
}

func (s *Server) handleRebuildFraudTerms(w http.ResponseWriter, r *http.Request) {
	count, err := s.admin.RebuildFraudTerms(r.Context())
	if err != nil {
		s.log.Errorf("rebuild fraud terms failed: %v", err)
		writeError(w, http.StatusInternalServerError, "rebuild failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"phrases": count})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
