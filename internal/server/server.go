package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/jobcheck/internal/analyzer"
	"github.com/raysh454/jobcheck/internal/assessor"
	"github.com/raysh454/jobcheck/internal/eda"
	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/registry"
	"github.com/raysh454/jobcheck/internal/utils"

	_ "github.com/raysh454/jobcheck/internal/server/docs" // swagger spec
)

// Store is the slice of the analysis history the API needs.
type Store interface {
	Save(ctx context.Context, v *analyzer.Verdict) (string, error)
	Get(ctx context.Context, id string) (*analyzer.Verdict, error)
	List(ctx context.Context, limit int) ([]registry.Summary, error)
	Count(ctx context.Context) (int, error)
}

// Deps are the components the API serves.
type Deps struct {
	Analyzer analyzer.Analyzer
	Assessor assessor.Assessor
	Store    Store
	EDA      *eda.Summary
}

// Server is the HTTP + WebSocket API surface for jobcheck.
type Server struct {
	cfg      Config
	deps     Deps
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
}

// NewServer validates deps and builds the router.
func NewServer(cfg Config, deps Deps) (*Server, error) {
	if deps.Analyzer == nil {
		return nil, errors.New("server: nil analyzer")
	}
	if deps.Assessor == nil {
		return nil, errors.New("server: nil assessor")
	}
	if deps.Store == nil {
		return nil, errors.New("server: nil store")
	}
	if deps.EDA == nil {
		deps.EDA = eda.Fallback()
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = 1 << 20
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		router: chi.NewRouter(),
		logger: logger.With(logging.Field{Key: "component", Value: "server"}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return cfg.AllowedOrigin == "*" || r.Header.Get("Origin") == cfg.AllowedOrigin
			},
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/analyze", s.optionsHandler("POST"))
	r.Options("/assess", s.optionsHandler("POST"))
	r.Options("/analyses", s.optionsHandler("GET"))
	r.Options("/analyses/{id}", s.optionsHandler("GET"))

	r.Get("/health", s.handleHealth)
	r.Get("/rules", s.handleRules)
	r.Get("/eda", s.handleEDA)

	// Scoring
	r.Post("/analyze", s.handleAnalyze)
	r.Post("/assess", s.handleAssess)

	// History
	r.Get("/analyses", s.handleListAnalyses)
	r.Get("/analyses/{id}", s.handleGetAnalysis)
	r.Get("/analyses/{id}/diff/{other}", s.handleDiffAnalyses)

	r.Get("/ws/analyze", s.handleAnalyzeWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}
	// posting bodies can be large; log their size only
	if r.ContentLength > 0 {
		fields = append(fields, logging.Field{Key: "content_length", Value: r.ContentLength})
	}

	start := time.Now()
	s.router.ServeHTTP(w, r)
	fields = append(fields, logging.Field{Key: "elapsed_ms", Value: time.Since(start).Milliseconds()})
	s.logger.Info("http_request", fields...)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: 0, // websocket sessions are long-lived
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// decodePosting reads a posting body. With ?html=true, markup in any field
// is reduced to text before scoring.
func (s *Server) decodePosting(w http.ResponseWriter, r *http.Request) (model.JobPosting, bool) {
	var p model.JobPosting
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "posting too large")
			return p, false
		}
		writeError(w, http.StatusBadRequest, "could not read body")
		return p, false
	}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&p); err != nil {
		s.logger.Warn("decoding posting", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return p, false
	}
	html, _ := strconv.ParseBool(r.URL.Query().Get("html"))
	return utils.NormalizePosting(p, html), true
}

// --- HTTP handlers ---

// handleHealth godoc
// @Summary Readiness and backend reachability
// @Tags meta
// @Produce json
// @Success 200 {object} analyzer.HealthStatus
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Analyzer.Health(r.Context()))
}

// handleRules godoc
// @Summary Loaded ruleset summary
// @Tags meta
// @Produce json
// @Success 200 {object} assessor.RulesetInfo
// @Router /rules [get]
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	if info, ok := s.deps.Assessor.(interface{ Info() assessor.RulesetInfo }); ok {
		writeJSON(w, http.StatusOK, info.Info())
		return
	}
	writeJSON(w, http.StatusOK, assessor.RulesetInfo{Version: s.deps.Assessor.Version()})
}

// handleEDA godoc
// @Summary Training data summary statistics
// @Tags meta
// @Produce json
// @Success 200 {object} eda.Summary
// @Router /eda [get]
func (s *Server) handleEDA(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.EDA)
}

// handleAnalyze godoc
// @Summary Analyze a job posting
// @Description Scores the posting with the prediction backend when reachable and the local rules otherwise, then stores the verdict.
// @Tags analysis
// @Accept json
// @Produce json
// @Param html query bool false "Strip HTML markup from fields"
// @Param posting body model.JobPosting true "Posting fields"
// @Success 200 {object} analyzer.Verdict
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodePosting(w, r)
	if !ok {
		return
	}
	v := s.analyzeAndStore(r.Context(), p)
	writeJSON(w, http.StatusOK, v)
}

// handleAssess godoc
// @Summary Score a posting with the local rules only
// @Tags analysis
// @Accept json
// @Produce json
// @Param html query bool false "Strip HTML markup from fields"
// @Param posting body model.JobPosting true "Posting fields"
// @Success 200 {object} model.AnalysisResult
// @Failure 400 {object} ErrorResponse
// @Router /assess [post]
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodePosting(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Assessor.Assess(p))
}

// analyzeAndStore never fails: a history write error only loses the id.
func (s *Server) analyzeAndStore(ctx context.Context, p model.JobPosting) *analyzer.Verdict {
	v := s.deps.Analyzer.Analyze(ctx, p)
	if _, err := s.deps.Store.Save(ctx, v); err != nil {
		s.logger.Warn("saving analysis", logging.Field{Key: "error", Value: err.Error()})
	}
	return v
}

// handleListAnalyses godoc
// @Summary List stored analyses
// @Tags history
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {object} AnalysesResponse
// @Failure 500 {object} ErrorResponse
// @Router /analyses [get]
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	rows, err := s.deps.Store.List(r.Context(), limit)
	if err != nil {
		s.logger.Warn("listing analyses", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := s.deps.Store.Count(r.Context())
	if err != nil {
		s.logger.Warn("counting analyses", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, AnalysesResponse{Total: total, Analyses: rows})
}

// handleGetAnalysis godoc
// @Summary Fetch one stored analysis
// @Tags history
// @Produce json
// @Param id path string true "Analysis id"
// @Success 200 {object} analyzer.Verdict
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id} [get]
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	v, ok := s.lookup(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleDiffAnalyses godoc
// @Summary Compare two stored analyses
// @Description Reports per-rule score movement and per-field text changes from id to other.
// @Tags history
// @Produce json
// @Param id path string true "Base analysis id"
// @Param other path string true "Head analysis id"
// @Success 200 {object} DiffResponse
// @Failure 404 {object} ErrorResponse
// @Router /analyses/{id}/diff/{other} [get]
func (s *Server) handleDiffAnalyses(w http.ResponseWriter, r *http.Request) {
	base, ok := s.lookup(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	head, ok := s.lookup(w, r, chi.URLParam(r, "other"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, DiffResponse{
		BaseID: base.ID,
		HeadID: head.ID,
		Score:  assessor.DiffResults(base.Analysis, head.Analysis),
		Fields: utils.DiffPostings(base.Posting, head.Posting),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (*analyzer.Verdict, bool) {
	v, err := s.deps.Store.Get(r.Context(), id)
	switch {
	case errors.Is(err, registry.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("analysis %s not found", id))
		return nil, false
	case err != nil:
		s.logger.Warn("getting analysis", logging.Field{Key: "id", Value: id}, logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return v, true
}

// WebSockets

// handleAnalyzeWS godoc
// @Summary Stream analyses over a websocket
// @Description Each text message is a posting JSON object; each reply is a verdict or {"error": ...}.
// @Tags analysis
// @Router /ws/analyze [get]
func (s *Server) handleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.cfg.MaxRequestBytes)

	ctx := r.Context()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("reading websocket", logging.Field{Key: "error", Value: err.Error()})
			}
			return
		}

		var p model.JobPosting
		if err := json.Unmarshal(msg, &p); err != nil {
			if err := conn.WriteJSON(WSError{Error: "invalid JSON"}); err != nil {
				return
			}
			continue
		}

		v := s.analyzeAndStore(ctx, p.Trimmed())
		if err := conn.WriteJSON(v); err != nil {
			// Assume client disconnected
			return
		}
	}
}
