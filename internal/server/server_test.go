package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/raysh454/jobcheck/internal/analyzer"
	"github.com/raysh454/jobcheck/internal/assessor"
	"github.com/raysh454/jobcheck/internal/eda"
	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/predictor"
	"github.com/raysh454/jobcheck/internal/registry"
	"github.com/raysh454/jobcheck/internal/server"
	"github.com/raysh454/jobcheck/internal/testutil"
)

const scamBody = `{"title":"Data Entry Clerk","description":"Earn $5000 per week working from home, no experience needed, investment required to start"}`

func newTestServer(t *testing.T, p predictor.Predictor) *server.Server {
	t.Helper()
	logger := &testutil.DummyLogger{}

	acfg := assessor.DefaultConfig()
	a, err := assessor.NewHeuristicsAssessor(&acfg, logger)
	if err != nil {
		t.Fatalf("NewHeuristicsAssessor: %v", err)
	}
	an, err := analyzer.NewDefaultAnalyzer(a, p, nil, logger)
	if err != nil {
		t.Fatalf("NewDefaultAnalyzer: %v", err)
	}
	db, err := registry.Open(filepath.Join(t.TempDir(), "jobcheck.db"))
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	reg, err := registry.NewRegistry(db, logger)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	cfg := server.DefaultConfig()
	cfg.Logger = logger
	s, err := server.NewServer(cfg, server.Deps{Analyzer: an, Assessor: a, Store: reg, EDA: eda.Fallback()})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

func analyze(t *testing.T, s http.Handler, body string) analyzer.Verdict {
	t.Helper()
	rec := doJSON(t, s, "POST", "/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /analyze: status %d, body %s", rec.Code, rec.Body.String())
	}
	var v analyzer.Verdict
	decodeJSON(t, rec, &v)
	return v
}

// ─── Construction ──────────────────────────────────────────────────────

func TestNewServer_Validation(t *testing.T) {
	t.Parallel()
	if _, err := server.NewServer(server.DefaultConfig(), server.Deps{}); err == nil {
		t.Error("expected error for missing deps")
	}
}

// ─── CORS ──────────────────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/health", "")
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_CORS_Preflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "OPTIONS", "/analyze", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "POST" {
		t.Errorf("Allow-Methods = %q", got)
	}
}

// ─── Meta ──────────────────────────────────────────────────────────────

func TestServer_Health(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		p       predictor.Predictor
		backend string
	}{
		{"no backend", nil, analyzer.BackendDisabled},
		{"reachable", &testutil.StubPredictor{}, analyzer.BackendReachable},
		{"unreachable", &testutil.StubPredictor{Err: &predictor.StatusError{StatusCode: 502}}, analyzer.BackendUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t, tt.p)
			rec := doJSON(t, s, "GET", "/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var hs analyzer.HealthStatus
			decodeJSON(t, rec, &hs)
			if hs.Backend != tt.backend {
				t.Errorf("Backend = %q, want %q", hs.Backend, tt.backend)
			}
			if hs.ScoringVersion == "" {
				t.Error("expected scoring version")
			}
		})
	}
}

func TestServer_Rules(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/rules", "")
	var info assessor.RulesetInfo
	decodeJSON(t, rec, &info)
	if info.ScamPatterns == 0 || info.ProfessionalSignals == 0 {
		t.Errorf("expected loaded rule tables, got %+v", info)
	}
}

func TestServer_Rules_PlainAssessor(t *testing.T) {
	t.Parallel()
	logger := &testutil.DummyLogger{}
	a := &testutil.DummyAssessor{}
	an, err := analyzer.NewDefaultAnalyzer(a, nil, nil, logger)
	if err != nil {
		t.Fatalf("NewDefaultAnalyzer: %v", err)
	}
	db, err := registry.Open(":memory:")
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	reg, err := registry.NewRegistry(db, logger)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	s, err := server.NewServer(server.Config{Logger: logger}, server.Deps{Analyzer: an, Assessor: a, Store: reg})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	var info assessor.RulesetInfo
	decodeJSON(t, doJSON(t, s, "GET", "/rules", ""), &info)
	if info.Version != "v-dummy" {
		t.Errorf("Version = %q, want v-dummy", info.Version)
	}

	// missing EDA falls back to the built-in summary
	var sum eda.Summary
	decodeJSON(t, doJSON(t, s, "GET", "/eda", ""), &sum)
	if !sum.Fallback {
		t.Error("expected fallback summary")
	}
}

func TestServer_EDA(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/eda", "")
	var sum eda.Summary
	decodeJSON(t, rec, &sum)
	if sum.Total != 27880 || !sum.Fallback {
		t.Errorf("unexpected summary: %+v", sum)
	}
}

func TestServer_Swagger(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/analyses/{id}/diff/{other}") {
		t.Error("swagger doc is missing the diff route")
	}
}

// ─── Scoring ───────────────────────────────────────────────────────────

func TestServer_Analyze_LocalFallback(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	v := analyze(t, s, scamBody)
	if v.ID == "" {
		t.Error("expected stored verdict to carry an id")
	}
	if v.Source != analyzer.SourceLocal || v.FallbackReason == "" {
		t.Errorf("Source = %q, FallbackReason = %q", v.Source, v.FallbackReason)
	}
	if v.Analysis == nil || v.Analysis.CountBySeverity(model.SeverityDanger) == 0 {
		t.Error("expected danger indicators for scam posting")
	}
	if v.Report == nil || !strings.HasSuffix(v.Report.Message, "(local analysis).") {
		t.Errorf("expected local-analysis report, got %+v", v.Report)
	}
}

func TestServer_Analyze_Backend(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, &testutil.StubPredictor{
		Prediction: &predictor.Prediction{FraudProbability: 0.12, Key: "probability"},
	})

	v := analyze(t, s, scamBody)
	if v.Source != analyzer.SourceBackend || v.FraudProbability != 0.12 || v.BackendKey != "probability" {
		t.Errorf("unexpected verdict: source=%q p=%v key=%q", v.Source, v.FraudProbability, v.BackendKey)
	}
}

func TestServer_Analyze_StripsHTML(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	v := analyze(t, s, `{"title":"<b>Data Entry Clerk</b>"}`)
	if v.Posting.Title != "<b>Data Entry Clerk</b>" {
		t.Errorf("without html flag title should be kept, got %q", v.Posting.Title)
	}

	rec := doJSON(t, s, "POST", "/analyze?html=true", `{"title":"<b>Data Entry Clerk</b>"}`)
	var stripped analyzer.Verdict
	decodeJSON(t, rec, &stripped)
	if stripped.Posting.Title != "Data Entry Clerk" {
		t.Errorf("html=true title = %q", stripped.Posting.Title)
	}
}

func TestServer_Analyze_BadRequests(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/analyze", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON: expected 400, got %d", rec.Code)
	}
	var e server.ErrorResponse
	decodeJSON(t, rec, &e)
	if e.Error == "" {
		t.Error("expected error message")
	}

	big := `{"description":"` + strings.Repeat("a", 2<<20) + `"}`
	if rec := doJSON(t, s, "POST", "/analyze", big); rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized body: expected 413, got %d", rec.Code)
	}
}

func TestServer_Assess(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/assess", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var res model.AnalysisResult
	decodeJSON(t, rec, &res)
	if res.FraudProbability < 0.05 || res.FraudProbability > 0.95 {
		t.Errorf("probability %v outside clamp", res.FraudProbability)
	}
	if len(res.Indicators) == 0 {
		t.Error("empty posting should produce warning indicators")
	}

	// assess does not write history
	list := doJSON(t, s, "GET", "/analyses", "")
	var resp server.AnalysesResponse
	decodeJSON(t, list, &resp)
	if resp.Total != 0 {
		t.Errorf("expected empty history, got %d", resp.Total)
	}
}

// ─── History ───────────────────────────────────────────────────────────

func TestServer_ListAndGetAnalyses(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	first := analyze(t, s, scamBody)
	analyze(t, s, `{"title":"Senior Software Engineer"}`)

	rec := doJSON(t, s, "GET", "/analyses?limit=1", "")
	var resp server.AnalysesResponse
	decodeJSON(t, rec, &resp)
	if resp.Total != 2 || len(resp.Analyses) != 1 {
		t.Fatalf("expected total 2 with 1 row, got total %d rows %d", resp.Total, len(resp.Analyses))
	}

	rec = doJSON(t, s, "GET", "/analyses/"+first.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got analyzer.Verdict
	decodeJSON(t, rec, &got)
	if got.Posting.Title != "Data Entry Clerk" {
		t.Errorf("Title = %q", got.Posting.Title)
	}

	if rec := doJSON(t, s, "GET", "/analyses/does-not-exist", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestServer_DiffAnalyses(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	base := analyze(t, s, `{"title":"Sales Associate","location":"Denver, CO"}`)
	head := analyze(t, s, `{"title":"Sales Associate","location":"Denver, CO","benefits":"Paid weekly by western union"}`)

	rec := doJSON(t, s, "GET", "/analyses/"+base.ID+"/diff/"+head.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var d server.DiffResponse
	decodeJSON(t, rec, &d)
	if d.BaseID != base.ID || d.HeadID != head.ID {
		t.Errorf("ids = %s/%s", d.BaseID, d.HeadID)
	}
	if d.Score == nil || d.Score.ProbabilityDelta <= 0 {
		t.Fatalf("expected probability to rise, got %+v", d.Score)
	}
	if len(d.Score.RuleDeltas) == 0 {
		t.Error("expected rule deltas")
	}
	if len(d.Fields) != 1 || d.Fields[0].Field != "benefits" {
		t.Errorf("expected one benefits field diff, got %+v", d.Fields)
	}

	if rec := doJSON(t, s, "GET", "/analyses/"+base.ID+"/diff/missing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown head, got %d", rec.Code)
	}
}

// ─── WebSocket ─────────────────────────────────────────────────────────

func TestServer_AnalyzeWS(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/analyze", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("nope")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var e server.WSError
	if err := conn.ReadJSON(&e); err != nil || e.Error == "" {
		t.Fatalf("expected error reply, got %+v (err %v)", e, err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(scamBody)); err != nil {
		t.Fatalf("write: %v", err)
	}
	var v analyzer.Verdict
	if err := conn.ReadJSON(&v); err != nil {
		t.Fatalf("read verdict: %v", err)
	}
	if v.ID == "" || v.Analysis == nil {
		t.Errorf("expected stored verdict, got %+v", v)
	}
}
