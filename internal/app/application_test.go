package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raysh454/jobcheck/internal/analyzer"
	"github.com/raysh454/jobcheck/internal/app"
	"github.com/raysh454/jobcheck/internal/cache"
	"github.com/raysh454/jobcheck/internal/cli"
	"github.com/raysh454/jobcheck/internal/testutil"
)

func testConfig() *app.Config {
	cfg := app.DefaultConfig()
	cfg.DBPath = ":memory:"
	cfg.Cache.Backend = cache.BackendMemory
	cfg.Retention.MaxAge = 0
	return cfg
}

func newApp(t *testing.T, cfg *app.Config, args *cli.CLIArgs) *app.Application {
	t.Helper()
	a, err := app.NewApplication(context.Background(), cfg, args, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

func TestNewApplication_BuildsComponents(t *testing.T) {
	t.Parallel()
	a := newApp(t, testConfig(), nil)

	if a.Assessor == nil || a.Analyzer == nil || a.Registry == nil || a.Retention == nil {
		t.Fatalf("components missing: %+v", a)
	}
	if a.EDA == nil || !a.EDA.Fallback {
		t.Errorf("expected built-in EDA summary, got %+v", a.EDA)
	}
	if err := a.Start(); err != nil {
		t.Errorf("Start: %v", err)
	}
}

func TestNewApplication_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*app.Config)
	}{
		{"bad rules path", func(c *app.Config) { c.Assessor.RulesPath = "/does/not/exist.yaml" }},
		{"bad backend url", func(c *app.Config) { c.Predictor.Endpoint = "ftp://models.local/predict" }},
		{"unknown cache", func(c *app.Config) { c.Cache.Backend = "memcached" }},
		{"bad retention", func(c *app.Config) { c.Retention.MaxAge = time.Hour; c.Retention.Interval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			tt.mutate(cfg)
			if _, err := app.NewApplication(context.Background(), cfg, nil, &testutil.DummyLogger{}); err == nil {
				t.Error("expected construction error")
			}
		})
	}

	if _, err := app.NewApplication(context.Background(), testConfig(), nil, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}

func TestAnalyzeOnce_BackendAndHistory(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"probability": 0.81}`))
	}))
	t.Cleanup(backend.Close)

	cfg := testConfig()
	cfg.Predictor.Endpoint = backend.URL
	a := newApp(t, cfg, &cli.CLIArgs{Mode: cli.ModeAnalyze})

	posting := `{"title":"Sales Associate","location":"Denver, CO"}`
	for i, wantSource := range []analyzer.Source{analyzer.SourceBackend, analyzer.SourceCache} {
		var out bytes.Buffer
		if err := a.AnalyzeOnce(context.Background(), strings.NewReader(posting), &out); err != nil {
			t.Fatalf("AnalyzeOnce #%d: %v", i, err)
		}
		var v analyzer.Verdict
		if err := json.Unmarshal(out.Bytes(), &v); err != nil {
			t.Fatalf("decode verdict: %v\n%s", err, out.String())
		}
		if v.Source != wantSource || v.FraudProbability != 0.81 {
			t.Errorf("#%d: source=%q p=%v, want %q 0.81", i, v.Source, v.FraudProbability, wantSource)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("backend called %d times, want 1 (second answer cached)", n)
	}

	n, err := a.Registry.Count(context.Background())
	if err != nil || n != 2 {
		t.Errorf("history count = %d (err %v), want 2", n, err)
	}
}

func TestAnalyzeOnce_StripHTML(t *testing.T) {
	t.Parallel()
	a := newApp(t, testConfig(), &cli.CLIArgs{Mode: cli.ModeAnalyze, StripHTML: true})

	var out bytes.Buffer
	if err := a.AnalyzeOnce(context.Background(), strings.NewReader(`{"description":"<p>Hello <b>world</b></p>"}`), &out); err != nil {
		t.Fatalf("AnalyzeOnce: %v", err)
	}
	var v analyzer.Verdict
	if err := json.Unmarshal(out.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Posting.Description != "Hello world" {
		t.Errorf("Description = %q", v.Posting.Description)
	}
	if v.Source != analyzer.SourceLocal {
		t.Errorf("Source = %q, want local without a backend", v.Source)
	}
}

func TestAnalyzeOnce_BadInput(t *testing.T) {
	t.Parallel()
	a := newApp(t, testConfig(), nil)
	if err := a.AnalyzeOnce(context.Background(), strings.NewReader("not json"), &bytes.Buffer{}); err == nil {
		t.Error("expected decode error")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Server.ListenAddr = "127.0.0.1:0"
	a := newApp(t, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
