// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/predictor"
	"github.com/raysh454/jobcheck/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// WarnCount returns how many warnings were logged.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient.
// By default it returns Body (or "{}") with StatusCode (or 200).
// Set FailURLs[url] = true to force an error for a specific URL.
type DummyWebClient struct {
	ResponseDelay time.Duration
	FailURLs      map[string]bool
	Body          string
	StatusCode    int
	mu            sync.Mutex
	Requests      []*webclient.Request
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.FailURLs != nil && d.FailURLs[req.URL] {
		return nil, &errString{"dummy fetch fail for " + req.URL}
	}

	body, status := d.Body, d.StatusCode
	if body == "" {
		body = "{}"
	}
	if status == 0 {
		status = 200
	}
	return &webclient.Response{
		Request:    req,
		Body:       []byte(body),
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Close() error { return nil }

// ─── Predictor ─────────────────────────────────────────────────────────

// StubPredictor implements predictor.Predictor with a fixed answer.
type StubPredictor struct {
	Prediction *predictor.Prediction
	Err        error
	Delay      time.Duration

	mu    sync.Mutex
	Calls int
}

func (s *StubPredictor) Predict(ctx context.Context, _ model.JobPosting) (*predictor.Prediction, error) {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Prediction == nil {
		return &predictor.Prediction{FraudProbability: 0.5, Key: "fraud_proba"}, nil
	}
	p := *s.Prediction
	return &p, nil
}

// Ping reports Err, mirroring backend reachability.
func (s *StubPredictor) Ping(context.Context) error { return s.Err }

// CallCount returns how many times Predict ran.
func (s *StubPredictor) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// ─── Cache ─────────────────────────────────────────────────────────────

// FailingCache implements cache.Cache and fails every operation.
type FailingCache struct{}

func (FailingCache) Get(context.Context, string) (*predictor.Prediction, error) {
	return nil, &errString{"dummy cache get failure"}
}

func (FailingCache) Set(context.Context, string, *predictor.Prediction) error {
	return &errString{"dummy cache set failure"}
}

func (FailingCache) Close() error { return nil }

// ─── Assessor ──────────────────────────────────────────────────────────

// DummyAssessor implements assessor.Assessor with a preconfigured result.
type DummyAssessor struct {
	Result *model.AnalysisResult
}

func (d *DummyAssessor) Assess(model.JobPosting) *model.AnalysisResult {
	if d.Result != nil {
		r := *d.Result
		return &r
	}
	return &model.AnalysisResult{FraudProbability: 0.5, Version: "v-dummy"}
}

func (d *DummyAssessor) Version() string { return "v-dummy" }

// ─── helpers ───────────────────────────────────────────────────────────

type errString struct{ s string }

func (e *errString) Error() string { return e.s }
