package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/raysh454/jobcheck/internal/assessor"
	"github.com/raysh454/jobcheck/internal/cache"
	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/predictor"
	"github.com/raysh454/jobcheck/internal/report"
)

// Pinger is implemented by predictors that can probe their backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DefaultAnalyzer combines the local assessor with an optional prediction
// backend and cache.
type DefaultAnalyzer struct {
	assessor  assessor.Assessor
	predictor predictor.Predictor
	cache     cache.Cache
	logger    logging.Logger
	now       func() time.Time
}

// NewDefaultAnalyzer wires the components. p and c may be nil.
func NewDefaultAnalyzer(a assessor.Assessor, p predictor.Predictor, c cache.Cache, logger logging.Logger) (*DefaultAnalyzer, error) {
	if a == nil {
		return nil, errors.New("analyzer: nil assessor")
	}
	if logger == nil {
		return nil, errors.New("analyzer: nil logger")
	}
	componentLogger := logger.With(logging.Field{Key: "component", Value: "analyzer"})
	componentLogger.Info("created analyzer",
		logging.Field{Key: "scoring_version", Value: a.Version()},
		logging.Field{Key: "backend", Value: p != nil},
		logging.Field{Key: "cache", Value: c != nil})

	return &DefaultAnalyzer{
		assessor:  a,
		predictor: p,
		cache:     c,
		logger:    componentLogger,
		now:       time.Now,
	}, nil
}

// Analyze implements Analyzer.
func (a *DefaultAnalyzer) Analyze(ctx context.Context, posting model.JobPosting) *Verdict {
	local := a.assessor.Assess(posting)

	v := &Verdict{
		Posting:          posting,
		FraudProbability: local.FraudProbability,
		Source:           SourceLocal,
		Analysis:         local,
		CreatedAt:        a.now().UTC(),
	}

	if pred, src, err := a.predict(ctx, posting); err != nil {
		v.FallbackReason = fallbackReason(err)
	} else {
		v.FraudProbability = pred.FraudProbability
		v.Source = src
		v.BackendKey = pred.Key
	}

	v.Report = report.Build(report.Input{
		Posting:     posting,
		Probability: v.FraudProbability,
		Analysis:    local,
		Local:       v.Source == SourceLocal,
	})

	a.logger.Info("posting analyzed",
		logging.Field{Key: "fraud_probability", Value: v.FraudProbability},
		logging.Field{Key: "local_probability", Value: local.FraudProbability},
		logging.Field{Key: "source", Value: string(v.Source)},
		logging.Field{Key: "indicators", Value: len(local.Indicators)})
	return v
}

// predict consults the cache, then the backend. Cache failures are logged
// and otherwise ignored.
func (a *DefaultAnalyzer) predict(ctx context.Context, posting model.JobPosting) (*predictor.Prediction, Source, error) {
	if a.predictor == nil {
		return nil, SourceLocal, predictor.ErrNoBackend
	}

	key := cache.Key(posting)
	if a.cache != nil {
		pred, err := a.cache.Get(ctx, key)
		if err != nil {
			a.logger.Warn("prediction cache read failed", logging.Field{Key: "error", Value: err.Error()})
		}
		if pred != nil {
			return pred, SourceCache, nil
		}
	}

	pred, err := a.predictor.Predict(ctx, posting)
	if err != nil {
		if !errors.Is(err, predictor.ErrNoBackend) {
			a.logger.Warn("backend unavailable, using local analysis", logging.Field{Key: "error", Value: err.Error()})
		}
		return nil, SourceLocal, err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, pred); err != nil {
			a.logger.Warn("prediction cache write failed", logging.Field{Key: "error", Value: err.Error()})
		}
	}
	return pred, SourceBackend, nil
}

func fallbackReason(err error) string {
	var se *predictor.StatusError
	switch {
	case errors.Is(err, predictor.ErrNoBackend):
		return "no backend configured"
	case errors.Is(err, context.DeadlineExceeded):
		return "backend timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, predictor.ErrMalformedResponse):
		return "unexpected response format from backend"
	case errors.As(err, &se):
		return "backend returned an error status"
	default:
		return "backend unreachable"
	}
}

// Health implements Analyzer.
func (a *DefaultAnalyzer) Health(ctx context.Context) HealthStatus {
	hs := HealthStatus{
		Status:         "ok",
		Backend:        BackendDisabled,
		ScoringVersion: a.assessor.Version(),
		Cache:          a.cache != nil,
	}
	if a.predictor == nil {
		return hs
	}
	pinger, ok := a.predictor.(Pinger)
	if !ok {
		hs.Backend = BackendReachable
		return hs
	}
	switch err := pinger.Ping(ctx); {
	case errors.Is(err, predictor.ErrNoBackend):
	case err != nil:
		hs.Backend = BackendUnreachable
		hs.BackendError = err.Error()
	default:
		hs.Backend = BackendReachable
	}
	return hs
}

// Close releases the cache.
func (a *DefaultAnalyzer) Close() error {
	a.logger.Info("closing analyzer")
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}
