package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/utils"
	"github.com/raysh454/jobcheck/internal/webclient"
)

// ResponseKeys are the probability fields accepted from the backend, in
// priority order.
var ResponseKeys = []string{"fraud_proba", "probability", "fraud_probability"}

// Request is the wire body sent to the backend.
type Request struct {
	FullText string `json:"full_text"`
}

// HTTPPredictor posts postings to the backend over HTTP.
type HTTPPredictor struct {
	endpoint string
	cfg      Config
	client   webclient.WebClient
	logger   logging.Logger
}

// NewHTTPPredictor validates the endpoint and wraps client. An empty
// endpoint yields a predictor whose calls fail with ErrNoBackend.
func NewHTTPPredictor(cfg Config, client webclient.WebClient, logger logging.Logger) (*HTTPPredictor, error) {
	if client == nil {
		return nil, errors.New("predictor: nil webclient")
	}
	if logger == nil {
		return nil, errors.New("predictor: nil logger")
	}
	l := logger.With(logging.Field{Key: "component", Value: "predictor"})

	endpoint := ""
	if cfg.Endpoint != "" {
		var err error
		endpoint, err = utils.CanonicalizeEndpoint(cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("predictor: endpoint %q: %w", cfg.Endpoint, err)
		}
		l.Info("prediction backend configured", logging.Field{Key: "endpoint", Value: utils.RedactURL(endpoint)})
	} else {
		l.Info("no prediction backend configured; local scoring only")
	}

	return &HTTPPredictor{endpoint: endpoint, cfg: cfg, client: client, logger: l}, nil
}

// Enabled reports whether an endpoint is configured.
func (p *HTTPPredictor) Enabled() bool {
	return p.endpoint != ""
}

// Endpoint returns the canonical backend URL, or "" when disabled.
func (p *HTTPPredictor) Endpoint() string {
	return p.endpoint
}

// Predict implements Predictor.
func (p *HTTPPredictor) Predict(ctx context.Context, posting model.JobPosting) (*Prediction, error) {
	if p.endpoint == "" {
		return nil, ErrNoBackend
	}
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(Request{FullText: posting.BackendText()})
	if err != nil {
		return nil, fmt.Errorf("predictor: encode request: %w", err)
	}

	resp, err := p.client.Do(ctx, &webclient.Request{
		Method: http.MethodPost,
		URL:    p.endpoint,
		Headers: http.Header{
			"Content-Type": []string{"application/json"},
			"Accept":       []string{"application/json"},
		},
		Body: body,
	})
	if err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	if !resp.OK() {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(resp.Body), 200)}
	}

	pred, err := ParseResponse(resp.Body)
	if err != nil {
		p.logger.Warn("backend response rejected", logging.Field{Key: "error", Value: err.Error()})
		return nil, err
	}
	p.logger.Debug("backend prediction",
		logging.Field{Key: "fraud_probability", Value: pred.FraudProbability},
		logging.Field{Key: "key", Value: pred.Key})
	return pred, nil
}

// ParseResponse extracts the first accepted key holding a finite number and
// clamps it to [0, 1].
func ParseResponse(body []byte) (*Prediction, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, key := range ResponseKeys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v *float64
		if err := json.Unmarshal(raw, &v); err != nil || v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		return &Prediction{FraudProbability: math.Max(0, math.Min(*v, 1)), Key: key}, nil
	}
	return nil, fmt.Errorf("%w: none of %v holds a number", ErrMalformedResponse, ResponseKeys)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Ping sends an empty posting and checks that a valid prediction comes back.
func (p *HTTPPredictor) Ping(ctx context.Context) error {
	_, err := p.Predict(ctx, model.JobPosting{})
	return err
}
