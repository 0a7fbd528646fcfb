// Package predictor talks to the external ML prediction backend and turns
// its loosely shaped JSON reply into a typed Prediction.
package predictor

import (
	"context"
	"errors"
	"fmt"

	"github.com/raysh454/jobcheck/internal/model"
)

// Predictor returns a fraud probability for a posting from a remote model.
type Predictor interface {
	Predict(ctx context.Context, posting model.JobPosting) (*Prediction, error)
}

// Prediction is a validated backend answer.
type Prediction struct {
	// FraudProbability is finite and within [0, 1].
	FraudProbability float64 `json:"fraud_probability"`

	// Key is the response field the value was read from.
	Key string `json:"key"`
}

var (
	// ErrNoBackend means no endpoint is configured.
	ErrNoBackend = errors.New("predictor: no backend configured")

	// ErrMalformedResponse means the body was not JSON or carried no
	// accepted probability key with a finite number.
	ErrMalformedResponse = errors.New("predictor: malformed backend response")
)

// StatusError reports a non-2xx backend reply.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("predictor: backend returned status %d: %s", e.StatusCode, e.Body)
}
