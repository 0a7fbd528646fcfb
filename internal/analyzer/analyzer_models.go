package analyzer

import (
	"time"

	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/report"
)

// Source says where a verdict's probability came from.
type Source string

const (
	SourceBackend Source = "backend"
	SourceCache   Source = "cache"
	SourceLocal   Source = "local"
)

// Verdict is the full answer for one submitted posting.
type Verdict struct {
	// ID is assigned when the verdict is stored.
	ID string `json:"id,omitempty"`

	Posting model.JobPosting `json:"posting"`

	// FraudProbability is the probability the report is based on.
	FraudProbability float64 `json:"fraud_probability"`

	Source Source `json:"source"`

	// BackendKey is the response field the backend value was read from.
	BackendKey string `json:"backend_key,omitempty"`

	// FallbackReason explains why the local probability was used.
	FallbackReason string `json:"fallback_reason,omitempty"`

	// Analysis is the local heuristic result; it always carries the
	// indicator trail, even when the backend supplied the probability.
	Analysis *model.AnalysisResult `json:"analysis"`

	Report *report.Report `json:"report"`

	CreatedAt time.Time `json:"created_at"`
}

// Backend states reported by Health.
const (
	BackendDisabled    = "disabled"
	BackendReachable   = "reachable"
	BackendUnreachable = "unreachable"
)

// HealthStatus is the readiness summary.
type HealthStatus struct {
	Status         string `json:"status"`
	Backend        string `json:"backend"`
	BackendError   string `json:"backend_error,omitempty"`
	ScoringVersion string `json:"scoring_version"`
	Cache          bool   `json:"cache"`
}
