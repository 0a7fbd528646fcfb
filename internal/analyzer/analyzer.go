package analyzer

import (
	"context"

	"github.com/raysh454/jobcheck/internal/model"
)

// Analyzer produces a verdict for a posting. It never fails: when the
// prediction backend is unavailable the local heuristic probability is used.
type Analyzer interface {
	Analyze(ctx context.Context, posting model.JobPosting) *Verdict

	// Health reports readiness and backend reachability.
	Health(ctx context.Context) HealthStatus

	Close() error
}
