package assessor

import "github.com/raysh454/jobcheck/internal/model"

// Assessor is the minimal cross-package contract for scoring a job posting.
// Implementations are pure: no I/O, no shared mutable state, and the same
// posting always yields an equal result. Assess never fails; missing or
// malformed fields degrade to default contributions.
type Assessor interface {
	Assess(posting model.JobPosting) *model.AnalysisResult

	// Version identifies the ruleset the assessor scores with.
	Version() string
}
