package model

// Severity buckets an indicator for display.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Indicator is one labeled piece of evidence explaining a contribution to
// the fraud score.
type Indicator struct {
	// Label is the human-readable description, e.g. "Upfront payment requested".
	Label string `json:"label"`

	Severity Severity `json:"severity"`

	// RuleID identifies the pattern or field check that produced the indicator.
	RuleID string `json:"rule_id,omitempty"`

	// Contribution is the amount this item added to the raw accumulator.
	Contribution float64 `json:"contribution"`
}

// AnalysisResult is the scorer output for a single posting.
// Example:
//
//	{
//	  "fraud_probability": 0.95,
//	  "indicators": [
//	    {"label": "Upfront payment requested", "severity": "danger", "rule_id": "scam:upfront-payment", "contribution": 0.9},
//	    {"label": "No location specified", "severity": "warning", "rule_id": "field:location-missing", "contribution": 0.1}
//	  ]
//	}
type AnalysisResult struct {
	// FraudProbability is the clamped heuristic probability in [0.05, 0.95].
	FraudProbability float64 `json:"fraud_probability"`

	// Indicators are ordered: scam patterns, professional signals, then
	// field-quality checks.
	Indicators []Indicator `json:"indicators"`

	// RawScore is the additive accumulator before normalization.
	RawScore float64 `json:"raw_score"`

	// TitleDampened reports whether the professional-title multiplier applied.
	TitleDampened bool `json:"title_dampened"`

	// ContribByRule maps rule IDs to their contribution to RawScore.
	ContribByRule map[string]float64 `json:"contrib_by_rule,omitempty"`

	// Version identifies the ruleset used.
	Version string `json:"version"`
}

// CountBySeverity returns how many indicators carry the given severity.
func (r *AnalysisResult) CountBySeverity(s Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, ind := range r.Indicators {
		if ind.Severity == s {
			n++
		}
	}
	return n
}

// Labels returns the labels of the indicators with the given severity, in order.
func (r *AnalysisResult) Labels(s Severity) []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, ind := range r.Indicators {
		if ind.Severity == s {
			out = append(out, ind.Label)
		}
	}
	return out
}
