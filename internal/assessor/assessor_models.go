package assessor

import (
	"regexp"
	"time"
)

// RuleKind separates fraud-raising patterns from fraud-reducing signals.
type RuleKind string

const (
	KindScamPattern        RuleKind = "scam_pattern"
	KindProfessionalSignal RuleKind = "professional_signal"
)

// Rule is a single text check run against a posting's full text.
// Scam patterns carry a weight in (0, 1], professional signals in [-1, 0).
type Rule struct {
	ID      string   `json:"id" yaml:"id"`         // unique rule id (eg. "scam:upfront-payment")
	Label   string   `json:"label" yaml:"label"`   // human-readable indicator text
	Weight  float64  `json:"weight" yaml:"weight"` // accumulator contribution when matched
	Pattern string   `json:"pattern" yaml:"pattern"`
	Kind    RuleKind `json:"kind" yaml:"-"`

	compiled *regexp.Regexp
}

// Matches reports whether the compiled pattern occurs in text.
func (r *Rule) Matches(text string) bool {
	return r.compiled != nil && r.compiled.MatchString(text)
}

// Ruleset is the immutable pair of rule tables the assessor evaluates, in order.
type Ruleset struct {
	Version             string `json:"version" yaml:"version"`
	ScamPatterns        []Rule `json:"scam_patterns" yaml:"scam_patterns"`
	ProfessionalSignals []Rule `json:"professional_signals" yaml:"professional_signals"`
}

// RuleDelta is the change in a rule's contribution between two analyses.
type RuleDelta struct {
	RuleID string  `json:"rule_id"`
	Label  string  `json:"label,omitempty"`
	Base   float64 `json:"base"`
	Head   float64 `json:"head"`
	Delta  float64 `json:"delta"`
}

// ScoreDiff explains how the fraud probability changed between two analyses.
type ScoreDiff struct {
	BaseProbability  float64     `json:"base_probability"`
	HeadProbability  float64     `json:"head_probability"`
	ProbabilityDelta float64     `json:"probability_delta"`
	RawScoreDelta    float64     `json:"raw_score_delta"`
	RuleDeltas       []RuleDelta `json:"rule_deltas"`
}

// RulesetInfo is a summary of the loaded tables for health and docs output.
type RulesetInfo struct {
	Version             string    `json:"version"`
	ScamPatterns        int       `json:"scam_patterns"`
	ProfessionalSignals int       `json:"professional_signals"`
	LoadedAt            time.Time `json:"loaded_at"`
}
