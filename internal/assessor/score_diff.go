package assessor

import (
	"math"
	"sort"

	"github.com/raysh454/jobcheck/internal/model"
)

// DiffResults compares two analyses of (usually) the same posting and
// reports which rules moved the probability. Nil inputs are treated as an
// empty result. Rule deltas are ordered by absolute size, then rule id.
func DiffResults(base, head *model.AnalysisResult) *ScoreDiff {
	if base == nil {
		base = &model.AnalysisResult{}
	}
	if head == nil {
		head = &model.AnalysisResult{}
	}

	diff := &ScoreDiff{
		BaseProbability:  base.FraudProbability,
		HeadProbability:  head.FraudProbability,
		ProbabilityDelta: head.FraudProbability - base.FraudProbability,
		RawScoreDelta:    head.RawScore - base.RawScore,
		RuleDeltas:       []RuleDelta{},
	}

	labels := make(map[string]string)
	for _, r := range []*model.AnalysisResult{base, head} {
		for _, ind := range r.Indicators {
			if ind.RuleID != "" {
				labels[ind.RuleID] = ind.Label
			}
		}
	}

	for id, hv := range head.ContribByRule {
		bv := base.ContribByRule[id]
		if hv != bv {
			diff.RuleDeltas = append(diff.RuleDeltas, RuleDelta{RuleID: id, Label: labels[id], Base: bv, Head: hv, Delta: hv - bv})
		}
	}
	// rules that only fired in base
	for id, bv := range base.ContribByRule {
		if _, ok := head.ContribByRule[id]; !ok && bv != 0 {
			diff.RuleDeltas = append(diff.RuleDeltas, RuleDelta{RuleID: id, Label: labels[id], Base: bv, Delta: -bv})
		}
	}

	sort.Slice(diff.RuleDeltas, func(i, j int) bool {
		ai, aj := math.Abs(diff.RuleDeltas[i].Delta), math.Abs(diff.RuleDeltas[j].Delta)
		if ai != aj {
			return ai > aj
		}
		return diff.RuleDeltas[i].RuleID < diff.RuleDeltas[j].RuleID
	})
	return diff
}
