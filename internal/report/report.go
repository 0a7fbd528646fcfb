// Package report turns a fraud probability into the user-facing verdict:
// risk class, display tier, confidence label and advice.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/raysh454/jobcheck/internal/model"
)

type Class string

const (
	ClassLegitimate Class = "legitimate"
	ClassFraudulent Class = "fraudulent"
)

// Tier is the display colour band.
type Tier string

const (
	TierSafe    Tier = "safe"
	TierWarning Tier = "warning"
	TierDanger  Tier = "danger"
)

// Report is the recommendation shown next to a probability.
type Report struct {
	Class             Class    `json:"class"`
	Message           string   `json:"message"`
	Tier              Tier     `json:"tier"`
	Confidence        string   `json:"confidence"`
	Title             string   `json:"title"`
	Text              string   `json:"text"`
	Details           []string `json:"details"`
	Completeness      float64  `json:"completeness"` // percent of fields filled
	FilledFields      int      `json:"filled_fields"`
	TotalFields       int      `json:"total_fields"`
	FraudPercent      float64  `json:"fraud_percent"`
	LegitimatePercent float64  `json:"legitimate_percent"`
}

// Input is what the generator needs: the posting as submitted, the final
// probability, and the local analysis for its red flags.
type Input struct {
	Posting     model.JobPosting
	Probability float64
	Analysis    *model.AnalysisResult
	Local       bool // probability came from the local scorer
}

// Build generates the report. Probability is clamped to [0, 1].
func Build(in Input) *Report {
	p := math.Max(0, math.Min(in.Probability, 1))
	filled := len(in.Posting.FilledFields())
	total := len(model.FieldNames)
	completeness := float64(filled) / float64(total) * 100

	r := &Report{
		Class:             classify(p),
		Tier:              tier(p),
		Confidence:        confidence(p),
		Completeness:      round1(completeness),
		FilledFields:      filled,
		TotalFields:       total,
		FraudPercent:      round1(p * 100),
		LegitimatePercent: round1(100 - p*100),
	}

	r.Message = "This job posting appears legitimate."
	if r.Class == ClassFraudulent {
		r.Message = "Warning: high fraud probability detected."
	}
	if in.Local {
		r.Message = strings.TrimSuffix(r.Message, ".") + " (local analysis)."
	}

	adv := adviceFor(p)
	r.Title, r.Text = adv.title, adv.text
	r.Details = append([]string(nil), adv.details...)

	switch {
	case completeness < 50:
		r.Details = append(r.Details, fmt.Sprintf("You only filled %d out of %d fields. Results are less accurate.", filled, total))
	case completeness > 80:
		r.Details = append(r.Details, fmt.Sprintf("Good job! You filled %d out of %d fields for accurate analysis.", filled, total))
	}

	if p > 0.3 {
		if missing := missingKeyFields(in.Posting); len(missing) > 0 {
			r.Details = append(r.Details, "Missing information: "+strings.Join(missing, ", "))
		}
	}

	if p > 0.4 {
		if flags := in.Analysis.Labels(model.SeverityDanger); len(flags) > 0 {
			r.Details = append(r.Details, "Detected potential red flags: "+strings.Join(flags, ", "))
		}
	}

	return r
}

func classify(p float64) Class {
	if p < 0.5 {
		return ClassLegitimate
	}
	return ClassFraudulent
}

func tier(p float64) Tier {
	switch {
	case p < 0.3:
		return TierSafe
	case p < 0.5:
		return TierWarning
	default:
		return TierDanger
	}
}

func confidence(p float64) string {
	switch {
	case p < 0.2:
		return "VERY HIGH confidence"
	case p < 0.4:
		return "HIGH confidence"
	case p < 0.6:
		return "MEDIUM confidence"
	case p < 0.8:
		return "LOW confidence"
	default:
		return "VERY LOW confidence"
	}
}

func missingKeyFields(p model.JobPosting) []string {
	var out []string
	if strings.TrimSpace(p.CompanyProfile) == "" {
		out = append(out, "company profile")
	}
	if strings.TrimSpace(p.SalaryRange) == "" {
		out = append(out, "salary information")
	}
	if strings.TrimSpace(p.Location) == "" {
		out = append(out, "location")
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
