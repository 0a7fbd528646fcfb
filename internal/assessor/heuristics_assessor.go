package assessor

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
)

// Field-check rule ids, used in ContribByRule and Indicator.RuleID.
const (
	RuleCompanyProfile   = "field:company-profile"
	RuleLocationMissing  = "field:location-missing"
	RuleSalaryMissing    = "field:salary-missing"
	RuleSalaryLow        = "field:salary-low"
	RuleSalaryHigh       = "field:salary-high"
	RuleRequirements     = "field:requirements"
	RuleShortDescription = "field:description-short"
	RuleLongDescription  = "field:description-long"
	RuleEmploymentType   = "field:employment-type"
)

// HeuristicsAssessor scores postings with ordered regex rule tables plus
// structured-field checks. After construction it holds only immutable
// state, so one instance may be shared by any number of goroutines.
type HeuristicsAssessor struct {
	cfg     Config
	rules   *Ruleset
	title   *regexp.Regexp
	version string
	loaded  time.Time
}

// NewHeuristicsAssessor builds an assessor from cfg. The ruleset comes from
// cfg.RulesPath when set and from the embedded default otherwise; weight
// overrides from cfg.RuleWeights are applied on top.
func NewHeuristicsAssessor(cfg *Config, logger logging.Logger) (*HeuristicsAssessor, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if logger == nil {
		return nil, errors.New("assessor: nil logger; please pass a valid logging.Logger")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	var (
		rs  *Ruleset
		err error
	)
	if cfg.RulesPath != "" {
		rs, err = LoadRuleset(cfg.RulesPath)
	} else {
		rs, err = DefaultRuleset()
	}
	if err != nil {
		return nil, err
	}
	rs, err = rs.applyWeights(cfg.RuleWeights)
	if err != nil {
		return nil, err
	}

	titlePattern := cfg.TitlePattern
	if titlePattern == "" {
		titlePattern = defaultTitlePattern
	}
	title, err := regexp.Compile("(?i)" + titlePattern)
	if err != nil {
		return nil, fmt.Errorf("assessor: compile title pattern: %w", err)
	}

	version := rs.Version
	if cfg.ScoringVersion != "" {
		version = cfg.ScoringVersion
	}

	l := logger.With(logging.Field{Key: "component", Value: "heuristics-assessor"})
	l.Info("heuristics assessor constructed",
		logging.Field{Key: "scoring_version", Value: version},
		logging.Field{Key: "scam_patterns", Value: len(rs.ScamPatterns)},
		logging.Field{Key: "professional_signals", Value: len(rs.ProfessionalSignals)})

	return &HeuristicsAssessor{
		cfg:     *cfg,
		rules:   rs,
		title:   title,
		version: version,
		loaded:  time.Now().UTC(),
	}, nil
}

// Version implements Assessor.
func (h *HeuristicsAssessor) Version() string {
	return h.version
}

// Info summarizes the loaded rule tables.
func (h *HeuristicsAssessor) Info() RulesetInfo {
	return RulesetInfo{
		Version:             h.version,
		ScamPatterns:        len(h.rules.ScamPatterns),
		ProfessionalSignals: len(h.rules.ProfessionalSignals),
		LoadedAt:            h.loaded,
	}
}

// Assess implements Assessor: pattern scan, field-quality checks,
// normalization, title dampener, clamp.
func (h *HeuristicsAssessor) Assess(posting model.JobPosting) *model.AnalysisResult {
	posting = posting.Trimmed()
	s := &scoring{contrib: make(map[string]float64)}

	fullText := posting.FullText()
	for i := range h.rules.ScamPatterns {
		r := &h.rules.ScamPatterns[i]
		if r.Matches(fullText) {
			s.add(r.ID, r.Label, model.SeverityDanger, r.Weight)
		}
	}
	for i := range h.rules.ProfessionalSignals {
		r := &h.rules.ProfessionalSignals[i]
		if r.Matches(fullText) {
			s.add(r.ID, r.Label, model.SeveritySuccess, r.Weight)
		}
	}

	h.checkFields(s, posting)

	dampened := posting.Title != "" && h.title.MatchString(posting.Title)
	return &model.AnalysisResult{
		FraudProbability: h.normalize(s.acc, dampened),
		Indicators:       s.indicators,
		RawScore:         s.acc,
		TitleDampened:    dampened,
		ContribByRule:    s.contrib,
		Version:          h.version,
	}
}

func (h *HeuristicsAssessor) checkFields(s *scoring, p model.JobPosting) {
	f := h.cfg.Fields

	if charLen(p.CompanyProfile) < f.MinCompanyProfileLen {
		s.add(RuleCompanyProfile, "Missing or brief company profile", model.SeverityWarning, f.CompanyProfilePenalty)
	}

	if p.Location == "" {
		s.add(RuleLocationMissing, "No location specified", model.SeverityWarning, f.LocationPenalty)
	}

	// Missing and parsed salary are exclusive branches; an unreadable
	// salary string contributes nothing.
	if p.SalaryRange == "" {
		s.add(RuleSalaryMissing, "No salary information", model.SeverityWarning, f.SalaryMissingPenalty)
	} else if salary, ok := ParseSalary(p.SalaryRange); ok {
		switch {
		case salary < f.LowSalaryThreshold:
			s.add(RuleSalaryLow, "Very low salary", model.SeverityWarning, f.LowSalaryPenalty)
		case salary > f.HighSalaryThreshold:
			s.add(RuleSalaryHigh, "Unrealistically high salary", model.SeverityWarning, f.HighSalaryPenalty)
		}
	}

	if charLen(p.Requirements) < f.MinRequirementsLen {
		s.add(RuleRequirements, "Missing or brief requirements", model.SeverityWarning, f.RequirementsPenalty)
	}

	switch n := charLen(p.Description); {
	case n < f.MinDescriptionLen:
		s.add(RuleShortDescription, "Very short description", model.SeverityWarning, f.ShortDescriptionPenalty)
	case n > f.LongDescriptionLen:
		s.addSilent(RuleLongDescription, -f.LongDescriptionBonus)
	}

	if p.EmploymentType == "" || strings.EqualFold(p.EmploymentType, "other") {
		s.add(RuleEmploymentType, "Employment type not specified", model.SeverityWarning, f.EmploymentTypePenalty)
	}
}

// normalize maps the accumulator onto [Floor, Ceiling]. Positive evidence
// is capped and scaled, negative evidence pulls below the base at a gentler
// slope; the title dampener scales the whole assessment before clamping.
func (h *HeuristicsAssessor) normalize(acc float64, dampened bool) float64 {
	n := h.cfg.Normalization
	p := n.Base
	switch {
	case acc > 0:
		p += math.Min(acc, n.PositiveCap) * n.PositiveScale
	case acc < 0:
		p += acc * n.NegativeScale
	}
	if dampened {
		p *= n.TitleDampener
	}
	return math.Max(n.Floor, math.Min(p, n.Ceiling))
}

// scoring accumulates one Assess call.
type scoring struct {
	acc        float64
	indicators []model.Indicator
	contrib    map[string]float64
}

func (s *scoring) add(ruleID, label string, sev model.Severity, w float64) {
	s.addSilent(ruleID, w)
	s.indicators = append(s.indicators, model.Indicator{
		Label:        label,
		Severity:     sev,
		RuleID:       ruleID,
		Contribution: w,
	})
}

func (s *scoring) addSilent(ruleID string, w float64) {
	s.acc += w
	s.contrib[ruleID] += w
}

func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

func validateConfig(cfg *Config) error {
	n := cfg.Normalization
	if n.Floor < 0 || n.Ceiling > 1 || n.Floor > n.Ceiling {
		return fmt.Errorf("assessor: clamp bounds [%v, %v] must lie within [0, 1]", n.Floor, n.Ceiling)
	}
	if n.TitleDampener <= 0 || n.TitleDampener > 1 {
		return fmt.Errorf("assessor: title dampener %v must be in (0, 1]", n.TitleDampener)
	}
	if n.PositiveCap <= 0 {
		return fmt.Errorf("assessor: positive cap %v must be positive", n.PositiveCap)
	}
	return nil
}
