package assessor

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed rules/default.yaml
var rulesFS embed.FS

var (
	ErrNilConfig     = errors.New("assessor: nil config")
	ErrEmptyRuleset  = errors.New("assessor: ruleset has no rules")
	ErrDuplicateRule = errors.New("assessor: duplicate rule id")
	ErrRuleWeight    = errors.New("assessor: rule weight out of range")
)

// DefaultRuleset parses and compiles the embedded default rule tables.
func DefaultRuleset() (*Ruleset, error) {
	raw, err := rulesFS.ReadFile("rules/default.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded ruleset: %w", err)
	}
	return ParseRuleset(raw)
}

// LoadRuleset reads a YAML ruleset from disk.
func LoadRuleset(path string) (*Ruleset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	rs, err := ParseRuleset(raw)
	if err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", path, err)
	}
	return rs, nil
}

// ParseRuleset decodes YAML rule tables, then validates and compiles every rule.
func ParseRuleset(raw []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("decode ruleset: %w", err)
	}
	if err := rs.compile(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// compile stamps each rule's kind, checks weights and ids, and compiles the
// patterns case-insensitively.
func (rs *Ruleset) compile() error {
	if len(rs.ScamPatterns) == 0 && len(rs.ProfessionalSignals) == 0 {
		return ErrEmptyRuleset
	}
	seen := make(map[string]struct{})
	prepare := func(r *Rule, kind RuleKind) error {
		if r.ID == "" {
			return fmt.Errorf("assessor: %s rule with label %q has no id", kind, r.Label)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID)
		}
		seen[r.ID] = struct{}{}
		r.Kind = kind
		if err := checkWeight(r.ID, kind, r.Weight); err != nil {
			return err
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return fmt.Errorf("assessor: compile rule %s: %w", r.ID, err)
		}
		r.compiled = re
		return nil
	}
	for i := range rs.ScamPatterns {
		if err := prepare(&rs.ScamPatterns[i], KindScamPattern); err != nil {
			return err
		}
	}
	for i := range rs.ProfessionalSignals {
		if err := prepare(&rs.ProfessionalSignals[i], KindProfessionalSignal); err != nil {
			return err
		}
	}
	return nil
}

// applyWeights returns a copy of rs with the given per-rule overrides.
// Unknown ids are reported so typos in config do not pass silently.
func (rs *Ruleset) applyWeights(overrides map[string]float64) (*Ruleset, error) {
	out := &Ruleset{
		Version:             rs.Version,
		ScamPatterns:        append([]Rule(nil), rs.ScamPatterns...),
		ProfessionalSignals: append([]Rule(nil), rs.ProfessionalSignals...),
	}
	if len(overrides) == 0 {
		return out, nil
	}
	applied := 0
	set := func(rules []Rule) error {
		for i := range rules {
			w, ok := overrides[rules[i].ID]
			if !ok {
				continue
			}
			if err := checkWeight(rules[i].ID, rules[i].Kind, w); err != nil {
				return err
			}
			rules[i].Weight = w
			applied++
		}
		return nil
	}
	if err := set(out.ScamPatterns); err != nil {
		return nil, err
	}
	if err := set(out.ProfessionalSignals); err != nil {
		return nil, err
	}
	if applied != len(overrides) {
		for id := range overrides {
			if out.find(id) == nil {
				return nil, fmt.Errorf("assessor: weight override for unknown rule %q", id)
			}
		}
	}
	return out, nil
}

func (rs *Ruleset) find(id string) *Rule {
	for i := range rs.ScamPatterns {
		if rs.ScamPatterns[i].ID == id {
			return &rs.ScamPatterns[i]
		}
	}
	for i := range rs.ProfessionalSignals {
		if rs.ProfessionalSignals[i].ID == id {
			return &rs.ProfessionalSignals[i]
		}
	}
	return nil
}

func checkWeight(id string, kind RuleKind, w float64) error {
	switch kind {
	case KindScamPattern:
		if w <= 0 || w > 1 {
			return fmt.Errorf("%w: scam pattern %s has weight %v, want (0, 1]", ErrRuleWeight, id, w)
		}
	case KindProfessionalSignal:
		if w >= 0 || w < -1 {
			return fmt.Errorf("%w: professional signal %s has weight %v, want [-1, 0)", ErrRuleWeight, id, w)
		}
	}
	return nil
}
