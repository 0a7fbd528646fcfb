package assessor_test

import (
	"errors"
	"testing"

	"github.com/raysh454/jobcheck/internal/assessor"
)

func TestDefaultRuleset(t *testing.T) {
	t.Parallel()
	rs, err := assessor.DefaultRuleset()
	if err != nil {
		t.Fatalf("DefaultRuleset returned error: %v", err)
	}
	if rs.Version == "" {
		t.Error("default ruleset has no version")
	}
	for _, r := range rs.ScamPatterns {
		if r.Weight <= 0 || r.Weight > 1 {
			t.Errorf("scam pattern %s weight %v out of (0, 1]", r.ID, r.Weight)
		}
		if r.Kind != assessor.KindScamPattern {
			t.Errorf("scam pattern %s kind = %q", r.ID, r.Kind)
		}
	}
	for _, r := range rs.ProfessionalSignals {
		if r.Weight >= 0 || r.Weight < -1 {
			t.Errorf("signal %s weight %v out of [-1, 0)", r.ID, r.Weight)
		}
	}
}

func TestRule_MatchesCaseInsensitive(t *testing.T) {
	t.Parallel()
	rs, err := assessor.ParseRuleset([]byte(`
scam_patterns:
  - id: scam:fee
    label: Fee
    weight: 0.9
    pattern: 'registration fee'
`))
	if err != nil {
		t.Fatalf("ParseRuleset returned error: %v", err)
	}
	r := rs.ScamPatterns[0]
	if !r.Matches("A REGISTRATION FEE applies") {
		t.Error("expected case-insensitive match")
	}
	if r.Matches("no fees at all") {
		t.Error("unexpected match")
	}
	if (&assessor.Rule{}).Matches("anything") {
		t.Error("uncompiled rule must never match")
	}
}

func TestParseRuleset_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"empty", "version: x\n", assessor.ErrEmptyRuleset},
		{"duplicate", `
scam_patterns:
  - {id: a, label: A, weight: 0.5, pattern: 'x'}
professional_signals:
  - {id: a, label: B, weight: -0.5, pattern: 'y'}
`, assessor.ErrDuplicateRule},
		{"positive signal", `
professional_signals:
  - {id: s, label: S, weight: 0.3, pattern: 'y'}
`, assessor.ErrRuleWeight},
		{"scam weight too large", `
scam_patterns:
  - {id: a, label: A, weight: 1.2, pattern: 'x'}
`, assessor.ErrRuleWeight},
		{"bad regex", `
scam_patterns:
  - {id: a, label: A, weight: 0.5, pattern: '(unclosed'}
`, nil},
		{"missing id", `
scam_patterns:
  - {label: A, weight: 0.5, pattern: 'x'}
`, nil},
		{"not yaml", "scam_patterns: [", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := assessor.ParseRuleset([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
