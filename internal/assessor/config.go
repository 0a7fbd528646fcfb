package assessor

// Config holds runtime settings for the assessor. Every numeric field is a
// reference default meant to be recalibrated against labeled data.
type Config struct {
	// ScoringVersion overrides the ruleset version reported in results.
	ScoringVersion string `json:"scoring_version" yaml:"scoring_version"`

	// RulesPath points at a YAML ruleset replacing the embedded default.
	RulesPath string `json:"rules_path" yaml:"rules_path"`

	// RuleWeights overrides weights per rule id (optional).
	RuleWeights map[string]float64 `json:"rule_weights" yaml:"rule_weights"`

	// TitlePattern matches professional role nouns for the title dampener.
	TitlePattern string `json:"title_pattern" yaml:"title_pattern"`

	Fields        FieldChecks   `json:"fields" yaml:"fields"`
	Normalization Normalization `json:"normalization" yaml:"normalization"`
}

// FieldChecks are the structured-field penalties. Lengths are in characters
// of the trimmed value.
type FieldChecks struct {
	MinCompanyProfileLen  int     `json:"min_company_profile_len" yaml:"min_company_profile_len"`
	CompanyProfilePenalty float64 `json:"company_profile_penalty" yaml:"company_profile_penalty"`

	LocationPenalty float64 `json:"location_penalty" yaml:"location_penalty"`

	SalaryMissingPenalty float64 `json:"salary_missing_penalty" yaml:"salary_missing_penalty"`
	LowSalaryThreshold   int64   `json:"low_salary_threshold" yaml:"low_salary_threshold"`
	LowSalaryPenalty     float64 `json:"low_salary_penalty" yaml:"low_salary_penalty"`
	HighSalaryThreshold  int64   `json:"high_salary_threshold" yaml:"high_salary_threshold"`
	HighSalaryPenalty    float64 `json:"high_salary_penalty" yaml:"high_salary_penalty"`

	MinRequirementsLen  int     `json:"min_requirements_len" yaml:"min_requirements_len"`
	RequirementsPenalty float64 `json:"requirements_penalty" yaml:"requirements_penalty"`

	MinDescriptionLen       int     `json:"min_description_len" yaml:"min_description_len"`
	ShortDescriptionPenalty float64 `json:"short_description_penalty" yaml:"short_description_penalty"`
	LongDescriptionLen      int     `json:"long_description_len" yaml:"long_description_len"`
	LongDescriptionBonus    float64 `json:"long_description_bonus" yaml:"long_description_bonus"`

	EmploymentTypePenalty float64 `json:"employment_type_penalty" yaml:"employment_type_penalty"`
}

// Normalization maps the raw accumulator onto a probability.
type Normalization struct {
	Base          float64 `json:"base" yaml:"base"`
	PositiveCap   float64 `json:"positive_cap" yaml:"positive_cap"`
	PositiveScale float64 `json:"positive_scale" yaml:"positive_scale"`
	NegativeScale float64 `json:"negative_scale" yaml:"negative_scale"`
	TitleDampener float64 `json:"title_dampener" yaml:"title_dampener"`
	Floor         float64 `json:"floor" yaml:"floor"`
	Ceiling       float64 `json:"ceiling" yaml:"ceiling"`
}

const defaultTitlePattern = `\b(engineer|developer|analyst|manager|specialist|director|architect)`

// DefaultConfig returns the reference weights and thresholds.
func DefaultConfig() Config {
	return Config{
		TitlePattern: defaultTitlePattern,
		Fields: FieldChecks{
			MinCompanyProfileLen:    30,
			CompanyProfilePenalty:   0.20,
			LocationPenalty:         0.10,
			SalaryMissingPenalty:    0.10,
			LowSalaryThreshold:      10_000,
			LowSalaryPenalty:        0.15,
			HighSalaryThreshold:     300_000,
			HighSalaryPenalty:       0.25,
			MinRequirementsLen:      20,
			RequirementsPenalty:     0.15,
			MinDescriptionLen:       100,
			ShortDescriptionPenalty: 0.20,
			LongDescriptionLen:      500,
			LongDescriptionBonus:    0.10,
			EmploymentTypePenalty:   0.10,
		},
		Normalization: Normalization{
			Base:          0.15,
			PositiveCap:   1.5,
			PositiveScale: 0.6,
			NegativeScale: 0.4,
			TitleDampener: 0.7,
			Floor:         0.05,
			Ceiling:       0.95,
		},
	}
}
