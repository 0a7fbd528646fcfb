package model

import "strings"

// JobPosting is the set of named text fields a job ad is checked on.
// Every field is optional; an absent field is the empty string.
type JobPosting struct {
	Title          string `json:"title" yaml:"title" example:"Senior Software Engineer"`
	CompanyProfile string `json:"company_profile" yaml:"company_profile" example:"TechCorp Inc., 1000+ employees, est. 1998"`
	Description    string `json:"description" yaml:"description"`
	Requirements   string `json:"requirements" yaml:"requirements" example:"5+ years experience, CS degree required"`
	Benefits       string `json:"benefits" yaml:"benefits"`
	Location       string `json:"location" yaml:"location" example:"Austin, TX"`
	SalaryRange    string `json:"salary_range" yaml:"salary_range" example:"$130,000 - $160,000"`
	EmploymentType string `json:"employment_type" yaml:"employment_type" example:"Full-time"`
	Industry       string `json:"industry" yaml:"industry" example:"Computer Software"`
}

// FieldNames lists the posting fields in form order.
var FieldNames = []string{
	"title",
	"company_profile",
	"description",
	"requirements",
	"benefits",
	"location",
	"salary_range",
	"employment_type",
	"industry",
}

// FullText joins the free-text fields (title, company profile, description,
// requirements, benefits) with single spaces and lower-cases the result.
// It is derived on every call and never stored.
func (p JobPosting) FullText() string {
	return strings.ToLower(strings.Join([]string{
		p.Title,
		p.CompanyProfile,
		p.Description,
		p.Requirements,
		p.Benefits,
	}, " "))
}

// BackendText is the payload the prediction backend expects: all nine
// fields in form order joined by single spaces, original casing kept.
func (p JobPosting) BackendText() string {
	return strings.Join(p.Values(), " ")
}

// Values returns the field values in FieldNames order.
func (p JobPosting) Values() []string {
	return []string{
		p.Title,
		p.CompanyProfile,
		p.Description,
		p.Requirements,
		p.Benefits,
		p.Location,
		p.SalaryRange,
		p.EmploymentType,
		p.Industry,
	}
}

// Field returns the value of the named field and whether the name is known.
func (p JobPosting) Field(name string) (string, bool) {
	for i, n := range FieldNames {
		if n == name {
			return p.Values()[i], true
		}
	}
	return "", false
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p JobPosting) Trimmed() JobPosting {
	return JobPosting{
		Title:          strings.TrimSpace(p.Title),
		CompanyProfile: strings.TrimSpace(p.CompanyProfile),
		Description:    strings.TrimSpace(p.Description),
		Requirements:   strings.TrimSpace(p.Requirements),
		Benefits:       strings.TrimSpace(p.Benefits),
		Location:       strings.TrimSpace(p.Location),
		SalaryRange:    strings.TrimSpace(p.SalaryRange),
		EmploymentType: strings.TrimSpace(p.EmploymentType),
		Industry:       strings.TrimSpace(p.Industry),
	}
}

// FilledFields returns the names of the non-empty fields in form order.
func (p JobPosting) FilledFields() []string {
	var out []string
	for i, v := range p.Values() {
		if strings.TrimSpace(v) != "" {
			out = append(out, FieldNames[i])
		}
	}
	return out
}
