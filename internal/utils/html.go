package utils

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/jobcheck/internal/model"
)

var htmlTag = regexp.MustCompile(`(?i)</?(p|br|div|span|ul|ol|li|b|strong|em|i|h[1-6]|table|tr|td|a)\b[^>]*>`)

// LooksLikeHTML reports whether s contains common markup tags.
func LooksLikeHTML(s string) bool {
	return htmlTag.MatchString(s)
}

// HTMLToText converts an HTML fragment (a pasted job description) to plain
// text. Scripts and styles are dropped, block elements become line breaks,
// and runs of spaces collapse. Input that is not HTML is only trimmed.
func HTMLToText(s string) string {
	if !LooksLikeHTML(s) {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// NormalizePosting trims every field. With stripHTML set, fields holding
// markup are converted to plain text first.
func NormalizePosting(p model.JobPosting, stripHTML bool) model.JobPosting {
	if !stripHTML {
		return p.Trimmed()
	}
	clean := HTMLToText
	return model.JobPosting{
		Title:          clean(p.Title),
		CompanyProfile: clean(p.CompanyProfile),
		Description:    clean(p.Description),
		Requirements:   clean(p.Requirements),
		Benefits:       clean(p.Benefits),
		Location:       clean(p.Location),
		SalaryRange:    clean(p.SalaryRange),
		EmploymentType: clean(p.EmploymentType),
		Industry:       clean(p.Industry),
	}
}
