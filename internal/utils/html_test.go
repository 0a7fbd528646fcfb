package utils_test

import (
	"testing"

	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/utils"
)

func TestHTMLToText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "  Earn   money fast  ", "Earn   money fast"},
		{"paragraphs", "<p>Earn <b>$5000</b> per week</p><p>No experience needed</p>", "Earn $5000 per week\nNo experience needed"},
		{"list and br", "<ul><li>Go</li><li>SQL</li></ul>Line one<br>Line two", "Go\nSQL\nLine one\nLine two"},
		{"scripts dropped", "<div>Hello<script>alert(1)</script><style>p{}</style></div>", "Hello"},
		{"entities decoded", "<p>R&amp;D team</p>", "R&D team"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := utils.HTMLToText(tt.in); got != tt.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLooksLikeHTML(t *testing.T) {
	t.Parallel()
	if !utils.LooksLikeHTML("<P class='x'>hi</P>") {
		t.Error("expected markup to be detected")
	}
	if utils.LooksLikeHTML("salary < 5000 and > 100") {
		t.Error("comparison operators are not markup")
	}
}

func TestNormalizePosting(t *testing.T) {
	t.Parallel()
	p := model.JobPosting{
		Title:       "  Clerk ",
		Description: "<p>Work <em>from home</em></p>",
	}

	raw := utils.NormalizePosting(p, false)
	if raw.Title != "Clerk" || raw.Description != "<p>Work <em>from home</em></p>" {
		t.Errorf("NormalizePosting(false) = %+v", raw)
	}

	clean := utils.NormalizePosting(p, true)
	if clean.Title != "Clerk" || clean.Description != "Work from home" {
		t.Errorf("NormalizePosting(true) = %+v", clean)
	}
}
