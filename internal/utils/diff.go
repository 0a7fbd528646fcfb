package utils

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/raysh454/jobcheck/internal/model"
)

// Chunk is a single change in a field diff.
type Chunk struct {
	Type    string `json:"type"` // "added" or "removed"
	Content string `json:"content"`
}

// FieldDiff lists the changes to one posting field.
type FieldDiff struct {
	Field  string  `json:"field"`
	Before string  `json:"before"`
	After  string  `json:"after"`
	Chunks []Chunk `json:"chunks"`
}

// DiffPostings compares two postings field by field and returns the fields
// that changed, in form order.
func DiffPostings(base, head model.JobPosting) []FieldDiff {
	dmp := diffmatchpatch.New()
	bv, hv := base.Values(), head.Values()

	out := make([]FieldDiff, 0)
	for i, name := range model.FieldNames {
		if bv[i] == hv[i] {
			continue
		}
		diffs := dmp.DiffMain(bv[i], hv[i], false)
		diffs = dmp.DiffCleanupSemantic(diffs)

		fd := FieldDiff{Field: name, Before: bv[i], After: hv[i], Chunks: make([]Chunk, 0)}
		for _, d := range diffs {
			var typ string
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				typ = "added"
			case diffmatchpatch.DiffDelete:
				typ = "removed"
			case diffmatchpatch.DiffEqual:
				continue
			}
			if strings.TrimSpace(d.Text) != "" {
				fd.Chunks = append(fd.Chunks, Chunk{Type: typ, Content: d.Text})
			}
		}
		out = append(out, fd)
	}
	return out
}
