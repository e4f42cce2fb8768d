package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/shiori/internal/models"
)

// Report holds the outcome of manifest validation. Issues are structural
// problems that fail validation; warnings are advisory quality signals and
// never block usage.
type Report struct {
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// OK reports whether the manifest passed structural validation.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Validate checks every document entry for required fields and well-formed
// section lists. Page-ordering anomalies, empty section lists, an empty
// document set, and documents with no evaluation-criteria section are
// reported as warnings only.
func Validate(m models.Manifest) *Report {
	r := &Report{}
	if len(m) == 0 {
		r.Warnings = append(r.Warnings, "manifest has no documents")
		return r
	}

	files := make([]string, 0, len(m))
	for f := range m {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, file := range files {
		entry := m[file]
		if entry == nil {
			r.Issues = append(r.Issues, fmt.Sprintf("%s: null entry", file))
			continue
		}
		if entry.Title == "" {
			r.Issues = append(r.Issues, fmt.Sprintf("%s: missing 'title' field", file))
		}
		if entry.Sections == nil {
			r.Issues = append(r.Issues, fmt.Sprintf("%s: missing 'sections' field", file))
			continue
		}
		if len(entry.Sections) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: no sections found", file))
			continue
		}

		prev := 0
		hasEvalCriteria := false
		for i, sec := range entry.Sections {
			if sec.Label == "" {
				r.Issues = append(r.Issues, fmt.Sprintf("%s section %d: missing 'label'", file, i))
			}
			if sec.Start < 1 {
				r.Issues = append(r.Issues, fmt.Sprintf("%s section %d: missing or invalid 'start' page", file, i))
			} else {
				if sec.Start <= prev && prev != 0 {
					r.Warnings = append(r.Warnings, fmt.Sprintf("%s: section %q page %d is not after previous page %d", file, sec.Label, sec.Start, prev))
				}
				prev = sec.Start
			}
			if strings.Contains(strings.ToLower(sec.Label), "evaluation criteria") {
				hasEvalCriteria = true
			}
		}
		if !hasEvalCriteria {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: no 'Evaluation Criteria' sections found", file))
		}
	}
	return r
}
