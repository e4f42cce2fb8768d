package sections

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperjump/shiori/internal/models"
)

var (
	// "Label ........ 30" or "Label     30" (two-or-more leader dots, or
	// three-or-more literal spaces, then a 1-4 digit page at line end).
	tocLeaderRe = regexp.MustCompile(`^(.+?)(?:\s+\.{2,}\s*|\s{3,})(\d{1,4})\s*$`)
	// "Label 30" (simple trailing integer).
	tocSimpleRe = regexp.MustCompile(`^(.+?)\s+(\d{1,4})\s*$`)
	// A line that is purely a page number.
	bareNumberRe = regexp.MustCompile(`^\d+$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ParseTOCLines parses table-of-contents style lines from a page's text,
// e.g.:
//
//	Evaluation Criteria: Gothic Revival .......... 30
//	Sub-Theme: Art Deco ................................ 18
//	Gothic Revival 25
//
// A label on its own line followed by a line holding only a page number is
// also accepted. Returns (label, page) pairs in line order.
func ParseTOCLines(text string, patterns *Patterns) []models.Section {
	var out []models.Section
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		var label string
		var page int
		if m := tocLeaderRe.FindStringSubmatch(line); m != nil {
			label = strings.TrimSpace(m[1])
			page, _ = strconv.Atoi(m[2])
		} else if m := tocSimpleRe.FindStringSubmatch(line); m != nil {
			label = strings.TrimSpace(m[1])
			page, _ = strconv.Atoi(m[2])
		} else if i+1 < len(lines) && bareNumberRe.MatchString(strings.TrimSpace(lines[i+1])) {
			label = line
			page, _ = strconv.Atoi(strings.TrimSpace(lines[i+1]))
		} else {
			continue
		}

		label = cleanLabel(label)
		if !acceptTOCLabel(label, page, patterns) {
			continue
		}
		out = append(out, models.Section{Label: label, Start: page})
	}
	return out
}

// cleanLabel collapses internal whitespace and strips leader-dot runs.
func cleanLabel(label string) string {
	label = whitespaceRe.ReplaceAllString(label, " ")
	label = strings.ReplaceAll(label, "..", "")
	label = strings.ReplaceAll(label, "…", "")
	return strings.TrimSpace(label)
}

// acceptTOCLabel applies the rejection rules for parsed ToC entries.
func acceptTOCLabel(label string, page int, patterns *Patterns) bool {
	lower := strings.ToLower(label)
	if page == 0 || len(label) < 3 ||
		strings.Contains(lower, "table of contents") ||
		lower == "contents" ||
		strings.HasPrefix(lower, "page ") ||
		bareNumberRe.MatchString(label) {
		return false
	}
	// Generic section names are noise unless qualified by a domain term.
	if containsAny(lower, patterns.GenericTerms) && !containsAny(lower, patterns.QualifyingTerms) {
		return false
	}
	return true
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
