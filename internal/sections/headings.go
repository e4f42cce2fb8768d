package sections

import (
	"strings"

	"github.com/hyperjump/shiori/internal/models"
)

// minHeadingLength discards fragment matches; exact short style names from
// the allowlist are kept.
const minHeadingLength = 8

// ScanHeadings scans a page's text against the heading pattern catalog and
// returns each match as a (label, page) pair. Used as the fallback when no
// table of contents is found.
func ScanHeadings(page int, text string, patterns *Patterns) []models.Section {
	var hits []models.Section
	for _, re := range patterns.HeadingPatterns {
		for _, match := range re.FindAllString(text, -1) {
			label := whitespaceRe.ReplaceAllString(strings.TrimSpace(match), " ")
			if len(label) < minHeadingLength && !containsAnyExact(label, patterns.ShortStyleAllowlist) {
				continue
			}
			hits = append(hits, models.Section{Label: label, Start: page})
		}
	}
	return hits
}

// containsAnyExact reports whether label contains any of the given names
// with their original casing.
func containsAnyExact(label string, names []string) bool {
	for _, name := range names {
		if strings.Contains(label, name) {
			return true
		}
	}
	return false
}
