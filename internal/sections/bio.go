package sections

import (
	"regexp"
	"strings"

	"github.com/hyperjump/shiori/internal/extract"
	"github.com/hyperjump/shiori/internal/models"
)

var (
	// "Last, First" or "Last, First Middle" architect name entries.
	bioNameRe = regexp.MustCompile(`^[A-Z][a-z]+, [A-Z]`)
	// "Anshen + Allen" style firm names.
	bioFirmRe = regexp.MustCompile(`[A-Z][a-z]+\s+\+\s+[A-Z][a-z]+`)
)

const seeAlsoPrefix = "See also:"

// IsBioDocument reports whether filename names a biographical document.
func IsBioDocument(filename string) bool {
	return strings.Contains(strings.ToLower(filename), "bios_")
}

// ParseBioDocument scans every page of a biography document for architect
// name entries, cross-references, and firm names. The three rules are
// checked independently; a line matching more than one contributes one
// section per matching rule. Pages are 1-based.
func ParseBioDocument(doc extract.Document) []models.Section {
	var out []models.Section
	for page := 1; page <= doc.NumPages(); page++ {
		text := doc.PageText(page)
		if text == "" {
			continue
		}
		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if len(line) < 3 {
				continue
			}

			if bioNameRe.MatchString(line) {
				surname := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
				if len(surname) > 2 {
					out = append(out, models.Section{Label: line, Start: page})
				}
			}

			if strings.HasPrefix(line, seeAlsoPrefix) && len(line) > 10 {
				if rest := strings.TrimSpace(line[len(seeAlsoPrefix)+1:]); len(rest) > 3 {
					out = append(out, models.Section{Label: line, Start: page})
				}
			}

			if bioFirmRe.MatchString(line) && len(line) > 5 && !strings.HasPrefix(line, seeAlsoPrefix) {
				out = append(out, models.Section{Label: line, Start: page})
			}
		}
	}
	return out
}
