package query

import (
	"sort"
	"strings"

	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/sections"
)

// Score values for the relevance ladder. Only the first matching rule, top
// to bottom, contributes the base score.
const (
	scoreExact          = 10.0
	scoreExpandedMatch  = 8.0
	scoreSubstring      = 5.0
	scoreArchitectMatch = 4.0
	scoreStylePattern   = 3.0
	scoreTokenMatch     = 2.0

	boostEvalCriteria = 2.0
	boostBioArchitect = 1.5
	penaltyLongLabel  = 1.0

	// DefaultMinScore is the relevance threshold below which results are
	// dropped.
	DefaultMinScore = 3.0

	longLabelLength = 200
	minTokenLength  = 2
)

// Engine scores section labels against free-text queries. It is stateless
// apart from its read-only synonym tables and safe for concurrent use.
type Engine struct {
	tables   *SynonymTables
	minScore float64
}

// NewEngine creates an engine. tables may be nil to use the defaults;
// minScore <= 0 falls back to DefaultMinScore.
func NewEngine(tables *SynonymTables, minScore float64) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Engine{tables: tables, minScore: minScore}
}

// Expand returns the canonical rewrite of query, lowercased.
func (e *Engine) Expand(query string) string {
	return strings.ToLower(e.tables.Expand(strings.ToLower(strings.TrimSpace(query))))
}

// Search scores every section label in the manifest against query and
// returns results at or above the relevance threshold, ordered by score
// descending with page number ascending as tie-break. This is a heuristic
// lexical matcher: exact-substring and exact-token matching after the
// synonym rewrite, no stemming or edit distance.
func (e *Engine) Search(m models.Manifest, rawQuery string) []models.SectionResult {
	query := strings.ToLower(strings.TrimSpace(rawQuery))
	if query == "" {
		return nil
	}
	expanded := strings.ToLower(e.tables.Expand(query))

	// Documents are visited in filename order so scoring is deterministic.
	files := make([]string, 0, len(m))
	for f := range m {
		files = append(files, f)
	}
	sort.Strings(files)

	var results []models.SectionResult
	for _, file := range files {
		entry := m[file]
		bioDoc := sections.IsBioDocument(file)
		for _, sec := range entry.Sections {
			score := e.scoreSection(sec, file, bioDoc, query, expanded)
			if score < e.minScore {
				continue
			}
			results = append(results, models.SectionResult{
				DocFile:      file,
				DocTitle:     entry.Title,
				SectionLabel: sec.Label,
				Page:         sec.Start,
				Score:        score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Page < results[j].Page
	})
	return results
}

// scoreSection computes the relevance of one section label. Only the
// label's first line is compared; the full label length feeds the noise
// penalty.
func (e *Engine) scoreSection(sec models.Section, file string, bioDoc bool, query, expanded string) float64 {
	firstLine := sec.FirstLine()

	var score float64
	switch {
	case query == firstLine:
		score = scoreExact
	case strings.Contains(firstLine, expanded):
		score = scoreExpandedMatch
	case strings.Contains(firstLine, query):
		score = scoreSubstring
	case e.tables.stylePatternInBoth(query, firstLine):
		score = scoreStylePattern
	case e.tables.architectNameInBoth(query, firstLine):
		score = scoreArchitectMatch
	case tokenMatch(query, firstLine):
		score = scoreTokenMatch
	default:
		return 0
	}

	if strings.Contains(firstLine, "evaluation criteria") {
		score += boostEvalCriteria
	}
	if bioDoc && e.tables.architectNameIn(firstLine) {
		score += boostBioArchitect
	}
	if len(sec.Label) > longLabelLength {
		score -= penaltyLongLabel
	}
	return score
}

// tokenMatch reports whether any whitespace-delimited query token longer
// than minTokenLength appears in the first line.
func tokenMatch(query, firstLine string) bool {
	for _, tok := range strings.Fields(query) {
		if len(tok) > minTokenLength && strings.Contains(firstLine, tok) {
			return true
		}
	}
	return false
}

// FindPageOfLabel returns the start page of the first section in docFile
// whose label contains labelSubstring, case-insensitively.
func FindPageOfLabel(m models.Manifest, docFile, labelSubstring string) (int, bool) {
	entry, ok := m[docFile]
	if !ok {
		return 0, false
	}
	needle := strings.ToLower(labelSubstring)
	for _, sec := range entry.Sections {
		if strings.Contains(strings.ToLower(sec.Label), needle) {
			return sec.Start, true
		}
	}
	return 0, false
}

// NearestSectionForPage returns the section containing the given page: the
// latest section whose start page does not exceed it.
func NearestSectionForPage(m models.Manifest, docFile string, page int) (models.Section, bool) {
	entry, ok := m[docFile]
	if !ok {
		return models.Section{}, false
	}
	var best models.Section
	found := false
	for _, sec := range entry.Sections {
		if sec.Start <= page && (!found || sec.Start > best.Start) {
			best = sec
			found = true
		}
	}
	return best, found
}
