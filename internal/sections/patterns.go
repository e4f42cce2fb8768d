// Package sections extracts labeled sections with page numbers from documents.
//
// Two independent strategies produce (label, page) pairs: table-of-contents
// line parsing and heading-pattern scanning. The Assembler orchestrates them
// per document, with special handling for biography documents.
package sections

import "regexp"

// Patterns is the read-only pattern catalog used by the parsers. It is built
// once at process start and passed explicitly rather than referenced as
// package state.
type Patterns struct {
	// HeadingPatterns are the domain heading expressions used by the
	// fallback scanner, compiled case-insensitively.
	HeadingPatterns []*regexp.Regexp
	// ShortStyleAllowlist lists exact style names that may be shorter than
	// the scanner's 8-character minimum.
	ShortStyleAllowlist []string
	// TOCIndicators are lowercased substrings that mark a page as a likely
	// table of contents.
	TOCIndicators []string
	// GenericTerms are label substrings rejected by the ToC parser as noise.
	GenericTerms []string
	// QualifyingTerms rescue a generic label when it also names something
	// domain-specific.
	QualifyingTerms []string
}

// headingPatternSources is the heading catalog: evaluation, style, theme,
// context, property-type, and period labels, plus standalone style names.
var headingPatternSources = []string{
	`Evaluation Criteria:\s*.+`,
	`Evaluative Framework[s]?:\s*.+`,
	`Evaluative Criteria:\s*.+`,

	`Style:\s*.+`,
	`Sub[- ]?style:\s*.+`,
	`Theme:\s*.+`,
	`Sub[- ]?Theme:\s*.+`,
	`Sub[- ]?theme:\s*.+`,

	`Historic Context:\s*.+`,
	`Historical Context:\s*.+`,
	`Context Statement:\s*.+`,

	`Property Type:\s*.+`,
	`Building Type:\s*.+`,
	`Resource Type:\s*.+`,

	`Period of Significance:\s*.+`,
	`Time Period:\s*.+`,
	`Era:\s*.+`,

	`Gothic Revival\b`,
	`Art Deco\b`,
	`Streamline Moderne\b`,
	`International Style\b`,
	`Queen Anne\b`,
	`Italianate\b`,
	`Second Empire\b`,
	`Stick[/\\]?Eastlake\b`,
	`Folk Victorian\b`,
	`Greek Revival\b`,
	`Neoclassical\b`,
	`Colonial Revival\b`,
	`Tudor Revival\b`,
	`Spanish Colonial Revival\b`,
	`Mission Revival\b`,
	`Craftsman\b`,
	`Bungalow\b`,
	`Prairie School\b`,
	`Art Moderne\b`,
	`Moderne\b`,
	`Bauhaus\b`,
	`Mid[- ]?Century Modern\b`,
	`Brutalist\b`,
	`New Formalism\b`,
	`Postmodern\b`,
}

// DefaultPatterns returns the built-in pattern catalog.
func DefaultPatterns() *Patterns {
	compiled := make([]*regexp.Regexp, len(headingPatternSources))
	for i, src := range headingPatternSources {
		compiled[i] = regexp.MustCompile(`(?i)` + src)
	}
	return &Patterns{
		HeadingPatterns:     compiled,
		ShortStyleAllowlist: []string{"Art Deco", "Moderne", "Bauhaus"},
		TOCIndicators: []string{
			"table of contents", "contents", "index",
			"evaluation criteria:", "theme:", "style:",
			"page", "chapter",
		},
		GenericTerms:    []string{"introduction", "overview", "summary", "conclusion", "appendix"},
		QualifyingTerms: []string{"style", "criteria", "context", "theme", "evaluation", "greek", "gothic", "victorian"},
	}
}

// Limits bounds the per-document scanning work structurally.
type Limits struct {
	// TOCProbePages is how many leading pages are probed for ToC indicators.
	TOCProbePages int
	// DefaultTOCPages is how many leading pages are parsed when no page
	// qualifies as a ToC.
	DefaultTOCPages int
	// MaxScanPages caps the full-document heading scan fallback.
	MaxScanPages int
	// TOCDotThreshold is the dot count above which a page is treated as
	// leader-dot ToC formatting.
	TOCDotThreshold int
}

// DefaultLimits returns the standard scan bounds.
func DefaultLimits() Limits {
	return Limits{
		TOCProbePages:   10,
		DefaultTOCPages: 7,
		MaxScanPages:    200,
		TOCDotThreshold: 20,
	}
}
