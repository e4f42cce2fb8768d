package sections

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/hyperjump/shiori/internal/extract"
	"github.com/hyperjump/shiori/internal/models"
	"go.uber.org/zap"
)

// Assembler produces a document's section list: ToC parsing on likely ToC
// pages, biography override for bio documents, and a bounded heading-scan
// fallback when everything else comes up empty.
type Assembler struct {
	opener   extract.Opener
	patterns *Patterns
	limits   Limits
	logger   *zap.Logger // optional; when set, logs debug events
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithLogger sets a logger for debug output (ToC pages found, fallback used, etc.).
func WithLogger(l *zap.Logger) AssemblerOption {
	return func(a *Assembler) { a.logger = l }
}

// NewAssembler creates an assembler. patterns may be nil to use the default
// catalog; zero limits fields fall back to the defaults.
func NewAssembler(opener extract.Opener, patterns *Patterns, limits Limits, opts ...AssemblerOption) *Assembler {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	def := DefaultLimits()
	if limits.TOCProbePages <= 0 {
		limits.TOCProbePages = def.TOCProbePages
	}
	if limits.DefaultTOCPages <= 0 {
		limits.DefaultTOCPages = def.DefaultTOCPages
	}
	if limits.MaxScanPages <= 0 {
		limits.MaxScanPages = def.MaxScanPages
	}
	if limits.TOCDotThreshold <= 0 {
		limits.TOCDotThreshold = def.TOCDotThreshold
	}
	a := &Assembler{opener: opener, patterns: patterns, limits: limits}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssemblePath opens the document at path and assembles its manifest entry.
// Returns (nil, nil) when no strategy finds any sections; returns an error
// only when the document itself cannot be opened.
func (a *Assembler) AssemblePath(path string) (*models.DocumentEntry, error) {
	doc, err := a.opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	filename := filepath.Base(path)
	secs := a.Assemble(filename, doc)
	if len(secs) == 0 {
		return nil, nil
	}
	return &models.DocumentEntry{
		Title:      strings.TrimSuffix(filename, filepath.Ext(filename)),
		Sections:   secs,
		TotalPages: doc.NumPages(),
	}, nil
}

// Assemble runs the extraction strategies for one open document and returns
// its section list, sorted ascending by start page.
func (a *Assembler) Assemble(filename string, doc extract.Document) []models.Section {
	// Biography documents always use name-entry parsing; ToC results are
	// discarded, not merged.
	var secs []models.Section
	if IsBioDocument(filename) {
		secs = ParseBioDocument(doc)
		if a.logger != nil {
			a.logger.Debug("bio document parsed", zap.String("file", filename), zap.Int("sections", len(secs)))
		}
		sortByStart(secs)
	} else {
		tocPages := a.FindTOCPages(doc)
		var hits []models.Section
		for _, p := range tocPages {
			if text := doc.PageText(p); text != "" {
				hits = append(hits, ParseTOCLines(text, a.patterns)...)
			}
		}
		secs = dedupeSorted(hits)
		if a.logger != nil {
			a.logger.Debug("toc parsed", zap.String("file", filename), zap.Ints("toc_pages", tocPages), zap.Int("sections", len(secs)))
		}
	}

	if len(secs) == 0 {
		secs = a.scanFallback(doc)
		if a.logger != nil {
			a.logger.Debug("heading scan fallback", zap.String("file", filename), zap.Int("sections", len(secs)))
		}
	}
	return secs
}

// FindTOCPages returns the 1-based pages likely to hold the table of
// contents. It probes at most the first TOCProbePages pages for indicator
// text or dense leader-dot formatting; when nothing qualifies it defaults
// to the first min(DefaultTOCPages, page count) pages.
func (a *Assembler) FindTOCPages(doc extract.Document) []int {
	probe := a.limits.TOCProbePages
	if n := doc.NumPages(); n < probe {
		probe = n
	}
	var pages []int
	for p := 1; p <= probe; p++ {
		text := doc.PageText(p)
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		if containsAny(lower, a.patterns.TOCIndicators) || strings.Count(text, ".") > a.limits.TOCDotThreshold {
			pages = append(pages, p)
		}
	}
	if len(pages) > 0 {
		return pages
	}
	n := a.limits.DefaultTOCPages
	if doc.NumPages() < n {
		n = doc.NumPages()
	}
	for p := 1; p <= n; p++ {
		pages = append(pages, p)
	}
	return pages
}

// scanFallback runs the heading scanner over the leading pages, bounded by
// MaxScanPages.
func (a *Assembler) scanFallback(doc extract.Document) []models.Section {
	limit := doc.NumPages()
	if limit > a.limits.MaxScanPages {
		limit = a.limits.MaxScanPages
	}
	var hits []models.Section
	for p := 1; p <= limit; p++ {
		if text := doc.PageText(p); text != "" {
			hits = append(hits, ScanHeadings(p, text, a.patterns)...)
		}
	}
	return dedupeSorted(hits)
}

// dedupeSorted collapses entries with identical (lowercased label, page)
// identity and sorts the remainder ascending by start page.
func dedupeSorted(hits []models.Section) []models.Section {
	seen := make(map[models.SectionKey]struct{}, len(hits))
	out := make([]models.Section, 0, len(hits))
	for _, s := range hits {
		key := s.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	sortByStart(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortByStart(secs []models.Section) {
	sort.SliceStable(secs, func(i, j int) bool { return secs[i].Start < secs[j].Start })
}
