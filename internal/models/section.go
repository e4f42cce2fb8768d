// Package models defines core data structures for sections, documents, and search results.
package models

import "strings"

// Section is a labeled entry in a document, pointing at its starting page.
// Sections are created during extraction and never mutated afterwards.
type Section struct {
	Label string `json:"label"`
	Start int    `json:"start"` // 1-based page number
}

// Key returns the deduplication identity for the section:
// the lowercased, trimmed label paired with the start page.
func (s Section) Key() SectionKey {
	return SectionKey{Label: strings.ToLower(strings.TrimSpace(s.Label)), Start: s.Start}
}

// FirstLine returns the label text before the first newline, lowercased and
// trimmed. Multi-page heading scans can produce multi-line labels; scoring
// only ever compares against the first line.
func (s Section) FirstLine() string {
	label := strings.ToLower(s.Label)
	if i := strings.IndexByte(label, '\n'); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(label)
}

// SectionKey identifies a section for deduplication purposes.
type SectionKey struct {
	Label string
	Start int
}

// DocumentEntry is the per-document record in the manifest: a title, the
// ordered section list (ascending by start page), and the page count.
type DocumentEntry struct {
	Title      string    `json:"title"`
	Sections   []Section `json:"sections"`
	TotalPages int       `json:"total_pages"`
}

// Manifest maps source document filenames to their entries. It is built
// wholesale by the assembler pipeline and read-only for all query operations.
type Manifest map[string]*DocumentEntry

// TotalSections returns the number of sections across all documents.
func (m Manifest) TotalSections() int {
	n := 0
	for _, entry := range m {
		n += len(entry.Sections)
	}
	return n
}
