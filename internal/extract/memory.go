package extract

import "fmt"

// MemDocument is an in-memory Document, one string per page. Used in tests
// and anywhere page text is already available.
type MemDocument struct {
	Pages []string
}

// NumPages returns the number of pages.
func (d *MemDocument) NumPages() int { return len(d.Pages) }

// PageText returns the text of the given 1-based page, or "" out of range.
func (d *MemDocument) PageText(page int) string {
	if page < 1 || page > len(d.Pages) {
		return ""
	}
	return d.Pages[page-1]
}

// Close is a no-op.
func (d *MemDocument) Close() error { return nil }

// MemOpener serves MemDocuments by path.
type MemOpener struct {
	Docs map[string]*MemDocument
}

// Open returns the document registered under path, or an error when absent
// (standing in for a corrupt or unreadable file).
func (o *MemOpener) Open(path string) (Document, error) {
	doc, ok := o.Docs[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such document", path)
	}
	return doc, nil
}
