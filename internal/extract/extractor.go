// Package extract provides page-level text extraction from PDF documents.
package extract

// Document gives page-level access to an open document's text.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int
	// PageText returns the plain text of the given 1-based page.
	// It never fails: unreadable pages yield an empty string.
	PageText(page int) string
	// Close releases the underlying file handle.
	Close() error
}

// Opener opens documents for extraction.
type Opener interface {
	// Open opens the document at path. Returns an error when the file is
	// missing or cannot be parsed as a document at all; page-level problems
	// surface later as empty PageText results.
	Open(path string) (Document, error)
}
