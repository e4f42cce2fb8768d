// Package viewer builds deep links into a PDF viewer at a given page.
package viewer

import (
	"fmt"
	"net/url"
	"strings"
)

// Defaults point at the published corpus and the hosted PDF.js viewer.
const (
	DefaultRawPrefix  = "https://raw.githubusercontent.com/zeldasfsurvey/sfsurvey-hcs-pdfs/main/"
	DefaultViewerBase = "https://mozilla.github.io/pdf.js/web/viewer.html?file="
)

// Links constructs document and viewer URLs for corpus files.
type Links struct {
	rawPrefix  string
	viewerBase string
}

// NewLinks creates a link builder. Empty arguments fall back to the defaults.
func NewLinks(rawPrefix, viewerBase string) *Links {
	if rawPrefix == "" {
		rawPrefix = DefaultRawPrefix
	}
	if viewerBase == "" {
		viewerBase = DefaultViewerBase
	}
	return &Links{rawPrefix: rawPrefix, viewerBase: viewerBase}
}

// RawURL returns the full URL of the document file, with the filename
// percent-encoded.
func (l *Links) RawURL(docFile string) string {
	return l.rawPrefix + escape(docFile)
}

// ViewerURL returns a viewer link anchored at the given 1-based page. The
// document URL is itself percent-encoded as the viewer's file parameter.
func (l *Links) ViewerURL(docFile string, page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s%s#page=%d", l.viewerBase, escape(l.RawURL(docFile)), page)
}

// escape percent-encodes s with no characters exempt (spaces become %20,
// not '+').
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
