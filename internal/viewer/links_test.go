package viewer

import (
	"strings"
	"testing"
)

func TestRawURL(t *testing.T) {
	l := NewLinks("https://example.com/pdfs/", "")
	got := l.RawURL("victorian era.pdf")
	want := "https://example.com/pdfs/victorian%20era.pdf"
	if got != want {
		t.Errorf("RawURL = %q, want %q", got, want)
	}
}

func TestRawURL_NoPlusEncoding(t *testing.T) {
	l := NewLinks("", "")
	got := l.RawURL("anshen + allen.pdf")
	if strings.Contains(got, "+") {
		t.Errorf("spaces and plus signs must be percent-encoded, got %q", got)
	}
	if !strings.Contains(got, "%20") || !strings.Contains(got, "%2B") {
		t.Errorf("RawURL = %q, want %%20 for spaces and %%2B for plus", got)
	}
}

func TestViewerURL(t *testing.T) {
	l := NewLinks("https://example.com/pdfs/", "https://viewer.example.com/web/viewer.html?file=")
	got := l.ViewerURL("survey.pdf", 30)
	if !strings.HasPrefix(got, "https://viewer.example.com/web/viewer.html?file=") {
		t.Errorf("ViewerURL = %q", got)
	}
	if !strings.HasSuffix(got, "#page=30") {
		t.Errorf("ViewerURL = %q, want #page=30 anchor", got)
	}
	// The raw URL is passed through percent-encoded as the file parameter.
	if !strings.Contains(got, "https%3A%2F%2Fexample.com%2Fpdfs%2Fsurvey.pdf") {
		t.Errorf("ViewerURL = %q, raw URL not encoded", got)
	}
}

func TestViewerURL_PageFloor(t *testing.T) {
	l := NewLinks("", "")
	for _, page := range []int{0, -5} {
		if got := l.ViewerURL("survey.pdf", page); !strings.HasSuffix(got, "#page=1") {
			t.Errorf("ViewerURL(page=%d) = %q, want #page=1", page, got)
		}
	}
}

func TestNewLinks_Defaults(t *testing.T) {
	l := NewLinks("", "")
	if !strings.HasPrefix(l.RawURL("x.pdf"), DefaultRawPrefix) {
		t.Errorf("RawURL does not use the default prefix: %q", l.RawURL("x.pdf"))
	}
	if !strings.HasPrefix(l.ViewerURL("x.pdf", 1), DefaultViewerBase) {
		t.Errorf("ViewerURL does not use the default base: %q", l.ViewerURL("x.pdf", 1))
	}
}
