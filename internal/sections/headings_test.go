package sections

import (
	"testing"
)

func TestScanHeadings_LabeledHeadings(t *testing.T) {
	text := "Theme: Residential Architecture\nsome body text\nEvaluation Criteria: Wood Frame Cottages"
	secs := ScanHeadings(3, text, DefaultPatterns())
	if len(secs) != 2 {
		t.Fatalf("expected 2 headings, got %d: %+v", len(secs), secs)
	}
	for _, s := range secs {
		if s.Start != 3 {
			t.Errorf("heading %q page = %d, want 3", s.Label, s.Start)
		}
	}
}

func TestScanHeadings_CaseInsensitive(t *testing.T) {
	secs := ScanHeadings(1, "STYLE: GOTHIC REVIVAL", DefaultPatterns())
	if len(secs) == 0 {
		t.Fatal("uppercase heading should match the case-insensitive catalog")
	}
}

func TestScanHeadings_StandaloneStyleNames(t *testing.T) {
	secs := ScanHeadings(7, "The Gothic Revival movement shaped church design.", DefaultPatterns())
	found := false
	for _, s := range secs {
		if s.Label == "Gothic Revival" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a Gothic Revival hit, got %+v", secs)
	}
}

func TestScanHeadings_ShortMatchesDropped(t *testing.T) {
	// "Moderne" alone is 7 characters, below the length floor, but it is on
	// the short-style allowlist and must be kept.
	secs := ScanHeadings(1, "Moderne", DefaultPatterns())
	if len(secs) == 0 {
		t.Fatal("allowlisted short style should be kept")
	}
	if secs[0].Label != "Moderne" {
		t.Errorf("label = %q, want Moderne", secs[0].Label)
	}
}

func TestScanHeadings_NoMatches(t *testing.T) {
	if secs := ScanHeadings(1, "nothing architectural here", DefaultPatterns()); len(secs) != 0 {
		t.Errorf("expected no headings, got %+v", secs)
	}
}
