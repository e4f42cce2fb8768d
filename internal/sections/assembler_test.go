package sections

import (
	"strings"
	"testing"

	"github.com/hyperjump/shiori/internal/extract"
)

func newTestAssembler(docs map[string]*extract.MemDocument) *Assembler {
	return NewAssembler(&extract.MemOpener{Docs: docs}, nil, Limits{})
}

func TestAssemble_TOCDocument(t *testing.T) {
	doc := &extract.MemDocument{Pages: []string{
		"Table of Contents\n" +
			"Victorian Era Houses .......... 40\n" +
			"Gothic Revival .......... 25",
		"body text", "body text",
	}}
	a := newTestAssembler(nil)
	secs := a.Assemble("survey.pdf", doc)
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(secs), secs)
	}
	// Sorted ascending by start page regardless of ToC line order.
	if secs[0].Start != 25 || secs[1].Start != 40 {
		t.Errorf("sections not sorted by page: %+v", secs)
	}
}

func TestAssemble_DotDenseTOCPage(t *testing.T) {
	// No indicator phrase, but the leader dots alone mark the page as a ToC.
	doc := &extract.MemDocument{Pages: []string{
		"Queen Anne Cottages " + strings.Repeat(".", 30) + " 14",
	}}
	a := newTestAssembler(nil)
	secs := a.Assemble("survey.pdf", doc)
	if len(secs) != 1 || secs[0].Start != 14 {
		t.Fatalf("expected Queen Anne Cottages at 14, got %+v", secs)
	}
}

func TestAssemble_Dedupe(t *testing.T) {
	// The same entry on two ToC pages (differing only in case) collapses to one.
	doc := &extract.MemDocument{Pages: []string{
		"Contents\nGothic Revival .......... 25",
		"Contents\nGOTHIC REVIVAL .......... 25",
	}}
	a := newTestAssembler(nil)
	secs := a.Assemble("survey.pdf", doc)
	if len(secs) != 1 {
		t.Fatalf("expected duplicates collapsed, got %+v", secs)
	}
	// Same label at a different page is a distinct section.
	doc2 := &extract.MemDocument{Pages: []string{
		"Contents\nGothic Revival .......... 25\nGothic Revival .......... 60",
	}}
	secs2 := a.Assemble("survey.pdf", doc2)
	if len(secs2) != 2 {
		t.Fatalf("same label at different pages should survive, got %+v", secs2)
	}
}

func TestAssemble_FallbackToHeadingScan(t *testing.T) {
	// No ToC lines anywhere; the heading scanner picks up inline headings.
	doc := &extract.MemDocument{Pages: []string{
		"survey background prose",
		"Theme: Commercial Buildings\nmore prose",
		"Style: Wood Frame Storefronts",
	}}
	a := newTestAssembler(nil)
	secs := a.Assemble("survey.pdf", doc)
	if len(secs) != 2 {
		t.Fatalf("expected 2 scanned headings, got %d: %+v", len(secs), secs)
	}
	if secs[0].Start != 2 || secs[1].Start != 3 {
		t.Errorf("heading pages = %+v, want pages 2 and 3", secs)
	}
}

func TestAssemble_ScanCappedAtMaxScanPages(t *testing.T) {
	pages := make([]string, 6)
	for i := range pages {
		pages[i] = "filler"
	}
	pages[5] = "Theme: Late Additions" // beyond the cap
	doc := &extract.MemDocument{Pages: pages}
	a := NewAssembler(&extract.MemOpener{}, nil, Limits{MaxScanPages: 4})
	if secs := a.Assemble("survey.pdf", doc); len(secs) != 0 {
		t.Errorf("scan should stop at page 4, got %+v", secs)
	}
}

func TestAssemble_BioOverridesTOC(t *testing.T) {
	// A bios_ document uses name-entry parsing even when a page looks like a ToC.
	doc := &extract.MemDocument{Pages: []string{
		"Table of Contents\nGothic Revival .......... 25",
		"Maybeck, Bernard\nPolk, Willis",
	}}
	a := newTestAssembler(nil)
	secs := a.Assemble("bios_architects.pdf", doc)
	if len(secs) != 2 {
		t.Fatalf("expected 2 bio entries, got %d: %+v", len(secs), secs)
	}
	for _, s := range secs {
		if s.Start != 2 {
			t.Errorf("bio entry %q page = %d, want 2", s.Label, s.Start)
		}
	}
}

func TestAssemble_FailedPagesSkipped(t *testing.T) {
	// Empty page text (the extractor's failure signal) must not abort the
	// document; remaining pages still contribute.
	doc := &extract.MemDocument{Pages: []string{
		"",
		"Contents\nGreek Revival .......... 8",
	}}
	a := newTestAssembler(nil)
	secs := a.Assemble("survey.pdf", doc)
	if len(secs) != 1 || secs[0].Start != 8 {
		t.Fatalf("expected Greek Revival at 8, got %+v", secs)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	doc := &extract.MemDocument{Pages: []string{
		"Contents\nGothic Revival .......... 25\nVictorian Era .......... 12\nQueen Anne .......... 12",
	}}
	a := newTestAssembler(nil)
	first := a.Assemble("survey.pdf", doc)
	for run := 0; run < 5; run++ {
		again := a.Assemble("survey.pdf", doc)
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d != %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d: section %d = %+v, want %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestFindTOCPages_DefaultWindow(t *testing.T) {
	pages := make([]string, 12)
	for i := range pages {
		pages[i] = "plain narrative text"
	}
	doc := &extract.MemDocument{Pages: pages}
	a := newTestAssembler(nil)
	got := a.FindTOCPages(doc)
	want := []int{1, 2, 3, 4, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("default window = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("default window = %v, want %v", got, want)
		}
	}
}

func TestFindTOCPages_ShortDocument(t *testing.T) {
	doc := &extract.MemDocument{Pages: []string{"a", "b", "c"}}
	a := newTestAssembler(nil)
	if got := a.FindTOCPages(doc); len(got) != 3 {
		t.Errorf("short document window = %v, want all 3 pages", got)
	}
}

func TestAssemblePath(t *testing.T) {
	docs := map[string]*extract.MemDocument{
		"/data/survey.pdf": {Pages: []string{
			"Contents\nGothic Revival .......... 25",
			"body",
		}},
		"/data/empty.pdf": {Pages: []string{"nothing here", "or here"}},
	}
	a := newTestAssembler(docs)

	entry, err := a.AssemblePath("/data/survey.pdf")
	if err != nil {
		t.Fatalf("AssemblePath: %v", err)
	}
	if entry.Title != "survey" {
		t.Errorf("title = %q, want survey (extension stripped)", entry.Title)
	}
	if entry.TotalPages != 2 || len(entry.Sections) != 1 {
		t.Errorf("entry = %+v", entry)
	}

	entry, err = a.AssemblePath("/data/empty.pdf")
	if err != nil {
		t.Fatalf("AssemblePath(empty): %v", err)
	}
	if entry != nil {
		t.Errorf("sectionless document should yield a nil entry, got %+v", entry)
	}

	if _, err = a.AssemblePath("/data/missing.pdf"); err == nil {
		t.Error("expected error for unopenable document")
	}
}
