package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/shiori/internal/extract"
	"github.com/hyperjump/shiori/internal/manifest"
	"github.com/hyperjump/shiori/internal/sections"
)

// touchPDFs creates placeholder files so the corpus glob finds them; page
// text comes from the MemOpener keyed by the same paths.
func touchPDFs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("placeholder"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestBuilder(t *testing.T, pdfDir string, docs map[string]*extract.MemDocument) (*Builder, *manifest.Store) {
	t.Helper()
	store := manifest.NewStore(filepath.Join(t.TempDir(), "manifest.json"))
	asm := sections.NewAssembler(&extract.MemOpener{Docs: docs}, nil, sections.Limits{})
	return NewBuilder(asm, store, pdfDir), store
}

func TestBuild(t *testing.T) {
	pdfDir := t.TempDir()
	touchPDFs(t, pdfDir, "survey.pdf", "empty.pdf", "corrupt.pdf", "notes.txt")
	docs := map[string]*extract.MemDocument{
		filepath.Join(pdfDir, "survey.pdf"): {Pages: []string{
			"Contents\nGothic Revival .......... 25\nQueen Anne .......... 40",
			"body",
		}},
		filepath.Join(pdfDir, "empty.pdf"): {Pages: []string{"nothing here"}},
		// corrupt.pdf is not registered, so opening it fails.
	}
	b, store := newTestBuilder(t, pdfDir, docs)

	m, sum, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sum.Found != 3 {
		t.Errorf("found = %d, want 3 (non-PDF files ignored)", sum.Found)
	}
	if sum.Processed != 1 || sum.Empty != 1 || sum.TotalSections != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if len(sum.Failures) != 1 || sum.Failures[0].File != "corrupt.pdf" {
		t.Errorf("failures = %+v", sum.Failures)
	}
	if sum.RunID == "" {
		t.Error("run ID not set")
	}

	entry := m["survey.pdf"]
	if entry == nil || len(entry.Sections) != 2 {
		t.Fatalf("survey.pdf entry = %+v", entry)
	}
	if _, ok := m["empty.pdf"]; ok {
		t.Error("sectionless document must not appear in the manifest")
	}

	// The manifest was persisted, not just returned.
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load after build: %v", err)
	}
	if len(loaded) != 1 || loaded["survey.pdf"] == nil {
		t.Errorf("persisted manifest = %+v", loaded)
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	b, store := newTestBuilder(t, t.TempDir(), nil)
	m, sum, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sum.Found != 0 || len(m) != 0 {
		t.Errorf("summary = %+v, manifest = %+v", sum, m)
	}
	// An empty manifest is still written.
	if _, err := store.Load(); err != nil {
		t.Errorf("empty manifest should be persisted: %v", err)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	pdfDir := t.TempDir()
	touchPDFs(t, pdfDir, "survey.pdf")
	docs := map[string]*extract.MemDocument{
		filepath.Join(pdfDir, "survey.pdf"): {Pages: []string{
			"Contents\nGothic Revival .......... 25",
		}},
	}
	b, _ := newTestBuilder(t, pdfDir, docs)

	first, _, err := b.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := b.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("manifest size changed between runs: %d vs %d", len(first), len(second))
	}
	f, s := first["survey.pdf"], second["survey.pdf"]
	if len(f.Sections) != len(s.Sections) || f.Sections[0] != s.Sections[0] {
		t.Errorf("sections differ between runs: %+v vs %+v", f.Sections, s.Sections)
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	pdfDir := t.TempDir()
	touchPDFs(t, pdfDir, "survey.pdf")
	b, _ := newTestBuilder(t, pdfDir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := b.Build(ctx); err == nil {
		t.Error("expected context error")
	}
}
