// Package builder runs the manifest build pipeline over the PDF corpus.
package builder

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hyperjump/shiori/internal/manifest"
	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/sections"
	"go.uber.org/zap"
)

// Builder assembles sections for every PDF in the corpus directory and
// persists the resulting manifest. Documents are processed one at a time;
// a failed document is skipped and the run continues.
type Builder struct {
	assembler *sections.Assembler
	store     *manifest.Store
	pdfDir    string
	logger    *zap.Logger // optional; when set, logs per-document progress
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a logger for per-document progress and the run summary.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a builder over pdfDir that writes through store.
func NewBuilder(assembler *sections.Assembler, store *manifest.Store, pdfDir string, opts ...BuilderOption) *Builder {
	b := &Builder{assembler: assembler, store: store, pdfDir: pdfDir}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Failure records a document the pipeline had to skip.
type Failure struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

// Summary reports one build run.
type Summary struct {
	RunID         string    `json:"run_id"`
	Found         int       `json:"found"`
	Processed     int       `json:"processed"`
	Empty         int       `json:"empty"`
	TotalSections int       `json:"total_sections"`
	Failures      []Failure `json:"failures,omitempty"`
}

// Build scans the corpus directory for PDFs, assembles each document's
// sections, writes the manifest, and returns it with a run summary.
// Documents with no sections contribute no manifest entry. The context is
// checked between documents only; a document in progress always completes.
func (b *Builder) Build(ctx context.Context) (models.Manifest, *Summary, error) {
	files, err := filepath.Glob(filepath.Join(b.pdfDir, "*.pdf"))
	if err != nil {
		return nil, nil, fmt.Errorf("scan PDF dir: %w", err)
	}

	sum := &Summary{RunID: uuid.New().String(), Found: len(files)}
	m := models.Manifest{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		filename := filepath.Base(path)
		entry, err := b.assembler.AssemblePath(path)
		if err != nil {
			sum.Failures = append(sum.Failures, Failure{File: filename, Err: err.Error()})
			if b.logger != nil {
				b.logger.Warn("document skipped", zap.String("file", filename), zap.Error(err))
			}
			continue
		}
		if entry == nil {
			sum.Empty++
			if b.logger != nil {
				b.logger.Warn("no sections found", zap.String("file", filename))
			}
			continue
		}
		m[filename] = entry
		sum.Processed++
		sum.TotalSections += len(entry.Sections)
		if b.logger != nil {
			b.logger.Info("document processed",
				zap.String("file", filename),
				zap.Int("sections", len(entry.Sections)),
				zap.Int("total_pages", entry.TotalPages),
			)
		}
	}

	if err := b.store.Save(m); err != nil {
		return nil, nil, err
	}
	if b.logger != nil {
		b.logger.Info("manifest built",
			zap.String("run_id", sum.RunID),
			zap.String("path", b.store.Path()),
			zap.Int("found", sum.Found),
			zap.Int("processed", sum.Processed),
			zap.Int("total_sections", sum.TotalSections),
			zap.Int("failures", len(sum.Failures)),
		)
	}
	return m, sum, nil
}
