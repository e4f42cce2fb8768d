// Package frameworks loads the style/year lookup table and resolves a style
// and year to a specific document section.
package frameworks

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/query"
)

// Row is one entry of the frameworks table: a style with its period and the
// document section that documents it.
type Row struct {
	Style        string
	PeriodLabel  string
	YearStart    int
	YearEnd      int
	DocFile      string
	SectionLabel string
	// hasYears marks whether both year bounds parsed; rows without a usable
	// range match any year.
	hasYears bool
}

// Table is the loaded frameworks lookup table. Read-only after load.
type Table struct {
	rows []Row
}

// Load reads the frameworks CSV at path. Expected header columns:
// style, period_label, year_start, year_end, doc_file, section_label.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frameworks table: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads frameworks rows from r.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse frameworks csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	// First row is headers.
	col := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"style", "doc_file", "section_label"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("frameworks csv missing %q column", required)
		}
	}

	cell := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	t := &Table{rows: make([]Row, 0, len(records)-1)}
	for _, record := range records[1:] {
		row := Row{
			Style:        cell(record, "style"),
			PeriodLabel:  cell(record, "period_label"),
			DocFile:      cell(record, "doc_file"),
			SectionLabel: cell(record, "section_label"),
		}
		ys, errS := strconv.Atoi(cell(record, "year_start"))
		ye, errE := strconv.Atoi(cell(record, "year_end"))
		if errS == nil && errE == nil {
			row.YearStart, row.YearEnd = ys, ye
			row.hasYears = true
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Resolve finds the first row whose style contains the given style
// (case-insensitive) and whose year range covers year, then resolves the
// row's section label to a page through the manifest. Returns nil when no
// row or no page matches.
func (t *Table) Resolve(m models.Manifest, style string, year int) *models.ResolveResult {
	if style == "" {
		return nil
	}
	needle := strings.ToLower(style)
	for _, row := range t.rows {
		if !strings.Contains(strings.ToLower(row.Style), needle) {
			continue
		}
		if row.hasYears && (year < row.YearStart || year > row.YearEnd) {
			continue
		}
		if row.DocFile == "" || row.SectionLabel == "" {
			continue
		}
		page, ok := query.FindPageOfLabel(m, row.DocFile, row.SectionLabel)
		if !ok {
			return nil
		}
		return &models.ResolveResult{
			DocFile:      row.DocFile,
			SectionLabel: row.SectionLabel,
			Page:         page,
			Style:        row.Style,
			Period:       row.PeriodLabel,
		}
	}
	return nil
}
