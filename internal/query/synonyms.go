// Package query scores free-text queries against the section manifest.
package query

import "strings"

// Synonym maps a query fragment to its canonical form.
type Synonym struct {
	Pattern   string
	Canonical string
}

// SynonymTables holds the static style and architect expansion tables.
// Both are ordered: expansion takes the first matching entry by table order,
// ties broken by position, not specificity. The tables are read-only and
// shared process-wide.
type SynonymTables struct {
	Styles     []Synonym
	Architects []Synonym
}

// DefaultTables returns the built-in style and architect tables.
func DefaultTables() *SynonymTables {
	return &SynonymTables{
		Styles: []Synonym{
			{"greek", "greek revival"},
			{"gothic", "gothic revival"},
			{"art deco", "art deco"},
			{"streamline", "streamline moderne"},
			{"international", "international style"},
			{"queen anne", "queen anne"},
			{"italianate", "italianate"},
			{"second empire", "second empire"},
			{"stick", "stick/eastlake"},
			{"eastlake", "stick/eastlake"},
			{"folk victorian", "folk victorian"},
			{"neoclassical", "neoclassical"},
			{"colonial", "colonial revival"},
			{"tudor", "tudor revival"},
			{"spanish", "spanish colonial revival"},
			{"mission", "mission revival"},
			{"craftsman", "craftsman"},
			{"bungalow", "bungalow"},
			{"prairie", "prairie school"},
			{"art moderne", "art moderne"},
			{"moderne", "art moderne"},
			{"bauhaus", "bauhaus"},
			{"mid century", "mid-century modern"},
			{"mid-century", "mid-century modern"},
			{"brutalist", "brutalist"},
			{"new formalism", "new formalism"},
			{"postmodern", "postmodern"},
		},
		Architects: []Synonym{
			{"anderson", "Anderson"},
			{"christian", "Christian"},
			{"christian anderson", "Christian Anderson"},
			{"anderson christian", "Christian Anderson"},
			{"denck", "Denck"},
			{"edmund", "Edmund"},
			{"edmund denck", "Edmund Denck"},
			{"denck edmund", "Edmund Denck"},
			{"august", "August"},
			{"august denck", "August Denck"},
			{"denck august", "August Denck"},
			{"daniels", "Daniels"},
			{"dillman", "Dillman"},
			{"daniels dillman", "Daniels & Dillman"},
			{"dillman daniels", "Daniels & Dillman"},
			{"osmont", "Osmont"},
			{"daniels osmont", "Daniels & Osmont"},
			{"osmont daniels", "Daniels & Osmont"},
			{"wilhelm", "Wilhelm"},
			{"daniels wilhelm", "Daniels & Wilhelm"},
			{"wilhelm daniels", "Daniels & Wilhelm"},
			// mclaren is a recurring misspelling of McDougall in survey records.
			{"mclaren", "McDougall"},
			{"donald", "Donald"},
			{"donald mclaren", "Donald McDougall"},
			{"mc dougall", "McDougall"},
			{"mcdougall", "McDougall"},
			{"barnett", "Barnett"},
			{"barnett mc dougall", "Barnett McDougall"},
			{"mc dougall barnett", "Barnett McDougall"},
			{"marquis", "Marquis"},
			{"mc dougall marquis", "McDougall & Marquis"},
			{"marquis mc dougall", "McDougall & Marquis"},
		},
	}
}

// Expand rewrites a lowercased query to its canonical form. The style table
// is checked first; a match in the architect table overwrites a prior style
// match. With no match in either table the query is returned unchanged.
func (t *SynonymTables) Expand(query string) string {
	expanded := query
	for _, s := range t.Styles {
		if strings.Contains(query, s.Pattern) {
			expanded = s.Canonical
			break
		}
	}
	for _, a := range t.Architects {
		if strings.Contains(query, a.Pattern) {
			expanded = a.Canonical
			break
		}
	}
	return expanded
}

// stylePatternInBoth reports whether any style pattern present in the query
// also appears in the label's first line.
func (t *SynonymTables) stylePatternInBoth(query, firstLine string) bool {
	for _, s := range t.Styles {
		if strings.Contains(query, s.Pattern) && strings.Contains(firstLine, s.Pattern) {
			return true
		}
	}
	return false
}

// architectNameInBoth reports whether any canonical architect name present
// in the query also appears in the label's first line (case-insensitive).
func (t *SynonymTables) architectNameInBoth(query, firstLine string) bool {
	for _, a := range t.Architects {
		name := strings.ToLower(a.Canonical)
		if strings.Contains(query, name) && strings.Contains(firstLine, name) {
			return true
		}
	}
	return false
}

// architectNameIn reports whether the first line contains any canonical
// architect name (case-insensitive).
func (t *SynonymTables) architectNameIn(firstLine string) bool {
	for _, a := range t.Architects {
		if strings.Contains(firstLine, strings.ToLower(a.Canonical)) {
			return true
		}
	}
	return false
}
