package models

import (
	"encoding/json"
	"testing"
)

func TestSection_Key(t *testing.T) {
	a := Section{Label: "Gothic Revival", Start: 25}
	b := Section{Label: "  GOTHIC REVIVAL  ", Start: 25}
	if a.Key() != b.Key() {
		t.Error("keys should match case- and whitespace-insensitively")
	}
	c := Section{Label: "Gothic Revival", Start: 60}
	if a.Key() == c.Key() {
		t.Error("same label at a different page must have a distinct key")
	}
}

func TestSection_FirstLine(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Gothic Revival", "gothic revival"},
		{"Gothic Revival\ntrailing OCR noise", "gothic revival"},
		{"  Padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := (Section{Label: tt.label}).FirstLine(); got != tt.want {
			t.Errorf("FirstLine(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestManifest_TotalSections(t *testing.T) {
	m := Manifest{
		"a.pdf": {Title: "a", Sections: []Section{{Label: "x", Start: 1}, {Label: "y", Start: 2}}},
		"b.pdf": {Title: "b"},
	}
	if got := m.TotalSections(); got != 2 {
		t.Errorf("TotalSections = %d, want 2", got)
	}
	var empty Manifest
	if empty.TotalSections() != 0 {
		t.Error("nil manifest should count zero sections")
	}
}

func TestManifest_JSONShape(t *testing.T) {
	m := Manifest{
		"survey.pdf": {
			Title:      "survey",
			Sections:   []Section{{Label: "Gothic Revival", Start: 25}},
			TotalPages: 90,
		},
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	entry := raw["survey.pdf"]
	for _, key := range []string{"title", "sections", "total_pages"} {
		if _, ok := entry[key]; !ok {
			t.Errorf("manifest entry missing %q field: %s", key, data)
		}
	}
	secs := entry["sections"].([]interface{})
	sec := secs[0].(map[string]interface{})
	if sec["label"] != "Gothic Revival" || sec["start"].(float64) != 25 {
		t.Errorf("section shape = %+v", sec)
	}
}
