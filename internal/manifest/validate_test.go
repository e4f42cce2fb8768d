package manifest

import (
	"strings"
	"testing"

	"github.com/hyperjump/shiori/internal/models"
)

func TestValidate_CleanManifest(t *testing.T) {
	m := models.Manifest{
		"survey.pdf": {
			Title: "survey",
			Sections: []models.Section{
				{Label: "Evaluation Criteria: Gothic Revival", Start: 12},
				{Label: "Queen Anne", Start: 30},
			},
			TotalPages: 50,
		},
	}
	r := Validate(m)
	if !r.OK() {
		t.Fatalf("expected clean validation, issues: %v", r.Issues)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
}

func TestValidate_Issues(t *testing.T) {
	m := models.Manifest{
		"null.pdf":     nil,
		"untitled.pdf": {Sections: []models.Section{{Label: "X-Ray House", Start: 3}}},
		"nosecs.pdf":   {Title: "nosecs"},
		"badsec.pdf": {
			Title:    "badsec",
			Sections: []models.Section{{Label: "", Start: 0}},
		},
	}
	r := Validate(m)
	if r.OK() {
		t.Fatal("expected structural issues")
	}
	wantFragments := []string{
		"null.pdf: null entry",
		"untitled.pdf: missing 'title'",
		"nosecs.pdf: missing 'sections'",
		"badsec.pdf section 0: missing 'label'",
		"badsec.pdf section 0: missing or invalid 'start'",
	}
	joined := strings.Join(r.Issues, "\n")
	for _, frag := range wantFragments {
		if !strings.Contains(joined, frag) {
			t.Errorf("issues missing %q, got:\n%s", frag, joined)
		}
	}
}

func TestValidate_Warnings(t *testing.T) {
	m := models.Manifest{
		"empty.pdf": {Title: "empty", Sections: []models.Section{}},
		"order.pdf": {
			Title: "order",
			Sections: []models.Section{
				{Label: "Evaluation Criteria: Later", Start: 40},
				{Label: "Earlier", Start: 10},
			},
		},
		"noeval.pdf": {
			Title:    "noeval",
			Sections: []models.Section{{Label: "Gothic Revival", Start: 5}},
		},
	}
	r := Validate(m)
	if !r.OK() {
		t.Fatalf("warnings must not fail validation, issues: %v", r.Issues)
	}
	joined := strings.Join(r.Warnings, "\n")
	if !strings.Contains(joined, "empty.pdf: no sections found") {
		t.Errorf("missing empty-sections warning, got:\n%s", joined)
	}
	if !strings.Contains(joined, "order.pdf") || !strings.Contains(joined, "not after previous") {
		t.Errorf("missing page-order warning, got:\n%s", joined)
	}
	if !strings.Contains(joined, "noeval.pdf: no 'Evaluation Criteria'") {
		t.Errorf("missing evaluation-criteria warning, got:\n%s", joined)
	}
	if strings.Contains(joined, "order.pdf: no 'Evaluation Criteria'") {
		t.Errorf("order.pdf has an evaluation-criteria section, got:\n%s", joined)
	}
}

func TestValidate_EmptyManifest(t *testing.T) {
	r := Validate(models.Manifest{})
	if !r.OK() {
		t.Fatalf("empty manifest is a warning, not an issue: %v", r.Issues)
	}
	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "no documents") {
		t.Errorf("warnings = %v", r.Warnings)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	m := models.Manifest{
		"b.pdf": nil,
		"a.pdf": nil,
		"c.pdf": nil,
	}
	first := Validate(m)
	for i := 0; i < 5; i++ {
		again := Validate(m)
		if strings.Join(again.Issues, "|") != strings.Join(first.Issues, "|") {
			t.Fatalf("issue order varies between runs: %v vs %v", again.Issues, first.Issues)
		}
	}
	if first.Issues[0] != "a.pdf: null entry" {
		t.Errorf("issues not in filename order: %v", first.Issues)
	}
}
