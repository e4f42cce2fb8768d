package models

// SectionResult is a single scored hit against the manifest. Results are
// computed per query and never persisted.
type SectionResult struct {
	DocFile      string  `json:"doc_file"`
	DocTitle     string  `json:"doc_title"`
	SectionLabel string  `json:"section_label"`
	Page         int     `json:"page"`
	Score        float64 `json:"score"`
	// ViewerURL is a deep link into the PDF viewer at Page. Attached after
	// scoring by whoever presents the result; empty until then.
	ViewerURL string `json:"viewer_url,omitempty"`
}

// ResolveResult is the outcome of a style + year lookup through the
// frameworks table.
type ResolveResult struct {
	DocFile      string `json:"doc_file"`
	SectionLabel string `json:"section_label"`
	Page         int    `json:"page"`
	Style        string `json:"style"`
	Period       string `json:"period,omitempty"`
	ViewerURL    string `json:"viewer_url,omitempty"`
}
