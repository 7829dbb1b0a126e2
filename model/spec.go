package model

// SpecReference tracks where an extracted value came from. A reference
// exists only attached to its ExtractedSpec and is never shared.
type SpecReference struct {
	SourceFile     string  `json:"source_file"`
	PageLabel      string  `json:"page_label"`
	OriginalText   string  `json:"original_text"`   // snippet in the source language
	TranslatedText string  `json:"translated_text"` // snippet as reported by the oracle
	Confidence     float64 `json:"confidence"`      // extraction confidence, 0.0 to 1.0
}

// ExtractedSpec is a single specification value reported by the oracle.
// Value stays a string so formatting like "±0.2" or "1500:1" survives.
type ExtractedSpec struct {
	SpecName   string         `json:"spec_name"`
	Value      string         `json:"value"`
	Unit       string         `json:"unit,omitempty"`
	Condition  string         `json:"condition,omitempty"` // test condition, if any
	Confidence float64        `json:"confidence"`
	Reference  *SpecReference `json:"reference,omitempty"`
}
