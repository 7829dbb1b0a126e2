package model

// TemplateField is one row of the canonical specification template.
// Read-only after template load.
type TemplateField struct {
	Row         int    `json:"row"` // 1-based row in the template sheet
	ColSpecName int    `json:"col_spec_name"`
	ColOEMValue int    `json:"col_oem_value"`
	ColLGEValue int    `json:"col_lge_value"`
	SpecName    string `json:"spec_name"`
	OEMValue    string `json:"oem_value,omitempty"` // pre-existing OEM value
	LGEValue    string `json:"lge_value,omitempty"` // pre-existing LGE value
}

// MappingResult pairs one template field with one extracted spec. The
// mapper guarantees at most one result per template field; the field and
// spec are referenced, not owned.
type MappingResult struct {
	Field           *TemplateField `json:"field"`
	Spec            *ExtractedSpec `json:"spec"`
	MatchConfidence float64        `json:"match_confidence"`
}
