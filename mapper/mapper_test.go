package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasslab/rfqspec/model"
)

func field(row int, name string) *model.TemplateField {
	return &model.TemplateField{Row: row, ColSpecName: 1, ColOEMValue: 2, ColLGEValue: 3, SpecName: name}
}

func spec(name, value string, confidence float64) *model.ExtractedSpec {
	return &model.ExtractedSpec{SpecName: name, Value: value, Confidence: confidence}
}

func TestExactMatchPrecedence(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{
		field(2, "Cover Glass Contrast"), // partial candidate
		field(3, "Contrast Ratio"),       // exact target
	}

	// High extraction confidence cannot beat an exact name match.
	mappings := m.Map([]*model.ExtractedSpec{spec("  contrast ratio ", "1500:1", 0.99)}, fields)

	require.Len(t, mappings, 1)
	assert.Equal(t, 3, mappings[0].Field.Row)
	assert.Equal(t, 1.0, mappings[0].MatchConfidence)
}

func TestExactMatchFirstInFieldOrder(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{
		field(2, "Luminance"),
		field(5, "luminance"), // duplicate template row, also exact
	}

	mappings := m.Map([]*model.ExtractedSpec{spec("Luminance", "800", 0.9)}, fields)

	require.Len(t, mappings, 1)
	assert.Equal(t, 2, mappings[0].Field.Row, "first exact match in field order wins")
}

func TestPartialMatchConfidence(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{field(2, "Cover Glass Transmittance")}

	mappings := m.Map([]*model.ExtractedSpec{spec("Transmittance", "91%", 0.8)}, fields)

	require.Len(t, mappings, 1)
	assert.InDelta(t, 0.8*0.9, mappings[0].MatchConfidence, 1e-9)
}

func TestAtMostOneMappingPerField(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{field(4, "Glass Thickness")}

	// Three specs from different documents all partially match the one field.
	specs := []*model.ExtractedSpec{
		spec("Thickness", "1.1 mm", 0.7),
		spec("Glass Thickness & Tolerance", "1.1 ±0.1 mm", 0.95),
		spec("Thickness", "1.0 mm", 0.8),
	}

	mappings := m.Map(specs, fields)

	require.Len(t, mappings, 1, "one template field gets exactly one mapping")
	assert.Equal(t, "1.1 ±0.1 mm", mappings[0].Spec.Value, "the highest-confidence candidate wins")
	assert.InDelta(t, 0.95*0.9, mappings[0].MatchConfidence, 1e-9)
}

func TestDedupTieKeepsFirstSeen(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{field(2, "Haze Measurement")}

	specs := []*model.ExtractedSpec{
		spec("Haze", "2%", 0.8),
		spec("Haze", "3%", 0.8), // identical confidence, later in input
	}

	mappings := m.Map(specs, fields)

	require.Len(t, mappings, 1)
	assert.Equal(t, "2%", mappings[0].Spec.Value, "ties must be stable under input order")
}

func TestThresholdExclusion(t *testing.T) {
	m := &Mapper{PartialFactor: 1.0, Threshold: 0.3}
	fields := []*model.TemplateField{field(2, "Water Contact Angle Spec")}

	atThreshold := m.Map([]*model.ExtractedSpec{spec("Water Contact Angle", "105°", 0.3)}, fields)
	assert.Empty(t, atThreshold, "confidence exactly at the threshold must not map")

	above := m.Map([]*model.ExtractedSpec{spec("Water Contact Angle", "105°", 0.31)}, fields)
	assert.Len(t, above, 1, "confidence strictly above the threshold must map")
}

func TestNoMatchLeavesSpecUnmapped(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{field(2, "Luminance")}

	specs := []*model.ExtractedSpec{
		spec("Luminance", "800 cd/m²", 0.9),
		spec("Battery Capacity", "75 kWh", 0.99),
	}

	mappings := m.Map(specs, fields)
	require.Len(t, mappings, 1)

	unmatched := m.Unmatched(specs, mappings)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "Battery Capacity", unmatched[0].SpecName)
}

func TestUnmatchedByNameNotIdentity(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{field(2, "Contrast Ratio")}

	// Two instances of the same spec name from different documents: only
	// one survives dedup, but both count as matched because matching is
	// by case-insensitive name.
	a := spec("Contrast Ratio", "1500:1", 0.9)
	b := spec("contrast ratio", "1200:1", 0.6)
	specs := []*model.ExtractedSpec{a, b}

	mappings := m.Map(specs, fields)
	require.Len(t, mappings, 1)

	unmatched := m.Unmatched(specs, mappings)
	assert.Empty(t, unmatched, "all instances of a mapped name are matched")
}

func TestUnmatchedCompleteness(t *testing.T) {
	m := New()
	fields := []*model.TemplateField{
		field(2, "Luminance"),
		field(3, "Contrast Ratio"),
	}
	specs := []*model.ExtractedSpec{
		spec("Luminance", "800", 0.9),
		spec("Surface Hardness", "9H", 0.95),
		spec("Contrast Ratio", "1500:1", 0.85),
		spec("Operating Voltage", "12V", 0.8),
	}

	mappings := m.Map(specs, fields)
	unmatched := m.Unmatched(specs, mappings)

	mappedNames := make(map[string]bool)
	for _, mr := range mappings {
		mappedNames[mr.Spec.SpecName] = true
	}
	for _, s := range unmatched {
		assert.False(t, mappedNames[s.SpecName], "unmatched spec %q also appears in mappings", s.SpecName)
	}
	assert.Len(t, unmatched, len(specs)-len(mappings))
}

func TestMapEmptyInputs(t *testing.T) {
	m := New()
	assert.Empty(t, m.Map(nil, []*model.TemplateField{field(2, "Luminance")}))
	assert.Empty(t, m.Map([]*model.ExtractedSpec{spec("Luminance", "800", 0.9)}, nil))
	assert.Empty(t, m.Unmatched(nil, nil))
}
