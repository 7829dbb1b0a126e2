package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/glasslab/rfqspec/llm"
	"github.com/glasslab/rfqspec/model"
)

// maxExtractPageChars caps the page text sent with an extraction prompt.
const maxExtractPageChars = 12000

// originalLookupNote marks references whose source-language snippet could
// not be recovered by verbatim containment.
const originalLookupNote = "[see original document for source text]"

// itemSchema validates a single extraction tuple reported by the oracle.
// Items failing validation are dropped individually; the rest of the page
// result survives.
const itemSchema = `{
  "type": "object",
  "properties": {
    "spec_name": {"type": "string", "minLength": 1},
    "value": {"type": "string"},
    "unit": {"type": "string"},
    "condition": {"type": "string"},
    "confidence": {"type": "number", "minimum": 0.0, "maximum": 1.0},
    "source_text": {"type": "string"}
  },
  "required": ["spec_name", "value"]
}`

// Extractor asks the oracle for specification tuples page by page.
type Extractor struct {
	oracle llm.Provider
	schema *jsonschema.Schema
}

// NewExtractor creates a spec extraction service.
func NewExtractor(oracle llm.Provider) *Extractor {
	return &Extractor{
		oracle: oracle,
		schema: jsonschema.MustCompileString("spec_item.json", itemSchema),
	}
}

// ExtractPage extracts zero or more specs from one page. Blank pages are
// a no-op without an oracle call; a malformed response yields an empty
// result, never an error, so one bad page cannot abort the document.
func (e *Extractor) ExtractPage(ctx context.Context, doc *model.Document, page *model.Page, fields []*model.TemplateField) []*model.ExtractedSpec {
	if strings.TrimSpace(page.Text) == "" {
		return nil
	}

	resp, err := e.oracle.Generate(ctx, extractionPrompt(page.Text, fields))
	if err != nil {
		slog.Error("spec extraction failed",
			"file", doc.Name, "page", page.Label, "error", err)
		return nil
	}

	var items []any
	if err := json.Unmarshal([]byte(llm.StripFences(resp)), &items); err != nil {
		slog.Error("unparsable extraction response",
			"file", doc.Name, "page", page.Label, "error", err)
		return nil
	}

	specs := make([]*model.ExtractedSpec, 0, len(items))
	for _, item := range items {
		if err := e.schema.Validate(item); err != nil {
			slog.Warn("dropping invalid extraction item",
				"file", doc.Name, "page", page.Label, "error", err)
			continue
		}
		m := item.(map[string]any)

		snippet := getString(m, "source_text")
		ref := &model.SpecReference{
			SourceFile:     doc.Name,
			PageLabel:      page.Label,
			OriginalText:   snippet,
			TranslatedText: snippet,
			Confidence:     getFloat(m, "confidence"),
		}
		if page.OriginalText != "" && page.OriginalText != page.Text {
			ref.OriginalText = originalSnippet(page.OriginalText, snippet)
		}

		specs = append(specs, &model.ExtractedSpec{
			SpecName:   getString(m, "spec_name"),
			Value:      getString(m, "value"),
			Unit:       getString(m, "unit"),
			Condition:  getString(m, "condition"),
			Confidence: getFloat(m, "confidence"),
			Reference:  ref,
		})
	}

	slog.Info("extracted specs", "file", doc.Name, "page", page.Label, "count", len(specs))
	return specs
}

// ExtractDocument concatenates per-page results in page order.
func (e *Extractor) ExtractDocument(ctx context.Context, doc *model.Document, fields []*model.TemplateField) []*model.ExtractedSpec {
	var all []*model.ExtractedSpec
	for _, page := range doc.Pages {
		all = append(all, e.ExtractPage(ctx, doc, page, fields)...)
	}
	slog.Info("document extraction complete", "file", doc.Name, "specs", len(all))
	return all
}

// originalSnippet tries to recover the source-language text behind a
// translated snippet. Verbatim containment is the only check: a reworded
// translation falls back to a manual-lookup note.
func originalSnippet(originalText, translatedSnippet string) string {
	if translatedSnippet != "" && strings.Contains(originalText, translatedSnippet) {
		return translatedSnippet
	}
	return originalLookupNote
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getFloat(m map[string]any, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

func extractionPrompt(pageText string, fields []*model.TemplateField) string {
	var names strings.Builder
	for _, f := range fields {
		names.WriteString("  - " + f.SpecName + "\n")
	}

	return fmt.Sprintf(`You are an automotive display and cover glass specification analyst.
You must extract specification values from the following document text.

TARGET SPECIFICATIONS (extract values for these items):
%s
IMPORTANT RULES:
1. Extract ONLY specs that match or closely relate to the target specifications above.
2. Different manufacturers may use different terminology for the same specification.
   Map them correctly. Examples:
   - "Leuchtdichte" (DE) = "Luminosité" (FR) = "Luminance" = "Brightness"
   - "Kontrastverhältnis" = "Rapport de contraste" = "Contrast Ratio"
   - "Oberflächenhärte" = "Dureté de surface" = "Surface hardness"
   - "Glasdicke" = "Épaisseur du verre" = "Glass thickness" = "Thickness & tolerance"
   - "Druckspannung" = "Contrainte de compression" = "Compressive Stress"
   - "Transmission" = "Transmittance" = "Cover Glass Transmittance"
   - "Blendschutz" = "Anti-éblouissement" = "Anti-Glare"
   - "Entspiegelung" = "Antireflet" = "Anti-Reflection"
   - "Kontaktwinkel" = "Angle de contact" = "Water Contact Angle"
3. Preserve exact numeric values and units from the source text.
4. Include the EXACT source text where each spec was found.
5. Assign a confidence score (0.0 to 1.0) based on match certainty.

DOCUMENT TEXT:
%s

Respond with ONLY a JSON array (no markdown, no code blocks). Each element:
{
  "spec_name": "exact name from TARGET SPECIFICATIONS list",
  "value": "extracted value with units",
  "unit": "measurement unit",
  "condition": "test condition if any",
  "confidence": 0.95,
  "source_text": "exact original text snippet where this was found"
}

If no matching specs are found, return an empty array: []`, names.String(), truncate(pageText, maxExtractPageChars))
}
