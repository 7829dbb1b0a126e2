// Package template reads the canonical specification template: a fixed
// three-column sheet (spec name, OEM requirement, LGE requirement) whose
// rows define the target vocabulary for field mapping.
package template

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/glasslab/rfqspec/model"
)

// Column positions in the template sheet (1-based).
const (
	ColSpecName = 1
	ColOEMValue = 2
	ColLGEValue = 3
)

// headerLabels are first-row values that mark a header row to discard.
var headerLabels = map[string]bool{
	"specification type": true,
	"spec type":          true,
	"spec item":          true,
	"item":               true,
	"specification":      true,
}

// Read loads the template fields from the first sheet, top to bottom.
// Rows with an empty name column are skipped; 1-based row numbers are
// preserved for later write-back. A missing or unreadable template is a
// startup-fatal error for the pipeline.
func Read(path string) ([]*model.TemplateField, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("template has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading template rows: %w", err)
	}

	var fields []*model.TemplateField
	for i, row := range rows {
		name := strings.TrimSpace(cell(row, ColSpecName))
		if name == "" {
			continue
		}
		fields = append(fields, &model.TemplateField{
			Row:         i + 1,
			ColSpecName: ColSpecName,
			ColOEMValue: ColOEMValue,
			ColLGEValue: ColLGEValue,
			SpecName:    name,
			OEMValue:    strings.TrimSpace(cell(row, ColOEMValue)),
			LGEValue:    strings.TrimSpace(cell(row, ColLGEValue)),
		})
	}

	// The first data row is a header if its name matches a known label.
	if len(fields) > 0 && headerLabels[strings.ToLower(fields[0].SpecName)] {
		fields = fields[1:]
	}

	slog.Info("read template", "path", path, "fields", len(fields))
	return fields, nil
}

// cell returns the 1-based column value of a row, or "" when the row is
// too short (excelize trims trailing empty cells).
func cell(row []string, col int) string {
	if col-1 < len(row) {
		return row[col-1]
	}
	return ""
}
