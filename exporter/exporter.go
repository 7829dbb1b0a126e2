// Package exporter writes the pipeline's final mapping data into an
// annotated copy of the Excel template: mapped values land in the OEM
// column with confidence coloring and source comments, and two extra
// sheets carry the full reference table and the unmatched specs.
package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/glasslab/rfqspec/model"
)

const (
	summarySheet   = "Spec Summary"
	referenceSheet = "Reference"
	unmatchedSheet = "Unmatched"

	commentAuthor = "RFQ Analyzer"
)

// Confidence fill colors: green for high, yellow for medium, red for low.
const (
	colorHigh   = "C6EFCE"
	colorMedium = "FFEB9C"
	colorLow    = "FFC7CE"
)

// Writer produces one annotated workbook per pipeline run.
type Writer struct {
	templatePath string
	outputFolder string
}

// NewWriter creates a Writer. The output folder is created on demand.
func NewWriter(templatePath, outputFolder string) *Writer {
	return &Writer{templatePath: templatePath, outputFolder: outputFolder}
}

// Write fills the template with the mapping results and saves the
// workbook. An empty filename gets a timestamped default.
func (w *Writer) Write(mappings []*model.MappingResult, unmatched []*model.ExtractedSpec, filename string) (string, error) {
	if err := os.MkdirAll(w.outputFolder, 0755); err != nil {
		return "", fmt.Errorf("creating output folder: %w", err)
	}
	if filename == "" {
		filename = fmt.Sprintf("RFQ_Spec_Result_%s.xlsx", time.Now().Format("20060102_150405"))
	}
	outputPath := filepath.Join(w.outputFolder, filename)

	f, err := excelize.OpenFile(w.templatePath)
	if err != nil {
		return "", fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("template has no sheets")
	}
	if err := f.SetSheetName(sheets[0], summarySheet); err != nil {
		return "", fmt.Errorf("renaming summary sheet: %w", err)
	}

	if err := w.writeSummary(f, mappings); err != nil {
		return "", err
	}
	if err := w.writeReference(f, mappings); err != nil {
		return "", err
	}
	if err := w.writeUnmatched(f, unmatched); err != nil {
		return "", err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("saving output workbook: %w", err)
	}

	slog.Info("results saved", "path", outputPath,
		"mapped", len(mappings), "unmatched", len(unmatched))
	return outputPath, nil
}

func (w *Writer) writeSummary(f *excelize.File, mappings []*model.MappingResult) error {
	for _, m := range mappings {
		cell, err := excelize.CoordinatesToCellName(m.Field.ColOEMValue, m.Field.Row)
		if err != nil {
			return fmt.Errorf("bad template coordinates: %w", err)
		}

		if err := f.SetCellValue(summarySheet, cell, m.Spec.Value); err != nil {
			return fmt.Errorf("writing spec value: %w", err)
		}

		styleID, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{confidenceColor(m.MatchConfidence)}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("creating confidence style: %w", err)
		}
		if err := f.SetCellStyle(summarySheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("applying confidence style: %w", err)
		}

		if ref := m.Spec.Reference; ref != nil {
			original := ref.OriginalText
			if len(original) > 200 {
				original = original[:200]
			}
			comment := fmt.Sprintf("Source: %s\nLocation: %s\nOriginal: %s\nConfidence: %.0f%%",
				ref.SourceFile, ref.PageLabel, original, ref.Confidence*100)
			if err := f.AddComment(summarySheet, excelize.Comment{
				Cell:   cell,
				Author: commentAuthor,
				Paragraph: []excelize.RichTextRun{
					{Text: comment},
				},
			}); err != nil {
				return fmt.Errorf("adding source comment: %w", err)
			}
		}
	}
	return nil
}

func (w *Writer) writeReference(f *excelize.File, mappings []*model.MappingResult) error {
	if _, err := f.NewSheet(referenceSheet); err != nil {
		return fmt.Errorf("creating reference sheet: %w", err)
	}

	headers := []string{
		"Spec Name", "Extracted Value", "Unit", "Condition",
		"Source File", "Location", "Original Text", "Translated Text", "Confidence",
	}
	if err := writeHeader(f, referenceSheet, headers, "4472C4"); err != nil {
		return err
	}

	for i, m := range mappings {
		ref := m.Spec.Reference
		row := []any{
			m.Spec.SpecName, m.Spec.Value, m.Spec.Unit, m.Spec.Condition,
			refField(ref, func(r *model.SpecReference) string { return r.SourceFile }),
			refField(ref, func(r *model.SpecReference) string { return r.PageLabel }),
			refField(ref, func(r *model.SpecReference) string { return r.OriginalText }),
			refField(ref, func(r *model.SpecReference) string { return r.TranslatedText }),
			fmt.Sprintf("%.0f%%", m.MatchConfidence*100),
		}
		if err := writeRow(f, referenceSheet, i+2, row); err != nil {
			return err
		}
	}

	setColWidths(f, referenceSheet, []float64{25, 20, 10, 20, 30, 15, 50, 50, 12})
	return freezeHeader(f, referenceSheet)
}

func (w *Writer) writeUnmatched(f *excelize.File, unmatched []*model.ExtractedSpec) error {
	if _, err := f.NewSheet(unmatchedSheet); err != nil {
		return fmt.Errorf("creating unmatched sheet: %w", err)
	}

	headers := []string{
		"Spec Name", "Value", "Unit", "Condition",
		"Source File", "Location", "Original Text", "Confidence",
	}
	if err := writeHeader(f, unmatchedSheet, headers, "ED7D31"); err != nil {
		return err
	}

	if len(unmatched) == 0 {
		return f.SetCellValue(unmatchedSheet, "A2", "No unmatched specifications found.")
	}

	for i, s := range unmatched {
		ref := s.Reference
		row := []any{
			s.SpecName, s.Value, s.Unit, s.Condition,
			refField(ref, func(r *model.SpecReference) string { return r.SourceFile }),
			refField(ref, func(r *model.SpecReference) string { return r.PageLabel }),
			refField(ref, func(r *model.SpecReference) string { return r.OriginalText }),
			fmt.Sprintf("%.0f%%", s.Confidence*100),
		}
		if err := writeRow(f, unmatchedSheet, i+2, row); err != nil {
			return err
		}
	}

	setColWidths(f, unmatchedSheet, []float64{25, 20, 10, 20, 30, 15, 50, 12})
	return freezeHeader(f, unmatchedSheet)
}

func confidenceColor(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return colorHigh
	case confidence >= 0.5:
		return colorMedium
	default:
		return colorLow
	}
}

func refField(ref *model.SpecReference, get func(*model.SpecReference) string) string {
	if ref == nil {
		return ""
	}
	return get(ref)
}

func writeHeader(f *excelize.File, sheet string, headers []string, fillColor string) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}
	return nil
}

func setColWidths(f *excelize.File, sheet string, widths []float64) {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		f.SetColWidth(sheet, col, col, w)
	}
}

func freezeHeader(f *excelize.File, sheet string) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
