package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/glasslab/rfqspec/model"
)

// XLSXParser extracts one page per sheet. Each sheet's non-empty rows
// become both a raw table and " | "-joined text lines so the extraction
// prompt sees tabular values in reading order.
type XLSXParser struct{}

func (p *XLSXParser) SupportedFormats() []string { return []string{"xlsx", "xls"} }

func (p *XLSXParser) Parse(ctx context.Context, path string) (*model.Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	doc := &model.Document{
		Path: path,
		Name: filepath.Base(path),
		Type: "xlsx",
	}

	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		var table [][]string
		var textLines []string
		for _, row := range rows {
			if rowEmpty(row) {
				continue
			}
			table = append(table, row)
			var cells []string
			for _, c := range row {
				if strings.TrimSpace(c) != "" {
					cells = append(cells, c)
				}
			}
			textLines = append(textLines, strings.Join(cells, " | "))
		}

		if len(table) == 0 {
			continue
		}

		doc.Pages = append(doc.Pages, &model.Page{
			Number: i + 1,
			Label:  fmt.Sprintf("Sheet %q", sheet),
			Text:   strings.Join(textLines, "\n"),
			Tables: [][][]string{table},
		})
	}

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no data found in XLSX")
	}
	return doc, nil
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
