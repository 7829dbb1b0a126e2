package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/glasslab/rfqspec/model"
)

// PDFParser extracts per-page plain text from PDF files. The library has
// no table geometry model, so Tables stays empty for PDFs; tabular content
// still reaches extraction through the page text.
type PDFParser struct{}

func (p *PDFParser) SupportedFormats() []string { return []string{"pdf"} }

func (p *PDFParser) Parse(ctx context.Context, path string) (*model.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	doc := &model.Document{
		Path: path,
		Name: filepath.Base(path),
		Type: "pdf",
	}

	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}

		doc.Pages = append(doc.Pages, &model.Page{
			Number: i,
			Label:  fmt.Sprintf("Page %d", i),
			Text:   strings.TrimSpace(text),
		})
	}

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no text found in PDF")
	}
	return doc, nil
}
