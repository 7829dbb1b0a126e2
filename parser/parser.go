// Package parser decodes RFQ input files (PDF, slide decks, spreadsheets)
// into documents of per-page text and raw tables. Decoding failures are
// per-file; a bad document never aborts the folder-wide batch.
package parser

import (
	"context"

	"github.com/glasslab/rfqspec/model"
)

// Parser decodes a specific document format into a Document.
type Parser interface {
	Parse(ctx context.Context, path string) (*model.Document, error)
	SupportedFormats() []string
}
