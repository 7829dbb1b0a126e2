package rfqspec

import "errors"

var (
	// ErrInputFolderNotFound is returned when the input folder does not exist.
	ErrInputFolderNotFound = errors.New("rfqspec: input folder not found")

	// ErrTemplateNotFound is returned when the spec template file does not exist.
	ErrTemplateNotFound = errors.New("rfqspec: template file not found")

	// ErrNoDocuments is returned when the input folder holds no supported files.
	ErrNoDocuments = errors.New("rfqspec: no supported documents found")

	// ErrNoRelevantDocuments is returned when every document was filtered out.
	ErrNoRelevantDocuments = errors.New("rfqspec: no relevant documents found")

	// ErrUnsupportedFormat is returned for unrecognized file formats.
	ErrUnsupportedFormat = errors.New("rfqspec: unsupported document format")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("rfqspec: invalid configuration")
)
