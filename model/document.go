package model

// Page is a single page, slide, or sheet from a parsed document.
//
// Text always holds the form used for extraction (English after
// translation). When the page was translated, OriginalText holds the
// pre-translation text; otherwise it equals Text.
type Page struct {
	Number         int          `json:"number"`           // 1-based page/slide/sheet index
	Label          string       `json:"label"`            // e.g. "Page 3", "Slide 5", `Sheet "Optical"`
	Text           string       `json:"text"`             // current text, translated if needed
	Tables         [][][]string `json:"tables,omitempty"` // raw tables, each a 2-D array of cell strings
	Language       string       `json:"language"`         // detected language code (en, de, fr, ...)
	TextTranslated string       `json:"text_translated"`  // English translation, empty until translated
	OriginalText   string       `json:"original_text"`    // text before translation
}

// Document is a fully decoded input file with its ordered pages.
//
// The relevance flag and reason are set exactly once by the relevance
// filter; the document is immutable afterwards.
type Document struct {
	Path            string  `json:"path"`      // full path to the source file
	Name            string  `json:"name"`      // file name only
	Type            string  `json:"type"`      // "pdf", "pptx", "xlsx"
	Pages           []*Page `json:"pages"`
	Relevant        bool    `json:"relevant"`
	RelevanceReason string  `json:"relevance_reason"`
}

// AllText returns the concatenated text of every page, used by the
// keyword prefilter.
func (d *Document) AllText() string {
	var n int
	for _, p := range d.Pages {
		n += len(p.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, p := range d.Pages {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, p.Text...)
	}
	return string(buf)
}
