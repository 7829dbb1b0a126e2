// Package language identifies the language of extracted document text
// and decides whether translation is required. Detection is trigram-based
// via whatlanggo, which is fully deterministic: the same input always
// yields the same code, so content-addressed caching downstream stays
// stable across runs.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Target is the language every page is normalized to before extraction.
const Target = "en"

// minDetectLen is the minimum trimmed length for reliable detection.
// Anything shorter is assumed to already be in the target language.
const minDetectLen = 20

// langNames maps ISO 639-1 codes to display names used in prompts and logs.
var langNames = map[string]string{
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// Detect returns the ISO 639-1 language code of text. Fails soft: too-short
// input and detection failure both return the target code rather than an
// error, so callers never need a fallback path of their own.
func Detect(text string) string {
	clean := strings.TrimSpace(text)
	if len(clean) < minDetectLen {
		return Target
	}

	info := whatlanggo.Detect(clean)
	code := info.Lang.Iso6391()
	if code == "" {
		return Target
	}
	return code
}

// NeedsTranslation reports whether code differs from the target language.
func NeedsTranslation(code, target string) bool {
	return code != target
}

// Name returns a human-readable name for a language code.
func Name(code string) string {
	if name, ok := langNames[code]; ok {
		return name
	}
	return "Unknown (" + code + ")"
}
