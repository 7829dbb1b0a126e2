// Package analyzer holds the oracle-dependent pipeline stages: the
// relevance filter and the spec extraction service. Both build their own
// prompts and parse the raw text the oracle returns; a failed
// or unparsable call degrades to a documented default instead of
// propagating into the batch loop.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/glasslab/rfqspec/llm"
	"github.com/glasslab/rfqspec/model"
)

const (
	// maxFilterPages is how many leading pages the relevance judgment samples.
	maxFilterPages = 5
	// maxFilterPageChars caps each sampled page's contribution.
	maxFilterPageChars = 2000
	// maxFilterSampleChars caps the whole sample sent to the oracle.
	maxFilterSampleChars = 8000
	// minFilterSampleChars below which a document is rejected outright.
	minFilterSampleChars = 50
)

// Filter decides whether a document is in scope: a cheap keyword
// prefilter, then an oracle judgment for documents that pass it.
type Filter struct {
	oracle   llm.Provider
	keywords []string
}

// NewFilter creates a relevance filter. An empty keyword list makes the
// prefilter accept everything (keyword filtering is opt-in).
func NewFilter(oracle llm.Provider, keywords []string) *Filter {
	return &Filter{oracle: oracle, keywords: keywords}
}

// IsRelevant returns the relevance verdict and a human-readable reason.
// Oracle failure fails open: the document already matched keywords, so
// dropping it would silently lose vendor data.
func (f *Filter) IsRelevant(ctx context.Context, doc *model.Document) (bool, string) {
	if !f.keywordMatch(doc) {
		reason := "no display-related keywords found in document"
		slog.Info("filtered out by keywords", "file", doc.Name)
		return false, reason
	}

	sample := f.sampleText(doc)
	if len(strings.TrimSpace(sample)) < minFilterSampleChars {
		return false, "document has insufficient text content"
	}

	resp, err := f.oracle.Generate(ctx, relevancePrompt(sample))
	if err != nil {
		slog.Warn("relevance judgment failed, keeping document",
			"file", doc.Name, "error", err)
		return true, "keyword match found (oracle judgment failed)"
	}

	var verdict struct {
		IsRelevant bool    `json:"is_relevant"`
		Reason     string  `json:"reason"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(llm.StripFences(resp)), &verdict); err != nil {
		slog.Warn("unparsable relevance verdict, keeping document",
			"file", doc.Name, "error", err)
		return true, "keyword match found (oracle judgment failed)"
	}

	slog.Info("document relevance",
		"file", doc.Name, "relevant", verdict.IsRelevant,
		"confidence", verdict.Confidence, "reason", verdict.Reason)
	return verdict.IsRelevant, verdict.Reason
}

// keywordMatch reports whether any configured keyword appears in the
// document text, case-insensitively. No keywords means accept all.
func (f *Filter) keywordMatch(doc *model.Document) bool {
	if len(f.keywords) == 0 {
		return true
	}
	all := strings.ToLower(doc.AllText())
	for _, kw := range f.keywords {
		if strings.Contains(all, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (f *Filter) sampleText(doc *model.Document) string {
	var b strings.Builder
	for i, page := range doc.Pages {
		if i >= maxFilterPages {
			break
		}
		b.WriteString(fmt.Sprintf("\n--- %s ---\n%s\n", page.Label, truncate(page.Text, maxFilterPageChars)))
	}
	return truncate(b.String(), maxFilterSampleChars)
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func relevancePrompt(sample string) string {
	return fmt.Sprintf(`You are an automotive display specification analyst.

Analyze the following document content and determine if it contains specifications
related to automotive display or cover glass products.

Look for any of these topics:
- Display specifications (size, resolution, luminance, contrast, etc.)
- Cover glass specifications (thickness, hardness, transmittance, etc.)
- Optical properties (reflectance, haze, color, anti-glare, anti-reflection, etc.)
- Mechanical properties (dimensions, stress, surface profile, etc.)
- Environmental conditions (temperature, humidity, vibration, etc.)
- Touch panel specifications
- Electrical specifications (voltage, power, interface, etc.)

DOCUMENT CONTENT:
%s

Respond with EXACTLY this JSON format (no markdown, no code blocks):
{"is_relevant": true/false, "reason": "brief explanation", "confidence": 0.0-1.0}`, sample)
}
