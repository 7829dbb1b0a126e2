package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/glasslab/rfqspec/llm"
	"github.com/glasslab/rfqspec/model"
)

func docWithText(text string) *model.Document {
	return &model.Document{
		Path: "/in/doc.pdf",
		Name: "doc.pdf",
		Type: "pdf",
		Pages: []*model.Page{
			{Number: 1, Label: "Page 1", Text: text},
		},
	}
}

const relevantText = `Display specification for the center stack unit.
Luminance: 800 cd/m2, Contrast Ratio 1500:1, operating temperature -40 to +85 C.`

func TestKeywordPrefilterRejects(t *testing.T) {
	oracle := &llm.Stub{Responses: []string{`{"is_relevant": true, "reason": "x", "confidence": 0.9}`}}
	f := NewFilter(oracle, []string{"display", "cover glass"})

	ok, reason := f.IsRelevant(context.Background(), docWithText(
		"Quarterly financial report with revenue figures and headcount projections for the sales organization."))

	assert.False(t, ok)
	assert.Contains(t, reason, "keywords")
	assert.Equal(t, 0, oracle.Calls(), "oracle must not be reached when keywords reject")
}

func TestKeywordPrefilterCaseInsensitive(t *testing.T) {
	oracle := &llm.Stub{Responses: []string{`{"is_relevant": true, "reason": "display specs", "confidence": 0.9}`}}
	f := NewFilter(oracle, []string{"DISPLAY"})

	ok, _ := f.IsRelevant(context.Background(), docWithText(relevantText))

	assert.True(t, ok)
	assert.Equal(t, 1, oracle.Calls())
}

func TestEmptyKeywordsAcceptAll(t *testing.T) {
	oracle := &llm.Stub{Responses: []string{`{"is_relevant": true, "reason": "specs found", "confidence": 0.8}`}}
	f := NewFilter(oracle, nil)

	ok, reason := f.IsRelevant(context.Background(), docWithText(relevantText))

	assert.True(t, ok)
	assert.Equal(t, "specs found", reason)
}

func TestInsufficientTextRejectsWithoutOracle(t *testing.T) {
	oracle := &llm.Stub{Responses: []string{"should not be called"}}
	f := NewFilter(oracle, nil)

	ok, reason := f.IsRelevant(context.Background(), docWithText("tiny"))

	assert.False(t, ok)
	assert.Equal(t, "document has insufficient text content", reason)
	assert.Equal(t, 0, oracle.Calls())
}

func TestOracleRejection(t *testing.T) {
	oracle := &llm.Stub{Responses: []string{`{"is_relevant": false, "reason": "marketing brochure", "confidence": 0.85}`}}
	f := NewFilter(oracle, nil)

	ok, reason := f.IsRelevant(context.Background(), docWithText(relevantText))

	assert.False(t, ok)
	assert.Equal(t, "marketing brochure", reason)
}

func TestOracleFailureFailsOpen(t *testing.T) {
	oracle := &llm.Stub{Err: errors.New("oracle down")}
	f := NewFilter(oracle, []string{"display"})

	ok, reason := f.IsRelevant(context.Background(), docWithText(relevantText))

	assert.True(t, ok, "oracle failure must fail open")
	assert.Contains(t, reason, "oracle judgment failed")
}

func TestUnparsableVerdictFailsOpen(t *testing.T) {
	oracle := &llm.Stub{Responses: []string{"I think this document is probably relevant."}}
	f := NewFilter(oracle, nil)

	ok, reason := f.IsRelevant(context.Background(), docWithText(relevantText))

	assert.True(t, ok)
	assert.Contains(t, reason, "oracle judgment failed")
}

func TestFencedVerdictParses(t *testing.T) {
	oracle := &llm.Stub{Responses: []string{"```json\n{\"is_relevant\": false, \"reason\": \"packaging spec\", \"confidence\": 0.7}\n```"}}
	f := NewFilter(oracle, nil)

	ok, reason := f.IsRelevant(context.Background(), docWithText(relevantText))

	assert.False(t, ok)
	assert.Equal(t, "packaging spec", reason)
}

func TestSampleTextBounded(t *testing.T) {
	doc := &model.Document{Name: "big.pdf"}
	for i := 1; i <= 10; i++ {
		doc.Pages = append(doc.Pages, &model.Page{
			Number: i,
			Label:  "Page 1",
			Text:   strings.Repeat("x", 5000),
		})
	}

	f := NewFilter(nil, nil)
	sample := f.sampleText(doc)

	assert.LessOrEqual(t, len(sample), maxFilterSampleChars)
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{name: "under cap", s: "25°C", n: 10, want: "25°C"},
		{name: "ascii at cap", s: "abcdef", n: 3, want: "abc"},
		{name: "cut on rune boundary", s: "25°C", n: 4, want: "25°"},
		{name: "cut inside rune backs off", s: "25°C", n: 3, want: "25"},
		{name: "cut inside umlaut backs off", s: "Kontrastverhältnis", n: 13, want: "Kontrastverh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.s, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
