// Package translate normalizes document text to English via the oracle,
// with a content-addressed cache so identical inputs are translated at
// most once regardless of which document or run they came from.
package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/glasslab/rfqspec/language"
	"github.com/glasslab/rfqspec/llm"
	"github.com/glasslab/rfqspec/model"
	"github.com/glasslab/rfqspec/store"
)

// originalPrefixLen is how much of the source text is kept alongside a
// persisted cache entry, for manual inspection only.
const originalPrefixLen = 200

// PersistentCache is the durable tier behind the in-memory cache.
// *store.Store satisfies it; tests substitute their own.
type PersistentCache interface {
	GetTranslation(ctx context.Context, contentHash string) (string, bool, error)
	PutTranslation(ctx context.Context, t store.Translation) error
}

// Translator translates text to English through the oracle. Failed oracle
// calls fail soft: the original text comes back unchanged and downstream
// stages tolerate foreign-language text failing extraction rather than
// crashing the batch.
type Translator struct {
	oracle llm.Provider
	cache  PersistentCache // optional, may be nil

	mu  sync.RWMutex
	mem map[string]string // content hash → translated text
}

// New creates a Translator. cache may be nil, in which case only the
// in-memory tier is used.
func New(oracle llm.Provider, cache PersistentCache) *Translator {
	return &Translator{
		oracle: oracle,
		cache:  cache,
		mem:    make(map[string]string),
	}
}

// CacheKey returns the content-addressed cache key for a text: the hex
// SHA-256 of the exact input. Identical inputs hit the same entry no
// matter where they originated.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Translate returns the English translation of text. Blank input returns
// unchanged without touching the cache or the oracle; oracle failure
// returns the original text.
func (t *Translator) Translate(ctx context.Context, text, sourceLang string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	key := CacheKey(text)

	t.mu.RLock()
	cached, ok := t.mem[key]
	t.mu.RUnlock()
	if ok {
		return cached
	}

	if t.cache != nil {
		translated, ok, err := t.cache.GetTranslation(ctx, key)
		if err != nil {
			slog.Warn("translate: cache lookup failed", "error", err)
		} else if ok {
			t.mu.Lock()
			t.mem[key] = translated
			t.mu.Unlock()
			return translated
		}
	}

	translated, err := t.oracle.Generate(ctx, translationPrompt(text, sourceLang))
	if err != nil {
		slog.Error("translate: oracle call failed, keeping original text",
			"source_lang", sourceLang, "error", err)
		return text
	}
	translated = strings.TrimSpace(translated)

	t.mu.Lock()
	t.mem[key] = translated
	t.mu.Unlock()

	if t.cache != nil {
		prefix := text
		if len(prefix) > originalPrefixLen {
			prefix = prefix[:originalPrefixLen]
		}
		if err := t.cache.PutTranslation(ctx, store.Translation{
			ContentHash:    key,
			SourceLang:     sourceLang,
			OriginalPrefix: prefix,
			TranslatedText: translated,
		}); err != nil {
			slog.Warn("translate: cache write failed", "error", err)
		}
	}

	return translated
}

// TranslatePage detects the page language and translates when needed.
// After the call, OriginalText always holds the pre-translation text and
// Text holds the form used for extraction.
func (t *Translator) TranslatePage(ctx context.Context, page *model.Page) {
	lang := language.Detect(page.Text)
	page.Language = lang

	if language.NeedsTranslation(lang, language.Target) {
		slog.Info("translating page",
			"label", page.Label, "language", language.Name(lang))
		page.OriginalText = page.Text
		page.TextTranslated = t.Translate(ctx, page.Text, lang)
		page.Text = page.TextTranslated
	} else {
		page.OriginalText = page.Text
		page.TextTranslated = page.Text
	}
}

// TranslateDocument processes every page of a document in order.
func (t *Translator) TranslateDocument(ctx context.Context, doc *model.Document) {
	slog.Info("processing translations", "file", doc.Name)
	for _, page := range doc.Pages {
		t.TranslatePage(ctx, page)
	}
}

func translationPrompt(text, sourceLang string) string {
	return fmt.Sprintf(`You are a technical document translator specializing in automotive display specifications.

Translate the following %s text to English.

IMPORTANT RULES:
- Preserve all numeric values, units, and technical terms exactly
- Maintain the original formatting and structure
- Keep measurement units unchanged (mm, cd/m², %%, °C, MPa, etc.)
- Translate technical terms accurately in the automotive display context
- If a term is already in English, keep it as is
- Do NOT add explanations or notes, just translate

TEXT TO TRANSLATE:
%s

ENGLISH TRANSLATION:`, language.Name(sourceLang), text)
}
