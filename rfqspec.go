// Package rfqspec extracts display and cover-glass specification values
// from multilingual vendor RFQ documents and maps them onto a canonical
// Excel spec template.
//
// A run scans an input folder for PDF, PPTX and XLSX files, filters out
// documents that are not spec sheets, translates non-English pages,
// asks the configured LLM to pull out spec name/value tuples, matches
// them against the template's spec rows and writes an annotated result
// workbook with per-value provenance.
package rfqspec

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glasslab/rfqspec/analyzer"
	"github.com/glasslab/rfqspec/exporter"
	"github.com/glasslab/rfqspec/llm"
	"github.com/glasslab/rfqspec/mapper"
	"github.com/glasslab/rfqspec/model"
	"github.com/glasslab/rfqspec/parser"
	"github.com/glasslab/rfqspec/store"
	"github.com/glasslab/rfqspec/template"
	"github.com/glasslab/rfqspec/translate"
)

// Analyzer runs the full extraction pipeline.
type Analyzer struct {
	cfg        Config
	registry   *parser.Registry
	filter     *analyzer.Filter
	extractor  *analyzer.Extractor
	translator *translate.Translator
	mapper     *mapper.Mapper
	writer     *exporter.Writer
	store      *store.Store
}

// Summary reports what a run produced.
type Summary struct {
	DocumentsFound    int
	DocumentsRelevant int
	SpecsExtracted    int
	SpecsMapped       int
	SpecsUnmatched    int
	Skipped           []string
	OutputPath        string
}

// New creates an Analyzer from the given config. The config is
// validated up front; a broken setup fails here, not mid-run.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	oracle, err := llm.NewProvider(cfg.Oracle)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:       cfg,
		registry:  parser.NewRegistry(),
		filter:    analyzer.NewFilter(oracle, cfg.RelevanceKeywords),
		extractor: analyzer.NewExtractor(oracle),
		mapper: &mapper.Mapper{
			PartialFactor: cfg.MatchPartialFactor,
			Threshold:     cfg.MatchThreshold,
		},
		writer: exporter.NewWriter(cfg.TemplatePath, cfg.OutputFolder),
	}

	var cache translate.PersistentCache
	if !cfg.DisableCache {
		s, err := store.New(cfg.resolveCachePath())
		if err != nil {
			return nil, fmt.Errorf("opening translation cache: %w", err)
		}
		a.store = s
		cache = s
	}
	a.translator = translate.New(oracle, cache)

	return a, nil
}

// Close releases the translation cache. Safe to call once after Run.
func (a *Analyzer) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Run executes the pipeline end to end and returns a Summary.
// Per-document failures are logged and skipped; only startup problems
// and an empty input folder abort the run.
func (a *Analyzer) Run(ctx context.Context) (*Summary, error) {
	fields, err := template.Read(a.cfg.TemplatePath)
	if err != nil {
		return nil, err
	}
	slog.Info("template loaded", "path", a.cfg.TemplatePath, "fields", len(fields))

	docs, err := a.registry.ParseFolder(ctx, a.cfg.InputFolder)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, a.cfg.InputFolder)
	}

	summary := &Summary{DocumentsFound: len(docs)}

	var specs []*model.ExtractedSpec
	for _, doc := range docs {
		relevant, reason := a.filter.IsRelevant(ctx, doc)
		doc.Relevant = relevant
		doc.RelevanceReason = reason
		if !relevant {
			slog.Info("document skipped", "name", doc.Name, "reason", reason)
			summary.Skipped = append(summary.Skipped, doc.Name)
			continue
		}
		summary.DocumentsRelevant++

		a.translator.TranslateDocument(ctx, doc)

		extracted := a.extractor.ExtractDocument(ctx, doc, fields)
		slog.Info("document analyzed", "name", doc.Name, "specs", len(extracted))
		specs = append(specs, extracted...)
	}

	if summary.DocumentsRelevant == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRelevantDocuments, a.cfg.InputFolder)
	}
	summary.SpecsExtracted = len(specs)

	mappings := a.mapper.Map(specs, fields)
	unmatched := a.mapper.Unmatched(specs, mappings)
	summary.SpecsMapped = len(mappings)
	summary.SpecsUnmatched = len(unmatched)

	outputPath, err := a.writer.Write(mappings, unmatched, a.cfg.OutputFilename)
	if err != nil {
		return nil, err
	}
	summary.OutputPath = outputPath

	slog.Info("run complete",
		"documents", summary.DocumentsFound,
		"relevant", summary.DocumentsRelevant,
		"extracted", summary.SpecsExtracted,
		"mapped", summary.SpecsMapped,
		"unmatched", summary.SpecsUnmatched)
	return summary, nil
}
