// Package mapper matches extracted specification tuples onto canonical
// template fields. The algorithm is deterministic and fully local: no
// oracle call, no shared state, stable under input order.
package mapper

import (
	"log/slog"
	"strings"

	"github.com/glasslab/rfqspec/model"
)

const (
	// DefaultPartialFactor scales extraction confidence for substring
	// matches. Carried over from the source tool; configurable, not a
	// hard invariant.
	DefaultPartialFactor = 0.9
	// DefaultThreshold is the minimum confidence a tentative mapping
	// must strictly exceed to survive.
	DefaultThreshold = 0.3
)

// Mapper holds the tunable matching constants.
type Mapper struct {
	PartialFactor float64
	Threshold     float64
}

// New returns a Mapper with the default constants.
func New() *Mapper {
	return &Mapper{PartialFactor: DefaultPartialFactor, Threshold: DefaultThreshold}
}

// Map matches each extracted spec to its best template field and then
// deduplicates by field, keeping the strongest mapping per row.
//
// An exact name match (case-insensitive, trimmed) wins with confidence
// 1.0 and stops the scan; otherwise the best substring match scores
// extraction confidence times PartialFactor. Fields are never excluded
// because another spec already targets them: multiple documents may
// report the same specification, and the better one wins in dedup.
func (m *Mapper) Map(specs []*model.ExtractedSpec, fields []*model.TemplateField) []*model.MappingResult {
	var tentative []*model.MappingResult

	for _, spec := range specs {
		specName := normalize(spec.SpecName)

		var best *model.TemplateField
		var bestConf float64

		for _, field := range fields {
			fieldName := normalize(field.SpecName)

			if specName == fieldName {
				best = field
				bestConf = 1.0
				break
			}

			if strings.Contains(fieldName, specName) || strings.Contains(specName, fieldName) {
				if conf := spec.Confidence * m.PartialFactor; conf > bestConf {
					best = field
					bestConf = conf
				}
			}
		}

		if best != nil && bestConf > m.Threshold {
			tentative = append(tentative, &model.MappingResult{
				Field:           best,
				Spec:            spec,
				MatchConfidence: bestConf,
			})
		}
	}

	// Dedup by template row: strictly greater confidence replaces,
	// ties keep the first seen. Output order is first-seen per row.
	bestByRow := make(map[int]*model.MappingResult)
	var rowOrder []int
	for _, t := range tentative {
		row := t.Field.Row
		cur, ok := bestByRow[row]
		if !ok {
			bestByRow[row] = t
			rowOrder = append(rowOrder, row)
			continue
		}
		if t.MatchConfidence > cur.MatchConfidence {
			bestByRow[row] = t
		}
	}

	result := make([]*model.MappingResult, 0, len(rowOrder))
	for _, row := range rowOrder {
		result = append(result, bestByRow[row])
	}

	slog.Info("mapped specs to template",
		"mapped", len(result), "extracted", len(specs))
	return result
}

// Unmatched returns the specs no surviving mapping accounts for. A spec
// counts as matched when any mapping's underlying spec shares its name
// case-insensitively, by name rather than object identity, since the same name
// may arrive from several documents.
func (m *Mapper) Unmatched(specs []*model.ExtractedSpec, mappings []*model.MappingResult) []*model.ExtractedSpec {
	mapped := make(map[string]bool, len(mappings))
	for _, mr := range mappings {
		mapped[strings.ToLower(mr.Spec.SpecName)] = true
	}

	var out []*model.ExtractedSpec
	for _, s := range specs {
		if !mapped[strings.ToLower(s.SpecName)] {
			out = append(out, s)
		}
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
