package core

import "sort"

// Schema describes the shape inferred from one evaluation document.
type Schema struct {
	ScoreTypes       map[string]bool
	MetadataFields   map[string]bool
	EvaluationFields map[string]bool
}

// ExtractSchema infers a document's metadata fields, score types, and
// per-entry record fields. Score types are seeded from the declared
// evaluation_criteria keys and unioned with the score keys of the first
// evaluation entry; later entries are not consulted. This is a cheap
// approximation, not a guarantee that later entries share the same keys.
func ExtractSchema(doc *Document) Schema {
	schema := Schema{
		ScoreTypes:       map[string]bool{},
		MetadataFields:   map[string]bool{},
		EvaluationFields: map[string]bool{},
	}

	for key := range doc.Metadata() {
		schema.MetadataFields[key] = true
	}
	for key := range doc.Criteria() {
		schema.ScoreTypes[key] = true
	}

	items := doc.Items()
	if len(items) > 0 {
		first := items[0]
		for _, field := range first.Fields() {
			schema.EvaluationFields[field] = true
		}
		for key := range first.Scores() {
			schema.ScoreTypes[key] = true
		}
	}

	return schema
}

// SortedScoreTypes returns the schema's score types in lexicographic order.
func (s Schema) SortedScoreTypes() []string {
	return sortedKeys(s.ScoreTypes)
}

// CommonScoreTypes intersects score types across all schemas and returns
// them sorted. These are the only scores comparable across every
// document. Returns ErrNoCommonScoreTypes when the intersection is
// empty; callers must treat that as an explicit empty-result state, not
// a crash.
func CommonScoreTypes(schemas map[string]Schema) ([]string, error) {
	var common map[string]bool
	for _, schema := range schemas {
		if common == nil {
			common = make(map[string]bool, len(schema.ScoreTypes))
			for scoreType := range schema.ScoreTypes {
				common[scoreType] = true
			}
			continue
		}
		for scoreType := range common {
			if !schema.ScoreTypes[scoreType] {
				delete(common, scoreType)
			}
		}
	}
	if len(common) == 0 {
		return nil, ErrNoCommonScoreTypes
	}
	return sortedKeys(common), nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
