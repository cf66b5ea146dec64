package core

import "sort"

// Table is the dense question-id-keyed comparison of scores across
// documents. Row order is the sorted union of question ids seen in any
// document; column order is sorted document ids crossed with the sorted
// common score types, plus one evaluator column per document. Building
// is pure: identical inputs always produce an identical table.
type Table struct {
	QuestionIDs []string
	Documents   []string
	ScoreTypes  []string
	Evaluators  map[string]string
	cells       map[string]map[string]map[string]Cell
}

// BuildTable merges the documents into one table over the given common
// score types. Within a document the first entry for a question id wins;
// later duplicates are silently ignored. That mirrors the upstream data
// path and is a known limitation rather than an invitation to guess that
// later entries were meant to overwrite.
func BuildTable(docs map[string]*Document, scoreTypes []string) *Table {
	documents := make([]string, 0, len(docs))
	for name := range docs {
		documents = append(documents, name)
	}
	sort.Strings(documents)

	types := make([]string, len(scoreTypes))
	copy(types, scoreTypes)
	sort.Strings(types)

	// Index each document by question id up front (first match wins) and
	// collect the row union at the same time.
	idSet := map[string]bool{}
	index := make(map[string]map[string]Item, len(docs))
	for _, name := range documents {
		byQuestion := map[string]Item{}
		for _, item := range docs[name].Items() {
			qid := item.QuestionID()
			if qid == "" {
				continue
			}
			idSet[qid] = true
			if _, seen := byQuestion[qid]; !seen {
				byQuestion[qid] = item
			}
		}
		index[name] = byQuestion
	}

	questionIDs := make([]string, 0, len(idSet))
	for qid := range idSet {
		questionIDs = append(questionIDs, qid)
	}
	sort.Strings(questionIDs)

	// Evaluator identity is document-level metadata: it is recorded for
	// every loaded document, even for questions it never evaluated.
	evaluators := make(map[string]string, len(docs))
	for _, name := range documents {
		evaluators[name] = docs[name].Evaluator()
	}

	cells := make(map[string]map[string]map[string]Cell, len(questionIDs))
	for _, qid := range questionIDs {
		row := make(map[string]map[string]Cell, len(documents))
		for _, name := range documents {
			perType := make(map[string]Cell, len(types))
			item, found := index[name][qid]
			for _, scoreType := range types {
				if !found {
					perType[scoreType] = Cell{}
					continue
				}
				if value, ok := item.Score(scoreType); ok {
					perType[scoreType] = Cell{Value: value, Valid: true}
				} else {
					perType[scoreType] = Cell{}
				}
			}
			row[name] = perType
		}
		cells[qid] = row
	}

	return &Table{
		QuestionIDs: questionIDs,
		Documents:   documents,
		ScoreTypes:  types,
		Evaluators:  evaluators,
		cells:       cells,
	}
}

// Cell returns the entry for (question, document, score type). Anything
// outside the table reads as a missing cell.
func (t *Table) Cell(questionID, document, scoreType string) Cell {
	return t.cells[questionID][document][scoreType]
}
