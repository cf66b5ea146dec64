package core

import (
	"encoding/json"
	"sort"
)

// Document is one evaluation artifact for a single model/run, produced by
// an external evaluator and treated as read-only input. The underlying
// JSON shape is loose: every field may be absent, so all access goes
// through accessors that default rather than assume presence.
type Document struct {
	name string
	raw  map[string]any
}

// ParseDocument decodes an evaluation document. It fails only when the
// top-level JSON value is not an object; every sub-field is optional.
func ParseDocument(name string, data []byte) (*Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedDocumentError{Name: name, Reason: err.Error()}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &MalformedDocumentError{Name: name, Reason: "top-level value is not a JSON object"}
	}
	return &Document{name: name, raw: obj}, nil
}

func (d *Document) Name() string {
	return d.name
}

// Metadata returns evaluation_metadata, or nil when absent.
func (d *Document) Metadata() map[string]any {
	m, _ := d.raw["evaluation_metadata"].(map[string]any)
	return m
}

// Criteria returns evaluation_criteria, the declared score types.
func (d *Document) Criteria() map[string]any {
	m, _ := d.raw["evaluation_criteria"].(map[string]any)
	return m
}

// Evaluator returns the evaluator identity from the document metadata.
// Documents without one report "unknown".
func (d *Document) Evaluator() string {
	if v, ok := d.Metadata()["evaluator"].(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// Items returns the ordered evaluation entries. Entries that are not
// objects yield an Item whose accessors all default to empty.
func (d *Document) Items() []Item {
	list, _ := d.raw["evaluations"].([]any)
	items := make([]Item, 0, len(list))
	for _, entry := range list {
		obj, _ := entry.(map[string]any)
		items = append(items, Item{raw: obj})
	}
	return items
}

// Item is a single scored entry within a document.
type Item struct {
	raw map[string]any
}

func (it Item) QuestionID() string {
	s, _ := it.raw["question_id"].(string)
	return s
}

// Scores returns the raw score mapping, or nil when absent.
func (it Item) Scores() map[string]any {
	m, _ := it.raw["scores"].(map[string]any)
	return m
}

// Score returns the numeric value for one score type. Absent or
// non-numeric values count as missing, which is distinct from zero.
func (it Item) Score(name string) (float64, bool) {
	v, ok := it.Scores()[name].(float64)
	return v, ok
}

// Fields returns the sorted key set of the entry.
func (it Item) Fields() []string {
	fields := make([]string, 0, len(it.raw))
	for key := range it.raw {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}

// Cell is one comparison-table entry. Valid is false when the document
// did not score the question for that score type, which is distinct from
// a legitimate score of zero.
type Cell struct {
	Value float64
	Valid bool
}
