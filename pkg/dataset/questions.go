// Package dataset loads the canonical question list that every
// submission, annotation and evaluation document refers back to.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phzwart/boteval/pkg/store"
)

// QuestionsPath is the canonical question list blob in the store.
const QuestionsPath = "questions.json"

// UntaggedTopic groups questions that carry no topic tag.
const UntaggedTopic = "none"

// Question is one entry in the canonical question list. Answer and Topic
// are optional.
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer,omitempty" yaml:"answer,omitempty"`
	Topic    []string `json:"topic,omitempty" yaml:"topic,omitempty"`
}

// Fetch loads the question list from the store.
func Fetch(ctx context.Context, st store.Store) ([]Question, error) {
	data, err := st.Get(ctx, QuestionsPath)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data)
}

// Load reads a question list from a local file, picking the format from
// the extension and falling back to content sniffing.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return ConvertYAML(data)
	}
	return Parse(data)
}

// Parse decodes a question list from JSON or YAML, detected by the first
// non-space byte: JSON question lists always open with '['.
func Parse(data []byte) ([]Question, error) {
	switch detectFormat(data) {
	case "json":
		return decodeJSON(data)
	case "yaml":
		return ConvertYAML(data)
	}
	return nil, errors.New("dataset: empty question list input")
}

// ConvertYAML reads a qa_pairs YAML document and keeps id, question,
// answer and topic for each pair.
func ConvertYAML(data []byte) ([]Question, error) {
	var doc struct {
		QAPairs []Question `yaml:"qa_pairs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.QAPairs == nil {
		return nil, errors.New("dataset: missing qa_pairs")
	}
	return doc.QAPairs, nil
}

// EncodeJSON renders the list in the canonical indented form used for
// the questions.json blob.
func EncodeJSON(questions []Question) ([]byte, error) {
	return json.MarshalIndent(questions, "", "  ")
}

// Topics returns the sorted set of topics across the questions.
// Questions with no topic contribute UntaggedTopic.
func Topics(questions []Question) []string {
	set := map[string]bool{}
	for _, q := range questions {
		if len(q.Topic) == 0 {
			set[UntaggedTopic] = true
			continue
		}
		for _, topic := range q.Topic {
			set[topic] = true
		}
	}
	topics := make([]string, 0, len(set))
	for topic := range set {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// FilterByTopic keeps the questions tagged with topic; UntaggedTopic
// selects the questions with no tags.
func FilterByTopic(questions []Question, topic string) []Question {
	var out []Question
	for _, q := range questions {
		if topic == UntaggedTopic {
			if len(q.Topic) == 0 {
				out = append(out, q)
			}
			continue
		}
		for _, t := range q.Topic {
			if t == topic {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

func decodeJSON(data []byte) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func detectFormat(data []byte) string {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return "json"
		default:
			return "yaml"
		}
	}
	return ""
}
