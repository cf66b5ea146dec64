package reporter

import (
	"encoding/json"
	"io"
	"math"

	"github.com/phzwart/boteval/pkg/core"
)

// JSONReporter exports the comparison table and summary statistics as a
// single JSON document. Missing cells and empty-series quantiles encode
// as null; encoding/json cannot represent NaN.
type JSONReporter struct {
	Writer   io.Writer
	Pretty   bool
	Excluded map[string]bool
}

type jsonExport struct {
	Documents  []jsonDocument         `json:"documents"`
	ScoreTypes []string               `json:"score_types"`
	Rows       []jsonRow              `json:"rows"`
	Summaries  []jsonSummary          `json:"summaries"`
	Skipped    []core.SkippedDocument `json:"skipped,omitempty"`
}

type jsonDocument struct {
	Name      string `json:"name"`
	Evaluator string `json:"evaluator"`
}

type jsonRow struct {
	QuestionID string `json:"question_id"`
	// document -> score type -> value, null when missing
	Scores map[string]map[string]*float64 `json:"scores"`
}

type jsonSummary struct {
	Document  string                      `json:"document"`
	Evaluator string                      `json:"evaluator"`
	Scores    map[string]jsonScoreSummary `json:"scores"`
}

type jsonScoreSummary struct {
	Q25     *float64 `json:"q25"`
	Median  *float64 `json:"median"`
	Q75     *float64 `json:"q75"`
	Samples int      `json:"samples"`
}

func (r JSONReporter) Report(analysis *core.Analysis) error {
	export := jsonExport{
		Documents:  []jsonDocument{},
		ScoreTypes: []string{},
		Rows:       []jsonRow{},
		Summaries:  []jsonSummary{},
		Skipped:    analysis.Skipped,
	}

	if table := analysis.Table; table != nil {
		export.ScoreTypes = table.ScoreTypes
		for _, doc := range table.Documents {
			export.Documents = append(export.Documents, jsonDocument{
				Name:      doc,
				Evaluator: table.Evaluators[doc],
			})
		}
		for _, qid := range table.QuestionIDs {
			row := jsonRow{QuestionID: qid, Scores: map[string]map[string]*float64{}}
			for _, doc := range table.Documents {
				scores := map[string]*float64{}
				for _, scoreType := range table.ScoreTypes {
					scores[scoreType] = cellPtr(table.Cell(qid, doc, scoreType))
				}
				row.Scores[doc] = scores
			}
			export.Rows = append(export.Rows, row)
		}
		for _, summary := range core.Summarize(table, r.Excluded) {
			js := jsonSummary{
				Document:  summary.Document,
				Evaluator: summary.Evaluator,
				Scores:    map[string]jsonScoreSummary{},
			}
			for scoreType, stats := range summary.Scores {
				js.Scores[scoreType] = jsonScoreSummary{
					Q25:     quantilePtr(stats.Q25),
					Median:  quantilePtr(stats.Median),
					Q75:     quantilePtr(stats.Q75),
					Samples: stats.Samples,
				}
			}
			export.Summaries = append(export.Summaries, js)
		}
	}

	encoder := json.NewEncoder(r.Writer)
	if r.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(export)
}

func cellPtr(cell core.Cell) *float64 {
	if !cell.Valid {
		return nil
	}
	v := cell.Value
	return &v
}

func quantilePtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
