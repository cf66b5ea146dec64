package reporter

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/phzwart/boteval/pkg/core"
)

// CSVReporter writes the full comparison table. Column order is
// question_id, then for each document (sorted) its evaluator column and
// one column per common score type (sorted), so repeated exports of the
// same analysis are byte-identical. Missing cells export as empty
// fields, never as zero.
type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(analysis *core.Analysis) error {
	return WriteComparisonCSV(r.Writer, analysis.Table)
}

func WriteComparisonCSV(w io.Writer, table *core.Table) error {
	writer := csv.NewWriter(w)
	header := []string{"question_id"}
	if table != nil {
		for _, doc := range table.Documents {
			header = append(header, doc+"_evaluator")
			for _, scoreType := range table.ScoreTypes {
				header = append(header, doc+"_"+scoreType)
			}
		}
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	if table != nil {
		for _, qid := range table.QuestionIDs {
			record := []string{qid}
			for _, doc := range table.Documents {
				record = append(record, table.Evaluators[doc])
				for _, scoreType := range table.ScoreTypes {
					record = append(record, formatCell(table.Cell(qid, doc, scoreType)))
				}
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// SummaryCSVReporter writes the per-document quantile summary, one row
// per document, with q25/median/q75/samples columns per score type.
type SummaryCSVReporter struct {
	Writer   io.Writer
	Excluded map[string]bool
}

func (r SummaryCSVReporter) Report(analysis *core.Analysis) error {
	table := analysis.Table
	writer := csv.NewWriter(r.Writer)
	header := []string{"model", "evaluator"}
	if table != nil {
		for _, scoreType := range table.ScoreTypes {
			header = append(header,
				scoreType+"_q25", scoreType+"_median", scoreType+"_q75", scoreType+"_samples")
		}
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	if table != nil {
		for _, summary := range core.Summarize(table, r.Excluded) {
			record := []string{summary.Document, summary.Evaluator}
			for _, scoreType := range table.ScoreTypes {
				stats := summary.Scores[scoreType]
				record = append(record,
					formatQuantile(stats.Q25),
					formatQuantile(stats.Median),
					formatQuantile(stats.Q75),
					strconv.Itoa(stats.Samples))
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(cell core.Cell) string {
	if !cell.Valid {
		return ""
	}
	return strconv.FormatFloat(cell.Value, 'f', -1, 64)
}

// NaN quantiles ("no data") export as empty fields.
func formatQuantile(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
