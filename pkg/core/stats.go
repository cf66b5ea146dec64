package core

import (
	"math"
	"sort"
)

// ScoreSummary holds quantile statistics for one (document, score type)
// pair. The quantiles are NaN when every cell was missing; callers
// render that as "no data" rather than failing.
type ScoreSummary struct {
	Q25     float64
	Median  float64
	Q75     float64
	Samples int
}

// Summary holds per-score-type statistics for one document.
type Summary struct {
	Document  string
	Evaluator string
	Scores    map[string]ScoreSummary
}

// Summarize computes the 25th, 50th and 75th percentiles per (document,
// score type) over the non-missing cells of rows not in excluded.
// Missing cells are dropped from the sample, never coerced to zero.
// Exclusion affects statistics only; the table itself is untouched.
func Summarize(t *Table, excluded map[string]bool) []Summary {
	summaries := make([]Summary, 0, len(t.Documents))
	for _, document := range t.Documents {
		summary := Summary{
			Document:  document,
			Evaluator: t.Evaluators[document],
			Scores:    make(map[string]ScoreSummary, len(t.ScoreTypes)),
		}
		for _, scoreType := range t.ScoreTypes {
			values := make([]float64, 0, len(t.QuestionIDs))
			for _, qid := range t.QuestionIDs {
				if excluded[qid] {
					continue
				}
				if cell := t.Cell(qid, document, scoreType); cell.Valid {
					values = append(values, cell.Value)
				}
			}
			summary.Scores[scoreType] = ScoreSummary{
				Q25:     percentile(values, 0.25),
				Median:  percentile(values, 0.50),
				Q75:     percentile(values, 0.75),
				Samples: len(values),
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// percentile interpolates linearly between order statistics. Empty input
// yields NaN.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	copied := make([]float64, len(values))
	copy(copied, values)
	sort.Float64s(copied)

	if p <= 0 {
		return copied[0]
	}
	if p >= 1 {
		return copied[len(copied)-1]
	}

	index := p * float64(len(copied)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return copied[lower]
	}
	weight := index - float64(lower)
	return copied[lower]*(1-weight) + copied[upper]*weight
}
