package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/phzwart/boteval/pkg/core"
)

// TableReporter renders the summary statistics for the terminal: one row
// per document, one "Q25 | Median | Q75" column per common score type.
type TableReporter struct {
	Writer   io.Writer
	Excluded map[string]bool
}

func (r TableReporter) Report(analysis *core.Analysis) error {
	if msg := emptyState(analysis); msg != "" {
		fmt.Fprintln(r.Writer, msg)
		return nil
	}

	t := analysis.Table
	table := tablewriter.NewWriter(r.Writer)
	header := []string{"Model", "Evaluator"}
	for _, scoreType := range t.ScoreTypes {
		header = append(header, displayName(scoreType))
	}
	table.Header(header)
	for _, summary := range core.Summarize(t, r.Excluded) {
		row := []string{summary.Document, summary.Evaluator}
		for _, scoreType := range t.ScoreTypes {
			row = append(row, formatStats(summary.Scores[scoreType]))
		}
		table.Append(row)
	}
	table.Render()

	if len(r.Excluded) > 0 {
		fmt.Fprintf(r.Writer, "Excluded %d questions from summary statistics\n", len(r.Excluded))
	}
	if len(analysis.Skipped) > 0 {
		fmt.Fprintf(r.Writer, "Skipped %d documents\n", len(analysis.Skipped))
	}
	return nil
}

func formatStats(stats core.ScoreSummary) string {
	if stats.Samples == 0 {
		return "no data"
	}
	return fmt.Sprintf("Q25: %.2f | Median: %.2f | Q75: %.2f", stats.Q25, stats.Median, stats.Q75)
}

// displayName turns a snake_case score type into a heading, e.g.
// "overall_quality" into "Overall Quality".
func displayName(scoreType string) string {
	words := strings.Split(scoreType, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
