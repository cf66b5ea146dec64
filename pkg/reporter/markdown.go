package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/phzwart/boteval/pkg/core"
)

type MarkdownReporter struct {
	Writer   io.Writer
	Excluded map[string]bool
}

func (r MarkdownReporter) Report(analysis *core.Analysis) error {
	if _, err := fmt.Fprintf(r.Writer, "# Comparison Report\n\n"); err != nil {
		return err
	}
	if msg := emptyState(analysis); msg != "" {
		_, err := fmt.Fprintf(r.Writer, "%s\n", msg)
		return err
	}
	table := analysis.Table

	if _, err := fmt.Fprintf(r.Writer, "## Summary\n\n"); err != nil {
		return err
	}
	header := []string{"Model", "Evaluator"}
	for _, scoreType := range table.ScoreTypes {
		header = append(header, displayName(scoreType))
	}
	if err := writeMarkdownRow(r.Writer, header); err != nil {
		return err
	}
	if err := writeMarkdownRule(r.Writer, len(header)); err != nil {
		return err
	}
	for _, summary := range core.Summarize(table, r.Excluded) {
		row := []string{escapePipe(summary.Document), escapePipe(summary.Evaluator)}
		for _, scoreType := range table.ScoreTypes {
			row = append(row, formatStats(summary.Scores[scoreType]))
		}
		if err := writeMarkdownRow(r.Writer, row); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Scores\n\n"); err != nil {
		return err
	}
	header = []string{"Question"}
	for _, doc := range table.Documents {
		for _, scoreType := range table.ScoreTypes {
			header = append(header, escapePipe(doc)+" "+displayName(scoreType))
		}
	}
	if err := writeMarkdownRow(r.Writer, header); err != nil {
		return err
	}
	if err := writeMarkdownRule(r.Writer, len(header)); err != nil {
		return err
	}
	for _, qid := range table.QuestionIDs {
		row := []string{escapePipe(qid)}
		for _, doc := range table.Documents {
			for _, scoreType := range table.ScoreTypes {
				row = append(row, formatCell(table.Cell(qid, doc, scoreType)))
			}
		}
		if err := writeMarkdownRow(r.Writer, row); err != nil {
			return err
		}
	}

	if len(analysis.Skipped) > 0 {
		if _, err := fmt.Fprintf(r.Writer, "\n## Skipped\n\n"); err != nil {
			return err
		}
		for _, skipped := range analysis.Skipped {
			if _, err := fmt.Fprintf(r.Writer, "- %s: %s\n", escapePipe(skipped.Path), escapePipe(skipped.Reason)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string) error {
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	return err
}

func writeMarkdownRule(w io.Writer, columns int) error {
	_, err := fmt.Fprintf(w, "|%s\n", strings.Repeat("---|", columns))
	return err
}

func escapePipe(input string) string {
	if input == "" {
		return ""
	}
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if r == '|' {
			out = append(out, '\\', r)
		} else if r == '\n' || r == '\r' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
