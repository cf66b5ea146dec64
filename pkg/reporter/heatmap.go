package reporter

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/phzwart/boteval/pkg/core"
)

// HeatmapReporter renders one question-by-document grid per common score
// type, coloring cells from red (low) to green (high) over the range
// observed in that grid. Missing cells render as a dash. On non-terminal
// writers the values print uncolored. After each grid it prints an ASCII
// histogram of every document's score distribution.
type HeatmapReporter struct {
	Writer io.Writer
}

// red -> orange -> yellow -> green, ANSI 256
var heatColors = []string{"196", "202", "208", "214", "220", "226", "190", "154", "118", "82", "46"}

const histogramBins = 5

func (r HeatmapReporter) Report(analysis *core.Analysis) error {
	if msg := emptyState(analysis); msg != "" {
		_, err := fmt.Fprintln(r.Writer, msg)
		return err
	}

	colored := isTerminal(r.Writer)
	for _, matrix := range analysis.Table.Matrices() {
		if err := r.writeMatrix(matrix, colored); err != nil {
			return err
		}
		for _, doc := range matrix.Documents {
			if err := r.writeHistogram(doc, matrix.ScoreType, analysis.Table.Distribution(doc, matrix.ScoreType)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(r.Writer); err != nil {
			return err
		}
	}
	return nil
}

func (r HeatmapReporter) writeMatrix(matrix core.Matrix, colored bool) error {
	if _, err := fmt.Fprintf(r.Writer, "%s\n", displayName(matrix.ScoreType)); err != nil {
		return err
	}

	low, high := matrixRange(matrix)

	idWidth := len("question")
	for _, qid := range matrix.QuestionIDs {
		if len(qid) > idWidth {
			idWidth = len(qid)
		}
	}
	colWidth := 8
	for _, doc := range matrix.Documents {
		if len(doc) > colWidth {
			colWidth = len(doc)
		}
	}

	header := fmt.Sprintf("%-*s", idWidth, "question")
	for _, doc := range matrix.Documents {
		header += fmt.Sprintf("  %*s", colWidth, doc)
	}
	if _, err := fmt.Fprintln(r.Writer, header); err != nil {
		return err
	}

	for i, qid := range matrix.QuestionIDs {
		line := fmt.Sprintf("%-*s", idWidth, qid)
		for _, cell := range matrix.Cells[i] {
			line += "  " + renderCell(cell, low, high, colWidth, colored)
		}
		if _, err := fmt.Fprintln(r.Writer, line); err != nil {
			return err
		}
	}
	return nil
}

func renderCell(cell core.Cell, low, high float64, width int, colored bool) string {
	if !cell.Valid {
		return fmt.Sprintf("%*s", width, "-")
	}
	text := fmt.Sprintf("%*s", width, fmt.Sprintf("%.2f", cell.Value))
	if !colored {
		return text
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(heatColor(cell.Value, low, high)))
	return style.Render(text)
}

// heatColor maps value onto the red-green ramp; a flat range maps to the
// middle of the ramp.
func heatColor(value, low, high float64) string {
	if high <= low {
		return heatColors[len(heatColors)/2]
	}
	ratio := (value - low) / (high - low)
	idx := int(ratio * float64(len(heatColors)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(heatColors) {
		idx = len(heatColors) - 1
	}
	return heatColors[idx]
}

func matrixRange(matrix core.Matrix) (float64, float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, row := range matrix.Cells {
		for _, cell := range row {
			if !cell.Valid {
				continue
			}
			low = math.Min(low, cell.Value)
			high = math.Max(high, cell.Value)
		}
	}
	return low, high
}

func (r HeatmapReporter) writeHistogram(doc, scoreType string, values []float64) error {
	if _, err := fmt.Fprintf(r.Writer, "\n%s / %s\n", doc, displayName(scoreType)); err != nil {
		return err
	}
	if len(values) == 0 {
		_, err := fmt.Fprintln(r.Writer, "  (no data)")
		return err
	}

	low, high := values[0], values[0]
	for _, v := range values {
		low = math.Min(low, v)
		high = math.Max(high, v)
	}

	counts := make([]int, histogramBins)
	if high == low {
		counts[0] = len(values)
	} else {
		for _, v := range values {
			bin := int((v - low) / (high - low) * histogramBins)
			if bin >= histogramBins {
				bin = histogramBins - 1
			}
			counts[bin]++
		}
	}

	for i, count := range counts {
		binLow := low + (high-low)*float64(i)/histogramBins
		binHigh := low + (high-low)*float64(i+1)/histogramBins
		if _, err := fmt.Fprintf(r.Writer, "  [%6.2f, %6.2f] %s %d\n",
			binLow, binHigh, strings.Repeat("#", count), count); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
