package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/phzwart/boteval/pkg/core"
	"github.com/phzwart/boteval/pkg/reporter"
)

func newCompareCommand() *cobra.Command {
	var (
		docs    []string
		exclude []string
		format  string
		output  string
		prefix  string
		workers int
		heatmap bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Build a comparison table across evaluation documents",
		Long: "Fetches evaluation documents from the store, intersects their score types\n" +
			"and renders the comparison table, summary statistics or heatmaps.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if heatmap {
				format = reporter.FormatHeatmap
			}
			if format == "" {
				format = appConfig.Format
			}
			if format == "" {
				format = reporter.FormatTable
			}
			if output == "" {
				output = appConfig.Output
			}
			if workers == 0 {
				workers = appConfig.Workers
			}
			if prefix == "" {
				prefix = appConfig.Prefix
			}

			st, err := buildStore(ctx)
			if err != nil {
				return err
			}

			bar := newProgressBar(progressWriter(cmd))
			analyzer := &core.Analyzer{
				Store:    st,
				Prefix:   prefix,
				Workers:  workers,
				Logger:   logger,
				Progress: bar.update,
			}
			analysis, err := analyzer.Run(ctx, docs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				out = file
			}

			excluded := make(map[string]bool, len(exclude))
			for _, qid := range exclude {
				excluded[qid] = true
			}

			rep, err := buildReporter(format, out, excluded)
			if err != nil {
				return err
			}
			return rep.Report(analysis)
		},
	}

	cmd.Flags().StringSliceVar(&docs, "docs", nil, "document names to compare (default: all under the prefix)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "question ids to exclude from summary statistics")
	cmd.Flags().StringVar(&format, "format", "", "output format: table, csv, summary-csv, json, markdown, html, heatmap")
	cmd.Flags().StringVar(&output, "output", "", "write output to a file instead of stdout")
	cmd.Flags().StringVar(&prefix, "prefix", "", "store prefix for evaluation documents")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel fetch workers")
	cmd.Flags().BoolVar(&heatmap, "heatmap", false, "shorthand for --format heatmap")

	return cmd
}

func buildReporter(format string, out io.Writer, excluded map[string]bool) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: out, Excluded: excluded}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: out}, nil
	case reporter.FormatSummaryCSV:
		return reporter.SummaryCSVReporter{Writer: out, Excluded: excluded}, nil
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: out, Pretty: true, Excluded: excluded}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: out, Excluded: excluded}, nil
	case reporter.FormatHTML:
		return reporter.HTMLReporter{Writer: out, Excluded: excluded}, nil
	case reporter.FormatHeatmap:
		return reporter.HeatmapReporter{Writer: out}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

type progressBar struct {
	mu     sync.Mutex
	writer io.Writer
	width  int
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer) *progressBar {
	return &progressBar{
		writer: writer,
		width:  30,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) update(completed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total == 0 {
		return
	}
	ratio := float64(completed) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(p.width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", p.width-filled)
	percent := int(ratio * 100)
	elapsed := time.Since(p.start).Truncate(time.Second)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d) %s", barStyle.Render(bar), percent, completed, total, elapsed)
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else {
		fmt.Fprintf(p.writer, "%s\n", line)
	}

	if completed >= total {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// progressWriter keeps the bar off stdout when the report itself goes
// there, so redirecting output does not capture progress lines.
func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	if isTerminal(stderr) {
		return stderr
	}
	return io.Discard
}
