// Package reporter renders an analysis: the full comparison table, the
// per-document summary statistics, and the terminal visualizations.
package reporter

import "github.com/phzwart/boteval/pkg/core"

// Reporter writes one rendition of a comparison analysis. Implementations
// must render the empty-result states (no documents, no common score
// types) rather than fail on them.
type Reporter interface {
	Report(analysis *core.Analysis) error
}

const (
	FormatTable      = "table"
	FormatCSV        = "csv"
	FormatSummaryCSV = "summary-csv"
	FormatJSON       = "json"
	FormatMarkdown   = "markdown"
	FormatHTML       = "html"
	FormatHeatmap    = "heatmap"
)

const (
	msgNoDocuments   = "No documents loaded."
	msgNoCommonTypes = "No common score types across the selected documents."
)

// emptyState explains a nil table; empty string means the table exists.
func emptyState(analysis *core.Analysis) string {
	if analysis.Table != nil {
		return ""
	}
	if len(analysis.Documents) == 0 {
		return msgNoDocuments
	}
	return msgNoCommonTypes
}
