package reporter

import (
	"html/template"
	"io"

	"github.com/phzwart/boteval/pkg/core"
)

type HTMLReporter struct {
	Writer   io.Writer
	Title    string
	Excluded map[string]bool
}

func (r HTMLReporter) Report(analysis *core.Analysis) error {
	title := r.Title
	if title == "" {
		title = "Boteval Comparison"
	}

	data := struct {
		Title     string
		Empty     string
		Table     *core.Table
		Summaries []core.Summary
		Skipped   []core.SkippedDocument
	}{
		Title:   title,
		Empty:   emptyState(analysis),
		Table:   analysis.Table,
		Skipped: analysis.Skipped,
	}
	if analysis.Table != nil {
		data.Summaries = core.Summarize(analysis.Table, r.Excluded)
	}

	tpl := template.Must(template.New("comparison").Funcs(template.FuncMap{
		"stats":   formatStats,
		"cell":    formatCell,
		"heading": displayName,
	}).Parse(htmlTemplate))
	return tpl.Execute(r.Writer, data)
}

const htmlTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; }
    table { border-collapse: collapse; margin-top: 16px; }
    th, td { border: 1px solid #ddd; padding: 8px; }
    th { background: #f5f5f5; text-align: left; }
    td.missing { background: #fafafa; color: #999; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
{{ if .Empty }}
  <p>{{ .Empty }}</p>
{{ else }}
  <h2>Summary</h2>
  <table>
    <tr><th>Model</th><th>Evaluator</th>{{ range .Table.ScoreTypes }}<th>{{ heading . }}</th>{{ end }}</tr>
    {{ range .Summaries }}
    <tr><td>{{ .Document }}</td><td>{{ .Evaluator }}</td>{{ $s := . }}{{ range $.Table.ScoreTypes }}<td>{{ stats (index $s.Scores .) }}</td>{{ end }}</tr>
    {{ end }}
  </table>
  <h2>Scores</h2>
  <table>
    <tr><th>Question</th>{{ range $doc := .Table.Documents }}{{ range $.Table.ScoreTypes }}<th>{{ $doc }} {{ heading . }}</th>{{ end }}{{ end }}</tr>
    {{ range $qid := .Table.QuestionIDs }}
    <tr><td>{{ $qid }}</td>{{ range $doc := $.Table.Documents }}{{ range $.Table.ScoreTypes }}{{ $c := $.Table.Cell $qid $doc . }}{{ if $c.Valid }}<td>{{ cell $c }}</td>{{ else }}<td class="missing">&mdash;</td>{{ end }}{{ end }}{{ end }}</tr>
    {{ end }}
  </table>
{{ end }}
{{ if .Skipped }}
  <h2>Skipped</h2>
  <ul>
    {{ range .Skipped }}<li>{{ .Path }}: {{ .Reason }}</li>{{ end }}
  </ul>
{{ end }}
</body>
</html>
`
