package tests

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phzwart/boteval/pkg/collect"
	"github.com/phzwart/boteval/pkg/core"
	"github.com/phzwart/boteval/pkg/dataset"
	"github.com/phzwart/boteval/pkg/reporter"
	"github.com/phzwart/boteval/pkg/store"
)

const questionsYAML = `
qa_pairs:
  - id: q1
    question: "What is a tensor?"
    answer: "A multilinear map."
    topic: [math]
  - id: q2
    question: "What is diffraction?"
    topic: [physics]
  - id: q3
    question: "What is entropy?"
`

func seedStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	questions, err := dataset.ConvertYAML([]byte(questionsYAML))
	require.NoError(t, err)
	data, err := dataset.EncodeJSON(questions)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, dataset.QuestionsPath, data))

	require.NoError(t, st.Put(ctx, "compare/alpha.json", []byte(`{
		"evaluation_metadata": {"evaluator": "alice"},
		"evaluation_criteria": {"accuracy": "0-10", "helpfulness": "0-10"},
		"evaluations": [
			{"question_id": "q1", "scores": {"accuracy": 6, "helpfulness": 3}},
			{"question_id": "q2", "scores": {"accuracy": 8}}
		]
	}`)))
	require.NoError(t, st.Put(ctx, "compare/beta.json", []byte(`{
		"evaluation_criteria": {"accuracy": "0-10", "style": "0-10"},
		"evaluations": [
			{"question_id": "q2", "scores": {"accuracy": 4, "style": 9}},
			{"question_id": "q3", "scores": {"accuracy": 5}}
		]
	}`)))
	require.NoError(t, st.Put(ctx, "compare/broken.json", []byte(`[`)))
	return st
}

func TestEndToEndComparison(t *testing.T) {
	st := seedStore(t)
	analyzer := &core.Analyzer{Store: st, Workers: 2}

	analysis, err := analyzer.Run(context.Background(), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"alpha", "beta"}, analysis.DocumentNames())
	require.Equal(t, []string{"accuracy"}, analysis.ScoreTypes)
	require.Len(t, analysis.Skipped, 1)
	require.Equal(t, "compare/broken.json", analysis.Skipped[0].Path)

	require.Equal(t, []string{"q1", "q2", "q3"}, analysis.Table.QuestionIDs)
	require.Equal(t, core.Cell{}, analysis.Table.Cell("q1", "beta", "accuracy"))

	var csv bytes.Buffer
	require.NoError(t, reporter.CSVReporter{Writer: &csv}.Report(analysis))
	lines := strings.Split(strings.TrimSpace(csv.String()), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "q1,alice,6,unknown,", lines[1])

	summaries := core.Summarize(analysis.Table, nil)
	require.InDelta(t, 7.0, summaries[0].Scores["accuracy"].Median, 1e-9)
}

func TestEndToEndComparisonWithCache(t *testing.T) {
	st := seedStore(t)
	cached, err := store.NewCached(st, t.TempDir(), 0)
	require.NoError(t, err)

	analyzer := &core.Analyzer{Store: cached}
	first, err := analyzer.Run(context.Background(), nil)
	require.NoError(t, err)
	second, err := analyzer.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, first.Table.QuestionIDs, second.Table.QuestionIDs)
}

func TestEndToEndCollection(t *testing.T) {
	st := seedStore(t)
	ctx := context.Background()

	questions, err := dataset.Fetch(ctx, st)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	require.Equal(t, []string{"math", "none", "physics"}, dataset.Topics(questions))

	_, err = collect.SaveSubmission(ctx, st, collect.Submission{
		ModelName: "gpt-4o",
		RunID:     "run-1",
		Responses: map[string]string{"q1": "a multilinear map", "q2": "wave bending"},
	})
	require.NoError(t, err)

	_, err = collect.SaveAnnotation(ctx, st, collect.Annotation{
		Annotator: "bob",
		Topic:     "math",
		Annotations: map[string]collect.QuestionAnnotation{
			"q1": {Benchmark: "sharper phrasing", Quality: 1},
		},
	})
	require.NoError(t, err)

	submissions, err := collect.LoadSubmissions(ctx, st, nil)
	require.NoError(t, err)
	annotations, err := collect.LoadAnnotations(ctx, st, nil)
	require.NoError(t, err)

	reviews := collect.BuildReview(questions, annotations, submissions)
	require.Len(t, reviews, 3)
	require.Len(t, reviews[0].Annotations, 1)
	require.Len(t, reviews[0].Responses, 1)
	require.Empty(t, reviews[2].Annotations)
}

func TestEndToEndNoCommonScoreTypes(t *testing.T) {
	st, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "compare/a.json", []byte(`{"evaluation_criteria": {"accuracy": "0-10"}}`)))
	require.NoError(t, st.Put(ctx, "compare/b.json", []byte(`{"evaluation_criteria": {"style": "0-10"}}`)))

	analyzer := &core.Analyzer{Store: st}
	analysis, err := analyzer.Run(ctx, nil)
	require.NoError(t, err)
	require.Nil(t, analysis.Table)
	require.Empty(t, analysis.ScoreTypes)

	var out bytes.Buffer
	require.NoError(t, reporter.TableReporter{Writer: &out}.Report(analysis))
	require.Contains(t, out.String(), "No common score types")
}
