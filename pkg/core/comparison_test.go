package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phzwart/boteval/pkg/core"
)

func scenarioDocs(t *testing.T) map[string]*core.Document {
	t.Helper()
	alpha := mustParse(t, "alpha", `{
		"evaluation_metadata": {"evaluator": "alice"},
		"evaluation_criteria": {"accuracy": "0-10", "helpfulness": "0-10"},
		"evaluations": [
			{"question_id": "q1", "scores": {"accuracy": 6, "helpfulness": 3}},
			{"question_id": "q2", "scores": {"accuracy": 8}}
		]
	}`)
	beta := mustParse(t, "beta", `{
		"evaluation_criteria": {"accuracy": "0-10", "style": "0-10"},
		"evaluations": [
			{"question_id": "q2", "scores": {"accuracy": 4, "style": 9}},
			{"question_id": "q3", "scores": {"accuracy": 5}}
		]
	}`)
	return map[string]*core.Document{"alpha": alpha, "beta": beta}
}

func TestBuildTableRowUnionAndCells(t *testing.T) {
	table := core.BuildTable(scenarioDocs(t), []string{"accuracy"})

	require.Equal(t, []string{"q1", "q2", "q3"}, table.QuestionIDs)
	require.Equal(t, []string{"alpha", "beta"}, table.Documents)
	require.Equal(t, []string{"accuracy"}, table.ScoreTypes)
	require.Equal(t, "alice", table.Evaluators["alpha"])
	require.Equal(t, "unknown", table.Evaluators["beta"])

	require.Equal(t, core.Cell{Value: 6, Valid: true}, table.Cell("q1", "alpha", "accuracy"))
	require.Equal(t, core.Cell{Value: 4, Valid: true}, table.Cell("q2", "beta", "accuracy"))
	// beta never saw q1; the cell is missing, not zero.
	require.Equal(t, core.Cell{}, table.Cell("q1", "beta", "accuracy"))
	require.Equal(t, core.Cell{}, table.Cell("q3", "alpha", "accuracy"))
}

func TestBuildTableZeroScoreIsNotMissing(t *testing.T) {
	docs := map[string]*core.Document{
		"zero": mustParse(t, "zero", `{
			"evaluations": [{"question_id": "q1", "scores": {"accuracy": 0}}]
		}`),
	}
	table := core.BuildTable(docs, []string{"accuracy"})
	cell := table.Cell("q1", "zero", "accuracy")
	require.True(t, cell.Valid)
	require.Equal(t, 0.0, cell.Value)
}

func TestBuildTableFirstDuplicateWins(t *testing.T) {
	docs := map[string]*core.Document{
		"dup": mustParse(t, "dup", `{
			"evaluations": [
				{"question_id": "q1", "scores": {"accuracy": 2}},
				{"question_id": "q1", "scores": {"accuracy": 9}}
			]
		}`),
	}
	table := core.BuildTable(docs, []string{"accuracy"})
	require.Equal(t, []string{"q1"}, table.QuestionIDs)
	require.Equal(t, core.Cell{Value: 2, Valid: true}, table.Cell("q1", "dup", "accuracy"))
}

func TestBuildTableSkipsEntriesWithoutQuestionID(t *testing.T) {
	docs := map[string]*core.Document{
		"doc": mustParse(t, "doc", `{
			"evaluations": [
				{"scores": {"accuracy": 5}},
				{"question_id": "q1", "scores": {"accuracy": 7}}
			]
		}`),
	}
	table := core.BuildTable(docs, []string{"accuracy"})
	require.Equal(t, []string{"q1"}, table.QuestionIDs)
}

func TestBuildTableNonNumericScoreIsMissing(t *testing.T) {
	docs := map[string]*core.Document{
		"doc": mustParse(t, "doc", `{
			"evaluations": [{"question_id": "q1", "scores": {"accuracy": "high"}}]
		}`),
	}
	table := core.BuildTable(docs, []string{"accuracy"})
	require.Equal(t, core.Cell{}, table.Cell("q1", "doc", "accuracy"))
}

func TestBuildTableEmpty(t *testing.T) {
	table := core.BuildTable(nil, nil)
	require.Empty(t, table.QuestionIDs)
	require.Empty(t, table.Documents)
	require.Equal(t, core.Cell{}, table.Cell("q1", "doc", "accuracy"))
}
