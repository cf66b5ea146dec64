package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phzwart/boteval/pkg/core"
)

func mustParse(t *testing.T, name, data string) *core.Document {
	t.Helper()
	doc, err := core.ParseDocument(name, []byte(data))
	require.NoError(t, err)
	return doc
}

func TestParseDocumentRejectsNonObject(t *testing.T) {
	_, err := core.ParseDocument("bad", []byte(`[1, 2, 3]`))
	var malformed *core.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "bad", malformed.Name)

	_, err = core.ParseDocument("bad", []byte(`not json`))
	require.ErrorAs(t, err, &malformed)
}

func TestExtractSchemaUnionsCriteriaAndFirstEntry(t *testing.T) {
	doc := mustParse(t, "alpha", `{
		"evaluation_metadata": {"evaluator": "alice", "model": "m1"},
		"evaluation_criteria": {"accuracy": "0-10", "style": "0-10"},
		"evaluations": [
			{"question_id": "q1", "scores": {"accuracy": 6, "helpfulness": 3}},
			{"question_id": "q2", "scores": {"brevity": 1}}
		]
	}`)

	schema := core.ExtractSchema(doc)
	require.Equal(t, []string{"accuracy", "helpfulness", "style"}, schema.SortedScoreTypes())
	require.True(t, schema.MetadataFields["evaluator"])
	require.True(t, schema.MetadataFields["model"])
	// Only the first entry contributes evaluation fields and score types.
	require.True(t, schema.EvaluationFields["question_id"])
	require.True(t, schema.EvaluationFields["scores"])
	require.False(t, schema.ScoreTypes["brevity"])
}

func TestExtractSchemaEmptyDocument(t *testing.T) {
	doc := mustParse(t, "empty", `{}`)
	schema := core.ExtractSchema(doc)
	require.Empty(t, schema.SortedScoreTypes())
	require.Empty(t, schema.MetadataFields)
	require.Empty(t, schema.EvaluationFields)
}

func TestCommonScoreTypesIntersects(t *testing.T) {
	schemas := map[string]core.Schema{
		"alpha": {ScoreTypes: map[string]bool{"accuracy": true, "helpfulness": true}},
		"beta":  {ScoreTypes: map[string]bool{"accuracy": true, "style": true}},
	}
	common, err := core.CommonScoreTypes(schemas)
	require.NoError(t, err)
	require.Equal(t, []string{"accuracy"}, common)
}

func TestCommonScoreTypesDisjoint(t *testing.T) {
	schemas := map[string]core.Schema{
		"alpha": {ScoreTypes: map[string]bool{"accuracy": true}},
		"beta":  {ScoreTypes: map[string]bool{"style": true}},
	}
	_, err := core.CommonScoreTypes(schemas)
	require.ErrorIs(t, err, core.ErrNoCommonScoreTypes)
}

func TestEvaluatorDefaultsToUnknown(t *testing.T) {
	doc := mustParse(t, "anon", `{"evaluations": []}`)
	require.Equal(t, "unknown", doc.Evaluator())

	doc = mustParse(t, "named", `{"evaluation_metadata": {"evaluator": "bob"}}`)
	require.Equal(t, "bob", doc.Evaluator())
}
