package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phzwart/boteval/pkg/core"
)

func TestMatrixLayout(t *testing.T) {
	table := core.BuildTable(scenarioDocs(t), []string{"accuracy"})
	matrix := table.Matrix("accuracy")

	require.Equal(t, "accuracy", matrix.ScoreType)
	require.Equal(t, []string{"q1", "q2", "q3"}, matrix.QuestionIDs)
	require.Equal(t, []string{"alpha", "beta"}, matrix.Documents)
	require.Len(t, matrix.Cells, 3)

	// Cells[question][document] follows the header ordering.
	require.Equal(t, core.Cell{Value: 6, Valid: true}, matrix.Cells[0][0])
	require.Equal(t, core.Cell{}, matrix.Cells[0][1])
	require.Equal(t, core.Cell{Value: 5, Valid: true}, matrix.Cells[2][1])
}

func TestMatricesPerScoreType(t *testing.T) {
	table := core.BuildTable(scenarioDocs(t), []string{"accuracy", "style"})
	matrices := table.Matrices()
	require.Len(t, matrices, 2)
	require.Equal(t, "accuracy", matrices[0].ScoreType)
	require.Equal(t, "style", matrices[1].ScoreType)
}

func TestDistributionSkipsMissing(t *testing.T) {
	table := core.BuildTable(scenarioDocs(t), []string{"accuracy"})

	require.Equal(t, []float64{6, 8}, table.Distribution("alpha", "accuracy"))
	require.Equal(t, []float64{4, 5}, table.Distribution("beta", "accuracy"))
	require.Empty(t, table.Distribution("alpha", "style"))
}
