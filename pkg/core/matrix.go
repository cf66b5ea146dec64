package core

// Matrix is a question × document grid of cells for one score type, laid
// out for heatmap rendering. Question exclusion never applies here: the
// grid always covers every row of the table, and missing cells stay
// distinguishable instead of being coerced to a number that would
// corrupt a color scale.
type Matrix struct {
	ScoreType   string
	QuestionIDs []string
	Documents   []string
	Cells       [][]Cell
}

// Matrix builds the grid for one score type. Cells is indexed
// [question][document], matching QuestionIDs and Documents order.
func (t *Table) Matrix(scoreType string) Matrix {
	cells := make([][]Cell, len(t.QuestionIDs))
	for i, qid := range t.QuestionIDs {
		row := make([]Cell, len(t.Documents))
		for j, document := range t.Documents {
			row[j] = t.Cell(qid, document, scoreType)
		}
		cells[i] = row
	}
	return Matrix{
		ScoreType:   scoreType,
		QuestionIDs: t.QuestionIDs,
		Documents:   t.Documents,
		Cells:       cells,
	}
}

// Matrices builds one grid per common score type, in score-type order.
func (t *Table) Matrices() []Matrix {
	matrices := make([]Matrix, 0, len(t.ScoreTypes))
	for _, scoreType := range t.ScoreTypes {
		matrices = append(matrices, t.Matrix(scoreType))
	}
	return matrices
}

// Distribution returns the non-missing scores one document produced for
// a score type, in row order. A document that never scored the type
// yields an empty slice, never an error.
func (t *Table) Distribution(document, scoreType string) []float64 {
	values := make([]float64, 0, len(t.QuestionIDs))
	for _, qid := range t.QuestionIDs {
		if cell := t.Cell(qid, document, scoreType); cell.Valid {
			values = append(values, cell.Value)
		}
	}
	return values
}
