package lightgbm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/lightgbm-go/core/parallel"
	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

// DatasetFromDense builds a dataset from a gonum matrix, one sample per row.
func DatasetFromDense(X mat.Matrix, label []float32, params Params) (*Dataset, error) {
	rows, cols := X.Dims()
	data := make([]float64, rows*cols)
	parallel.Ranges(rows, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < cols; j++ {
				data[i*cols+j] = X.At(i, j)
			}
		}
	})
	return DatasetFromMat(data, rows, cols, label, params)
}

// PredictDense scores every row of X and returns a rows×NumClass matrix.
func (b *Booster) PredictDense(X mat.Matrix) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, lgbmerrors.NewEncodingError("PredictDense", "", "empty matrix", [2]int{rows, cols})
	}
	data := make([]float32, rows*cols)
	parallel.Ranges(rows, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < cols; j++ {
				data[i*cols+j] = float32(X.At(i, j))
			}
		}
	})
	scores, err := b.Predict(data, cols)
	if err != nil {
		return nil, err
	}
	if len(scores)%rows != 0 {
		return nil, lgbmerrors.Newf("lightgbm: engine returned %d scores for %d rows", len(scores), rows)
	}
	return mat.NewDense(rows, len(scores)/rows, scores), nil
}
