// Package metrics evaluates model scores against true labels using the
// metric names LightGBM itself accepts for its "metric" parameter.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

type vectorMetric func(yTrue, yPred *mat.VecDense) (float64, error)

type matrixMetric func(yTrue *mat.VecDense, scores mat.Matrix) (float64, error)

var vectorMetrics = map[string]vectorMetric{
	"l2":             MSE,
	"mse":            MSE,
	"rmse":           RMSE,
	"l1":             MAE,
	"mae":            MAE,
	"r2":             R2Score,
	"binary_logloss": BinaryLogLoss,
	"binary_error":   BinaryError,
	"auc":            AUC,
}

var matrixMetrics = map[string]matrixMetric{
	"multi_logloss": MultiLogLoss,
	"multi_error":   MultiError,
}

// Names lists every metric Evaluate understands.
func Names() []string {
	names := make([]string, 0, len(vectorMetrics)+len(matrixMetrics))
	for name := range vectorMetrics {
		names = append(names, name)
	}
	for name := range matrixMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate computes metric on row-major scores with numClass values per row,
// as returned by Booster.Predict.
func Evaluate(metric string, yTrue []float64, scores []float64, numClass int) (float64, error) {
	if numClass <= 0 || len(scores) != len(yTrue)*numClass {
		return 0, errors.Newf("%s: %d scores do not match %d labels with %d classes", metric, len(scores), len(yTrue), numClass)
	}
	if len(yTrue) == 0 {
		return 0, errors.Newf("%s: no labels", metric)
	}
	labels := mat.NewVecDense(len(yTrue), append([]float64(nil), yTrue...))

	if fn, ok := vectorMetrics[metric]; ok {
		if numClass != 1 {
			return 0, errors.Newf("%s needs one score per row, got %d", metric, numClass)
		}
		return fn(labels, mat.NewVecDense(len(scores), append([]float64(nil), scores...)))
	}
	if fn, ok := matrixMetrics[metric]; ok {
		return fn(labels, mat.NewDense(len(yTrue), numClass, append([]float64(nil), scores...)))
	}
	return 0, errors.Newf("unknown metric %q", metric)
}
