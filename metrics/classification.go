package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

// probEpsilon は log(0) を避けるための確率のクリップ幅
const probEpsilon = 1e-15

func clipProb(p float64) float64 {
	return math.Min(math.Max(p, probEpsilon), 1-probEpsilon)
}

// BinaryLogLoss は二値分類の交差エントロピー（LightGBMの binary_logloss）を計算する。
// yPred は陽性クラスの確率。
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := clipProb(yPred.AtVec(i))
		if yTrue.AtVec(i) > 0 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(n), nil
}

// BinaryError は閾値0.5での誤分類率（LightGBMの binary_error）を計算する
func BinaryError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryError", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	wrong := 0
	for i := 0; i < n; i++ {
		predicted := yPred.AtVec(i) > 0.5
		actual := yTrue.AtVec(i) > 0
		if predicted != actual {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

// AUC はROC曲線下面積を計算する。同順位のスコアは平均順位で扱う。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return yPred.AtVec(idx[a]) < yPred.AtVec(idx[b]) })

	// 陽性サンプルの順位和（Mann-Whitney U）
	var rankSum float64
	positives := 0
	for i := 0; i < n; {
		j := i
		for j+1 < n && yPred.AtVec(idx[j+1]) == yPred.AtVec(idx[i]) {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue.AtVec(idx[k]) > 0 {
				rankSum += avgRank
				positives++
			}
		}
		i = j + 1
	}

	negatives := n - positives
	if positives == 0 || negatives == 0 {
		return 0, errors.Newf("AUC: yTrue must contain both classes")
	}
	u := rankSum - float64(positives*(positives+1))/2
	return u / float64(positives*negatives), nil
}

// MultiLogLoss は多クラス分類の交差エントロピー（LightGBMの multi_logloss）を計算する。
// scores は n×K の確率行列、yTrue はクラス番号。
func MultiLogLoss(yTrue *mat.VecDense, scores mat.Matrix) (float64, error) {
	n, k, err := checkClassScores("MultiLogLoss", yTrue, scores)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		class := int(yTrue.AtVec(i))
		if class < 0 || class >= k {
			return 0, errors.Newf("MultiLogLoss: label %d at row %d outside [0, %d)", class, i, k)
		}
		sum -= math.Log(clipProb(scores.At(i, class)))
	}
	return sum / float64(n), nil
}

// MultiError は最大確率クラスでの誤分類率（LightGBMの multi_error）を計算する
func MultiError(yTrue *mat.VecDense, scores mat.Matrix) (float64, error) {
	n, k, err := checkClassScores("MultiError", yTrue, scores)
	if err != nil {
		return 0, err
	}

	wrong := 0
	for i := 0; i < n; i++ {
		best := 0
		for c := 1; c < k; c++ {
			if scores.At(i, c) > scores.At(i, best) {
				best = c
			}
		}
		if best != int(yTrue.AtVec(i)) {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

func checkClassScores(op string, yTrue *mat.VecDense, scores mat.Matrix) (int, int, error) {
	n := yTrue.Len()
	r, k := scores.Dims()
	if n == 0 {
		return 0, 0, errors.Newf("%s: empty vector", op)
	}
	if r != n {
		return 0, 0, errors.Newf("%s: length mismatch, yTrue has %d values, scores have %d rows", op, n, r)
	}
	return n, k, nil
}
