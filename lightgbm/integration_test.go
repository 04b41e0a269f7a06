//go:build capi

package lightgbm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

// LIGHTGBM_BINARY_TRAIN points at LightGBM's examples/binary_classification/binary.train.
const binaryTrainEnv = "LIGHTGBM_BINARY_TRAIN"

func scenarioParams() Params {
	return Params{
		"objective":        "binary",
		"num_iterations":   3,
		"min_data_in_leaf": 1,
		"min_data_in_bin":  1,
		"verbose":          -1,
	}
}

func TestNativeBinaryScenario(t *testing.T) {
	require.True(t, NativeLinked())

	ds, err := DatasetFromMat(scenarioX, 5, 4, scenarioY, Params{"min_data_in_bin": 1, "verbose": -1})
	require.NoError(t, err)
	defer ds.Free()

	b, err := Train(ds, scenarioParams())
	require.NoError(t, err)
	defer b.Close()

	numClass, err := b.NumClass()
	require.NoError(t, err)
	assert.Equal(t, 1, numClass)

	numFeature, err := b.NumFeature()
	require.NoError(t, err)
	assert.Equal(t, 4, numFeature)

	scores, err := b.Predict(scenarioRows(), 4)
	require.NoError(t, err)
	require.Len(t, scores, 5)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}

	names, err := b.FeatureName()
	require.NoError(t, err)
	assert.Len(t, names, 4)

	importance, err := b.FeatureImportance()
	require.NoError(t, err)
	assert.Len(t, importance, 4)

	path := filepath.Join(t.TempDir(), "model.txt")
	require.NoError(t, b.SaveFile(path))
	loaded, err := FromFile(path)
	require.NoError(t, err)
	defer loaded.Close()

	reloaded, err := loaded.Predict(scenarioRows(), 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, scores, reloaded, 1e-9)
}

func TestNativeSingleRoundImportance(t *testing.T) {
	ds, err := DatasetFromMat(scenarioX, 5, 4, scenarioY, Params{"min_data_in_bin": 1, "verbose": -1})
	require.NoError(t, err)
	defer ds.Free()

	p := scenarioParams()
	p["num_iterations"] = 1
	b, err := Train(ds, p)
	require.NoError(t, err)
	defer b.Close()

	importance, err := b.FeatureImportance()
	require.NoError(t, err)
	for _, v := range importance {
		assert.Zero(t, v)
	}
}

func TestNativeFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	var nce *lgbmerrors.NativeCallError
	require.True(t, lgbmerrors.As(err, &nce))
	assert.NotEmpty(t, nce.Message)
}

func TestNativeBinaryTrainFile(t *testing.T) {
	path := os.Getenv(binaryTrainEnv)
	if path == "" {
		t.Skipf("%s not set", binaryTrainEnv)
	}

	ds, err := DatasetFromFile(path, Params{"verbose": -1})
	require.NoError(t, err)
	defer ds.Free()

	b, err := Train(ds, Params{"objective": "binary", "num_iterations": 10, "verbose": -1})
	require.NoError(t, err)
	defer b.Close()

	numFeature, err := b.NumFeature()
	require.NoError(t, err)
	assert.Equal(t, 28, numFeature)

	scores, err := b.Predict(make([]float32, 28*2500+5), 28)
	require.NoError(t, err)
	assert.Len(t, scores, 2500)
}
