package lightgbm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

func TestDatasetFromMat(t *testing.T) {
	f := useFakeEngine(t)
	ds := newScenarioDataset(t)

	n, err := ds.NumData()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = ds.NumFeature()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, 1, f.count("LGBM_DatasetSetField"))
}

func TestDatasetFromMatValidation(t *testing.T) {
	f := useFakeEngine(t)

	tests := []struct {
		name       string
		data       []float64
		nrow, ncol int
		label      []float32
	}{
		{"zero rows", nil, 0, 4, nil},
		{"negative columns", scenarioX, 5, -4, nil},
		{"short data", scenarioX[:19], 5, 4, nil},
		{"label length", scenarioX, 5, 4, []float32{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DatasetFromMat(tt.data, tt.nrow, tt.ncol, tt.label, nil)
			assert.True(t, lgbmerrors.IsEncodingError(err), "got %v", err)
		})
	}

	_, err := DatasetFromMat(scenarioX, 5, 4, nil, Params{"max_bin": []int{1}})
	assert.True(t, lgbmerrors.IsEncodingError(err))
	assert.Equal(t, 0, f.totalCalls())
}

func TestDatasetFromMatLabelFailure(t *testing.T) {
	f := useFakeEngine(t)
	f.failFrom("LGBM_DatasetSetField", 1)

	ds, err := DatasetFromMat(scenarioX, 5, 4, scenarioY, nil)
	assert.Nil(t, ds)
	assert.True(t, lgbmerrors.IsNativeCallError(err))
	assert.Equal(t, 1, f.count("LGBM_DatasetFree"))
	assert.Equal(t, 0, f.liveDatasets())
}

func TestDatasetFromRows(t *testing.T) {
	useFakeEngine(t)

	ds, err := DatasetFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}}, []float32{0, 1, 0}, nil)
	require.NoError(t, err)
	defer ds.Free()

	n, err := ds.NumData()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = DatasetFromRows([][]float64{{1, 2}, {3}}, nil, nil)
	assert.True(t, lgbmerrors.IsEncodingError(err))

	_, err = DatasetFromRows(nil, nil, nil)
	assert.True(t, lgbmerrors.IsEncodingError(err))
}

func TestDatasetFromDense(t *testing.T) {
	useFakeEngine(t)

	ds, err := DatasetFromDense(mat.NewDense(5, 4, scenarioX), scenarioY, nil)
	require.NoError(t, err)
	defer ds.Free()

	n, err := ds.NumFeature()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestDatasetFromFile(t *testing.T) {
	t.Run("Loads rows", func(t *testing.T) {
		useFakeEngine(t)
		path := filepath.Join(t.TempDir(), "train.csv")
		require.NoError(t, os.WriteFile(path, []byte("0,1.0,2.0\n1,3.0,4.0\n0,5.0,6.0\n"), 0o644))

		ds, err := DatasetFromFile(path, Params{"header": false})
		require.NoError(t, err)
		defer ds.Free()

		n, err := ds.NumData()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		n, err = ds.NumFeature()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("Missing file", func(t *testing.T) {
		useFakeEngine(t)
		_, err := DatasetFromFile(filepath.Join(t.TempDir(), "missing.csv"), nil)

		var nce *lgbmerrors.NativeCallError
		require.True(t, lgbmerrors.As(err, &nce))
		assert.Equal(t, "LGBM_DatasetCreateFromFile", nce.Call)
		assert.Contains(t, nce.Message, "Could not open")
	})
}

func TestDatasetFree(t *testing.T) {
	f := useFakeEngine(t)
	ds, err := DatasetFromMat(scenarioX, 5, 4, nil, nil)
	require.NoError(t, err)

	require.NoError(t, ds.SetLabel(scenarioY))
	require.NoError(t, ds.Free())
	require.NoError(t, ds.Free())
	assert.Equal(t, 1, f.count("LGBM_DatasetFree"))
	assert.Equal(t, 0, f.liveDatasets())

	_, err = ds.NumData()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, ds.SetLabel(scenarioY), ErrClosed)
}
