package lightgbm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

func TestRankedImportance(t *testing.T) {
	useFakeEngine(t)
	b := trainScenario(t, Params{"num_iterations": 3})

	entries, err := b.RankedImportance()
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "Column_3", entries[0].Name)
	assert.Equal(t, 8.0, entries[0].Importance)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Importance, entries[i].Importance)
	}
}

func TestPlotImportance(t *testing.T) {
	t.Run("Writes image", func(t *testing.T) {
		useFakeEngine(t)
		b := trainScenario(t, Params{"num_iterations": 3})
		path := filepath.Join(t.TempDir(), "importance.png")

		require.NoError(t, PlotImportance(b, path, ImportancePlotOptions{TopN: 2}))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("Closed booster", func(t *testing.T) {
		useFakeEngine(t)
		b := trainScenario(t, Params{"num_iterations": 1})
		require.NoError(t, b.Close())

		err := PlotImportance(b, filepath.Join(t.TempDir(), "importance.svg"), ImportancePlotOptions{})
		assert.True(t, lgbmerrors.Is(err, ErrClosed))
	})
}
