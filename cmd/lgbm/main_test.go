package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/lightgbm-go/lightgbm"
	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
	"github.com/YuminosukeSato/lightgbm-go/pkg/log"
)

func TestCollectParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("objective: binary\nnum_iterations: 50\n"), 0o644))

	params, err := collectParams(path, []string{"num_iterations=10", "metric=auc"})
	require.NoError(t, err)
	assert.Equal(t, lightgbm.Params{
		"objective":      "binary",
		"num_iterations": "10",
		"metric":         "auc",
	}, params)

	s, err := params.Encode()
	require.NoError(t, err)
	assert.Equal(t, "metric=auc num_iterations=10 objective=binary", s)

	_, err = collectParams("", []string{"broken"})
	assert.True(t, lgbmerrors.IsEncodingError(err))
}

func TestReadRows(t *testing.T) {
	data, ncol, err := readRows(strings.NewReader("a,b,c\n1,2,3\n4, 5,6\n"), true)
	require.NoError(t, err)
	assert.Equal(t, 3, ncol)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, data)

	_, _, err = readRows(strings.NewReader("1,2\n3\n"), false)
	assert.Error(t, err, "ragged rows")

	_, _, err = readRows(strings.NewReader("1,x\n"), false)
	assert.Error(t, err)

	_, _, err = readRows(strings.NewReader(""), false)
	assert.Error(t, err)
}

func TestWriteScores(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeScores(&buf, []float64{0.1, 0.9, 0.25, 0.75}, 2))
	assert.Equal(t, "0.1,0.9\n0.25,0.75\n", buf.String())
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (c *failingCloser) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndClose(t *testing.T) {
	t.Run("Close failure is reported", func(t *testing.T) {
		w := &failingCloser{closeErr: lgbmerrors.New("disk full")}
		err := writeAndClose(w, []float64{0.5}, 1)
		assert.ErrorContains(t, err, "disk full")
		assert.True(t, w.closed)
		assert.Equal(t, "0.5\n", w.String())
	})

	t.Run("Clean close", func(t *testing.T) {
		w := &failingCloser{}
		require.NoError(t, writeAndClose(w, []float64{0.5}, 1))
		assert.True(t, w.closed)
	})
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(log.SetProvider(log.NewZerologProvider(&bytes.Buffer{}, log.LevelError)))
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootFlags(t *testing.T) {
	_, err := runCLI(t, "info", "--model", "model.txt", "--log-format", "xml")
	assert.ErrorContains(t, err, "unknown log format")

	_, err = runCLI(t, "info", "--model", "model.txt", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = runCLI(t, "train")
	assert.ErrorContains(t, err, "data")
}

func TestCommandsReportNativeFailures(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")

	_, err := runCLI(t, "train", "--data", missing, "--out", filepath.Join(dir, "model.txt"))
	assert.True(t, lgbmerrors.IsNativeCallError(err), "got %v", err)

	_, err = runCLI(t, "info", "--model", missing)
	assert.True(t, lgbmerrors.IsNativeCallError(err), "got %v", err)

	_, err = runCLI(t, "importance", "--model", missing, "--metrics")
	assert.True(t, lgbmerrors.IsNativeCallError(err), "got %v", err)
}

func TestSplitLabel(t *testing.T) {
	features, labels, err := splitLabel([]float32{1, 10, 11, 0, 20, 21}, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []float32{10, 11, 20, 21}, features)
	assert.Equal(t, []float64{1, 0}, labels)

	features, labels, err = splitLabel([]float32{10, 11, 1, 20, 21, 0}, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{10, 11, 20, 21}, features)
	assert.Equal(t, []float64{1, 0}, labels)

	_, _, err = splitLabel([]float32{1, 2}, 2, 2)
	assert.Error(t, err)
	_, _, err = splitLabel([]float32{1, 2}, 1, 0)
	assert.Error(t, err)
}
