package lightgbm

import (
	"math"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/lightgbm-go/capi"
	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
	"github.com/YuminosukeSato/lightgbm-go/pkg/log"
)

// Dataset owns a native LightGBM dataset handle.
//
// Free may be called while a Booster trained on the dataset is still open.
// Predictions keep working; UpdateOneIter on that Booster returns ErrClosed.
// Each round holds the dataset lock, so Free waits for a running round.
type Dataset struct {
	mu     sync.Mutex
	handle capi.DatasetHandle
	id     string
}

func newDataset(handle capi.DatasetHandle) *Dataset {
	d := &Dataset{handle: handle, id: uuid.NewString()}
	liveHandles.WithLabelValues("dataset").Inc()
	runtime.SetFinalizer(d, (*Dataset).finalize)
	return d
}

func (d *Dataset) logger() log.Logger {
	return log.GetLoggerWithName("lightgbm.dataset").With(
		log.ModelNameKey, "Dataset",
		log.EstimatorIDKey, d.id,
	)
}

// DatasetFromFile loads a dataset from a LightGBM-readable text file (CSV,
// TSV or LibSVM). Parameters such as "header=true" or "label_column=0"
// control parsing.
func DatasetFromFile(path string, params Params) (*Dataset, error) {
	if err := checkCString("DatasetFromFile", "path", path); err != nil {
		return nil, err
	}
	paramStr, err := params.Encode()
	if err != nil {
		return nil, err
	}

	var handle capi.DatasetHandle
	if err := call("LGBM_DatasetCreateFromFile", func() int {
		return native.DatasetCreateFromFile(path, paramStr, nil, &handle)
	}); err != nil {
		return nil, lgbmerrors.Wrapf(err, "load dataset %s", path)
	}

	d := newDataset(handle)
	d.logger().Info("Dataset loaded", log.OperationKey, log.OperationConstruct, log.PathKey, path)
	return d, nil
}

// DatasetFromMat builds a dataset from a dense row-major nrow×ncol matrix.
// label may be nil and set later with SetLabel.
//
// Example:
//
//	ds, err := lightgbm.DatasetFromMat(x, 5, 4, []float32{0, 1, 0, 1, 1}, nil)
func DatasetFromMat(data []float64, nrow, ncol int, label []float32, params Params) (*Dataset, error) {
	if nrow <= 0 || ncol <= 0 {
		return nil, lgbmerrors.NewEncodingError("DatasetFromMat", "", "matrix dimensions must be positive", [2]int{nrow, ncol})
	}
	if nrow > math.MaxInt32 || ncol > math.MaxInt32 || nrow*ncol != len(data) {
		return nil, lgbmerrors.NewEncodingError("DatasetFromMat", "", "data length does not match dimensions", len(data))
	}
	if label != nil && len(label) != nrow {
		return nil, lgbmerrors.NewEncodingError("DatasetFromMat", "", "label length does not match row count", len(label))
	}
	paramStr, err := params.Encode()
	if err != nil {
		return nil, err
	}

	var handle capi.DatasetHandle
	if err := call("LGBM_DatasetCreateFromMat", func() int {
		return native.DatasetCreateFromMat(data, int32(nrow), int32(ncol), true, paramStr, nil, &handle)
	}); err != nil {
		return nil, err
	}

	if label != nil {
		if err := call("LGBM_DatasetSetField", func() int {
			return native.DatasetSetField(handle, "label", label)
		}); err != nil {
			freeErr := call("LGBM_DatasetFree", func() int { return native.DatasetFree(handle) })
			return nil, lgbmerrors.CombineErrors(err, freeErr)
		}
	}

	d := newDataset(handle)
	d.logger().Debug("Dataset constructed",
		log.OperationKey, log.OperationConstruct,
		log.SamplesKey, nrow,
		log.FeaturesKey, ncol,
	)
	return d, nil
}

// DatasetFromRows builds a dataset from equally long rows.
func DatasetFromRows(rows [][]float64, label []float32, params Params) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, lgbmerrors.NewEncodingError("DatasetFromRows", "", "no rows", 0)
	}
	ncol := len(rows[0])
	data := make([]float64, 0, len(rows)*ncol)
	for i, row := range rows {
		if len(row) != ncol {
			return nil, lgbmerrors.NewEncodingError("DatasetFromRows", "", "ragged rows", i)
		}
		data = append(data, row...)
	}
	return DatasetFromMat(data, len(rows), ncol, label, params)
}

// SetLabel sets the training labels, one per row.
func (d *Dataset) SetLabel(label []float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handle == nil {
		return ErrClosed
	}
	return call("LGBM_DatasetSetField", func() int {
		return native.DatasetSetField(d.handle, "label", label)
	})
}

// NumData returns the number of rows.
func (d *Dataset) NumData() (int, error) {
	return d.query("LGBM_DatasetGetNumData", native.DatasetGetNumData)
}

// NumFeature returns the number of feature columns.
func (d *Dataset) NumFeature() (int, error) {
	return d.query("LGBM_DatasetGetNumFeature", native.DatasetGetNumFeature)
}

func (d *Dataset) query(name string, fn func(capi.DatasetHandle, *int32) int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handle == nil {
		return 0, ErrClosed
	}
	var n int32
	if err := call(name, func() int { return fn(d.handle, &n) }); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Free releases the native dataset. It is safe to call more than once; only
// the first call reaches the engine.
func (d *Dataset) Free() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.handle == nil {
		return nil
	}
	handle := d.handle
	d.handle = nil
	runtime.SetFinalizer(d, nil)
	liveHandles.WithLabelValues("dataset").Dec()

	if err := call("LGBM_DatasetFree", func() int { return native.DatasetFree(handle) }); err != nil {
		d.logger().Error("Failed to free dataset", err, log.OperationKey, log.OperationFree)
		return err
	}
	return nil
}

// acquire locks d and returns its handle. The caller must call release.
func (d *Dataset) acquire() (capi.DatasetHandle, error) {
	d.mu.Lock()
	if d.handle == nil {
		d.mu.Unlock()
		return nil, ErrClosed
	}
	return d.handle, nil
}

func (d *Dataset) release() {
	d.mu.Unlock()
}

func (d *Dataset) finalize() {
	d.logger().Warn("Dataset collected without Free; releasing native handle")
	_ = d.Free()
}
