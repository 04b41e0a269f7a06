package lightgbm

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/lightgbm-go/capi"
	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
	"github.com/YuminosukeSato/lightgbm-go/pkg/log"
)

// ErrClosed is returned by every method of a Booster or Dataset whose native
// handle has already been released.
var ErrClosed = lgbmerrors.New("lightgbm: handle already released")

// Booster owns one trained or loaded LightGBM model.
//
// All methods are safe for concurrent use; calls on the same Booster are
// serialised because the engine does not allow concurrent use of one handle.
// Close releases the native model. A Booster that becomes unreachable without
// Close is released by a finalizer, which logs a warning.
type Booster struct {
	mu      sync.Mutex
	handle  capi.BoosterHandle
	id      string
	dataset *Dataset
}

func newBooster(handle capi.BoosterHandle, ds *Dataset) *Booster {
	b := &Booster{handle: handle, id: uuid.NewString(), dataset: ds}
	liveHandles.WithLabelValues("booster").Inc()
	runtime.SetFinalizer(b, (*Booster).finalize)
	return b
}

func (b *Booster) logger() log.Logger {
	return log.GetLoggerWithName("lightgbm.booster").With(
		log.ModelNameKey, "Booster",
		log.EstimatorIDKey, b.id,
	)
}

// Train creates a booster on ds and runs the requested number of boosting
// rounds: num_iterations, 100 when absent. Aliases such as num_trees reach
// the engine unchanged but do not alter the round count. Creation is counted
// as the first round, so Train makes num_iterations-1 update calls. A round
// in which the engine reports that no further split is possible does not end
// training early.
//
// If a round fails the partially trained model is released before the error
// is returned.
//
// Example:
//
//	booster, err := lightgbm.Train(ds, lightgbm.Params{
//	    "objective":      "binary",
//	    "num_iterations": 50,
//	})
//	if err != nil {
//	    return err
//	}
//	defer booster.Close()
func Train(ds *Dataset, params Params) (*Booster, error) {
	iterations, err := numIterations(params)
	if err != nil {
		return nil, err
	}
	paramStr, err := params.Encode()
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, lgbmerrors.NewEncodingError("Train", "", "dataset is nil", nil)
	}
	dsHandle, err := ds.acquire()
	if err != nil {
		return nil, err
	}
	defer ds.release()

	logger := log.GetLoggerWithName("lightgbm.booster")
	logger.Debug("Training started",
		log.OperationKey, log.OperationTrain,
		log.IterationsKey, iterations,
		"params", paramStr,
	)
	start := time.Now()

	var handle capi.BoosterHandle
	if err := call("LGBM_BoosterCreate", func() int {
		return native.BoosterCreate(dsHandle, paramStr, &handle)
	}); err != nil {
		return nil, err
	}

	var finished int32
	reported := false
	for i := 1; i < iterations; i++ {
		if err := call("LGBM_BoosterUpdateOneIter", func() int {
			return native.BoosterUpdateOneIter(handle, &finished)
		}); err != nil {
			freeErr := call("LGBM_BoosterFree", func() int { return native.BoosterFree(handle) })
			logger.Error("Training failed", err, log.OperationKey, log.OperationUpdate, log.IterationKey, i+1)
			return nil, lgbmerrors.CombineErrors(
				lgbmerrors.Wrapf(err, "boosting round %d of %d", i+1, iterations),
				freeErr,
			)
		}
		if finished != 0 && !reported {
			logger.Debug("Engine reports no further splits; continuing",
				log.IterationKey, i+1,
				log.IterationsKey, iterations,
			)
			reported = true
		}
	}

	b := newBooster(handle, ds)
	b.logger().Info("Training finished",
		log.OperationKey, log.OperationTrain,
		log.IterationsKey, iterations,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return b, nil
}

// FromFile loads a model previously written by SaveFile (or any LightGBM
// text model file).
func FromFile(path string) (*Booster, error) {
	if err := checkCString("FromFile", "path", path); err != nil {
		return nil, err
	}
	var handle capi.BoosterHandle
	var iterations int32
	if err := call("LGBM_BoosterCreateFromModelfile", func() int {
		return native.BoosterCreateFromModelfile(path, &iterations, &handle)
	}); err != nil {
		return nil, lgbmerrors.Wrapf(err, "load model %s", path)
	}

	b := newBooster(handle, nil)
	b.logger().Info("Model loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
		log.IterationsKey, int(iterations),
	)
	return b, nil
}

// withHandle runs fn with the booster locked and its handle open.
func (b *Booster) withHandle(fn func(h capi.BoosterHandle) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == nil {
		return ErrClosed
	}
	return fn(b.handle)
}

// UpdateOneIter runs one more boosting round on the training dataset and
// reports whether the engine considers training finished. It returns
// ErrClosed once the training dataset has been freed.
func (b *Booster) UpdateOneIter() (finished bool, err error) {
	err = b.withHandle(func(h capi.BoosterHandle) error {
		if b.dataset == nil {
			return lgbmerrors.New("lightgbm: booster was loaded from a file and has no training data")
		}
		if _, err := b.dataset.acquire(); err != nil {
			return lgbmerrors.Wrap(err, "training dataset")
		}
		defer b.dataset.release()

		var flag int32
		if err := call("LGBM_BoosterUpdateOneIter", func() int {
			return native.BoosterUpdateOneIter(h, &flag)
		}); err != nil {
			return err
		}
		finished = flag != 0
		return nil
	})
	return finished, err
}

// CurrentIteration returns the number of update rounds the engine has run.
// Booster creation trains no round, so after Train this is one less than
// num_iterations.
func (b *Booster) CurrentIteration() (int, error) {
	return b.query("LGBM_BoosterGetCurrentIteration", native.BoosterGetCurrentIteration)
}

// NumClass returns the number of classes; 1 for regression and binary models.
func (b *Booster) NumClass() (int, error) {
	return b.query("LGBM_BoosterGetNumClasses", native.BoosterGetNumClasses)
}

// NumFeature returns the number of features the model was trained on.
func (b *Booster) NumFeature() (int, error) {
	return b.query("LGBM_BoosterGetNumFeature", native.BoosterGetNumFeature)
}

func (b *Booster) query(name string, fn func(capi.BoosterHandle, *int32) int) (int, error) {
	var n int
	err := b.withHandle(func(h capi.BoosterHandle) error {
		var err error
		n, err = queryInt(name, h, fn)
		return err
	})
	return n, err
}

func queryInt(name string, h capi.BoosterHandle, fn func(capi.BoosterHandle, *int32) int) (int, error) {
	var out int32
	if err := call(name, func() int { return fn(h, &out) }); err != nil {
		return 0, err
	}
	return int(out), nil
}

// Predict scores a dense row-major matrix of float32 features with
// numFeatures columns. Trailing values that do not fill a whole row are
// ignored with a TruncationWarning. The result holds NumClass scores per row,
// row by row.
//
// Example:
//
//	scores, err := booster.Predict([]float32{
//	    0.1, 0.2, 0.3, 0.4,
//	    0.5, 0.6, 0.7, 0.8,
//	}, 4)
func (b *Booster) Predict(data []float32, numFeatures int) ([]float64, error) {
	if numFeatures <= 0 {
		return nil, lgbmerrors.NewEncodingError("Predict", "", "number of features must be positive", numFeatures)
	}
	if numFeatures > math.MaxInt32 {
		return nil, lgbmerrors.NewEncodingError("Predict", "", "number of features out of range", numFeatures)
	}
	nrow := len(data) / numFeatures
	if nrow == 0 {
		return nil, lgbmerrors.NewEncodingError("Predict", "", "input holds less than one row", len(data))
	}
	if nrow > math.MaxInt32 {
		return nil, lgbmerrors.NewEncodingError("Predict", "", "too many rows", nrow)
	}
	if rest := len(data) - nrow*numFeatures; rest > 0 {
		lgbmerrors.Warn(lgbmerrors.NewTruncationWarning("Predict", "trailing feature values", nrow*numFeatures, rest))
	}
	rows := data[:nrow*numFeatures]

	var scores []float64
	err := b.withHandle(func(h capi.BoosterHandle) error {
		numClass, err := queryInt("LGBM_BoosterGetNumClasses", h, native.BoosterGetNumClasses)
		if err != nil {
			return err
		}
		buf := newScoreBuffer(nrow * numClass)
		var outLen int64
		if err := call("LGBM_BoosterPredictForMat", func() int {
			return native.BoosterPredictForMat(h, rows, int32(nrow), int32(numFeatures), true,
				capi.PredictNormal, 0, -1, "", &outLen, buf.data)
		}); err != nil {
			return err
		}
		scores = buf.owned(outLen)
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.logger().Debug("Prediction finished",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, nrow,
		log.PredsKey, len(scores),
	)
	return scores, nil
}

// FeatureName returns the model's feature names in column order. Names
// longer than FeatureNameCapacity characters are truncated.
func (b *Booster) FeatureName() ([]string, error) {
	var names []string
	err := b.withHandle(func(h capi.BoosterHandle) error {
		numFeature, err := queryInt("LGBM_BoosterGetNumFeature", h, native.BoosterGetNumFeature)
		if err != nil {
			return err
		}
		buf := newNameBuffer(numFeature, FeatureNameCapacity)
		var outLen int32
		var required uint64
		if err := call("LGBM_BoosterGetFeatureNames", func() int {
			return native.BoosterGetFeatureNames(h, buf.slots, &outLen, &required)
		}); err != nil {
			return err
		}
		if required > uint64(buf.width) {
			lgbmerrors.Warn(lgbmerrors.NewTruncationWarning("FeatureName", "feature name characters",
				FeatureNameCapacity, int(required)-buf.width))
		}
		names = buf.strings(int(outLen))
		return nil
	})
	return names, err
}

// FeatureImportance returns the split-count importance of every feature,
// computed over all iterations.
func (b *Booster) FeatureImportance() ([]float64, error) {
	var importance []float64
	err := b.withHandle(func(h capi.BoosterHandle) error {
		numFeature, err := queryInt("LGBM_BoosterGetNumFeature", h, native.BoosterGetNumFeature)
		if err != nil {
			return err
		}
		buf := newScoreBuffer(numFeature)
		if err := call("LGBM_BoosterFeatureImportance", func() int {
			return native.BoosterFeatureImportance(h, 0, capi.ImportanceSplit, buf.data)
		}); err != nil {
			return err
		}
		importance = buf.owned(-1)
		return nil
	})
	return importance, err
}

// SaveFile writes the whole model to path in LightGBM's text format.
func (b *Booster) SaveFile(path string) error {
	if err := checkCString("SaveFile", "path", path); err != nil {
		return err
	}
	err := b.withHandle(func(h capi.BoosterHandle) error {
		return call("LGBM_BoosterSaveModel", func() int {
			return native.BoosterSaveModel(h, 0, -1, capi.ImportanceSplit, path)
		})
	})
	if err != nil {
		return lgbmerrors.Wrapf(err, "save model %s", path)
	}
	b.logger().Info("Model saved", log.OperationKey, log.OperationSave, log.PathKey, path)
	return nil
}

// Close releases the native model. Only the first call reaches the engine;
// later calls return nil. If the engine reports a failure the handle is still
// considered released and the error is returned.
func (b *Booster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == nil {
		return nil
	}
	handle := b.handle
	b.handle = nil
	b.dataset = nil
	runtime.SetFinalizer(b, nil)
	liveHandles.WithLabelValues("booster").Dec()

	if err := call("LGBM_BoosterFree", func() int { return native.BoosterFree(handle) }); err != nil {
		b.logger().Error("Failed to free booster", err, log.OperationKey, log.OperationFree)
		return err
	}
	return nil
}

func (b *Booster) finalize() {
	b.logger().Warn("Booster collected without Close; releasing native handle")
	_ = b.Close()
}
