package lightgbm

import (
	"github.com/YuminosukeSato/lightgbm-go/capi"
)

// engine is the set of C API entry points the package consumes. capi.Lib
// satisfies it; tests substitute an in-memory implementation.
type engine interface {
	Linked() bool
	LastError() string

	DatasetCreateFromFile(filename, params string, reference capi.DatasetHandle, out *capi.DatasetHandle) int
	DatasetCreateFromMat(data []float64, nrow, ncol int32, rowMajor bool, params string, reference capi.DatasetHandle, out *capi.DatasetHandle) int
	DatasetSetField(h capi.DatasetHandle, field string, data []float32) int
	DatasetGetNumData(h capi.DatasetHandle, out *int32) int
	DatasetGetNumFeature(h capi.DatasetHandle, out *int32) int
	DatasetFree(h capi.DatasetHandle) int

	BoosterCreate(train capi.DatasetHandle, params string, out *capi.BoosterHandle) int
	BoosterCreateFromModelfile(filename string, outNumIterations *int32, out *capi.BoosterHandle) int
	BoosterUpdateOneIter(h capi.BoosterHandle, isFinished *int32) int
	BoosterGetCurrentIteration(h capi.BoosterHandle, out *int32) int
	BoosterGetNumClasses(h capi.BoosterHandle, out *int32) int
	BoosterGetNumFeature(h capi.BoosterHandle, out *int32) int
	BoosterGetFeatureNames(h capi.BoosterHandle, slots [][]byte, outLen *int32, outBufferLen *uint64) int
	BoosterFeatureImportance(h capi.BoosterHandle, numIteration, importanceType int32, out []float64) int
	BoosterPredictForMat(h capi.BoosterHandle, data []float32, nrow, ncol int32, rowMajor bool, predictType, startIteration, numIteration int32, params string, outLen *int64, out []float64) int
	BoosterSaveModel(h capi.BoosterHandle, startIteration, numIteration, importanceType int32, filename string) int
	BoosterFree(h capi.BoosterHandle) int
}

var native engine = capi.Lib{}

// NativeLinked reports whether this binary was built against the LightGBM
// library (build tag "capi"). Without it every operation fails with a
// NativeCallError.
func NativeLinked() bool {
	return native.Linked()
}
