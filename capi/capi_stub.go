//go:build !capi

package capi

// Lib is the not-linked stand-in. Every entry point fails with status -1.
type Lib struct{}

const notLinked = -1

// Linked reports whether the native library is linked into this binary.
func (Lib) Linked() bool { return false }

// LastError explains that the native library is missing.
func (Lib) LastError() string { return notLinkedMessage }

func (Lib) DatasetCreateFromFile(filename, params string, reference DatasetHandle, out *DatasetHandle) int {
	*out = nil
	return notLinked
}

func (Lib) DatasetCreateFromMat(data []float64, nrow, ncol int32, rowMajor bool, params string, reference DatasetHandle, out *DatasetHandle) int {
	*out = nil
	return notLinked
}

func (Lib) DatasetSetField(h DatasetHandle, field string, data []float32) int { return notLinked }

func (Lib) DatasetGetNumData(h DatasetHandle, out *int32) int { return notLinked }

func (Lib) DatasetGetNumFeature(h DatasetHandle, out *int32) int { return notLinked }

func (Lib) DatasetFree(h DatasetHandle) int { return notLinked }

func (Lib) BoosterCreate(train DatasetHandle, params string, out *BoosterHandle) int {
	*out = nil
	return notLinked
}

func (Lib) BoosterCreateFromModelfile(filename string, outNumIterations *int32, out *BoosterHandle) int {
	*out = nil
	return notLinked
}

func (Lib) BoosterUpdateOneIter(h BoosterHandle, isFinished *int32) int { return notLinked }

func (Lib) BoosterGetCurrentIteration(h BoosterHandle, out *int32) int { return notLinked }

func (Lib) BoosterGetNumClasses(h BoosterHandle, out *int32) int { return notLinked }

func (Lib) BoosterGetNumFeature(h BoosterHandle, out *int32) int { return notLinked }

func (Lib) BoosterGetFeatureNames(h BoosterHandle, slots [][]byte, outLen *int32, outBufferLen *uint64) int {
	return notLinked
}

func (Lib) BoosterFeatureImportance(h BoosterHandle, numIteration, importanceType int32, out []float64) int {
	return notLinked
}

func (Lib) BoosterPredictForMat(h BoosterHandle, data []float32, nrow, ncol int32, rowMajor bool, predictType, startIteration, numIteration int32, params string, outLen *int64, out []float64) int {
	return notLinked
}

func (Lib) BoosterSaveModel(h BoosterHandle, startIteration, numIteration, importanceType int32, filename string) int {
	return notLinked
}

func (Lib) BoosterFree(h BoosterHandle) int { return notLinked }
