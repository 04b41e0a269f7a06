//go:build capi

package capi

/*
#cgo LDFLAGS: -l_lightgbm -lstdc++ -lm
#cgo CFLAGS: -I/usr/local/include

#include <stdlib.h>
#include <stdint.h>
#include <LightGBM/c_api.h>
*/
import "C"
import (
	"unsafe"
)

// Lib calls into the linked LightGBM library.
type Lib struct{}

// Linked reports whether the native library is linked into this binary.
func (Lib) Linked() bool { return true }

// LastError returns the message of the most recent failure on this thread.
func (Lib) LastError() string {
	return C.GoString(C.LGBM_GetLastError())
}

func float32Ptr(data []float32) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func float64Ptr(data []float64) *C.double {
	if len(data) == 0 {
		return nil
	}
	return (*C.double)(unsafe.Pointer(&data[0]))
}

// DatasetCreateFromFile wraps LGBM_DatasetCreateFromFile.
func (Lib) DatasetCreateFromFile(filename, params string, reference DatasetHandle, out *DatasetHandle) int {
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))
	cParams := C.CString(params)
	defer C.free(unsafe.Pointer(cParams))

	var handle C.DatasetHandle
	ret := C.LGBM_DatasetCreateFromFile(cFilename, cParams, C.DatasetHandle(reference), &handle)
	*out = DatasetHandle(handle)
	return int(ret)
}

// DatasetCreateFromMat wraps LGBM_DatasetCreateFromMat for float64 data.
func (Lib) DatasetCreateFromMat(data []float64, nrow, ncol int32, rowMajor bool, params string, reference DatasetHandle, out *DatasetHandle) int {
	cParams := C.CString(params)
	defer C.free(unsafe.Pointer(cParams))

	var handle C.DatasetHandle
	ret := C.LGBM_DatasetCreateFromMat(
		unsafe.Pointer(float64Ptr(data)),
		C.int(DtypeFloat64),
		C.int32_t(nrow),
		C.int32_t(ncol),
		C.int(boolToInt(rowMajor)),
		cParams,
		C.DatasetHandle(reference),
		&handle,
	)
	*out = DatasetHandle(handle)
	return int(ret)
}

// DatasetSetField wraps LGBM_DatasetSetField for float32 fields such as "label".
func (Lib) DatasetSetField(h DatasetHandle, field string, data []float32) int {
	cField := C.CString(field)
	defer C.free(unsafe.Pointer(cField))

	return int(C.LGBM_DatasetSetField(
		C.DatasetHandle(h),
		cField,
		float32Ptr(data),
		C.int(len(data)),
		C.int(DtypeFloat32),
	))
}

// DatasetGetNumData wraps LGBM_DatasetGetNumData.
func (Lib) DatasetGetNumData(h DatasetHandle, out *int32) int {
	var n C.int
	ret := C.LGBM_DatasetGetNumData(C.DatasetHandle(h), &n)
	*out = int32(n)
	return int(ret)
}

// DatasetGetNumFeature wraps LGBM_DatasetGetNumFeature.
func (Lib) DatasetGetNumFeature(h DatasetHandle, out *int32) int {
	var n C.int
	ret := C.LGBM_DatasetGetNumFeature(C.DatasetHandle(h), &n)
	*out = int32(n)
	return int(ret)
}

// DatasetFree wraps LGBM_DatasetFree.
func (Lib) DatasetFree(h DatasetHandle) int {
	return int(C.LGBM_DatasetFree(C.DatasetHandle(h)))
}

// BoosterCreate wraps LGBM_BoosterCreate.
func (Lib) BoosterCreate(train DatasetHandle, params string, out *BoosterHandle) int {
	cParams := C.CString(params)
	defer C.free(unsafe.Pointer(cParams))

	var handle C.BoosterHandle
	ret := C.LGBM_BoosterCreate(C.DatasetHandle(train), cParams, &handle)
	*out = BoosterHandle(handle)
	return int(ret)
}

// BoosterCreateFromModelfile wraps LGBM_BoosterCreateFromModelfile.
func (Lib) BoosterCreateFromModelfile(filename string, outNumIterations *int32, out *BoosterHandle) int {
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))

	var handle C.BoosterHandle
	var numIterations C.int
	ret := C.LGBM_BoosterCreateFromModelfile(cFilename, &numIterations, &handle)
	*outNumIterations = int32(numIterations)
	*out = BoosterHandle(handle)
	return int(ret)
}

// BoosterUpdateOneIter wraps LGBM_BoosterUpdateOneIter.
func (Lib) BoosterUpdateOneIter(h BoosterHandle, isFinished *int32) int {
	var finished C.int
	ret := C.LGBM_BoosterUpdateOneIter(C.BoosterHandle(h), &finished)
	*isFinished = int32(finished)
	return int(ret)
}

// BoosterGetCurrentIteration wraps LGBM_BoosterGetCurrentIteration.
func (Lib) BoosterGetCurrentIteration(h BoosterHandle, out *int32) int {
	var n C.int
	ret := C.LGBM_BoosterGetCurrentIteration(C.BoosterHandle(h), &n)
	*out = int32(n)
	return int(ret)
}

// BoosterGetNumClasses wraps LGBM_BoosterGetNumClasses.
func (Lib) BoosterGetNumClasses(h BoosterHandle, out *int32) int {
	var n C.int
	ret := C.LGBM_BoosterGetNumClasses(C.BoosterHandle(h), &n)
	*out = int32(n)
	return int(ret)
}

// BoosterGetNumFeature wraps LGBM_BoosterGetNumFeature.
func (Lib) BoosterGetNumFeature(h BoosterHandle, out *int32) int {
	var n C.int
	ret := C.LGBM_BoosterGetNumFeature(C.BoosterHandle(h), &n)
	*out = int32(n)
	return int(ret)
}

// BoosterGetFeatureNames wraps LGBM_BoosterGetFeatureNames. Each slot is one
// fixed-width buffer; len(slots[0]) is passed as buffer_len. The names are
// written into C memory and copied into the slots only on success, since cgo
// does not allow handing C an array of Go pointers.
func (Lib) BoosterGetFeatureNames(h BoosterHandle, slots [][]byte, outLen *int32, outBufferLen *uint64) int {
	n := len(slots)
	bufferLen := 0
	if n > 0 {
		bufferLen = len(slots[0])
	}

	var cStrs **C.char
	var ptrs []*C.char
	if n > 0 {
		cStrs = (**C.char)(C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(uintptr(0)))))
		defer C.free(unsafe.Pointer(cStrs))
		ptrs = unsafe.Slice(cStrs, n)
		for i := range ptrs {
			ptrs[i] = (*C.char)(C.calloc(C.size_t(bufferLen), 1))
		}
		defer func() {
			for i := range ptrs {
				C.free(unsafe.Pointer(ptrs[i]))
			}
		}()
	}

	var cOutLen C.int
	var cOutBufferLen C.size_t
	ret := C.LGBM_BoosterGetFeatureNames(
		C.BoosterHandle(h),
		C.int(n),
		&cOutLen,
		C.size_t(bufferLen),
		&cOutBufferLen,
		cStrs,
	)
	*outLen = int32(cOutLen)
	*outBufferLen = uint64(cOutBufferLen)
	if ret == 0 {
		for i := range ptrs {
			copy(slots[i], unsafe.Slice((*byte)(unsafe.Pointer(ptrs[i])), bufferLen))
		}
	}
	return int(ret)
}

// BoosterFeatureImportance wraps LGBM_BoosterFeatureImportance.
func (Lib) BoosterFeatureImportance(h BoosterHandle, numIteration, importanceType int32, out []float64) int {
	return int(C.LGBM_BoosterFeatureImportance(
		C.BoosterHandle(h),
		C.int(numIteration),
		C.int(importanceType),
		float64Ptr(out),
	))
}

// BoosterPredictForMat wraps LGBM_BoosterPredictForMat for float32 input.
func (Lib) BoosterPredictForMat(h BoosterHandle, data []float32, nrow, ncol int32, rowMajor bool, predictType, startIteration, numIteration int32, params string, outLen *int64, out []float64) int {
	cParams := C.CString(params)
	defer C.free(unsafe.Pointer(cParams))

	var cOutLen C.int64_t
	ret := C.LGBM_BoosterPredictForMat(
		C.BoosterHandle(h),
		float32Ptr(data),
		C.int(DtypeFloat32),
		C.int32_t(nrow),
		C.int32_t(ncol),
		C.int(boolToInt(rowMajor)),
		C.int(predictType),
		C.int(startIteration),
		C.int(numIteration),
		cParams,
		&cOutLen,
		float64Ptr(out),
	)
	*outLen = int64(cOutLen)
	return int(ret)
}

// BoosterSaveModel wraps LGBM_BoosterSaveModel.
func (Lib) BoosterSaveModel(h BoosterHandle, startIteration, numIteration, importanceType int32, filename string) int {
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))

	return int(C.LGBM_BoosterSaveModel(
		C.BoosterHandle(h),
		C.int(startIteration),
		C.int(numIteration),
		C.int(importanceType),
		cFilename,
	))
}

// BoosterFree wraps LGBM_BoosterFree.
func (Lib) BoosterFree(h BoosterHandle) int {
	return int(C.LGBM_BoosterFree(C.BoosterHandle(h)))
}
