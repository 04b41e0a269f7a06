// Package capi is the raw binding to the LightGBM C API.
//
// Every method of Lib maps to exactly one C entry point, returns the entry
// point's integer status (0 on success) unchanged, and writes its outputs
// through pointer or slice parameters the way the C functions do. Outputs are
// undefined unless the status is 0. Nothing here interprets failures; callers
// must read LastError immediately after a nonzero status, on the same OS
// thread.
//
// The cgo implementation is compiled with the "capi" build tag and links
// lib_lightgbm:
//
//	CGO_CFLAGS=-I$PREFIX/include CGO_LDFLAGS=-L$PREFIX/lib go build -tags capi ./...
//
// Without the tag a stub with the same surface is compiled; every call fails
// and LastError explains that the engine is not linked.
package capi

import "unsafe"

// BoosterHandle is an opaque LightGBM booster handle. The zero value is nil.
type BoosterHandle unsafe.Pointer

// DatasetHandle is an opaque LightGBM dataset handle. The zero value is nil.
type DatasetHandle unsafe.Pointer

// Data types (C_API_DTYPE_*).
const (
	DtypeFloat32 = 0
	DtypeFloat64 = 1
	DtypeInt32   = 2
	DtypeInt64   = 3
)

// Prediction types (C_API_PREDICT_*).
const (
	PredictNormal    = 0
	PredictRawScore  = 1
	PredictLeafIndex = 2
	PredictContrib   = 3
)

// Feature importance types (C_API_FEATURE_IMPORTANCE_*).
const (
	ImportanceSplit = 0
	ImportanceGain  = 1
)

// notLinkedMessage is what the stub reports as the last error.
const notLinkedMessage = "LightGBM native library is not linked into this binary; rebuild with -tags capi"

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
