// Package lightgbm is a safe Go layer over the LightGBM C API.
//
// It owns native dataset and booster handles, releases each exactly once,
// and turns every failed native call into a *errors.NativeCallError carrying
// the entry point name, its status code and the engine's last error message.
// Arguments that cannot be expressed to the engine are rejected up front with
// *errors.EncodingError, before any native call is made.
//
// The cgo binding is only compiled with the "capi" build tag; see package
// capi. Without it every native call fails.
//
// Basic usage:
//
//	ds, err := lightgbm.DatasetFromMat(x, nrow, ncol, y, nil)
//	if err != nil {
//	    return err
//	}
//	defer ds.Free()
//
//	booster, err := lightgbm.Train(ds, lightgbm.Params{"objective": "binary"})
//	if err != nil {
//	    return err
//	}
//	defer booster.Close()
//
//	scores, err := booster.Predict(xTest, ncol)
//
// Native calls are counted and timed in Prometheus collectors; expose them
// with RegisterMetrics.
package lightgbm
