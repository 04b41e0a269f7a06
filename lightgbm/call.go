package lightgbm

import (
	"runtime"
	"strings"
	"time"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

// call runs one native entry point and converts its status into an error.
//
// All native invocations in this package go through call. The goroutine stays
// locked to its OS thread from the call until the last error has been read:
// LightGBM keeps that message in a per-thread slot that the next call on the
// same thread overwrites, and the Go scheduler could otherwise move the
// goroutine between the two.
func call(name string, fn func() int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	start := time.Now()
	ret := fn()
	if ret == 0 {
		observeCall(name, outcomeSuccess, start)
		return nil
	}
	msg := native.LastError()
	observeCall(name, outcomeFailure, start)
	return lgbmerrors.NewNativeCallError(name, ret, msg)
}

// checkCString rejects strings that cannot cross the boundary as C strings.
func checkCString(op, param, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return lgbmerrors.NewEncodingError(op, param, "contains a NUL byte", s)
	}
	return nil
}
