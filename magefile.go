//go:build mage

// Build targets for the native library and the test suites.
//
//	LIGHTGBM_SRC=~/src/LightGBM mage integration
package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

// Default target when mage runs without arguments.
var Default = Test

func lightgbmSrc() string {
	if src := os.Getenv("LIGHTGBM_SRC"); src != "" {
		return src
	}
	return filepath.Join("third_party", "LightGBM")
}

func lightgbmPrefix() (string, error) {
	prefix := os.Getenv("LIGHTGBM_PREFIX")
	if prefix == "" {
		prefix = ".lightgbm"
	}
	return filepath.Abs(prefix)
}

// cgoEnv points cgo and the dynamic loader at the installed library.
func cgoEnv() (map[string]string, error) {
	prefix, err := lightgbmPrefix()
	if err != nil {
		return nil, err
	}
	lib := filepath.Join(prefix, "lib")
	return map[string]string{
		"CGO_ENABLED":     "1",
		"CGO_CFLAGS":      "-I" + filepath.Join(prefix, "include"),
		"CGO_LDFLAGS":     "-L" + lib + " -Wl,-rpath," + lib,
		"LD_LIBRARY_PATH": lib,
	}, nil
}

// Native configures, builds and installs lib_lightgbm from LIGHTGBM_SRC
// into LIGHTGBM_PREFIX (default ./.lightgbm) in Release mode.
func Native() error {
	src := lightgbmSrc()
	if _, err := os.Stat(filepath.Join(src, "CMakeLists.txt")); err != nil {
		return lgbmerrors.Wrapf(err, "no LightGBM checkout at %s; set LIGHTGBM_SRC", src)
	}
	prefix, err := lightgbmPrefix()
	if err != nil {
		return err
	}
	build := filepath.Join(src, "build")

	if err := sh.RunV("cmake", "-S", src, "-B", build,
		"-DCMAKE_BUILD_TYPE=Release",
		"-DCMAKE_INSTALL_PREFIX="+prefix,
	); err != nil {
		return lgbmerrors.Wrap(err, "cmake configure")
	}
	if err := sh.RunV("cmake", "--build", build, "--parallel", strconv.Itoa(runtime.NumCPU())); err != nil {
		return lgbmerrors.Wrap(err, "cmake build")
	}
	return lgbmerrors.Wrap(sh.RunV("cmake", "--install", build), "cmake install")
}

// Test runs the unit tests. They use an in-process engine and need no
// native library.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Integration runs every test, including those tagged capi, against the
// native library.
func Integration() error {
	mg.Deps(Native)
	env, err := cgoEnv()
	if err != nil {
		return err
	}
	return sh.RunWithV(env, "go", "test", "-tags", "capi", "./...")
}

// CLI builds bin/lgbm linked against the native library.
func CLI() error {
	mg.Deps(Native)
	env, err := cgoEnv()
	if err != nil {
		return err
	}
	return sh.RunWithV(env, "go", "build", "-tags", "capi", "-o", filepath.Join("bin", "lgbm"), "./cmd/lgbm")
}
