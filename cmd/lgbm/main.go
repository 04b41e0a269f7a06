// Command lgbm trains, inspects and applies LightGBM models from the shell.
//
//	lgbm train --data train.csv --config params.yaml --param num_iterations=50 --out model.txt
//	lgbm predict --model model.txt --input rows.csv
//	lgbm info --model model.txt
//	lgbm importance --model model.txt --plot importance.png --top 10
//	lgbm eval --model model.txt --input test.csv --metric auc,binary_logloss
//
// The binary must be built with -tags capi to link the native library.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
