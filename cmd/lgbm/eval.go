package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lightgbm-go/lightgbm"
	"github.com/YuminosukeSato/lightgbm-go/metrics"
	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

type evalOptions struct {
	model       string
	input       string
	header      bool
	labelColumn int
	metrics     []string
}

func newEvalCmd() *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score a labelled CSV file and report metrics",
		Long: fmt.Sprintf(`Predict every row of a labelled CSV file and compare the scores with the
labels. Supported metrics: %s.`, strings.Join(metrics.Names(), ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.model, "model", "", "model file")
	cmd.Flags().StringVar(&opts.input, "input", "", "CSV file with a label column")
	cmd.Flags().BoolVar(&opts.header, "header", false, "skip the first input line")
	cmd.Flags().IntVar(&opts.labelColumn, "label-column", 0, "zero-based index of the label column")
	cmd.Flags().StringSliceVar(&opts.metrics, "metric", []string{"l2"}, "metrics to compute (comma separated)")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runEval(cmd *cobra.Command, opts *evalOptions) error {
	in, err := os.Open(opts.input)
	if err != nil {
		return lgbmerrors.Wrapf(err, "open %s", opts.input)
	}
	defer in.Close()

	rows, ncol, err := readRows(in, opts.header)
	if err != nil {
		return lgbmerrors.Wrapf(err, "read %s", opts.input)
	}
	features, labels, err := splitLabel(rows, ncol, opts.labelColumn)
	if err != nil {
		return err
	}

	booster, err := lightgbm.FromFile(opts.model)
	if err != nil {
		return err
	}
	defer booster.Close()

	numClass, err := booster.NumClass()
	if err != nil {
		return err
	}
	scores, err := booster.Predict(features, ncol-1)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, name := range opts.metrics {
		value, err := metrics.Evaluate(name, labels, scores, numClass)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%.6f\n", name, value)
	}
	return tw.Flush()
}

// splitLabel removes column labelCol from a row-major buffer.
func splitLabel(rows []float32, ncol, labelCol int) ([]float32, []float64, error) {
	if labelCol < 0 || labelCol >= ncol {
		return nil, nil, lgbmerrors.Newf("label column %d outside [0, %d)", labelCol, ncol)
	}
	if ncol < 2 {
		return nil, nil, lgbmerrors.New("input needs a label column and at least one feature")
	}
	nrow := len(rows) / ncol
	features := make([]float32, 0, nrow*(ncol-1))
	labels := make([]float64, nrow)
	for r := 0; r < nrow; r++ {
		row := rows[r*ncol : (r+1)*ncol]
		labels[r] = float64(row[labelCol])
		features = append(features, row[:labelCol]...)
		features = append(features, row[labelCol+1:]...)
	}
	return features, labels, nil
}
