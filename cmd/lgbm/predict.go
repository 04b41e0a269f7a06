package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lightgbm-go/lightgbm"
	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

type predictOptions struct {
	model  string
	input  string
	output string
	header bool
}

func newPredictCmd() *cobra.Command {
	opts := &predictOptions{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score the rows of a numeric CSV file",
		Long: `Score every row of a CSV file of feature values (no label column) and
write one CSV line of scores per row, one column per class.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.model, "model", "", "model file written by train")
	cmd.Flags().StringVar(&opts.input, "input", "", "CSV file of feature rows")
	cmd.Flags().StringVar(&opts.output, "output", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.header, "header", false, "skip the first input line")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runPredict(cmd *cobra.Command, opts *predictOptions) error {
	in, err := os.Open(opts.input)
	if err != nil {
		return lgbmerrors.Wrapf(err, "open %s", opts.input)
	}
	defer in.Close()

	data, ncol, err := readRows(in, opts.header)
	if err != nil {
		return lgbmerrors.Wrapf(err, "read %s", opts.input)
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
	scores, err := booster.Predict(data, ncol)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return writeScores(cmd.OutOrStdout(), scores, numClass)
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return lgbmerrors.Wrapf(err, "create %s", opts.output)
	}
	return lgbmerrors.Wrapf(writeAndClose(f, scores, numClass), "write %s", opts.output)
}

// writeAndClose writes the scores to w and closes it. A failed Close is
// reported even when the write succeeded.
func writeAndClose(w io.WriteCloser, scores []float64, numClass int) error {
	err := writeScores(w, scores, numClass)
	return lgbmerrors.CombineErrors(err, w.Close())
}

// readRows parses a CSV of float features into a row-major buffer.
func readRows(r io.Reader, header bool) ([]float32, int, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true

	var data []float32
	ncol := 0
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if header && line == 1 {
			continue
		}
		if ncol == 0 {
			ncol = len(record)
		}
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, 0, lgbmerrors.Wrapf(err, "line %d column %d", line, i+1)
			}
			data = append(data, float32(v))
		}
	}
	if ncol == 0 {
		return nil, 0, lgbmerrors.New("no rows")
	}
	return data, ncol, nil
}

func writeScores(w io.Writer, scores []float64, numClass int) error {
	writer := csv.NewWriter(w)
	record := make([]string, numClass)
	for start := 0; start+numClass <= len(scores); start += numClass {
		for k := 0; k < numClass; k++ {
			record[k] = strconv.FormatFloat(scores[start+k], 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
