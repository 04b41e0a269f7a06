package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lightgbm-go/lightgbm"
)

type trainOptions struct {
	data   string
	config string
	params []string
	out    string
}

func newTrainCmd() *cobra.Command {
	opts := &trainOptions{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model on a LightGBM-readable data file",
		Long: `Train a booster and save it in LightGBM's text format.

Parameters come from an optional YAML file (--config) and are overridden by
repeated --param key=value flags. They are used both to parse the data file
and to train, so dataset options such as header=true or label_column=0 can be
given the same way as boosting options.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.data, "data", "", "training data file (CSV, TSV or LibSVM)")
	cmd.Flags().StringVar(&opts.config, "config", "", "YAML file of training parameters")
	cmd.Flags().StringArrayVar(&opts.params, "param", nil, "parameter override as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.out, "out", "model.txt", "where to write the trained model")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func runTrain(cmd *cobra.Command, opts *trainOptions) error {
	params, err := collectParams(opts.config, opts.params)
	if err != nil {
		return err
	}

	ds, err := lightgbm.DatasetFromFile(opts.data, params)
	if err != nil {
		return err
	}
	defer ds.Free()

	booster, err := lightgbm.Train(ds, params)
	if err != nil {
		return err
	}
	defer booster.Close()

	if err := booster.SaveFile(opts.out); err != nil {
		return err
	}
	iterations, err := booster.CurrentIteration()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "trained %d rounds, model written to %s\n", iterations, opts.out)
	return nil
}

// collectParams loads the YAML config, if any, and applies key=value
// overrides in order.
func collectParams(config string, overrides []string) (lightgbm.Params, error) {
	params := lightgbm.Params{}
	if config != "" {
		loaded, err := lightgbm.LoadParams(config)
		if err != nil {
			return nil, err
		}
		params = loaded
	}
	for _, kv := range overrides {
		p, err := lightgbm.ParseParams(kv)
		if err != nil {
			return nil, err
		}
		params = params.Merge(p)
	}
	return params, nil
}
