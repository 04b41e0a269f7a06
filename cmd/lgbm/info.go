package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/lightgbm-go/lightgbm"
)

func newInfoCmd() *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe a saved model",
		RunE: func(cmd *cobra.Command, args []string) error {
			booster, err := lightgbm.FromFile(model)
			if err != nil {
				return err
			}
			defer booster.Close()
			return writeInfo(cmd, booster)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "model file")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func writeInfo(cmd *cobra.Command, booster *lightgbm.Booster) error {
	numClass, err := booster.NumClass()
	if err != nil {
		return err
	}
	iterations, err := booster.CurrentIteration()
	if err != nil {
		return err
	}
	names, err := booster.FeatureName()
	if err != nil {
		return err
	}
	importance, err := booster.FeatureImportance()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "classes:    %d\n", numClass)
	fmt.Fprintf(out, "iterations: %d\n", iterations)
	fmt.Fprintf(out, "features:   %d\n\n", len(names))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSPLITS")
	for i, name := range names {
		var splits float64
		if i < len(importance) {
			splits = importance[i]
		}
		fmt.Fprintf(tw, "%d\t%s\t%.0f\n", i, name, splits)
	}
	return tw.Flush()
}

type importanceOptions struct {
	model  string
	plot   string
	top    int
	width  float64
	height float64
}

func newImportanceCmd() *cobra.Command {
	opts := &importanceOptions{}
	cmd := &cobra.Command{
		Use:   "importance",
		Short: "Rank features by split count, optionally as a bar chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			booster, err := lightgbm.FromFile(opts.model)
			if err != nil {
				return err
			}
			defer booster.Close()

			if opts.plot != "" {
				return lightgbm.PlotImportance(booster, opts.plot, lightgbm.ImportancePlotOptions{
					TopN:   opts.top,
					Width:  vg.Length(opts.width) * vg.Inch,
					Height: vg.Length(opts.height) * vg.Inch,
				})
			}

			entries, err := booster.RankedImportance()
			if err != nil {
				return err
			}
			if opts.top > 0 && opts.top < len(entries) {
				entries = entries[:opts.top]
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%.0f\n", e.Name, e.Importance)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&opts.model, "model", "", "model file")
	cmd.Flags().StringVar(&opts.plot, "plot", "", "write a bar chart to this file (.png, .svg, .pdf)")
	cmd.Flags().IntVar(&opts.top, "top", 0, "only the N most important features")
	cmd.Flags().Float64Var(&opts.width, "width", 8, "plot width in inches")
	cmd.Flags().Float64Var(&opts.height, "height", 4, "plot height in inches")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
