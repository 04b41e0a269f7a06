package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/lightgbm-go/lightgbm"
	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
	"github.com/YuminosukeSato/lightgbm-go/pkg/log"
)

type rootOptions struct {
	logLevel    string
	logFormat   string
	showMetrics bool
	registry    *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "lgbm",
		Short:         "Train, inspect and apply LightGBM models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.showMetrics {
				return nil
			}
			return writeCallSummary(cmd, opts.registry)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log format (console, json, cloud)")
	cmd.PersistentFlags().BoolVar(&opts.showMetrics, "metrics", false, "print native call counts to stderr when done")

	cmd.AddCommand(
		newTrainCmd(),
		newPredictCmd(),
		newInfoCmd(),
		newImportanceCmd(),
		newEvalCmd(),
	)
	return cmd
}

func (o *rootOptions) setup() error {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	switch o.logFormat {
	case "console":
		log.SetProvider(log.NewConsoleProvider(os.Stderr, level))
	case "json":
		log.SetProvider(log.NewZerologProvider(os.Stderr, level))
	case "cloud":
		if err := log.SetupLogger(o.logLevel); err != nil {
			return err
		}
	default:
		return lgbmerrors.Newf("unknown log format %q", o.logFormat)
	}

	if o.showMetrics {
		o.registry = prometheus.NewRegistry()
		if err := lightgbm.RegisterMetrics(o.registry); err != nil {
			return err
		}
	}
	return nil
}

// writeCallSummary prints one line per native entry point and outcome.
func writeCallSummary(cmd *cobra.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return lgbmerrors.Wrap(err, "gather metrics")
	}
	var lines []string
	for _, mf := range families {
		if mf.GetName() != "lightgbm_native_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			lines = append(lines, fmt.Sprintf("%-36s %-8s %6.0f",
				labels["call"], labels["outcome"], m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
	return nil
}
