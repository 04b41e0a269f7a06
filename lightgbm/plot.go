package lightgbm

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
	"github.com/YuminosukeSato/lightgbm-go/pkg/log"
)

// ImportancePlotOptions configures PlotImportance. Zero values select
// defaults.
type ImportancePlotOptions struct {
	Title  string
	TopN   int // 0 plots every feature
	Width  vg.Length
	Height vg.Length
}

// FeatureImportanceEntry pairs a feature name with its importance.
type FeatureImportanceEntry struct {
	Name       string
	Importance float64
}

// RankedImportance returns the model's features ordered by decreasing
// split-count importance. Ties keep column order.
func (b *Booster) RankedImportance() ([]FeatureImportanceEntry, error) {
	names, err := b.FeatureName()
	if err != nil {
		return nil, err
	}
	importance, err := b.FeatureImportance()
	if err != nil {
		return nil, err
	}
	entries := make([]FeatureImportanceEntry, len(importance))
	for i, v := range importance {
		name := fmt.Sprintf("Column_%d", i)
		if i < len(names) {
			name = names[i]
		}
		entries[i] = FeatureImportanceEntry{Name: name, Importance: v}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Importance > entries[j].Importance
	})
	return entries, nil
}

// PlotImportance renders a bar chart of feature importance to path. The image
// format follows the file extension (.png, .svg, .pdf, ...).
func PlotImportance(b *Booster, path string, opts ImportancePlotOptions) error {
	entries, err := b.RankedImportance()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return lgbmerrors.NewEncodingError("PlotImportance", "", "model has no features", 0)
	}
	if opts.TopN > 0 && opts.TopN < len(entries) {
		entries = entries[:opts.TopN]
	}
	if opts.Title == "" {
		opts.Title = "Feature importance"
	}
	if opts.Width == 0 {
		opts.Width = 8 * vg.Inch
	}
	if opts.Height == 0 {
		opts.Height = 4 * vg.Inch
	}

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Importance
		labels[i] = e.Name
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = "splits"

	bars, err := plotter.NewBarChart(values, vg.Points(15))
	if err != nil {
		return lgbmerrors.Wrap(err, "build importance chart")
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return lgbmerrors.Wrapf(err, "save importance plot %s", path)
	}
	log.GetLoggerWithName("lightgbm.plot").Info("Importance plot saved",
		log.OperationKey, log.OperationImportance,
		log.PathKey, path,
		log.FeaturesKey, len(entries),
	)
	return nil
}
