// Package visualize renders a dataset and a fitted line with gonum/plot.
package visualize

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/pricefit/core/model"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

// DefaultPath is where the plot is written when no path is configured.
const DefaultPath = "plot.png"

// Figure size.
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

var (
	pointColor = color.RGBA{B: 255, A: 255}
	lineColor  = color.RGBA{R: 255, A: 255}
)

// RegressionPlot builds a scatter of the observations and the model line
// drawn across the observed mileage range.
func RegressionPlot(mileages, prices []float64, p model.Predictor) (*plot.Plot, error) {
	if len(mileages) == 0 {
		return nil, errors.NewValueError("RegressionPlot", "empty data")
	}
	if len(prices) != len(mileages) {
		return nil, errors.NewDimensionError("RegressionPlot", len(mileages), len(prices), 0)
	}

	pts := make(plotter.XYs, len(mileages))
	for i := range mileages {
		pts[i].X = mileages[i]
		pts[i].Y = prices[i]
	}

	pl := plot.New()
	pl.Title.Text = "Linear Regression: Car Price vs Mileage"
	pl.X.Label.Text = "Mileage (km)"
	pl.Y.Label.Text = "Price"
	pl.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build scatter")
	}
	scatter.GlyphStyle.Color = pointColor

	lo, hi := floats.Min(mileages), floats.Max(mileages)
	line, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: p.Estimate(lo)},
		{X: hi, Y: p.Estimate(hi)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build regression line")
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(2)

	pl.Add(scatter, line)
	pl.Legend.Add("Data points", scatter)
	pl.Legend.Add("Regression line", line)
	pl.Legend.Top = true

	return pl, nil
}

// Save renders the plot to path on fs. The image format follows the file
// extension (png, svg, pdf, jpg, eps, tif); no extension means png.
func Save(fs afero.Fs, path string, pl *plot.Plot) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "png"
	}

	wt, err := pl.WriterTo(Width, Height, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported plot format %q", format)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create plot directory for %s", path)
	}
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create plot file %s", path)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to render plot to %s", path)
	}
	return f.Close()
}

// SaveRegressionPlot builds the regression plot and writes it to path.
func SaveRegressionPlot(fs afero.Fs, path string, mileages, prices []float64, p model.Predictor) error {
	pl, err := RegressionPlot(mileages, prices, p)
	if err != nil {
		return err
	}
	return Save(fs, path, pl)
}
