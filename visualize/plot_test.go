package visualize

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricefit/core/model"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

var (
	km     = []float64{0, 10, 20, 30}
	price  = []float64{100, 90, 80, 70}
	thetas = model.Thetas{Theta0: 100, Theta1: -1}
)

func TestRegressionPlot(t *testing.T) {
	pl, err := RegressionPlot(km, price, thetas)
	require.NoError(t, err)

	assert.Equal(t, "Linear Regression: Car Price vs Mileage", pl.Title.Text)
	assert.Equal(t, "Mileage (km)", pl.X.Label.Text)
	assert.Equal(t, "Price", pl.Y.Label.Text)
	assert.Equal(t, 0.0, pl.X.Min)
	assert.Equal(t, 30.0, pl.X.Max)
	assert.Equal(t, 70.0, pl.Y.Min)
	assert.Equal(t, 100.0, pl.Y.Max)
}

func TestRegressionPlot_Errors(t *testing.T) {
	_, err := RegressionPlot(nil, nil, thetas)
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))

	_, err = RegressionPlot([]float64{1, 2}, []float64{1}, thetas)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestSaveRegressionPlot_PNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, SaveRegressionPlot(fs, "out/plot.png", km, price, thetas))

	data, err := afero.ReadFile(fs, "out/plot.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")), "not a PNG file")
}

func TestSaveRegressionPlot_SVG(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, SaveRegressionPlot(fs, "plot.svg", km, price, thetas))

	data, err := afero.ReadFile(fs, "plot.svg")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestSave_UnsupportedFormat(t *testing.T) {
	pl, err := RegressionPlot(km, price, thetas)
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	assert.Error(t, Save(fs, "plot.bmp", pl))

	exists, _ := afero.Exists(fs, "plot.bmp")
	assert.False(t, exists)
}
