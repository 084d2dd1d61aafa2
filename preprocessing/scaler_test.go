package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    []float64
		wantMin float64
		wantMax float64
	}{
		{
			name:    "increasing",
			values:  []float64{0, 10, 20, 30},
			want:    []float64{0, 1.0 / 3, 2.0 / 3, 1},
			wantMin: 0,
			wantMax: 30,
		},
		{
			name:    "unsorted with negatives",
			values:  []float64{5, -5, 0},
			want:    []float64{1, 0, 0.5},
			wantMin: -5,
			wantMax: 5,
		},
		{
			name:    "mileage scale",
			values:  []float64{240000, 139800, 22899},
			want:    []float64{1, (139800 - 22899) / (240000.0 - 22899), 0},
			wantMin: 22899,
			wantMax: 240000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, lo, hi, err := Normalize(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, lo)
			assert.Equal(t, tt.wantMax, hi)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
			for _, v := range got {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		})
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	values := []float64{240000, 139800, 150500, 185530, 176000, 114800, 166800, 89000, 144500, 84000, 82029, 63060, 74000, 97500, 67000, 76025, 48235, 93000, 60949, 65674, 54000, 68500, 22899, 61789}

	normalized, lo, hi, err := Normalize(values)
	require.NoError(t, err)

	for i, x := range values {
		assert.InDelta(t, x, normalized[i]*(hi-lo)+lo, 1e-9)
	}

	scaler := NewMinMaxScaler("km")
	scaled, err := scaler.FitTransform(values)
	require.NoError(t, err)
	back, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.InDeltaSlice(t, values, back, 1e-9)
}

func TestMinMaxScaler_DegenerateColumn(t *testing.T) {
	scaler := NewMinMaxScaler("km")

	_, err := scaler.FitTransform([]float64{42000, 42000, 42000})
	require.Error(t, err)

	var degErr *errors.DegenerateDataError
	require.True(t, errors.As(err, &degErr))
	assert.Equal(t, "km", degErr.Column)
	assert.Equal(t, 42000.0, degErr.Value)
	assert.False(t, scaler.IsFitted())
}

func TestMinMaxScaler_SingleValue(t *testing.T) {
	_, _, _, err := Normalize([]float64{7})

	var degErr *errors.DegenerateDataError
	assert.True(t, errors.As(err, &degErr))
}

func TestMinMaxScaler_Empty(t *testing.T) {
	_, _, _, err := Normalize(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestMinMaxScaler_NonFinite(t *testing.T) {
	_, _, _, err := Normalize([]float64{1, math.NaN(), 3})

	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr))
}

func TestMinMaxScaler_NotFitted(t *testing.T) {
	scaler := NewMinMaxScaler("price")

	_, err := scaler.Transform([]float64{1})
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))

	_, err = scaler.InverseTransform([]float64{0.5})
	assert.True(t, errors.As(err, &nfErr))
}

func TestMinMaxScaler_RefitAfterFailureClearsState(t *testing.T) {
	scaler := NewMinMaxScaler("price")
	require.NoError(t, scaler.Fit([]float64{1, 2}))
	assert.True(t, scaler.IsFitted())

	require.Error(t, scaler.Fit([]float64{3, 3}))
	assert.False(t, scaler.IsFitted())
}

func TestMinMaxScaler_LargeInput(t *testing.T) {
	n := parallelThreshold*3 + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}

	scaler := NewMinMaxScaler("km")
	scaled, err := scaler.FitTransform(values)
	require.NoError(t, err)
	assert.Equal(t, 0.0, scaled[0])
	assert.Equal(t, 1.0, scaled[n-1])
	assert.InDelta(t, 0.5, scaled[n/2], 1e-4)
}

func TestMinMaxScaler_String(t *testing.T) {
	scaler := NewMinMaxScaler("km")
	assert.Equal(t, "MinMaxScaler(column=km)", scaler.String())

	require.NoError(t, scaler.Fit([]float64{0, 10}))
	assert.Equal(t, "MinMaxScaler(column=km, min=0, max=10)", scaler.String())
}
