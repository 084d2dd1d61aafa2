package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/pricefit/core/model"
	"github.com/YuminosukeSato/pricefit/core/parallel"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

// parallelThreshold 以下の長さは逐次処理
const parallelThreshold = 10000

// MinMaxScaler rescales a single column to [0, 1] using the observed minimum
// and maximum, and maps scaled values back with the same pair.
//
// A column whose values are all identical has no range to scale by; Fit
// rejects it with a DegenerateDataError instead of producing NaN or Inf.
type MinMaxScaler struct {
	model.BaseEstimator

	// Column names the data in error messages, e.g. "km" or "price".
	Column string

	// DataMin は学習データの最小値
	DataMin float64

	// DataMax は学習データの最大値
	DataMax float64
}

// NewMinMaxScaler creates an unfitted scaler for the named column.
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler("km")
//	scaled, err := scaler.FitTransform(mileages)
//	original := scaler.InverseValue(scaled[0])
func NewMinMaxScaler(column string) *MinMaxScaler {
	return &MinMaxScaler{Column: column}
}

// Fit records the minimum and maximum of values.
func (s *MinMaxScaler) Fit(values []float64) error {
	s.Reset()

	if len(values) == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckNumericalStability("MinMaxScaler.Fit", values, 0); err != nil {
		return err
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		return errors.NewDegenerateDataError("MinMaxScaler.Fit", s.Column, lo)
	}

	s.DataMin = lo
	s.DataMax = hi
	s.SetFitted()
	return nil
}

// Range returns DataMax - DataMin.
func (s *MinMaxScaler) Range() float64 {
	return s.DataMax - s.DataMin
}

// Transform maps each value to (x - DataMin) / (DataMax - DataMin). Values
// outside the fitted range map outside [0, 1].
func (s *MinMaxScaler) Transform(values []float64) ([]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	out := make([]float64, len(values))
	lo, span := s.DataMin, s.Range()
	parallel.ParallelizeWithThreshold(len(values), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = (values[i] - lo) / span
		}
	})
	return out, nil
}

// FitTransform fits on values and returns them scaled.
func (s *MinMaxScaler) FitTransform(values []float64) ([]float64, error) {
	if err := s.Fit(values); err != nil {
		return nil, err
	}
	return s.Transform(values)
}

// InverseTransform maps scaled values back to the original scale.
func (s *MinMaxScaler) InverseTransform(scaled []float64) ([]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}

	out := make([]float64, len(scaled))
	for i, v := range scaled {
		out[i] = s.InverseValue(v)
	}
	return out, nil
}

// InverseValue maps one scaled value back. The scaler must be fitted.
func (s *MinMaxScaler) InverseValue(v float64) float64 {
	return v*s.Range() + s.DataMin
}

// String はスケーラーの文字列表現を返す
func (s *MinMaxScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(column=%s)", s.Column)
	}
	return fmt.Sprintf("MinMaxScaler(column=%s, min=%g, max=%g)", s.Column, s.DataMin, s.DataMax)
}

// Normalize scales values to [0, 1] and returns the min and max used, so the
// caller can reverse the mapping later.
func Normalize(values []float64) (normalized []float64, min, max float64, err error) {
	s := NewMinMaxScaler("values")
	normalized, err = s.FitTransform(values)
	if err != nil {
		return nil, 0, 0, err
	}
	return normalized, s.DataMin, s.DataMax, nil
}
