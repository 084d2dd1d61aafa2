package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "pricefit: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "pricefit: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestModelErrorUnwrapsSentinel(t *testing.T) {
	err := NewModelError("GradientDescentRegressor.Fit", "empty data", ErrEmptyData)
	if !Is(err, ErrEmptyData) {
		t.Error("Is(err, ErrEmptyData) should be true")
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Fit", 4, 3, 0)

	want := "pricefit: Fit: dimension mismatch on axis 0 (rows). Expected 4, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GradientDescentRegressor", "Predict")

	want := "pricefit: GradientDescentRegressor: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestDegenerateDataError(t *testing.T) {
	err := NewDegenerateDataError("MinMaxScaler.Fit", "km", 42000)

	var degErr *DegenerateDataError
	if !As(err, &degErr) {
		t.Fatal("Error should be castable to *DegenerateDataError")
	}
	if degErr.Column != "km" {
		t.Errorf("Column = %q, want km", degErr.Column)
	}
	if !strings.Contains(err.Error(), "42000") {
		t.Errorf("Error() should mention the constant value: %s", err.Error())
	}
}

func TestDatasetNotFoundError(t *testing.T) {
	err := NewDatasetNotFoundError("/tmp/missing.csv")

	want := "pricefit: dataset not found at: /tmp/missing.csv"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestParseError(t *testing.T) {
	cause := fmt.Errorf("strconv failure")
	err := NewParseError(3, "price", "abc", cause)

	var parseErr *ParseError
	if !As(err, &parseErr) {
		t.Fatal("Error should be castable to *ParseError")
	}
	if parseErr.Row != 3 || parseErr.Column != "price" {
		t.Errorf("got row=%d column=%s", parseErr.Row, parseErr.Column)
	}
	if !Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
}

func TestWarnUsesZerologFunc(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	SetZerologWarnFunc(func(w error) {
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			logger.Warn().EmbedObject(m).Msg(w.Error())
		}
	})
	defer SetZerologWarnFunc(nil)

	Warn(NewConvergenceWarning("GradientDescent", 10, ""))

	out := buf.String()
	if !strings.Contains(out, `"type":"ConvergenceWarning"`) {
		t.Errorf("expected structured warning, got %s", out)
	}
	if !strings.Contains(out, `"iterations":10`) {
		t.Errorf("expected iterations field, got %s", out)
	}
}

func TestWarnFallsBackToHandler(t *testing.T) {
	var got error
	SetWarningHandler(func(w error) { got = w })
	defer SetWarningHandler(func(w error) {})

	w := NewConvergenceWarning("GradientDescent", 5, "cap reached")
	Warn(w)

	if got != w {
		t.Errorf("handler received %v, want %v", got, w)
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("theta0", 1.5, 1); err != nil {
		t.Errorf("finite value should pass, got %v", err)
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := CheckScalar("theta0", v, 7)
		var numErr *NumericalInstabilityError
		if !As(err, &numErr) {
			t.Fatalf("expected NumericalInstabilityError for %v, got %v", v, err)
		}
		if numErr.Iteration != 7 {
			t.Errorf("Iteration = %d, want 7", numErr.Iteration)
		}
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("thetas", []float64{0, 1, -2}, 0); err != nil {
		t.Errorf("finite values should pass, got %v", err)
	}
	if err := CheckNumericalStability("thetas", []float64{0, math.NaN()}, 0); err == nil {
		t.Error("NaN should be reported")
	}
}
