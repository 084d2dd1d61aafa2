package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/pricefit/core/model"
	"github.com/YuminosukeSato/pricefit/core/parallel"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

const parallelThreshold = 10000

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var diff mat.VecDense
	diff.SubVec(yTrue, yPred)
	return mat.Dot(&diff, &diff) / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2Score は決定係数（R²）を計算する
//
// R² = 1 - SS_res/SS_tot. The result is at most 1 and unbounded below.
// When every yTrue value is the same SS_tot is zero and R² is undefined;
// that case returns a DegenerateDataError.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	raw := yTrue.RawVector()
	actual := raw.Data[:n]
	if raw.Inc != 1 {
		actual = make([]float64, n)
		for i := range actual {
			actual[i] = yTrue.AtVec(i)
		}
	}
	yMean := stat.Mean(actual, nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		tss += (t - yMean) * (t - yMean)
		rss += (t - p) * (t - p)
	}

	if tss == 0 {
		return 0, errors.NewDegenerateDataError("R2Score", "price", yMean)
	}

	return 1 - rss/tss, nil
}

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue.IsEmpty() {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.IsEmpty() || yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, lenOrZero(yPred), 0)
	}
	return n, nil
}

func lenOrZero(v *mat.VecDense) int {
	if v.IsEmpty() {
		return 0
	}
	return v.Len()
}

// Predict applies p to every mileage.
func Predict(p model.Predictor, mileages []float64) *mat.VecDense {
	out := make([]float64, len(mileages))
	parallel.ParallelizeWithThreshold(len(mileages), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = p.Estimate(mileages[i])
		}
	})
	if len(out) == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(len(out), out)
}

// ModelR2 scores p on the given observations.
func ModelR2(mileages, prices []float64, p model.Predictor) (float64, error) {
	if len(prices) == 0 {
		return 0, errors.NewValueError("ModelR2", "empty vector")
	}
	if len(mileages) != len(prices) {
		return 0, errors.NewDimensionError("ModelR2", len(prices), len(mileages), 0)
	}
	return R2Score(mat.NewVecDense(len(prices), prices), Predict(p, mileages))
}

// Report summarizes how well a model fits a dataset.
type Report struct {
	R2   float64
	MSE  float64
	RMSE float64
}

// Evaluate computes R², MSE and RMSE of p on the given observations.
func Evaluate(mileages, prices []float64, p model.Predictor) (Report, error) {
	r2, err := ModelR2(mileages, prices, p)
	if err != nil {
		return Report{}, err
	}

	yTrue := mat.NewVecDense(len(prices), prices)
	yPred := Predict(p, mileages)
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}

	return Report{R2: r2, MSE: mse, RMSE: math.Sqrt(mse)}, nil
}
