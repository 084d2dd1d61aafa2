package linear

import (
	"math"
	"time"

	"github.com/YuminosukeSato/pricefit/core/model"
	"github.com/YuminosukeSato/pricefit/core/parallel"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
	"github.com/YuminosukeSato/pricefit/pkg/log"
	"github.com/YuminosukeSato/pricefit/preprocessing"
)

const modelName = "GradientDescentRegressor"

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 50000

// GradientDescentRegressor fits price = theta0 + theta1*mileage by full-batch
// gradient descent on min-max normalized data.
//
// Both columns are scaled to [0, 1] before training and the learned
// parameters are mapped back to the original scale afterwards. Each round
// computes both gradients from the same parameter pair before updating
// either. Training stops after maxIter rounds or as soon as neither
// parameter moves by tol or more in a round.
type GradientDescentRegressor struct {
	model.BaseEstimator

	learningRate float64
	maxIter      int
	tol          float64
	logger       log.Logger

	thetas      model.Thetas
	nIter       int
	converged   bool
	lossHistory []float64
}

var _ model.Regressor = (*GradientDescentRegressor)(nil)

// NewGradientDescentRegressor creates a regressor with the default
// hyper-parameters (learning rate 0.1, 1000 iterations, tol 1e-6) and
// applies opts on top.
//
// 使用例:
//
//	reg := linear.NewGradientDescentRegressor(linear.WithLearningRate(0.5))
//	if err := reg.Fit(mileages, prices); err != nil {
//	    return err
//	}
//	thetas, _ := reg.Thetas()
func NewGradientDescentRegressor(opts ...Option) *GradientDescentRegressor {
	r := &GradientDescentRegressor{
		learningRate: DefaultLearningRate,
		maxIter:      DefaultMaxIter,
		tol:          DefaultTol,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.GetLogger()
	}
	return r
}

// Train is a convenience wrapper that fits a new regressor and returns its
// coefficients.
func Train(mileages, prices []float64, opts ...Option) (model.Thetas, error) {
	r := NewGradientDescentRegressor(opts...)
	if err := r.Fit(mileages, prices); err != nil {
		return model.Thetas{}, err
	}
	return r.thetas, nil
}

func (r *GradientDescentRegressor) validate() error {
	if !(r.learningRate > 0) || math.IsInf(r.learningRate, 1) {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", r.learningRate)
	}
	if r.maxIter <= 0 {
		return errors.NewValidationError("iterations", "must be positive", r.maxIter)
	}
	if !(r.tol > 0) {
		return errors.NewValidationError("epsilon", "must be positive", r.tol)
	}
	return nil
}

// Fit trains on paired observations. On error the regressor is left unfitted.
func (r *GradientDescentRegressor) Fit(mileages, prices []float64) error {
	r.Reset()
	r.thetas = model.Thetas{}
	r.nIter = 0
	r.converged = false
	r.lossHistory = nil

	if err := r.validate(); err != nil {
		return err
	}

	m := len(mileages)
	if m == 0 {
		return errors.NewModelError(modelName+".Fit", "empty data", errors.ErrEmptyData)
	}
	if len(prices) != m {
		return errors.NewDimensionError(modelName+".Fit", m, len(prices), 0)
	}

	kmScaler := preprocessing.NewMinMaxScaler("km")
	normKm, err := kmScaler.FitTransform(mileages)
	if err != nil {
		return err
	}
	priceScaler := preprocessing.NewMinMaxScaler("price")
	normPrice, err := priceScaler.FitTransform(prices)
	if err != nil {
		return err
	}

	logger := r.logger.With(log.ModelNameKey, modelName, log.OperationKey, log.OperationFit)
	logger.Debug("training started",
		log.SamplesKey, m,
		log.LearningRateKey, r.learningRate,
		log.MaxIterKey, r.maxIter,
		log.ToleranceKey, r.tol,
	)
	start := time.Now()

	theta0, theta1, err := r.descend(normKm, normPrice)
	if err != nil {
		logger.Error("training diverged", err, log.IterationKey, r.nIter)
		return err
	}

	// back to the original scale
	priceRange := priceScaler.Range()
	kmRange := kmScaler.Range()
	realTheta1 := theta1 * priceRange / kmRange
	realTheta0 := theta0*priceRange + priceScaler.DataMin - realTheta1*kmScaler.DataMin

	if err := errors.CheckNumericalStability("denormalize", []float64{realTheta0, realTheta1}, r.nIter); err != nil {
		logger.Error("denormalized parameters are not finite", err)
		return err
	}

	r.thetas = model.Thetas{Theta0: realTheta0, Theta1: realTheta1}
	r.SetFitted()

	if !r.converged {
		errors.Warn(errors.NewConvergenceWarning(modelName, r.nIter, ""))
	}

	logger.Info("training finished",
		log.IterationKey, r.nIter,
		log.ConvergedKey, r.converged,
		log.Theta0Key, realTheta0,
		log.Theta1Key, realTheta1,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// descend runs the optimization loop in normalized space.
func (r *GradientDescentRegressor) descend(x, y []float64) (theta0, theta1 float64, err error) {
	m := len(x)
	n := float64(m)

	for iter := 1; iter <= r.maxIter; iter++ {
		// one snapshot of (theta0, theta1) feeds every residual this round
		t0, t1 := theta0, theta1
		sums := parallel.Reduce(m, parallelThreshold, 3, func(start, end int) []float64 {
			var g0, g1, sq float64
			for i := start; i < end; i++ {
				res := (t0 + t1*x[i]) - y[i]
				g0 += res
				g1 += res * x[i]
				sq += res * res
			}
			return []float64{g0, g1, sq}
		})
		r.lossHistory = append(r.lossHistory, sums[2]/n)

		theta0 = t0 - r.learningRate*sums[0]/n
		theta1 = t1 - r.learningRate*sums[1]/n
		r.nIter = iter

		if err := errors.CheckNumericalStability("gradient_update", []float64{theta0, theta1}, iter); err != nil {
			return 0, 0, err
		}

		if math.Abs(theta0-t0) < r.tol && math.Abs(theta1-t1) < r.tol {
			r.converged = true
			r.logger.Debug("converged", log.ModelNameKey, modelName, log.IterationKey, iter)
			break
		}
	}
	return theta0, theta1, nil
}

// Thetas returns the fitted coefficients in the original (mileage, price) scale.
func (r *GradientDescentRegressor) Thetas() (model.Thetas, error) {
	if !r.IsFitted() {
		return model.Thetas{}, errors.NewNotFittedError(modelName, "Thetas")
	}
	return r.thetas, nil
}

// Predict estimates the price for one mileage.
func (r *GradientDescentRegressor) Predict(mileage float64) (float64, error) {
	if !r.IsFitted() {
		return 0, errors.NewNotFittedError(modelName, "Predict")
	}
	return r.thetas.Estimate(mileage), nil
}

// NIter returns the number of rounds executed by the last Fit, including
// the round in which convergence was detected.
func (r *GradientDescentRegressor) NIter() int {
	return r.nIter
}

// Converged reports whether the last Fit stopped on the tolerance rather
// than the iteration cap.
func (r *GradientDescentRegressor) Converged() bool {
	return r.converged
}

// LossHistory returns the normalized-space mean squared error measured at
// the start of each round of the last Fit.
func (r *GradientDescentRegressor) LossHistory() []float64 {
	out := make([]float64, len(r.lossHistory))
	copy(out, r.lossHistory)
	return out
}

// GetParams returns the hyper-parameters.
func (r *GradientDescentRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate": r.learningRate,
		"iterations":    r.maxIter,
		"epsilon":       r.tol,
	}
}
