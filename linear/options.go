package linear

import "github.com/YuminosukeSato/pricefit/pkg/log"

// Default hyper-parameters.
const (
	DefaultLearningRate = 0.1
	DefaultMaxIter      = 1000
	DefaultTol          = 1e-6
)

// Option configures a GradientDescentRegressor.
type Option func(*GradientDescentRegressor)

// WithLearningRate sets the step size. Must be > 0.
func WithLearningRate(rate float64) Option {
	return func(r *GradientDescentRegressor) {
		r.learningRate = rate
	}
}

// WithMaxIter sets the iteration cap. Must be > 0.
func WithMaxIter(n int) Option {
	return func(r *GradientDescentRegressor) {
		r.maxIter = n
	}
}

// WithTol sets the convergence threshold on the per-round change of each
// parameter in normalized space. Must be > 0.
func WithTol(tol float64) Option {
	return func(r *GradientDescentRegressor) {
		r.tol = tol
	}
}

// WithLogger sets the logger. Defaults to log.GetLogger().
func WithLogger(logger log.Logger) Option {
	return func(r *GradientDescentRegressor) {
		r.logger = logger
	}
}
