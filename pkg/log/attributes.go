// Standard attribute keys. Keys are dotted ("model.name", "data.samples")
// so records can be filtered by prefix.

package log

// Model and operation context
const (
	// ModelNameKey identifies the estimator type, e.g. "GradientDescentRegressor".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed. See the Operation* values.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package doing the work.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase. See the Phase* values.
	PhaseKey = "ml.phase"
)

// Data shape
const (
	// SamplesKey is the number of observations.
	SamplesKey = "data.samples"

	// ColumnKey names a dataset column.
	ColumnKey = "data.column"

	// PathKey is a filesystem path read or written.
	PathKey = "io.path"
)

// Training and evaluation
const (
	DurationMsKey = "perf.duration_ms"

	// LossKey is the mean squared error in normalized space.
	LossKey = "metrics.loss"

	// R2ScoreKey is the coefficient of determination, at most 1.0.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey is the number of gradient descent rounds executed.
	IterationKey = "training.iteration"

	ConvergedKey = "training.converged"

	LearningRateKey = "hyperparams.learning_rate"
	MaxIterKey      = "hyperparams.max_iter"
	ToleranceKey    = "hyperparams.tol"

	Theta0Key = "model.theta0"
	Theta1Key = "model.theta1"
)

// Error context
const (
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
)

// Standard values
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationLoad      = "load"
	OperationSave      = "save"
	OperationPlot      = "plot"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
