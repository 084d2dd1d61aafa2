package model

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator tracks whether Fit has completed. Embed it in estimators.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the estimator holds a trained model.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to NotFitted. Fit calls it first so a failed
// run never leaves a previous model looking current.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
