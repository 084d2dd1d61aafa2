package model

// Predictor maps one mileage to a price.
type Predictor interface {
	Estimate(mileage float64) float64
}

// Regressor is a trainable univariate model over (mileage, price) pairs.
type Regressor interface {
	// Fit trains on paired observations. mileages and prices must have the
	// same non-zero length.
	Fit(mileages, prices []float64) error

	// Thetas returns the trained coefficients in the original data scale.
	Thetas() (Thetas, error)
}
