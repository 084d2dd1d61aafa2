package model

import "fmt"

// Thetas is the affine model price = Theta0 + Theta1*mileage.
// The zero value is the untrained model and predicts 0 everywhere.
type Thetas struct {
	Theta0 float64 `json:"theta0"`
	Theta1 float64 `json:"theta1"`
}

// Estimate applies the model to a single mileage. Negative results are
// returned as is; clamping for display is up to the caller.
func (t Thetas) Estimate(mileage float64) float64 {
	return t.Theta0 + t.Theta1*mileage
}

// IsZero reports whether this is the untrained default model.
func (t Thetas) IsZero() bool {
	return t.Theta0 == 0 && t.Theta1 == 0
}

func (t Thetas) String() string {
	return fmt.Sprintf("Thetas(theta0=%.4f, theta1=%.6f)", t.Theta0, t.Theta1)
}
