// Package pricefit estimates used car prices from mileage with a
// univariate linear model trained by batch gradient descent.
//
// The model is
//
//	price = theta0 + theta1 * km
//
// Training scales both columns to [0, 1] with min-max normalization, runs
// gradient descent on the mean squared error with a simultaneous update of
// both parameters, and maps the result back to the original units. The two
// parameters are stored as JSON and read back for prediction.
//
// # Installation
//
//	go install github.com/YuminosukeSato/pricefit/cmd/pricefit@latest
//
// # Command line
//
//	pricefit train --data data.csv --learning-rate 0.1 --iterations 1000 --plot
//	pricefit predict --mileage 120000
//	pricefit            # interactive menu
//
// Settings can also come from pricefit.yaml (in . or ./configs) or from
// PRICEFIT_* environment variables, e.g. PRICEFIT_TRAINING_ITERATIONS=5000.
//
// # Library
//
//	ds, err := dataset.Load(afero.NewOsFs(), "data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	thetas, err := linear.Train(ds.Mileages, ds.Prices, linear.WithLearningRate(0.5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r2, _ := metrics.ModelR2(ds.Mileages, ds.Prices, thetas)
//	fmt.Printf("price(100000 km) = %.2f, R² = %.4f\n", thetas.Estimate(100000), r2)
//
// # Packages
//
//   - linear: GradientDescentRegressor and Train
//   - preprocessing: MinMaxScaler and Normalize
//   - metrics: R², MSE, RMSE and model evaluation
//   - dataset: CSV loading of (km, price) observations
//   - visualize: scatter plus regression line with gonum/plot
//   - core/model: Thetas, estimator interfaces, JSON persistence
//   - core/parallel: deterministic chunked reductions
//   - pkg/errors: typed errors and warnings on top of cockroachdb/errors
//   - pkg/log: zerolog-backed structured logging
//
// # Performance
//
// Gradient sums over more than 50,000 rows are split into fixed 4096-row
// chunks and computed on all CPU cores. Partial sums are combined in chunk
// order, so results do not depend on the number of cores.
package pricefit
