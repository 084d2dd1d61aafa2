package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/pricefit/core/model"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
	"github.com/YuminosukeSato/pricefit/pkg/log"
)

func newPredictCommand(app *App) *cobra.Command {
	var mileage string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Estimate the price of a car from its mileage",
		Long: `Estimate a price with the saved model. Without a saved model both
parameters are 0 and every estimate is 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("predict", func() error {
				if !cmd.Flags().Changed("mileage") {
					return app.predictInteractive()
				}
				return app.predict(mileage)
			})
		},
	}

	cmd.Flags().StringVar(&mileage, "mileage", "", "Mileage in km (prompted for when omitted)")
	return cmd
}

func (a *App) predictInteractive() error {
	answer, err := a.prompt("Mileage (km): ")
	if err != nil {
		return err
	}
	return a.predict(answer)
}

// predict prints the estimate for raw. Negative, non-numeric and non-finite
// input is rejected with a message, not an error.
func (a *App) predict(raw string) error {
	km, err := strconv.ParseFloat(raw, 64)
	if err != nil || km < 0 || math.IsNaN(km) || math.IsInf(km, 0) {
		fmt.Fprintln(a.out, "Invalid mileage.")
		return nil
	}

	store := model.NewStore(a.fs, a.cfg.Model.Path)
	thetas, err := store.Load()
	if err != nil {
		return err
	}
	if thetas.IsZero() {
		a.logger.Debug("no trained parameters, estimating with the zero model", log.PathKey, store.Path)
	}

	price := thetas.Estimate(km)
	a.logger.Debug("price estimated",
		log.OperationKey, log.OperationPredict,
		log.Theta0Key, thetas.Theta0,
		log.Theta1Key, thetas.Theta1,
	)
	fmt.Fprintf(a.out, "Estimated price: %.2f\n", math.Max(0, price))
	return nil
}
