package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/pricefit/core/model"
	"github.com/YuminosukeSato/pricefit/dataset"
	"github.com/YuminosukeSato/pricefit/linear"
	"github.com/YuminosukeSato/pricefit/metrics"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
	"github.com/YuminosukeSato/pricefit/pkg/log"
	"github.com/YuminosukeSato/pricefit/visualize"
)

type trainOpts struct {
	dataPath     string
	learningRate float64
	iterations   int
	plot         bool
}

func newTrainCommand(app *App) *cobra.Command {
	var plot bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the model on a CSV dataset and save it",
		Long: `Fit price = theta0 + theta1 * km on the km and price columns of a CSV
file, save the parameters to the model file and report R².`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := trainOpts{
				dataPath:     app.cfg.Data.Path,
				learningRate: app.cfg.Training.LearningRate,
				iterations:   app.cfg.Training.Iterations,
				plot:         plot,
			}
			return errors.SafeExecute("train", func() error {
				return app.train(opts)
			})
		},
	}

	cmd.Flags().String("data", "data.csv", "Path of the CSV dataset")
	cmd.Flags().Float64("learning-rate", linear.DefaultLearningRate, "Gradient descent step size")
	cmd.Flags().Int("iterations", linear.DefaultMaxIter, "Maximum number of gradient descent rounds")
	cmd.Flags().Float64("epsilon", linear.DefaultTol, "Stop once neither parameter moves by this much in a round")
	cmd.Flags().BoolVar(&plot, "plot", false, "Also save a plot of the data and the fitted line")
	cmd.Flags().String("plot-path", visualize.DefaultPath, "Where to save the plot (png, svg or pdf)")
	return cmd
}

func (a *App) trainInteractive() error {
	opts := trainOpts{
		dataPath:     a.cfg.Data.Path,
		learningRate: a.cfg.Training.LearningRate,
		iterations:   a.cfg.Training.Iterations,
	}

	answer, err := a.prompt(fmt.Sprintf("Data CSV path [%s]: ", opts.dataPath))
	if err != nil {
		return err
	}
	if answer != "" {
		opts.dataPath = answer
	}

	answer, err = a.prompt(fmt.Sprintf("Learning rate (blank=default %g): ", opts.learningRate))
	if err != nil {
		return err
	}
	if answer != "" {
		lr, err := strconv.ParseFloat(answer, 64)
		if err != nil || !(lr > 0) || math.IsInf(lr, 1) {
			fmt.Fprintln(a.out, "Invalid number. Aborting.")
			return nil
		}
		opts.learningRate = lr
	}

	answer, err = a.prompt(fmt.Sprintf("Iterations (blank=default %d): ", opts.iterations))
	if err != nil {
		return err
	}
	if answer != "" {
		n, err := strconv.Atoi(answer)
		if err != nil || n <= 0 {
			fmt.Fprintln(a.out, "Invalid number. Aborting.")
			return nil
		}
		opts.iterations = n
	}

	thetas, ds, err := a.fitAndReport(opts)
	if err != nil {
		return err
	}

	answer, err = a.prompt("Show plot? [y/N]: ")
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
		return a.savePlot(ds, thetas)
	}
	return nil
}

func (a *App) train(opts trainOpts) error {
	thetas, ds, err := a.fitAndReport(opts)
	if err != nil {
		return err
	}
	if opts.plot {
		return a.savePlot(ds, thetas)
	}
	return nil
}

// fitAndReport loads the dataset, fits and saves the model, and prints the
// fit summary. Nothing is saved when loading or fitting fails.
func (a *App) fitAndReport(opts trainOpts) (model.Thetas, *dataset.Dataset, error) {
	ds, err := dataset.Load(a.fs, opts.dataPath)
	if err != nil {
		return model.Thetas{}, nil, err
	}
	fmt.Fprintf(a.out, "Loaded %d rows from %s\n", ds.Len(), opts.dataPath)

	start := time.Now()
	thetas, err := linear.Train(ds.Mileages, ds.Prices,
		linear.WithLearningRate(opts.learningRate),
		linear.WithMaxIter(opts.iterations),
		linear.WithTol(a.cfg.Training.Epsilon),
	)
	if err != nil {
		return model.Thetas{}, nil, err
	}

	store := model.NewStore(a.fs, a.cfg.Model.Path)
	if err := store.Save(thetas); err != nil {
		return model.Thetas{}, nil, err
	}
	a.logger.Info("model saved",
		log.OperationKey, log.OperationSave,
		log.PathKey, store.Path,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	fmt.Fprintf(a.out, "Done. theta0=%.4f, theta1=%.6f (saved to %s)\n", thetas.Theta0, thetas.Theta1, store.Path)

	report, err := metrics.Evaluate(ds.Mileages, ds.Prices, thetas)
	if err != nil {
		return model.Thetas{}, nil, err
	}
	a.logger.Info("model evaluated",
		log.OperationKey, log.OperationScore,
		log.R2ScoreKey, report.R2,
		log.LossKey, report.MSE,
	)
	fmt.Fprintf(a.out, "R²: %.4f (%.2f%% accuracy)\n", report.R2, report.R2*100)

	return thetas, ds, nil
}

func (a *App) savePlot(ds *dataset.Dataset, thetas model.Thetas) error {
	path := a.cfg.Plot.Path
	if err := visualize.SaveRegressionPlot(a.fs, path, ds.Mileages, ds.Prices, thetas); err != nil {
		return err
	}
	a.logger.Info("plot saved", log.OperationKey, log.OperationPlot, log.PathKey, path)
	fmt.Fprintf(a.out, "Plot saved to %s\n", path)
	return nil
}
