// Package cli wires the pricefit commands: train, predict and the interactive
// menu that runs when no subcommand is given.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/pricefit/internal/config"
	"github.com/YuminosukeSato/pricefit/pkg/errors"
	"github.com/YuminosukeSato/pricefit/pkg/log"
)

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"model":         "model.path",
	"data":          "data.path",
	"plot-path":     "plot.path",
	"learning-rate": "training.learning_rate",
	"iterations":    "training.iterations",
	"epsilon":       "training.epsilon",
}

// App holds the I/O and configuration shared by all commands.
type App struct {
	fs     afero.Fs
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	configFile string
	cfg        *config.Config
	logger     log.Logger
}

// NewApp creates an App reading answers from in and writing results to out.
// Logs and warnings go to errOut.
func NewApp(fs afero.Fs, in io.Reader, out, errOut io.Writer) *App {
	return &App{
		fs:     fs,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pricefit",
		Short: "Fit and query a linear car price model",
		Long: `pricefit learns price = theta0 + theta1 * km from a CSV of
(km, price) observations by gradient descent, stores the two parameters
and estimates prices for new mileages.

Run without a subcommand for an interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.SafeExecute("menu", app.runMenu)
		},
	}

	cmd.PersistentFlags().StringVar(&app.configFile, "config", "", "Config file (default: pricefit.yaml in . or ./configs)")
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("model", "thetas.json", "Path of the model file")

	cmd.AddCommand(
		newTrainCommand(app),
		newPredictCommand(app),
	)
	return cmd
}

// setup loads the configuration with flags layered on top and installs the
// logger.
func (a *App) setup(flags *pflag.FlagSet) error {
	v := config.New(a.configFile)
	if err := bindFlags(v, flags); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := log.SetupLogger(a.errOut, cfg.LogLevel); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.GetLogger().With(log.ComponentKey, "cli")
	a.logger.Debug("configuration loaded",
		log.PathKey, cfg.Model.Path,
		log.LearningRateKey, cfg.Training.LearningRate,
		log.MaxIterKey, cfg.Training.Iterations,
	)
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", name)
		}
	}
	return nil
}

func (a *App) runMenu() error {
	choice, err := a.prompt("Choose: [1] train  [2] predict: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.trainInteractive()
	case "2":
		return a.predictInteractive()
	default:
		fmt.Fprintln(a.out, "Please type 1 or 2.")
		return nil
	}
}

// prompt writes label and returns the trimmed answer. End of input counts as
// a blank answer.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)

	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}
