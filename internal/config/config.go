package config

import (
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/YuminosukeSato/pricefit/pkg/errors"
	"github.com/YuminosukeSato/pricefit/pkg/log"
)

// EnvPrefix prefixes environment overrides, e.g. PRICEFIT_TRAINING_LEARNING_RATE.
const EnvPrefix = "PRICEFIT"

type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Data     DataConfig     `mapstructure:"data"`
	Model    ModelConfig    `mapstructure:"model"`
	Plot     PlotConfig     `mapstructure:"plot"`
	Training TrainingConfig `mapstructure:"training"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
}

type ModelConfig struct {
	Path string `mapstructure:"path"`
}

type PlotConfig struct {
	Path string `mapstructure:"path"`
}

type TrainingConfig struct {
	LearningRate float64 `mapstructure:"learning_rate"`
	Iterations   int     `mapstructure:"iterations"`
	Epsilon      float64 `mapstructure:"epsilon"`
}

// New returns a viper instance with defaults, environment overrides and the
// config file search path set up. configFile, when non-empty, is read
// instead of searching for pricefit.yaml.
func New(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pricefit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if there is one, then unmarshals and validates.
// A missing config file is not an error; defaults and environment apply.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !(c.Training.LearningRate > 0) || math.IsInf(c.Training.LearningRate, 1) {
		return errors.NewValidationError("training.learning_rate", "must be a positive finite number", c.Training.LearningRate)
	}
	if c.Training.Iterations <= 0 {
		return errors.NewValidationError("training.iterations", "must be positive", c.Training.Iterations)
	}
	if !(c.Training.Epsilon > 0) {
		return errors.NewValidationError("training.epsilon", "must be positive", c.Training.Epsilon)
	}
	if c.Model.Path == "" {
		return errors.NewValidationError("model.path", "must not be empty", c.Model.Path)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")

	v.SetDefault("data.path", "data.csv")
	v.SetDefault("model.path", "thetas.json")
	v.SetDefault("plot.path", "plot.png")

	v.SetDefault("training.learning_rate", 0.1)
	v.SetDefault("training.iterations", 1000)
	v.SetDefault("training.epsilon", 1e-6)
}
