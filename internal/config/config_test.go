package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "data.csv", cfg.Data.Path)
	assert.Equal(t, "thetas.json", cfg.Model.Path)
	assert.Equal(t, "plot.png", cfg.Plot.Path)
	assert.Equal(t, 0.1, cfg.Training.LearningRate)
	assert.Equal(t, 1000, cfg.Training.Iterations)
	assert.Equal(t, 1e-6, cfg.Training.Epsilon)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))

	content := []byte(`log_level: debug
data:
  path: cars.csv
training:
  learning_rate: 0.5
  iterations: 200
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "pricefit.yaml"), content, 0o644))

	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "cars.csv", cfg.Data.Path)
	assert.Equal(t, 0.5, cfg.Training.LearningRate)
	assert.Equal(t, 200, cfg.Training.Iterations)
	// untouched keys keep their defaults
	assert.Equal(t, "thetas.json", cfg.Model.Path)
	assert.Equal(t, 1e-6, cfg.Training.Epsilon)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  path: out/model.json\n"), 0o644))

	cfg, err := Load(New(path))
	require.NoError(t, err)
	assert.Equal(t, "out/model.json", cfg.Model.Path)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(New(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRICEFIT_TRAINING_ITERATIONS", "50")
	t.Setenv("PRICEFIT_MODEL_PATH", "env.json")

	cfg, err := Load(New(""))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Training.Iterations)
	assert.Equal(t, "env.json", cfg.Model.Path)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			LogLevel: "info",
			Model:    ModelConfig{Path: "thetas.json"},
			Training: TrainingConfig{LearningRate: 0.1, Iterations: 10, Epsilon: 1e-6},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"zero learning rate", func(c *Config) { c.Training.LearningRate = 0 }, "training.learning_rate"},
		{"negative learning rate", func(c *Config) { c.Training.LearningRate = -1 }, "training.learning_rate"},
		{"zero iterations", func(c *Config) { c.Training.Iterations = 0 }, "training.iterations"},
		{"zero epsilon", func(c *Config) { c.Training.Epsilon = 0 }, "training.epsilon"},
		{"empty model path", func(c *Config) { c.Model.Path = "" }, "model.path"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			if tt.param != "" {
				assert.Equal(t, tt.param, valErr.ParamName)
			}
		})
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
