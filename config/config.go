// Package config loads the service configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"

	"homeprice/logging"
	"homeprice/ml"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Client    ClientConfig    `yaml:"client"`
	Predict   PredictConfig   `yaml:"predict"`
	Log       logging.Config  `yaml:"log"`
}

type HTTPConfig struct {
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

type ArtifactsConfig struct {
	ModelType   string `yaml:"model_type"`
	ModelPath   string `yaml:"model_path"`
	ColumnsPath string `yaml:"columns_path"`
	// Watch logs a warning when an artifact changes on disk. Nothing is reloaded.
	Watch bool `yaml:"watch"`
}

type ClientConfig struct {
	Dir string `yaml:"dir"`
}

type PredictConfig struct {
	// StrictLocations rejects unknown locations with 400 instead of scoring
	// them with no location signal.
	StrictLocations bool `yaml:"strict_locations"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:    5000,
			Timeout: 30 * time.Second,
		},
		Artifacts: ArtifactsConfig{
			ModelType:   ml.ModelTypeLinear,
			ModelPath:   "artifacts/home_prices_model.json",
			ColumnsPath: "artifacts/columns.json",
		},
		Client: ClientConfig{Dir: "client"},
		Log:    logging.DefaultConfig(),
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HOMEPRICE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HOMEPRICE_PORT: %w", err)
		}
		c.HTTP.Port = port
	}
	setString(&c.Artifacts.ModelPath, "HOMEPRICE_MODEL_PATH")
	setString(&c.Artifacts.ColumnsPath, "HOMEPRICE_COLUMNS_PATH")
	setString(&c.Client.Dir, "HOMEPRICE_CLIENT_DIR")
	setString(&c.Log.Level, "HOMEPRICE_LOG_LEVEL")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	var errs error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	if c.HTTP.Timeout <= 0 {
		errs = multierr.Append(errs, errors.New("http.timeout must be positive"))
	}
	switch c.Artifacts.ModelType {
	case ml.ModelTypeLinear, ml.ModelTypeDecisionTree:
	default:
		errs = multierr.Append(errs, fmt.Errorf("artifacts.model_type %q is not supported", c.Artifacts.ModelType))
	}
	if c.Artifacts.ModelPath == "" {
		errs = multierr.Append(errs, errors.New("artifacts.model_path is required"))
	}
	if c.Artifacts.ColumnsPath == "" {
		errs = multierr.Append(errs, errors.New("artifacts.columns_path is required"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errs
}
