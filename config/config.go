// SPDX-License-Identifier: MIT

// Package config loads run configuration from a YAML file, a .env file and
// OPTINT_* environment variables, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ZhengKeli/OpticalInterpretation/archive"
	"github.com/ZhengKeli/OpticalInterpretation/lindblad"
	"github.com/ZhengKeli/OpticalInterpretation/logging"
	"github.com/ZhengKeli/OpticalInterpretation/model"
	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/ZhengKeli/OpticalInterpretation/simulation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OPTINT_"

var (
	// ErrInvalidConfig indicates a value that fails validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidEnv indicates an environment override that does not parse.
	ErrInvalidEnv = errors.New("config: invalid environment value")
)

// Config is the full run configuration.
type Config struct {
	Log       logging.Config      `yaml:"log"`
	Evolution simulation.Settings `yaml:"evolution"`
	Output    Output              `yaml:"output"`
	Chemical  Chemical            `yaml:"chemical"`
	Optical   Optical             `yaml:"optical"`
}

// Output selects where reports go.
type Output struct {
	Format         string `yaml:"format"`
	Path           string `yaml:"path"`
	Archive        string `yaml:"archive"`
	ArchiveBackend string `yaml:"archive_backend"`
}

// Chemical holds the chemical model parameters and its initial state.
type Chemical struct {
	model.ChemicalParams `yaml:",inline"`
	Initial              model.ChemicalInitial `yaml:"initial"`
}

// Optical holds the optical model parameters and its initial state.
type Optical struct {
	model.OpticalParams `yaml:",inline"`
	Initial             model.OpticalInitial `yaml:"initial"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:       logging.Config{Level: "info"},
		Evolution: simulation.DefaultSettings(),
		Output:    Output{Format: string(report.FormatJSON)},
		Chemical:  Chemical{ChemicalParams: model.DefaultChemicalParams(), Initial: model.DefaultChemicalInitial()},
		Optical:   Optical{OpticalParams: model.DefaultOpticalParams(), Initial: model.DefaultOpticalInitial()},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if not
// empty), then OPTINT_* variables. A .env file in the working directory is
// loaded first when present; it never overrides variables already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the evolution settings and output selection. Model parameters
// are validated when the models are built.
func (c *Config) Validate() error {
	if err := c.Evolution.Validate(); err != nil {
		return fmt.Errorf("%w: evolution: %v", ErrInvalidConfig, err)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Output.ArchiveBackend) {
	case "":
	case archive.BackendMemory:
		if c.Output.Archive != "" {
			return fmt.Errorf("%w: output: memory archive cannot persist to %s", ErrInvalidConfig, c.Output.Archive)
		}
	case archive.BackendSQLite:
		if c.Output.Archive == "" {
			return fmt.Errorf("%w: output: sqlite archive needs a path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: output: archive backend %q", ErrInvalidConfig, c.Output.ArchiveBackend)
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Output.Format = getEnv("FORMAT", c.Output.Format)
	c.Output.Path = getEnv("OUT", c.Output.Path)
	c.Output.Archive = getEnv("ARCHIVE", c.Output.Archive)
	c.Output.ArchiveBackend = getEnv("ARCHIVE_BACKEND", c.Output.ArchiveBackend)
	c.Evolution.Method = lindblad.Method(getEnv("METHOD", string(c.Evolution.Method)))

	var err error
	if c.Log.Pretty, err = getEnvAsBool("LOG_PRETTY", c.Log.Pretty); err != nil {
		return err
	}
	if c.Evolution.Span, err = getEnvAsFloat("SPAN", c.Evolution.Span); err != nil {
		return err
	}
	if c.Evolution.Dt, err = getEnvAsFloat("DT", c.Evolution.Dt); err != nil {
		return err
	}
	if c.Evolution.Threshold, err = getEnvAsFloat("THRESHOLD", c.Evolution.Threshold); err != nil {
		return err
	}
	if c.Evolution.Samples, err = getEnvAsInt("SAMPLES", c.Evolution.Samples); err != nil {
		return err
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s=%q", ErrInvalidEnv, EnvPrefix, key, value)
	}
	return v, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s=%q", ErrInvalidEnv, EnvPrefix, key, value)
	}
	return v, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s%s=%q", ErrInvalidEnv, EnvPrefix, key, value)
	}
	return v, nil
}
