// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config adapts the YAML configuration file, the optional
// .env file, and the environment variable overrides to the settings
// which are required by other parts of the project. It is preferred
// to implement Config with primitive fields or other structs which
// are defined locally, not models or structs which are defined in
// lower layers, so other layers can change freely without affecting
// the deployed configuration files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DataDirEnvVar is the environment variable which overrides the
// configured storage location. It is the only environment-based knob
// beside the CONFIG_FILE variable (handled by the command package).
const DataDirEnvVar = "CARCARE_DATA_DIR"

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases.
type Config struct {
	Storage Storage `yaml:"storage"`
	Logger  Logger  `yaml:"logger"`
	Garage  Garage  `yaml:"garage"`
}

// Storage contains the persistence adapter settings.
type Storage struct {
	// DataDir is the directory holding the two backing JSON files.
	DataDir string `yaml:"data_dir" validate:"required"`
}

// Logger contains the structured logging settings.
type Logger struct {
	// Level is the minimum severity of the recorded log lines.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	// File is the log file name. A relative name is resolved against
	// the data directory. An empty name sends logs to the standard
	// error stream instead (which interleaves them with the menu).
	File string `yaml:"file"`
}

// Garage contains the garage use case settings.
type Garage struct {
	// DuplicateWindowDays configures the repeated booking advisory
	// window (exclusive upper boundary).
	DuplicateWindowDays int `yaml:"duplicate_window_days" validate:"omitempty,min=1"`
	// RecentWindowDays configures the recent services statistic
	// window (inclusive upper boundary).
	RecentWindowDays int `yaml:"recent_window_days" validate:"omitempty,min=1"`
}

// Default returns the configuration which is used when no config file
// exists at the resolved path.
func Default() *Config {
	return &Config{
		Storage: Storage{DataDir: "data"},
		Logger:  Logger{Level: "info", File: "carcare.log"},
		Garage:  Garage{DuplicateWindowDays: 30, RecentWindowDays: 7},
	}
}

// Load reads the YAML config file at the given path, merges it over
// the defaults, applies the environment variable overrides (loading a
// .env file first, if one exists in the working directory), validates
// the result, and returns it. A missing config file is not an error
// and yields the defaults, while a malformed file is reported.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// keep the defaults
	case err != nil:
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}
	_ = godotenv.Load() // the .env file is optional
	if dir := os.Getenv(DataDirEnvVar); dir != "" {
		c.Storage.DataDir = dir
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// ValidateAndNormalize checks the settings values and fills the
// zero-valued optional settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Garage.DuplicateWindowDays == 0 {
		c.Garage.DuplicateWindowDays = 30
	}
	if c.Garage.RecentWindowDays == 0 {
		c.Garage.RecentWindowDays = 7
	}
	return nil
}
