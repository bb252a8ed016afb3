// Copyright 2026 The Hatchery Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the hatchery CLI.
//
// Configuration is loaded from a single file specified by:
//   - HATCHERY_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery; without a file the
// built-in defaults apply unchanged. The file tunes CLI behavior only:
// the identity budget, the marker variable, and the filter grammar are
// fixed in code and no configuration can alter them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hatchery-project/hatchery/lib/binident"
)

// Log formats accepted by LogFormat.
const (
	// LogFormatAuto picks text on a terminal, JSON otherwise.
	LogFormatAuto = "auto"
	// LogFormatText forces the human-readable handler.
	LogFormatText = "text"
	// LogFormatJSON forces the machine-readable handler.
	LogFormatJSON = "json"
)

// Config is the hatchery CLI configuration.
type Config struct {
	// ChildBinary is the executable name resolved inside the directory
	// named by CHILD_PATH. A bare name, not a path.
	// Default: hatchery-child
	ChildBinary string `yaml:"child_binary"`

	// FilterFile is the filter specification file name, resolved
	// inside the CHILD_PATH directory unless --filter supplies an
	// explicit path.
	// Default: env
	FilterFile string `yaml:"filter_file"`

	// ForegroundPause is how long a foreground launch pauses after a
	// successful start, as a Go duration string.
	// Default: 100ms
	ForegroundPause string `yaml:"foreground_pause"`

	// Journal is the launch journal path. Empty disables journaling.
	Journal string `yaml:"journal"`

	// LogFormat selects the log handler: auto, text, or json.
	// Default: auto
	LogFormat string `yaml:"log_format"`

	// ChildDigest optionally pins the child binary to a SHA256 hex
	// digest. A mismatch at startup is reported, never fatal: the
	// per-launch resolution stays authoritative.
	ChildDigest string `yaml:"child_digest"`
}

// Default returns the default configuration. Every field has a usable
// value; the config file is optional.
func Default() *Config {
	return &Config{
		ChildBinary:     "hatchery-child",
		FilterFile:      "env",
		ForegroundPause: "100ms",
		Journal:         "",
		LogFormat:       LogFormatAuto,
		ChildDigest:     "",
	}
}

// Load loads configuration from the HATCHERY_CONFIG environment
// variable, or returns the defaults when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv("HATCHERY_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values from
// the file are merged over the defaults, so a partial file is fine.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors, reporting every
// violation at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ChildBinary == "" {
		errs = append(errs, fmt.Errorf("child_binary is required"))
	} else if filepath.Base(c.ChildBinary) != c.ChildBinary {
		errs = append(errs, fmt.Errorf("child_binary must be a bare executable name, got %q", c.ChildBinary))
	}

	if c.FilterFile == "" {
		errs = append(errs, fmt.Errorf("filter_file is required"))
	}

	if pause, err := time.ParseDuration(c.ForegroundPause); err != nil {
		errs = append(errs, fmt.Errorf("foreground_pause: %w", err))
	} else if pause < 0 {
		errs = append(errs, fmt.Errorf("foreground_pause must not be negative, got %s", pause))
	}

	switch c.LogFormat {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log_format must be one of: auto, text, json; got %q", c.LogFormat))
	}

	if c.ChildDigest != "" {
		if _, err := binident.Parse(c.ChildDigest); err != nil {
			errs = append(errs, fmt.Errorf("child_digest: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// PauseDuration returns ForegroundPause parsed as a duration. Validate
// must have accepted the config first.
func (c *Config) PauseDuration() (time.Duration, error) {
	return time.ParseDuration(c.ForegroundPause)
}

// DigestPin returns the parsed child binary digest pin and whether one
// is configured.
func (c *Config) DigestPin() (binident.Digest, bool, error) {
	if c.ChildDigest == "" {
		return binident.Digest{}, false, nil
	}
	digest, err := binident.Parse(c.ChildDigest)
	if err != nil {
		return binident.Digest{}, false, err
	}
	return digest, true, nil
}
