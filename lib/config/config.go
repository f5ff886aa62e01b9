// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/layerargs/lib/argsource"
	"github.com/bureau-foundation/layerargs/lib/cli"
)

// EnvironmentVariable names the variable [Load] reads the config path from.
const EnvironmentVariable = "LAYERARGS_CONFIG"

// ErrNotConfigured is returned by [Load] when LAYERARGS_CONFIG is unset.
var ErrNotConfigured = errors.New(EnvironmentVariable + " environment variable not set")

// Config is the configuration of a layerargs binary.
type Config struct {
	// Sources lists the argument sources to register, in order.
	Sources []SourceConfig `yaml:"sources"`

	// Decryption configures .age document decryption.
	Decryption DecryptionConfig `yaml:"decryption"`

	// Parsing configures command-line resolution.
	Parsing ParsingConfig `yaml:"parsing"`

	// Logging configures the command logger.
	Logging LoggingConfig `yaml:"logging"`

	// Help configures help output.
	Help HelpConfig `yaml:"help"`
}

// SourceConfig declares one argument source.
type SourceConfig struct {
	// Key is the option name that selects the source, without dashes.
	Key string `yaml:"key"`

	// Format is the document format: auto, yaml, json, cbor or toml.
	// Default: auto
	Format string `yaml:"format"`
}

// DecryptionConfig configures age decryption of .age documents.
type DecryptionConfig struct {
	// IdentityFile is an age identity file. Relative paths resolve
	// against the config file's directory.
	IdentityFile string `yaml:"identity_file"`
}

// ParsingConfig configures command-line resolution.
type ParsingConfig struct {
	// Strict rejects unknown options that no argument source consumed.
	Strict bool `yaml:"strict"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`
}

// HelpConfig configures help output.
type HelpConfig struct {
	// Color is auto, always or never.
	// Default: auto
	Color string `yaml:"color"`
}

// Default returns the configuration used when no file is given: a YAML
// source on --yaml and an extension-detected source on --config.
func Default() *Config {
	return &Config{
		Sources: []SourceConfig{
			{Key: argsource.DefaultYAMLKey, Format: "yaml"},
			{Key: "config", Format: "auto"},
		},
		Logging: LoggingConfig{Level: "info"},
		Help:    HelpConfig{Color: "auto"},
	}
}

// Load loads configuration from the LAYERARGS_CONFIG environment
// variable. It returns [ErrNotConfigured] when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, ErrNotConfigured
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields absent
// from the file keep their [Default] values; a sources list in the file
// replaces the default list. Unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	directory, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.expandVariables(directory)

	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths
// and resolves relative paths against directory.
func (c *Config) expandVariables(directory string) {
	vars := map[string]string{
		"LAYERARGS_CONFIG_DIR": directory,
		"HOME":                 os.Getenv("HOME"),
	}

	if c.Decryption.IdentityFile != "" {
		identityFile := expandVars(c.Decryption.IdentityFile, vars)
		if !filepath.IsAbs(identityFile) {
			identityFile = filepath.Join(directory, identityFile)
		}
		c.Decryption.IdentityFile = identityFile
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	for i, source := range c.Sources {
		if source.Key == "" {
			errs = append(errs, fmt.Errorf("sources[%d].key is required", i))
		} else if strings.HasPrefix(source.Key, "-") {
			errs = append(errs, fmt.Errorf("sources[%d].key %q must not start with a dash", i, source.Key))
		}
		if _, err := argsource.ParseFormat(source.Format); err != nil {
			errs = append(errs, fmt.Errorf("sources[%d].format: %w", i, err))
		}
	}

	if _, err := cli.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	if _, err := cli.ParseColorMode(c.Help.Color); err != nil {
		errs = append(errs, fmt.Errorf("help.color: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Registry builds the argument source registry described by Sources.
// Every source shares one loader, configured with the decryption
// identity when one is set.
func (c *Config) Registry(logger *slog.Logger) (*argsource.Registry, error) {
	options := []argsource.LoaderOption{argsource.WithLoaderLogger(logger)}
	if c.Decryption.IdentityFile != "" {
		identities, err := argsource.ReadIdentityFile(c.Decryption.IdentityFile)
		if err != nil {
			return nil, fmt.Errorf("decryption.identity_file: %w", err)
		}
		options = append(options, argsource.WithIdentities(identities...))
	}
	loader := argsource.NewLoader(options...)

	registry := argsource.NewRegistry()
	for i, source := range c.Sources {
		format, err := argsource.ParseFormat(source.Format)
		if err != nil {
			return nil, fmt.Errorf("sources[%d].format: %w", i, err)
		}
		if err := registry.Register(argsource.NewSource(source.Key, format, argsource.WithLoader(loader))); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	return registry, nil
}
