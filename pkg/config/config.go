// Package config loads YAML configuration files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config configures where configuration is loaded from.
type Config struct {
	// Path is the path of a YAML configuration file. If empty no file is
	// loaded and only flags are used.
	Path string

	// ExpandEnv enables expanding environment variables in the loaded file.
	ExpandEnv bool
}

func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(
		&c.Path,
		"config.path",
		"",
		`
YAML config file path.`,
	)

	fs.BoolVar(
		&c.ExpandEnv,
		"config.expand-env",
		false,
		`
Whether to expand environment variables in the config file.

This will replaces references to ${VAR} or $VAR with the corresponding
environment variable. The replacement is case-sensitive.

References to undefined variables will be replaced with an empty string. A
default value can be given using form ${VAR:default}.`,
	)
}

// Load decodes the YAML file at path into conf. Fields already set in conf
// are kept unless overridden by the file, so conf should contain the
// defaults.
//
// Unknown fields are rejected. If path is empty Load does nothing.
func Load(conf interface{}, path string, expandEnv bool) error {
	if path == "" {
		return nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %s: %w", path, err)
	}

	if expandEnv {
		buf = []byte(os.Expand(string(buf), getEnv))
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	if err := dec.Decode(conf); err != nil {
		return fmt.Errorf("parse config: %s: %w", path, err)
	}

	return nil
}

// getEnv looks up the environment variable key, where key may include a
// default value as 'key:default'.
func getEnv(key string) string {
	name, defaultValue, hasDefault := strings.Cut(key, ":")
	value, ok := os.LookupEnv(name)
	if !ok && hasDefault {
		return defaultValue
	}
	return value
}
