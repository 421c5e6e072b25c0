// Package config loads connection and policy settings from a YAML file, a
// .env file and the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/golobby/stmt"
)

const (
	EnvDriver    = "DB_DRIVER"
	EnvURL       = "DB_URL"
	EnvLogLevel  = "STMT_LOG"
	EnvInterp    = "STMT_INTERPOLATE"
	EnvWildcard  = "STMT_ALLOW_WILDCARD"
	EnvUnbounded = "STMT_ALLOW_UNBOUNDED"
)

type Config struct {
	Driver                 string `yaml:"driver"`
	URL                    string `yaml:"url"`
	LogLevel               string `yaml:"log_level"`
	Interpolate            bool   `yaml:"interpolate"`
	AllowWildcardSelect    bool   `yaml:"allow_wildcard_select"`
	AllowUnboundedMutation bool   `yaml:"allow_unbounded_mutation"`
}

func Default() *Config {
	return &Config{Driver: "postgres", LogLevel: "silent"}
}

// Load builds a Config. path and envFile may be empty; a missing envFile is
// not an error, a missing path is.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDriver); v != "" {
		c.Driver = v
	}
	if v := os.Getenv(EnvURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	for name, dst := range map[string]*bool{
		EnvInterp:    &c.Interpolate,
		EnvWildcard:  &c.AllowWildcardSelect,
		EnvUnbounded: &c.AllowUnboundedMutation,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

func (c *Config) Policy() stmt.Policy {
	return stmt.Policy{
		AllowWildcardSelect:    c.AllowWildcardSelect,
		AllowUnboundedMutation: c.AllowUnboundedMutation,
	}
}

// ConnectionConfig converts c for stmt.Connect.
func (c *Config) ConnectionConfig() (stmt.ConnectionConfig, error) {
	level, err := stmt.ParseLogLevel(c.LogLevel)
	if err != nil {
		return stmt.ConnectionConfig{}, err
	}
	dialect, err := stmt.DialectFor(c.Driver)
	if err != nil {
		return stmt.ConnectionConfig{}, err
	}
	return stmt.ConnectionConfig{
		Name:             "default",
		Driver:           c.Driver,
		ConnectionString: c.URL,
		Dialect:          dialect,
		Policy:           c.Policy(),
		Interpolate:      c.Interpolate,
		LogLevel:         level,
	}, nil
}
