// Package config loads CLI settings from defaults, an optional YAML file,
// QUAD_* environment variables and flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexshd/quadrature"
)

// EnvPrefix prefixes every environment variable, e.g. QUAD_LOG_LEVEL.
const EnvPrefix = "QUAD"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings shared by every command.
type Config struct {
	File       string `mapstructure:"config"`     // YAML config file, if any
	Rule       string `mapstructure:"rule"`       // trapezoidal | simpson
	Iterations int    `mapstructure:"iterations"` // n for solve
	Composite  string `mapstructure:"composite"`  // main | three-eighths
	Workers    int    `mapstructure:"workers"`    // Concurrent solves
	Levels     []int  `mapstructure:"levels"`     // Iteration counts for study
	Memoize    bool   `mapstructure:"memoize"`    // Cache integrand values in study
	LogLevel   string `mapstructure:"log-level"`  // debug | info | warn | error
	Format     string `mapstructure:"format"`     // text | json
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Rule:       quadrature.RuleSimpson,
		Iterations: 12,
		Composite:  quadrature.Main.String(),
		Workers:    runtime.NumCPU(),
		Levels:     quadrature.DefaultStudyConfig().Levels,
		Memoize:    true,
		LogLevel:   "info",
		Format:     FormatText,
	}
}

// AddFlags registers a flag for every setting on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.String("config", "", "YAML file with default settings")
	fs.String("rule", d.Rule, "quadrature rule: trapezoidal or simpson")
	fs.IntP("iterations", "n", d.Iterations, "number of subintervals")
	fs.String("composite", d.Composite, "Simpson's variant: main (1/3) or three-eighths (3/8)")
	fs.Int("workers", d.Workers, "number of concurrent solves")
	fs.IntSlice("levels", d.Levels, "iteration counts for a convergence study")
	fs.Bool("memoize", d.Memoize, "cache integrand values across study levels")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	fs.StringP("format", "o", d.Format, "output format: text or json")
}

// Load resolves the settings. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("config", "")
	v.SetDefault("rule", d.Rule)
	v.SetDefault("iterations", d.Iterations)
	v.SetDefault("composite", d.Composite)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("levels", d.Levels)
	v.SetDefault("memoize", d.Memoize)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("format", d.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.Factory(); err != nil {
		errs = append(errs, err)
	}
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", c.Iterations))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("levels can't be empty"))
	}
	for _, n := range c.Levels {
		if n < 1 {
			errs = append(errs, fmt.Errorf("levels must be positive, got %d", n))
			break
		}
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log-level: %w", err)
	}
	return level, nil
}

// CompositeValue parses Composite. It must be valid even though only
// Simpson's rule looks at it.
func (c Config) CompositeValue() (quadrature.Composite, error) {
	return quadrature.ParseComposite(c.Composite)
}

// Factory returns a factory for the configured rule.
func (c Config) Factory() (quadrature.RuleFactory, error) {
	composite, err := c.CompositeValue()
	if err != nil {
		return nil, err
	}
	return quadrature.NamedFactory(c.Rule, composite)
}

// NewRule builds the configured rule with the configured iteration count.
func (c Config) NewRule() (quadrature.Rule, error) {
	factory, err := c.Factory()
	if err != nil {
		return nil, err
	}
	return factory(c.Iterations)
}
