package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/quadrature"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.Rule, cfg.Rule)
	assert.Equal(t, d.Iterations, cfg.Iterations)
	assert.Equal(t, d.Composite, cfg.Composite)
	assert.Equal(t, d.Levels, cfg.Levels)
	assert.True(t, cfg.Memoize)
	assert.Equal(t, FormatText, cfg.Format)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_NilFlagSet(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Rule, cfg.Rule)
}

func TestLoad_Precedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "quad.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"rule: trapezoidal\n"+
			"iterations: 100\n"+
			"log-level: warn\n"+
			"levels: [10, 20, 40]\n"), 0o600))

	t.Setenv("QUAD_ITERATIONS", "200")
	t.Setenv("QUAD_LOG_LEVEL", "debug")

	cfg, err := Load(newFlags(t, "--config", file, "--log-level", "error"))
	require.NoError(t, err)

	assert.Equal(t, file, cfg.File)
	assert.Equal(t, quadrature.RuleTrapezoidal, cfg.Rule, "file beats default")
	assert.Equal(t, 200, cfg.Iterations, "env beats file")
	assert.Equal(t, "error", cfg.LogLevel, "flag beats env")
	assert.Equal(t, []int{10, 20, 40}, cfg.Levels)
}

func TestLoad_EnvLevels(t *testing.T) {
	t.Setenv("QUAD_LEVELS", "3,6,9")
	t.Setenv("QUAD_COMPOSITE", "3/8")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 9}, cfg.Levels)

	composite, err := cfg.CompositeValue()
	require.NoError(t, err)
	assert.Equal(t, quadrature.ThreeEighths, composite)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(newFlags(t, "--rule", "boole"))
	assert.ErrorIs(t, err, quadrature.ErrUnknownRule)

	_, err = Load(newFlags(t, "--composite", "1/5"))
	assert.ErrorIs(t, err, quadrature.ErrMissingComposite)

	_, err = Load(newFlags(t, "--workers", "0", "--format", "xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "xml")
}

func TestConfig_NewRule(t *testing.T) {
	cfg := Default()
	cfg.Composite = "three-eighths"
	cfg.Iterations = 12

	rule, err := cfg.NewRule()
	require.NoError(t, err)

	simpson, ok := rule.(*quadrature.SimpsonsRule)
	require.True(t, ok, "expected *SimpsonsRule, got %T", rule)
	assert.Equal(t, quadrature.ThreeEighths, simpson.Composite())

	cfg.Iterations = 10
	_, err = cfg.NewRule()
	assert.ErrorIs(t, err, quadrature.ErrInvalidIterations)
}
