package main

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexshd/quadrature/internal/config"
)

// settings is filled in before any subcommand runs.
type settings struct {
	config.Config
	Logger *slog.Logger
}

// NewCmdRoot returns the quad command with every subcommand attached.
func NewCmdRoot(out, errout io.Writer) *cobra.Command {
	s := &settings{}

	cmd := &cobra.Command{
		Use:   "quad",
		Short: "Approximate definite integrals with composite quadrature rules",
		Long: `Approximate definite integrals with the composite trapezoidal rule or
Simpson's rules (1/3 and 3/8).

Settings come from flags, QUAD_* environment variables and an optional
YAML file given with --config, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load(c.Flags())
			if err != nil {
				return err
			}
			level, err := cfg.SlogLevel()
			if err != nil {
				return err
			}

			s.Config = cfg
			s.Logger = slog.New(tint.NewHandler(errout, &tint.Options{
				Level:      level,
				TimeFormat: "15:04:05",
			}))
			slog.SetDefault(s.Logger)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errout)

	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		NewCmdSolve(cmd.Name(), s, out),
		NewCmdStudy(cmd.Name(), s, out),
		NewCmdBatch(cmd.Name(), s, out),
	)
	return cmd
}
