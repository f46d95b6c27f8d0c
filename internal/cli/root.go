// Package cli implements the bccalc command line interface on top of cobra.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/govalues/bcnum/internal/buildinfo"
	"github.com/govalues/bcnum/internal/config"
	"github.com/govalues/bcnum/internal/logger"
)

// app holds what the subcommands share once flags are parsed.
type app struct {
	cfg config.Config
	log *logrus.Logger
}

// Execute runs the bccalc command and exits with status 1 on failure.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the bccalc command with all of its subcommands.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logFormat  string
	)

	a := &app{
		cfg: config.Default(),
		log: logger.Discard(),
	}

	cmd := &cobra.Command{
		Use:          "bccalc",
		Short:        "bccalc - exact decimal calculator",
		Version:      buildinfo.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.New(logger.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.log = log
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")

	cmd.AddCommand(
		evalCmd(a),
		roundingCmd(a, "round", "Round a number half away from zero", roundMethod),
		roundingCmd(a, "floor", "Round a number towards negative infinity", floorMethod),
		roundingCmd(a, "ceil", "Round a number towards positive infinity", ceilMethod),
	)
	return cmd
}
