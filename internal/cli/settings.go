package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rest-mapper/internal/config"
	"rest-mapper/internal/logger"
)

// resolveConfig loads the config file named by --config, then applies the
// environment and finally the flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(strings.TrimSpace(path))
	if err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cmd.Flags(), cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, newUsageError(err.Error())
	}

	return cfg, nil
}

func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("log-level") {
		value, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(value))
	}
	if flags.Changed("output") {
		value, err := flags.GetString("output")
		if err != nil {
			return err
		}
		cfg.Output = strings.ToLower(strings.TrimSpace(value))
	}
	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		value, err := flags.GetBool("strict")
		if err != nil {
			return err
		}
		cfg.Strict = value
	}

	return nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *logger.Logger {
	log := logger.NewWithWriter(cmd.ErrOrStderr())
	log.SetLevel(cfg.LogLevel)

	return log
}
