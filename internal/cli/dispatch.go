package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/r-ashe/pgasync/internal/config"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

// loadProjectConfig reads pgasync.yaml from the working directory. A missing
// file is not an error; the zero config stands in for it.
func loadProjectConfig() (*config.ProjectConfig, error) {
	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// resolveDispatch builds the dispatcher settings with the same precedence
// the connection settings get: flags > pgasync.yaml > defaults.
func resolveDispatch(flags *dispatchFlags) (pgasync.Mode, int, error) {
	projectCfg, err := loadProjectConfig()
	if err != nil {
		return pgasync.ModeWorker, 0, err
	}

	mode, err := pgasync.ParseMode(firstNonEmpty(flags.mode, projectCfg.Dispatcher.Mode))
	if err != nil {
		return pgasync.ModeWorker, 0, err
	}

	maxWorkers := flags.maxWorkers
	if maxWorkers == 0 {
		maxWorkers = projectCfg.Dispatcher.MaxWorkers
	}

	return mode, maxWorkers, nil
}

// resolveTimeout picks the command timeout: an explicit --timeout flag wins,
// then the timeout entry in pgasync.yaml, then the flag's default.
func resolveTimeout(cmd *cobra.Command, flagValue time.Duration) (time.Duration, error) {
	if cmd.Flags().Changed("timeout") {
		return flagValue, nil
	}

	projectCfg, err := loadProjectConfig()
	if err != nil {
		return 0, err
	}
	if projectCfg.Timeout == "" {
		return flagValue, nil
	}

	timeout, err := time.ParseDuration(projectCfg.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in %s: %w", projectCfg.Timeout, config.ConfigFileName, pgasync.ErrInvalidConfig)
	}
	return timeout, nil
}
