// Package cmd implements the paiqm CLI commands using Cobra.
// It provides commands for syncing the registry and for installing,
// running and inspecting packages.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmgilman/paiqm/internal/config"
	"github.com/jmgilman/paiqm/internal/launcher"
	"github.com/jmgilman/paiqm/internal/slogger"
)

// skipManagerAnnotation marks commands that work without a loaded
// configuration or manager.
const skipManagerAnnotation = "paiqm/skip-manager"

var rootCmd = &cobra.Command{
	Use:   "paiqm",
	Short: "Install and run packages from a registry",
	Long: `paiqm installs and runs packages listed in a registry.

Each registry entry points at a manifest and a git repository. Installing a
package clones its source, creates an isolated Python environment and
installs its dependencies under ~/.paiqm/games/<id>.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			return fmt.Errorf("get verbose flag: %w", err)
		}
		logger := slogger.New(slogger.Config{Verbosity: verbosity, Output: cmd.ErrOrStderr()})
		ctx := slogger.WithLogger(cmd.Context(), logger)
		ctx = withVerbosity(ctx, verbosity)

		loader, cfg, err := loadConfig()
		if err != nil {
			if cmd.Annotations[skipManagerAnnotation] != "" {
				logger.Warn("failed to load config", "error", err)
				cmd.SetContext(ctx)
				return nil
			}
			return err
		}

		ctx = WithConfig(ctx, cfg)
		ctx = WithLoader(ctx, loader)
		ctx = WithManager(ctx, newManager(cmd, cfg))
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Main runs the CLI and returns the process exit code: the exit code of a
// failed child process when there is one, otherwise 1 on error.
func Main() int {
	err := Execute(context.Background())
	if err == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var stageErr *launcher.StageError
	if errors.As(err, &stageErr) {
		if hint := hintFor(stageErr); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
	}
	return launcher.ExitCode(err)
}

// loadConfig loads and validates the configuration file.
func loadConfig() (*config.Loader, *config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, nil, fmt.Errorf("init config loader: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return loader, cfg, nil
}
