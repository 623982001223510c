package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmgilman/paiqm/internal/logging"
)

// Default poll interval for following logs.
const defaultLogPollInterval = 100 * time.Millisecond

var logsCmd = &cobra.Command{
	Use:   "logs <id>",
	Short: "Show the tool output of the last install",
	Long: `Show the git and pip output recorded by the most recent install of a
package.`,
	Example: `  # Last 100 lines
  paiqm logs quantum-dice

  # Follow an install running in another terminal
  paiqm logs quantum-dice -f

  # Entire log
  paiqm logs quantum-dice --full`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePackageIDs,
	RunE:              runLogsCmd,
}

func runLogsCmd(cmd *cobra.Command, args []string) error {
	id := args[0]

	follow, err := cmd.Flags().GetBool("follow")
	if err != nil {
		return fmt.Errorf("get follow flag: %w", err)
	}
	lines, err := cmd.Flags().GetInt("lines")
	if err != nil {
		return fmt.Errorf("get lines flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("get full flag: %w", err)
	}

	cfg, err := requireConfig(cmd.Context())
	if err != nil {
		return err
	}

	pathMgr := logging.NewPathManager(cfg.Storage.Logs)
	if !pathMgr.LogExists(id, logging.InstallLog) {
		return fmt.Errorf("no install log found for %s", id)
	}
	reader := logging.NewReader(pathMgr)

	if follow {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		err := reader.FollowWithHistory(ctx, id, logging.InstallLog, cmd.OutOrStdout(), lines, defaultLogPollInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return printLog(cmd.OutOrStdout(), reader, id, lines, full)
}

func printLog(w io.Writer, reader *logging.Reader, id string, lines int, full bool) error {
	var logLines []string
	var err error
	if full {
		logLines, err = reader.ReadAll(id, logging.InstallLog)
	} else {
		logLines, err = reader.ReadLastN(id, logging.InstallLog, lines)
	}
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	for _, line := range logLines {
		fmt.Fprintln(w, line)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolP("follow", "f", false, "follow log output in real time")
	logsCmd.Flags().IntP("lines", "n", logging.DefaultTailLines, "number of lines to show")
	logsCmd.Flags().Bool("full", false, "show the entire log")
}
