package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmgilman/paiqm/internal/launcher"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Show the latest version of every registry package",
	Long: `Fetch the manifest of every package in the registry and print its
version next to the installed one.

A package whose manifest cannot be fetched is reported and the others are
still checked; the command then exits non-zero.`,
	Example: `  # Check for updates
  paiqm sync

  # Machine-readable output
  paiqm sync --json`,
	Args: cobra.NoArgs,
	RunE: runSyncCmd,
}

func runSyncCmd(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("get json flag: %w", err)
	}

	mgr, err := requireManager(cmd.Context())
	if err != nil {
		return err
	}

	res, err := mgr.Execute(cmd.Context(), launcher.SyncOp{})
	if res == nil {
		return err
	}
	report := res.(*launcher.SyncReport)

	if asJSON {
		if jerr := printJSON(cmd.OutOrStdout(), report); jerr != nil {
			return jerr
		}
		return err
	}

	printSyncReport(cmd.OutOrStdout(), report)
	return err
}

func printSyncReport(w io.Writer, report *launcher.SyncReport) {
	for _, e := range report.Entries {
		switch {
		case e.Err != nil:
			fmt.Fprintf(w, "%s: unavailable (%s)\n", e.ID, e.Error)
		case e.InstalledVersion == "":
			fmt.Fprintf(w, "%s: remote v%s\n", e.ID, e.RemoteVersion)
		case e.Drift:
			fmt.Fprintf(w, "%s: remote v%s (installed v%s, update available)\n", e.ID, e.RemoteVersion, e.InstalledVersion)
		default:
			fmt.Fprintf(w, "%s: remote v%s (installed, up to date)\n", e.ID, e.RemoteVersion)
		}
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("json", false, "print the report as JSON")
}
