package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/paiqm/internal/launcher"
	"github.com/jmgilman/paiqm/internal/slogger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List packages present on disk",
	Long: `List every package directory under the storage root and whether it
has a completed install. Status never contacts the network.`,
	Example: `  paiqm status
  paiqm status --json`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("get json flag: %w", err)
	}

	mgr, err := requireManager(cmd.Context())
	if err != nil {
		return err
	}

	res, err := mgr.Execute(cmd.Context(), launcher.StatusOp{})
	if err != nil {
		return err
	}
	report := res.(*launcher.StatusReport)

	if asJSON {
		return printJSON(cmd.OutOrStdout(), report)
	}

	for _, e := range report.Entries {
		if e.Problem != "" {
			slogger.L(cmd.Context()).Warn("unreadable install record", "package", e.ID, "error", e.Problem)
		}
		fmt.Fprintln(cmd.OutOrStdout(), e.String())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().Bool("json", false, "print the report as JSON")
}
