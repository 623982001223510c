package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jmgilman/paiqm/internal/launcher"
)

var runCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Run an installed package",
	Long: `Run an installed package inside its environment.

The package's entry module is taken from the current manifest and started
with the package checkout as working directory. paiqm exits with the
package's exit code.`,
	Example: `  # Run a package
  paiqm run quantum-dice`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completePackageIDs,
	RunE:              runRunCmd,
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	mgr, err := requireManager(cmd.Context())
	if err != nil {
		return err
	}

	_, err = mgr.Execute(cmd.Context(), launcher.RunOp{ID: args[0]})
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)
}
