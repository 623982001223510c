package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/paiqm/internal/exec"
	"github.com/jmgilman/paiqm/internal/launcher"
	"github.com/jmgilman/paiqm/internal/prompt"
)

var installCmd = &cobra.Command{
	Use:   "install [id]",
	Short: "Install or update a package",
	Long: `Install or update a package from the registry.

Clones (or updates) the package source, creates its Python environment,
installs its dependencies and records the installed version. Re-running
install after a failure resumes where it left off.

Without an id on a terminal, a picker lists the registry packages.`,
	Example: `  # Install a package
  paiqm install quantum-dice

  # Pick from the registry
  paiqm install

  # Stream git and pip output
  paiqm install quantum-dice -v`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePackageIDs,
	RunE:              runInstallCmd,
}

func runInstallCmd(cmd *cobra.Command, args []string) error {
	mgr, err := requireManager(cmd.Context())
	if err != nil {
		return err
	}

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		ids, err := mgr.Packages(cmd.Context())
		if err != nil {
			return err
		}
		id, err = pickPackage(newPrompter(), ids)
		if err != nil {
			return err
		}
	}

	if err := checkDependencies(exec.New()); err != nil {
		return err
	}

	out, stop := progressOutput(cmd, "Installing "+id)
	res, err := mgr.WithOutput(out).Execute(cmd.Context(), launcher.InstallOp{ID: id})
	stop()
	if err != nil {
		return err
	}
	report := res.(*launcher.InstallReport)

	fmt.Fprintf(cmd.OutOrStdout(), "Installed %s v%s\n", report.ID, report.Version)
	return nil
}

// pickPackage asks for a package when install is called without an id.
func pickPackage(p prompt.Prompter, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("registry lists no packages")
	}
	id, err := p.Select("Package to install", ids)
	if err != nil {
		return "", fmt.Errorf("requires a package id: %w", err)
	}
	return id, nil
}

// completePackageIDs offers registry ids for shell completion.
func completePackageIDs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	mgr, err := requireManager(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids, err := mgr.Packages(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(installCmd)
}
