package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmgilman/paiqm/internal/auth"
	"github.com/jmgilman/paiqm/internal/config"
	"github.com/jmgilman/paiqm/internal/environment"
	"github.com/jmgilman/paiqm/internal/exec"
	"github.com/jmgilman/paiqm/internal/git"
	"github.com/jmgilman/paiqm/internal/installer"
	"github.com/jmgilman/paiqm/internal/keychain"
	"github.com/jmgilman/paiqm/internal/launcher"
	"github.com/jmgilman/paiqm/internal/manifest"
	"github.com/jmgilman/paiqm/internal/prompt"
	"github.com/jmgilman/paiqm/internal/registry"
	"github.com/jmgilman/paiqm/internal/runner"
	"github.com/jmgilman/paiqm/internal/spinner"
	"github.com/jmgilman/paiqm/internal/state"
	"github.com/jmgilman/paiqm/internal/version"
)

// installDeps lists the external binaries install needs on PATH.
var installDeps = []string{"git"}

// newPrompter is replaced in tests.
var newPrompter = func() prompt.Prompter { return prompt.New() }

// newManager wires the production components from cfg.
func newManager(cmd *cobra.Command, cfg *config.Config) *launcher.Manager {
	executor := exec.New()
	environments := environment.NewProvisioner(executor, cfg.Python.Interpreter)
	credentials := auth.NewHostCredentials(keychain.New(), cfg.Manifest.Token)

	return launcher.NewManager(launcher.Components{
		Registry: registry.NewStore(registry.NewLocator(cfg.Registry.Path)),
		Manifests: manifest.NewFetcher(manifest.FetcherConfig{
			Timeout:     cfg.Manifest.Timeout,
			Credentials: credentials,
			UserAgent:   "paiqm/" + version.Version,
		}),
		Source:       git.NewCheckout(executor),
		Environments: environments,
		Installer:    installer.New(executor),
		State:        state.NewRecorder(),
		Runner:       runner.New(executor, environments),
	}, launcher.ManagerConfig{
		Root:    cfg.Storage.Root,
		LogsDir: cfg.Storage.Logs,
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})
}

func requireManager(ctx context.Context) (*launcher.Manager, error) {
	mgr := ManagerFromContext(ctx)
	if mgr == nil {
		return nil, errors.New("lifecycle manager not initialized")
	}
	return mgr, nil
}

func requireConfig(ctx context.Context) (*config.Config, error) {
	cfg := ConfigFromContext(ctx)
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// checkDependencies verifies that the binaries install shells out to exist.
func checkDependencies(e exec.Executor) error {
	for _, dep := range installDeps {
		if _, err := e.LookPath(dep); err != nil {
			return fmt.Errorf("missing required dependency: %s", dep)
		}
	}
	return nil
}

// progressOutput picks where install tool output is shown. With -v it
// streams to stderr; on a terminal a spinner shows the latest line;
// otherwise it only reaches the install log. The returned stop func is
// idempotent.
func progressOutput(cmd *cobra.Command, title string) (io.Writer, func()) {
	if verbosityFromContext(cmd.Context()) > 0 {
		return cmd.ErrOrStderr(), func() {}
	}

	f, ok := cmd.ErrOrStderr().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, func() {}
	}

	sp := spinner.New(title, f)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sp.Start()
	}()

	var once sync.Once
	return sp.Writer(), func() {
		once.Do(func() {
			sp.Stop()
			<-done
		})
	}
}

// hintFor suggests a next step for common failures.
func hintFor(err *launcher.StageError) string {
	switch {
	case errors.Is(err, registry.ErrUnavailable):
		return "Hint: set PAIQM_REGISTRY or registry.path, or place registry.json next to the paiqm binary."
	case errors.Is(err, registry.ErrUnknownPackage):
		return "Hint: run `paiqm sync` to list the packages in the registry."
	case errors.Is(err, runner.ErrTargetMissing):
		return fmt.Sprintf("Hint: run `paiqm install %s` first.", err.Package)
	case errors.Is(err, environment.ErrInterpreterNotFound):
		return "Hint: install Python 3 or set PAIQM_PYTHON to an interpreter."
	case err.Stage == launcher.StageSource, err.Stage == launcher.StageEnvironment,
		err.Stage == launcher.StageTooling, err.Stage == launcher.StageDependencies:
		return fmt.Sprintf("Hint: run `paiqm logs %s` to see the tool output.", err.Package)
	}
	return ""
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
