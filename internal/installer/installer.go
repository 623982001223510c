// Package installer installs package dependencies into an environment.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmgilman/paiqm/internal/environment"
	"github.com/jmgilman/paiqm/internal/exec"
	"github.com/jmgilman/paiqm/internal/slogger"
)

// ErrInstallFailed is returned when dependency installation fails on every
// attempt. It wraps the last child process failure.
var ErrInstallFailed = errors.New("dependency install failed")

// MaxAttempts bounds dependency installation: one try plus one retry.
const MaxAttempts = 2

// toolingPackages are upgraded before dependencies are installed.
var toolingPackages = []string{"pip", "setuptools", "wheel"}

// Installer runs pip inside a package environment.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/installer.go . Installer
type Installer interface {
	// UpgradeTooling upgrades pip, setuptools and wheel. It is not retried.
	UpgradeTooling(ctx context.Context, h *environment.Handle, out io.Writer) error

	// Install installs deps in one pip invocation, retrying once on failure.
	// An empty list does nothing.
	Install(ctx context.Context, h *environment.Handle, deps []string, out io.Writer) error
}

type pipInstaller struct {
	exec exec.Executor
}

// New creates an Installer that uses the provided Executor.
func New(e exec.Executor) Installer {
	return &pipInstaller{exec: e}
}

func (p *pipInstaller) UpgradeTooling(ctx context.Context, h *environment.Handle, out io.Writer) error {
	args := append([]string{"install", "--upgrade"}, toolingPackages...)
	slogger.L(ctx).Info("upgrading installer tooling", "env", h.Dir)
	if err := p.pip(ctx, h, out, args...); err != nil {
		return fmt.Errorf("upgrade tooling: %w", err)
	}
	return nil
}

func (p *pipInstaller) Install(ctx context.Context, h *environment.Handle, deps []string, out io.Writer) error {
	if len(deps) == 0 {
		return nil
	}

	args := append([]string{"install", "--no-cache-dir"}, deps...)
	log := slogger.L(ctx).With("env", h.Dir, "count", len(deps))

	var err error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		log.Info("installing dependencies", "attempt", attempt)
		if err = p.pip(ctx, h, out, args...); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		if attempt < MaxAttempts {
			log.Warn("dependency install failed, retrying", "error", err)
			if out != nil {
				fmt.Fprintln(out, "[WARN] First install attempt failed. Retrying without cache...")
			}
		}
	}
	return fmt.Errorf("%w: %w", ErrInstallFailed, err)
}

// pip runs `<env python> -m pip <args>` with the environment overlay.
func (p *pipInstaller) pip(ctx context.Context, h *environment.Handle, out io.Writer, args ...string) error {
	opts := exec.RunOptions{
		Name: h.Interpreter(),
		Args: append([]string{"-m", "pip"}, args...),
		Env:  h.Env(),
	}
	if out != nil {
		fmt.Fprintf(out, "> %s\n", opts.CommandLine())
		opts.Stdout = out
		opts.Stderr = out
	}

	slogger.L(ctx).Debug("running command", "cmd", opts.CommandLine())
	_, err := p.exec.Run(ctx, opts)
	return err
}
