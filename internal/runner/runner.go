// Package runner launches a package's entry module inside its environment.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmgilman/paiqm/internal/environment"
	"github.com/jmgilman/paiqm/internal/exec"
	"github.com/jmgilman/paiqm/internal/slogger"
)

// ErrTargetMissing is returned when the environment or checkout to run is absent.
var ErrTargetMissing = errors.New("run target missing")

// Target describes one launch.
type Target struct {
	EnvDir    string   // Environment directory
	SourceDir string   // Checkout directory, used as working directory
	Module    string   // Module passed to python -m
	Args      []string // Arguments after the module

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner launches packages.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/runner.go . Runner
type Runner interface {
	// Check verifies that target can be launched without starting anything.
	// Returns ErrTargetMissing when the environment or checkout is absent.
	Check(target Target) error

	// Run launches target and waits for it to exit. It returns the exit code;
	// a non-zero exit is also returned as an *exec.ExitError.
	Run(ctx context.Context, target Target) (int, error)
}

type runner struct {
	exec        exec.Executor
	provisioner environment.Provisioner
}

// New creates a Runner.
func New(e exec.Executor, p environment.Provisioner) Runner {
	return &runner{exec: e, provisioner: p}
}

func (r *runner) Check(target Target) error {
	_, err := r.locate(target)
	return err
}

func (r *runner) locate(target Target) (*environment.Handle, error) {
	h, err := r.provisioner.Locate(target.EnvDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTargetMissing, err)
	}
	info, err := os.Stat(target.SourceDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: checkout %s not found", ErrTargetMissing, target.SourceDir)
	}
	return h, nil
}

func (r *runner) Run(ctx context.Context, target Target) (int, error) {
	// The child's working directory is the checkout, so relative paths
	// would resolve against it instead of ours.
	target, err := absTarget(target)
	if err != nil {
		return 1, err
	}

	h, err := r.locate(target)
	if err != nil {
		return 1, err
	}
	if target.Module == "" {
		return 1, fmt.Errorf("%w: no entry module", ErrTargetMissing)
	}

	opts := exec.RunOptions{
		Name:   h.Interpreter(),
		Args:   append([]string{"-m", target.Module}, target.Args...),
		Dir:    target.SourceDir,
		Env:    h.Env(),
		Stdin:  target.Stdin,
		Stdout: target.Stdout,
		Stderr: target.Stderr,
	}

	slogger.L(ctx).Info("launching", "cmd", opts.CommandLine(), "dir", opts.Dir)
	result, err := r.exec.Run(ctx, opts)
	if err != nil {
		if code, ok := exec.ExitCode(err); ok {
			return code, err
		}
		return 1, fmt.Errorf("launch %s: %w", target.Module, err)
	}
	return result.ExitCode, nil
}

func absTarget(target Target) (Target, error) {
	var err error
	if target.EnvDir, err = filepath.Abs(target.EnvDir); err != nil {
		return target, fmt.Errorf("resolve environment dir: %w", err)
	}
	if target.SourceDir, err = filepath.Abs(target.SourceDir); err != nil {
		return target, fmt.Errorf("resolve checkout dir: %w", err)
	}
	return target, nil
}
