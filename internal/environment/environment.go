// Package environment provisions one isolated Python virtual environment
// per package.
package environment

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNotProvisioned is returned when a package environment does not exist.
var ErrNotProvisioned = errors.New("environment not provisioned")

// ErrInterpreterNotFound is returned when no host interpreter can create
// environments.
var ErrInterpreterNotFound = errors.New("host python interpreter not found")

// Handle points at a provisioned environment.
type Handle struct {
	Dir string
}

// Interpreter returns the environment's python executable.
func (h Handle) Interpreter() string {
	return InterpreterPath(h.Dir, runtime.GOOS)
}

// BinDir returns the directory holding the environment's executables.
func (h Handle) BinDir() string {
	return filepath.Dir(h.Interpreter())
}

// Env returns the variables that pin child processes to this environment.
// They are applied as an overlay on the parent environment; PATH is the
// parent PATH with BinDir in front, so console scripts resolve to the
// environment's copies.
func (h Handle) Env() []string {
	path := h.BinDir()
	if parent := os.Getenv("PATH"); parent != "" {
		path += string(os.PathListSeparator) + parent
	}
	return []string{
		"VIRTUAL_ENV=" + h.Dir,
		"PATH=" + path,
		"PYTHONNOUSERSITE=1",
		"PIP_REQUIRE_VIRTUALENV=true",
		"PIP_DISABLE_PIP_VERSION_CHECK=1",
	}
}

// InterpreterPath returns the python executable inside an environment
// directory for the given GOOS.
func InterpreterPath(dir, goos string) string {
	if goos == "windows" {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}

// Provisioner creates and locates package environments.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/provisioner.go . Provisioner
type Provisioner interface {
	// Ensure returns the environment in dir, creating it when its
	// interpreter is missing. An existing environment is left unchanged.
	Ensure(ctx context.Context, dir string, out io.Writer) (*Handle, error)

	// Locate returns the environment in dir without creating it.
	// Returns ErrNotProvisioned when its interpreter is missing.
	Locate(dir string) (*Handle, error)
}
