// Package exec provides an abstraction over executing external commands.
//
// Every child process the launcher starts (git, the host interpreter, pip and
// the package itself) goes through an Executor with a RunOptions value that
// fully describes the invocation. Callers never mutate the parent process
// environment; extra variables are passed as an overlay.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrChildProcess is matched by every error caused by a child process that
// exited with a non-zero status.
var ErrChildProcess = errors.New("child process failed")

// Result holds the output from a completed command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// RunOptions describes a single command invocation.
type RunOptions struct {
	Name   string    // Command name or path (required)
	Args   []string  // Command arguments
	Dir    string    // Working directory (empty = current)
	Env    []string  // Environment overlay (KEY=VALUE), applied over the parent environment
	Stdin  io.Reader // Stdin source (nil = no input)
	Stdout io.Writer // If set, streams stdout here instead of capturing
	Stderr io.Writer // If set, streams stderr here instead of capturing
}

// CommandLine renders the invocation for logs.
func (o RunOptions) CommandLine() string {
	return strings.Join(append([]string{o.Name}, o.Args...), " ")
}

// ExitError describes a command that ran and exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stderr  string // Captured stderr, empty when stderr was streamed
	Err     error  // Underlying os/exec error
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s terminated: %v", e.Command, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() []error {
	return []error{ErrChildProcess, e.Err}
}

// ExitCode returns the exit code carried by err, if any error in its chain
// is an *ExitError.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// Executor runs external commands.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/executor.go . Executor
type Executor interface {
	// Run executes a command and returns its output.
	// If Stdout/Stderr writers are set in opts, output streams there and
	// Result.Stdout/Stderr will be nil.
	// Returns an *ExitError on non-zero exit (use errors.As or ExitCode to
	// extract it). Failures to start the command are returned unwrapped.
	Run(ctx context.Context, opts RunOptions) (*Result, error)

	// LookPath searches for an executable in PATH.
	// Returns the full path if found, or an error if not.
	LookPath(name string) (string, error)
}
