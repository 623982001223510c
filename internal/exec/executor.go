package exec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

type executor struct{}

// New returns a new Executor that uses os/exec.
func New() Executor {
	return &executor{}
}

func (e *executor) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	// G204: the launcher runs git, the package interpreter and pip by design.
	cmd := exec.CommandContext(ctx, opts.Name, opts.Args...) //nolint:gosec // Intentional subprocess execution

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	var stdoutBuf, stderrBuf bytes.Buffer

	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	} else {
		cmd.Stdout = &stdoutBuf
	}

	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()

	result := &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if opts.Stdout == nil {
		result.Stdout = stdoutBuf.Bytes()
	}
	if opts.Stderr == nil {
		result.Stderr = stderrBuf.Bytes()
	}

	var osExitErr *exec.ExitError
	if errors.As(err, &osExitErr) {
		return result, &ExitError{
			Command: opts.CommandLine(),
			Code:    osExitErr.ExitCode(),
			Stderr:  strings.TrimSpace(stderrBuf.String()),
			Err:     err,
		}
	}

	return result, err
}

func (e *executor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
