package environment

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/paiqm/internal/exec"
	"github.com/jmgilman/paiqm/internal/exec/mocks"
)

// fakeVenv returns an executor that materializes an interpreter file
// whenever `-m venv` runs.
func fakeVenv(t *testing.T) *mocks.ExecutorMock {
	t.Helper()
	return &mocks.ExecutorMock{
		LookPathFunc: func(name string) (string, error) {
			return "/usr/bin/" + name, nil
		},
		RunFunc: func(ctx context.Context, opts exec.RunOptions) (*exec.Result, error) {
			dir := opts.Args[len(opts.Args)-1]
			python := InterpreterPath(dir, "linux")
			if err := os.MkdirAll(filepath.Dir(python), 0755); err != nil {
				return nil, err
			}
			return &exec.Result{}, os.WriteFile(python, nil, 0755)
		},
	}
}

func newTestProvisioner(e exec.Executor, interpreter string) *provisioner {
	return &provisioner{exec: e, interpreter: interpreter, goos: "linux"}
}

func TestInterpreterPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/ws/venv", "bin", "python"), InterpreterPath("/ws/venv", "linux"))
	assert.Equal(t, filepath.Join("/ws/venv", "bin", "python"), InterpreterPath("/ws/venv", "darwin"))
	assert.Equal(t, filepath.Join("/ws/venv", "Scripts", "python.exe"), InterpreterPath("/ws/venv", "windows"))
}

func TestHandle_Env(t *testing.T) {
	env := Handle{Dir: "/ws/demo/venv"}.Env()

	assert.Contains(t, env, "VIRTUAL_ENV=/ws/demo/venv")
	assert.Contains(t, env, "PYTHONNOUSERSITE=1")
	assert.Contains(t, env, "PIP_REQUIRE_VIRTUALENV=true")
}

func TestHandle_EnvPath(t *testing.T) {
	h := Handle{Dir: filepath.Join("/ws", "demo", "venv")}

	t.Run("environment bin dir comes first", func(t *testing.T) {
		t.Setenv("PATH", "/usr/local/bin"+string(os.PathListSeparator)+"/usr/bin")

		assert.Contains(t, h.Env(), "PATH="+h.BinDir()+string(os.PathListSeparator)+"/usr/local/bin"+string(os.PathListSeparator)+"/usr/bin")
	})

	t.Run("empty parent path", func(t *testing.T) {
		t.Setenv("PATH", "")

		assert.Contains(t, h.Env(), "PATH="+h.BinDir())
	})

	t.Run("bin dir holds the interpreter", func(t *testing.T) {
		assert.Equal(t, h.BinDir(), filepath.Dir(h.Interpreter()))
	})
}

func TestProvisioner_Ensure(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing environment", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "venv")
		mock := fakeVenv(t)

		h, err := newTestProvisioner(mock, "").Ensure(ctx, dir, nil)

		require.NoError(t, err)
		assert.Equal(t, dir, h.Dir)
		require.Len(t, mock.RunCalls(), 1)
		opts := mock.RunCalls()[0].Opts
		assert.Equal(t, "/usr/bin/python3", opts.Name)
		assert.Equal(t, []string{"-m", "venv", dir}, opts.Args)
	})

	t.Run("leaves existing environment unchanged", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "venv")
		mock := fakeVenv(t)
		p := newTestProvisioner(mock, "")

		_, err := p.Ensure(ctx, dir, nil)
		require.NoError(t, err)
		_, err = p.Ensure(ctx, dir, nil)
		require.NoError(t, err)

		assert.Len(t, mock.RunCalls(), 1)
	})

	t.Run("clears partial environment", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "venv")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0755))
		mock := fakeVenv(t)

		_, err := newTestProvisioner(mock, "").Ensure(ctx, dir, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"-m", "venv", "--clear", dir}, mock.RunCalls()[0].Opts.Args)
	})

	t.Run("uses configured interpreter", func(t *testing.T) {
		mock := fakeVenv(t)

		_, err := newTestProvisioner(mock, "python3.12").Ensure(ctx, filepath.Join(t.TempDir(), "venv"), nil)

		require.NoError(t, err)
		require.Len(t, mock.LookPathCalls(), 1)
		assert.Equal(t, "python3.12", mock.LookPathCalls()[0].Name)
	})

	t.Run("falls back to python when python3 is missing", func(t *testing.T) {
		mock := fakeVenv(t)
		mock.LookPathFunc = func(name string) (string, error) {
			if name == "python3" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + name, nil
		}

		_, err := newTestProvisioner(mock, "").Ensure(ctx, filepath.Join(t.TempDir(), "venv"), nil)

		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/python", mock.RunCalls()[0].Opts.Name)
	})

	t.Run("no interpreter available", func(t *testing.T) {
		mock := &mocks.ExecutorMock{
			LookPathFunc: func(name string) (string, error) { return "", errors.New("not found") },
		}

		_, err := newTestProvisioner(mock, "").Ensure(ctx, filepath.Join(t.TempDir(), "venv"), nil)

		assert.ErrorIs(t, err, ErrInterpreterNotFound)
	})

	t.Run("venv failure carries exit code", func(t *testing.T) {
		mock := fakeVenv(t)
		mock.RunFunc = func(ctx context.Context, opts exec.RunOptions) (*exec.Result, error) {
			return &exec.Result{ExitCode: 1}, &exec.ExitError{Command: opts.CommandLine(), Code: 1}
		}

		_, err := newTestProvisioner(mock, "").Ensure(ctx, filepath.Join(t.TempDir(), "venv"), nil)

		assert.ErrorIs(t, err, exec.ErrChildProcess)
	})

	t.Run("echoes command to output", func(t *testing.T) {
		var out bytes.Buffer
		dir := filepath.Join(t.TempDir(), "venv")

		_, err := newTestProvisioner(fakeVenv(t), "").Ensure(ctx, dir, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "> /usr/bin/python3 -m venv "+dir)
	})
}

func TestProvisioner_Locate(t *testing.T) {
	t.Run("missing environment", func(t *testing.T) {
		_, err := newTestProvisioner(nil, "").Locate(filepath.Join(t.TempDir(), "venv"))

		assert.ErrorIs(t, err, ErrNotProvisioned)
	})

	t.Run("directory without interpreter", func(t *testing.T) {
		dir := t.TempDir()

		_, err := newTestProvisioner(nil, "").Locate(dir)

		assert.ErrorIs(t, err, ErrNotProvisioned)
	})
}
