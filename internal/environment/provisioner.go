package environment

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/jmgilman/paiqm/internal/exec"
	"github.com/jmgilman/paiqm/internal/slogger"
)

// defaultInterpreters are tried in order when no interpreter is configured.
var defaultInterpreters = []string{"python3", "python"}

type provisioner struct {
	exec        exec.Executor
	interpreter string
	goos        string
}

// NewProvisioner creates a Provisioner that builds environments with the
// host interpreter. An empty interpreter searches PATH for python3, then
// python.
func NewProvisioner(e exec.Executor, interpreter string) Provisioner {
	return &provisioner{
		exec:        e,
		interpreter: interpreter,
		goos:        runtime.GOOS,
	}
}

func (p *provisioner) Locate(dir string) (*Handle, error) {
	h := &Handle{Dir: dir}
	if !isFile(InterpreterPath(dir, p.goos)) {
		return nil, fmt.Errorf("%w: %s", ErrNotProvisioned, dir)
	}
	return h, nil
}

func (p *provisioner) Ensure(ctx context.Context, dir string, out io.Writer) (*Handle, error) {
	if h, err := p.Locate(dir); err == nil {
		slogger.L(ctx).Debug("environment exists", "dir", dir)
		return h, nil
	}

	host, err := p.hostInterpreter()
	if err != nil {
		return nil, err
	}

	args := []string{"-m", "venv"}
	if _, err := os.Stat(dir); err == nil {
		// Leftover from an interrupted build.
		args = append(args, "--clear")
	}
	args = append(args, dir)

	opts := exec.RunOptions{Name: host, Args: args}
	if out != nil {
		fmt.Fprintf(out, "> %s\n", opts.CommandLine())
		opts.Stdout = out
		opts.Stderr = out
	}

	slogger.L(ctx).Info("creating environment", "dir", dir, "python", host)
	if _, err := p.exec.Run(ctx, opts); err != nil {
		return nil, fmt.Errorf("create environment: %w", err)
	}

	h, err := p.Locate(dir)
	if err != nil {
		return nil, fmt.Errorf("create environment: %w", err)
	}
	return h, nil
}

func (p *provisioner) hostInterpreter() (string, error) {
	candidates := defaultInterpreters
	if p.interpreter != "" {
		candidates = []string{p.interpreter}
	}

	for _, name := range candidates {
		if path, err := p.exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %v", ErrInterpreterNotFound, candidates)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
