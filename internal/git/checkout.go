package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmgilman/paiqm/internal/exec"
	"github.com/jmgilman/paiqm/internal/slogger"
)

// gitEnv keeps git from blocking on credential prompts.
var gitEnv = []string{"GIT_TERMINAL_PROMPT=0"}

type checkout struct {
	exec exec.Executor
}

// NewCheckout creates a new Checkout that uses the provided Executor.
func NewCheckout(e exec.Executor) Checkout {
	return &checkout{exec: e}
}

func (c *checkout) Sync(ctx context.Context, req SyncRequest) error {
	log := slogger.L(ctx).With("dir", req.Dir)

	if isClone(req.Dir) {
		log.Info("fetching source", "repo", req.Repo)
		if err := c.run(ctx, req.Dir, req.Output, "fetch", "--tags", "--prune"); err != nil {
			return fmt.Errorf("%w: fetch: %w", ErrSyncFailed, err)
		}
	} else {
		// A directory without .git is an interrupted clone.
		if err := os.RemoveAll(req.Dir); err != nil {
			return fmt.Errorf("%w: remove partial checkout: %w", ErrSyncFailed, err)
		}
		if err := os.MkdirAll(filepath.Dir(req.Dir), 0o755); err != nil {
			return fmt.Errorf("%w: create parent directory: %w", ErrSyncFailed, err)
		}
		log.Info("cloning source", "repo", req.Repo)
		if err := c.run(ctx, "", req.Output, "clone", req.Repo, req.Dir); err != nil {
			return fmt.Errorf("%w: clone %s: %w", ErrSyncFailed, req.Repo, err)
		}
	}

	if req.Ref != "" {
		log.Info("checking out ref", "ref", req.Ref)
		if err := c.run(ctx, req.Dir, req.Output, "checkout", req.Ref); err != nil {
			return fmt.Errorf("%w: checkout %s: %w", ErrSyncFailed, req.Ref, err)
		}
	}

	tracking, err := c.hasUpstream(ctx, req.Dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}
	if !tracking {
		return nil
	}

	log.Debug("fast-forwarding to upstream")
	if err := c.run(ctx, req.Dir, req.Output, "merge", "--ff-only", "@{upstream}"); err != nil {
		return fmt.Errorf("%w: fast-forward: %w", ErrSyncFailed, err)
	}
	return nil
}

// hasUpstream reports whether HEAD is a branch with an upstream. A detached
// HEAD (tag or commit checkout) has none.
func (c *checkout) hasUpstream(ctx context.Context, dir string) (bool, error) {
	_, err := c.exec.Run(ctx, exec.RunOptions{
		Name: "git",
		Args: []string{"rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}"},
		Dir:  dir,
		Env:  gitEnv,
	})
	if err == nil {
		return true, nil
	}
	// rev-parse exits non-zero when HEAD is detached or has no upstream.
	if errors.Is(err, exec.ErrChildProcess) {
		return false, nil
	}
	return false, fmt.Errorf("resolve upstream: %w", err)
}

// run executes a git subcommand, streaming to out when set.
func (c *checkout) run(ctx context.Context, dir string, out io.Writer, args ...string) error {
	opts := exec.RunOptions{
		Name: "git",
		Args: args,
		Dir:  dir,
		Env:  gitEnv,
	}
	if out != nil {
		fmt.Fprintf(out, "> %s\n", opts.CommandLine())
		opts.Stdout = out
		opts.Stderr = out
	}

	slogger.L(ctx).Debug("running command", "cmd", opts.CommandLine())
	_, err := c.exec.Run(ctx, opts)
	return err
}

func isClone(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
