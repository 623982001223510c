package git

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/paiqm/internal/exec"
)

// gitRun runs a git command in dir and returns trimmed stdout.
func gitRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	result, err := exec.New().Run(context.Background(), exec.RunOptions{
		Name: "git",
		Args: args,
		Dir:  dir,
	})
	require.NoError(t, err, "git %s", strings.Join(args, " "))
	return strings.TrimSpace(string(result.Stdout))
}

// originRepo creates a repository with one commit on branch main and a
// v1 tag. Returns its path.
func originRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	gitRun(t, dir, "init", "--initial-branch=main")
	gitRun(t, dir, "config", "user.email", "test@test.com")
	gitRun(t, dir, "config", "user.name", "Test User")

	commitFile(t, dir, "game.py", "print('v1')\n")
	gitRun(t, dir, "tag", "v1")
	return dir
}

func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-m", "update "+name)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCheckout_Sync(t *testing.T) {
	ctx := context.Background()
	c := NewCheckout(exec.New())

	t.Run("clones and checks out tag", func(t *testing.T) {
		origin := originRepo(t)
		commitFile(t, origin, "game.py", "print('v2')\n")
		dir := filepath.Join(t.TempDir(), "demo", "repo")

		err := c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "v1"})

		require.NoError(t, err)
		assert.Equal(t, "print('v1')\n", readFile(t, filepath.Join(dir, "game.py")))
	})

	t.Run("second sync converges without error", func(t *testing.T) {
		origin := originRepo(t)
		dir := filepath.Join(t.TempDir(), "repo")

		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "v1"}))
		head := gitRun(t, dir, "rev-parse", "HEAD")

		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "v1"}))
		assert.Equal(t, head, gitRun(t, dir, "rev-parse", "HEAD"))
	})

	t.Run("fast-forwards branch to upstream", func(t *testing.T) {
		origin := originRepo(t)
		dir := filepath.Join(t.TempDir(), "repo")
		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "main"}))

		commitFile(t, origin, "game.py", "print('v3')\n")
		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "main"}))

		assert.Equal(t, "print('v3')\n", readFile(t, filepath.Join(dir, "game.py")))
	})

	t.Run("picks up tags created after clone", func(t *testing.T) {
		origin := originRepo(t)
		dir := filepath.Join(t.TempDir(), "repo")
		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "v1"}))

		commitFile(t, origin, "game.py", "print('v2')\n")
		gitRun(t, origin, "tag", "v2")
		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "v2"}))

		assert.Equal(t, "print('v2')\n", readFile(t, filepath.Join(dir, "game.py")))
	})

	t.Run("replaces interrupted clone", func(t *testing.T) {
		origin := originRepo(t)
		dir := filepath.Join(t.TempDir(), "repo")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "partial"), nil, 0644))

		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir}))

		assert.NoFileExists(t, filepath.Join(dir, "partial"))
		assert.FileExists(t, filepath.Join(dir, "game.py"))
	})

	t.Run("streams output with command echo", func(t *testing.T) {
		origin := originRepo(t)
		dir := filepath.Join(t.TempDir(), "repo")
		var out bytes.Buffer

		require.NoError(t, c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "v1", Output: &out}))

		assert.Contains(t, out.String(), "> git clone "+origin)
		assert.Contains(t, out.String(), "> git checkout v1")
	})

	t.Run("unknown ref is ErrSyncFailed with exit code", func(t *testing.T) {
		origin := originRepo(t)
		dir := filepath.Join(t.TempDir(), "repo")

		err := c.Sync(ctx, SyncRequest{Repo: origin, Dir: dir, Ref: "no-such-ref"})

		assert.ErrorIs(t, err, ErrSyncFailed)
		code, ok := exec.ExitCode(err)
		assert.True(t, ok)
		assert.NotZero(t, code)
	})

	t.Run("unreachable repository is ErrSyncFailed", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "repo")

		err := c.Sync(ctx, SyncRequest{Repo: filepath.Join(t.TempDir(), "missing"), Dir: dir})

		assert.ErrorIs(t, err, ErrSyncFailed)
		assert.ErrorIs(t, err, exec.ErrChildProcess)
	})
}
