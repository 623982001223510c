package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jmgilman/paiqm/internal/environment"
	"github.com/jmgilman/paiqm/internal/git"
	"github.com/jmgilman/paiqm/internal/installer"
	"github.com/jmgilman/paiqm/internal/logging"
	"github.com/jmgilman/paiqm/internal/manifest"
	"github.com/jmgilman/paiqm/internal/registry"
	"github.com/jmgilman/paiqm/internal/runner"
	"github.com/jmgilman/paiqm/internal/slogger"
	"github.com/jmgilman/paiqm/internal/state"
	"github.com/jmgilman/paiqm/internal/workspace"
)

// Components are the collaborators a Manager sequences.
type Components struct {
	Registry     registry.Store
	Manifests    manifest.Fetcher
	Source       git.Checkout
	Environments environment.Provisioner
	Installer    installer.Installer
	State        state.Recorder
	Runner       runner.Runner
}

// ManagerConfig configures the Manager.
type ManagerConfig struct {
	Root    string // Package root (e.g., ~/.paiqm/games)
	LogsDir string // Install logs (e.g., ~/.paiqm/logs); empty disables them

	// LockTimeout bounds the wait for a concurrent install of the same
	// package. Zero means workspace.DefaultLockTimeout.
	LockTimeout time.Duration

	// Output receives git and pip output during install. When nil, output
	// is only written to the install log.
	Output io.Writer

	// Stdio handed to the package on run.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Manager orchestrates package lifecycle operations.
type Manager struct {
	c        Components
	layout   *workspace.Layout
	logPaths *logging.PathManager
	cfg      ManagerConfig
}

// NewManager creates a new lifecycle manager. Relative Root and LogsDir
// are resolved against the working directory, since the package runs with
// its checkout as working directory.
func NewManager(c Components, cfg ManagerConfig) *Manager {
	cfg.Root = absDir(cfg.Root)
	cfg.LogsDir = absDir(cfg.LogsDir)

	m := &Manager{
		c:      c,
		layout: workspace.New(cfg.Root),
		cfg:    cfg,
	}
	if cfg.LogsDir != "" {
		m.logPaths = logging.NewPathManager(cfg.LogsDir)
	}
	if m.cfg.LockTimeout <= 0 {
		m.cfg.LockTimeout = workspace.DefaultLockTimeout
	}
	return m
}

// absDir returns dir made absolute, or dir unchanged when it is empty or
// cannot be resolved.
func absDir(dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// Layout returns the workspace layout the manager operates on.
func (m *Manager) Layout() *workspace.Layout {
	return m.layout
}

// WithOutput returns a copy of the manager that sends install tool output
// to w.
func (m *Manager) WithOutput(w io.Writer) *Manager {
	clone := *m
	clone.cfg.Output = w
	return &clone
}

// Packages returns the registry ids in registry order.
func (m *Manager) Packages(ctx context.Context) ([]string, error) {
	reg, err := m.c.Registry.Load(ctx)
	if err != nil {
		return nil, stageErr("", StageRegistry, err)
	}
	return reg.IDs(), nil
}

// Execute dispatches op to the matching operation. The Result is nil
// whenever the operation produced no report, so callers can compare it
// with nil. Sync and Run may return a report together with an error.
func (m *Manager) Execute(ctx context.Context, op Operation) (Result, error) {
	switch op := op.(type) {
	case SyncOp:
		r, err := m.Sync(ctx)
		if r == nil {
			return nil, err
		}
		return r, err
	case InstallOp:
		r, err := m.Install(ctx, op.ID)
		if err != nil {
			return nil, err
		}
		return r, nil
	case RunOp:
		r, err := m.Run(ctx, op.ID)
		if r == nil {
			return nil, err
		}
		return r, err
	case StatusOp:
		r, err := m.Status(ctx)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		panic(fmt.Sprintf("launcher: unhandled operation %T", op))
	}
}

// Sync fetches the manifest of every registry entry and compares its
// version with the recorded one. A failing entry does not stop the others;
// when any entry fails the report is returned with ErrSyncIncomplete.
func (m *Manager) Sync(ctx context.Context) (*SyncReport, error) {
	reg, err := m.c.Registry.Load(ctx)
	if err != nil {
		return nil, stageErr("", StageRegistry, err)
	}

	report := &SyncReport{}
	var errs []error
	for _, entry := range reg.Entries {
		result := m.syncEntry(ctx, entry)
		if result.Err != nil {
			errs = append(errs, result.Err)
		}
		report.Entries = append(report.Entries, result)
	}

	if len(errs) > 0 {
		err := fmt.Errorf("%w: %d of %d failed: %w", ErrSyncIncomplete, len(errs), len(reg.Entries), errors.Join(errs...))
		return report, stageErr("", StageManifest, err)
	}
	return report, nil
}

func (m *Manager) syncEntry(ctx context.Context, entry registry.Entry) SyncEntry {
	log := slogger.L(ctx).With("package", entry.ID)
	result := SyncEntry{ID: entry.ID}

	mf, err := m.c.Manifests.Fetch(ctx, entry)
	if err != nil {
		log.Warn("manifest fetch failed", "error", err)
		result.Err = stageErr(entry.ID, StageManifest, err)
		result.Error = err.Error()
		return result
	}
	result.RemoteVersion = mf.Version

	if rec, err := m.c.State.Read(m.layout.Dir(entry.ID)); err == nil {
		result.InstalledVersion = rec.Version
		result.Drift = rec.Version != mf.Version
	}
	log.Debug("synced", "remote", result.RemoteVersion, "installed", result.InstalledVersion)
	return result
}

// Install installs or updates a package. Re-running after a failure
// converges; nothing is rolled back.
func (m *Manager) Install(ctx context.Context, id string) (report *InstallReport, err error) {
	log := slogger.L(ctx).With("package", id)

	entry, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	mf, err := m.c.Manifests.Fetch(ctx, entry)
	if err != nil {
		return nil, stageErr(id, StageManifest, err)
	}
	log.Info("installing", "version", mf.Version)

	lock, err := m.layout.Lock(ctx, id, m.cfg.LockTimeout)
	if err != nil {
		return nil, stageErr(id, StageWorkspace, err)
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil {
			log.Warn("failed to release workspace lock", "error", uerr)
		}
	}()
	dir := m.layout.Dir(id)

	ilog, err := m.openInstallLog(id)
	if err != nil {
		return nil, stageErr(id, StageWorkspace, err)
	}
	defer func() {
		if err != nil {
			ilog.mark("failed: %v", err)
		}
		if cerr := ilog.close(); cerr != nil && err == nil {
			err = stageErr(id, StageWorkspace, cerr)
			report = nil
		}
	}()
	out := ilog.out
	ilog.mark("install %s v%s", id, mf.Version)

	ref := mf.ResolveRef(entry)
	log.Info("syncing source", "repo", entry.Repo, "ref", ref)
	ilog.mark("%s %s", StageSource, entry.Repo)
	err = m.c.Source.Sync(ctx, git.SyncRequest{
		Repo:   entry.Repo,
		Dir:    m.layout.SourceDir(id),
		Ref:    ref,
		Output: out,
	})
	if err != nil {
		return nil, stageErr(id, StageSource, err)
	}

	log.Info("preparing environment")
	ilog.mark("%s", StageEnvironment)
	env, err := m.c.Environments.Ensure(ctx, m.layout.EnvDir(id), out)
	if err != nil {
		return nil, stageErr(id, StageEnvironment, err)
	}

	ilog.mark("%s", StageTooling)
	if err := m.c.Installer.UpgradeTooling(ctx, env, out); err != nil {
		return nil, stageErr(id, StageTooling, err)
	}

	log.Info("installing dependencies", "count", len(mf.Requirements.Pip))
	ilog.mark("%s", StageDependencies)
	if err := m.c.Installer.Install(ctx, env, mf.Requirements.Pip, out); err != nil {
		return nil, stageErr(id, StageDependencies, err)
	}

	if err := m.c.State.Record(dir, state.Record{ID: mf.ID, Version: mf.Version}); err != nil {
		return nil, stageErr(id, StageRecord, err)
	}
	ilog.mark("installed %s v%s", mf.ID, mf.Version)
	log.Info("installed", "version", mf.Version)

	return &InstallReport{ID: mf.ID, Version: mf.Version, Ref: ref, LogPath: ilog.path}, nil
}

// Run launches an installed package and waits for it. The presence of the
// environment is checked before any network access; the manifest is then
// fetched live for the entry module and arguments.
func (m *Manager) Run(ctx context.Context, id string) (*RunReport, error) {
	log := slogger.L(ctx).With("package", id)

	entry, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	target := runner.Target{
		EnvDir:    m.layout.EnvDir(id),
		SourceDir: m.layout.SourceDir(id),
		Stdin:     m.cfg.Stdin,
		Stdout:    m.cfg.Stdout,
		Stderr:    m.cfg.Stderr,
	}
	if err := m.c.Runner.Check(target); err != nil {
		return nil, stageErr(id, StageRun, err)
	}

	mf, err := m.c.Manifests.Fetch(ctx, entry)
	if err != nil {
		return nil, stageErr(id, StageManifest, err)
	}

	rec, err := m.c.State.Read(m.layout.Dir(id))
	switch {
	case err != nil:
		log.Warn("no usable install record; run install to repair", "error", err)
	case rec.Version != mf.Version:
		log.Warn("installed version differs from the registry; run install to update",
			"installed", rec.Version, "remote", mf.Version)
	}

	target.Module = mf.Runtime.Entry.Module
	target.Args = mf.Runtime.Entry.Args

	report := &RunReport{ID: id, Version: mf.Version}
	code, err := m.c.Runner.Run(ctx, target)
	report.ExitCode = code
	if err != nil {
		return report, stageErr(id, StageRun, err)
	}
	return report, nil
}

// Status reports every package directory under the root. It never touches
// the network.
func (m *Manager) Status(ctx context.Context) (*StatusReport, error) {
	ids, err := m.layout.List()
	if err != nil {
		return nil, stageErr("", StageStatus, err)
	}

	report := &StatusReport{Entries: []StatusEntry{}}
	for _, id := range ids {
		entry := StatusEntry{ID: id}
		rec, err := m.c.State.Read(m.layout.Dir(id))
		switch {
		case err == nil:
			entry.ID = rec.ID
			entry.Installed = true
			entry.Version = rec.Version
		case errors.Is(err, state.ErrNotInstalled):
		default:
			slogger.L(ctx).Debug("unreadable install record", "package", id, "error", err)
			entry.Problem = err.Error()
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

// lookup resolves id against the registry. It never touches the network.
func (m *Manager) lookup(ctx context.Context, id string) (registry.Entry, error) {
	reg, err := m.c.Registry.Load(ctx)
	if err != nil {
		return registry.Entry{}, stageErr(id, StageRegistry, err)
	}
	entry, err := reg.Lookup(id)
	if err != nil {
		return registry.Entry{}, stageErr(id, StageRegistry, err)
	}
	return entry, nil
}

// installLog is where tool output goes during one install.
type installLog struct {
	out  io.Writer
	tee  *logging.TeeWriter
	path string
}

// openInstallLog prepares the install output. Without a logs directory the
// configured Output is used as is, so a nil Output leaves component output
// captured.
func (m *Manager) openInstallLog(id string) (*installLog, error) {
	if m.logPaths == nil {
		return &installLog{out: m.cfg.Output}, nil
	}
	path, err := m.logPaths.EnsureLog(id, logging.InstallLog)
	if err != nil {
		return nil, err
	}
	tw, err := logging.NewTeeWriter(m.cfg.Output, path)
	if err != nil {
		return nil, err
	}
	return &installLog{out: tw, tee: tw, path: path}, nil
}

// mark writes a section header to the log file. Header failures are
// ignored; the next tool write reports a broken log.
func (l *installLog) mark(format string, args ...any) {
	if l.tee != nil {
		_ = l.tee.Mark(format, args...)
	}
}

func (l *installLog) close() error {
	if l.tee == nil {
		return nil
	}
	return l.tee.Close()
}
