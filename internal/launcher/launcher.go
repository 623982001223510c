// Package launcher sequences the package lifecycle: sync, install, run and
// status. Each operation is a single sequential pipeline over the registry,
// manifest, source, environment, installer, state and runner components.
package launcher

import (
	"errors"
	"fmt"

	"github.com/jmgilman/paiqm/internal/exec"
)

// Stage names the pipeline step an error came from.
type Stage string

// Pipeline stages.
const (
	StageRegistry     Stage = "registry"
	StageManifest     Stage = "manifest"
	StageWorkspace    Stage = "workspace"
	StageSource       Stage = "source"
	StageEnvironment  Stage = "environment"
	StageTooling      Stage = "tooling"
	StageDependencies Stage = "dependencies"
	StageRecord       Stage = "record"
	StageRun          Stage = "run"
	StageStatus       Stage = "status"
)

// StageError is returned by every Manager operation. It names the package
// (empty for registry-wide failures) and the stage that failed.
type StageError struct {
	Package string
	Stage   Stage
	Err     error
}

func (e *StageError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Package, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(pkg string, stage Stage, err error) error {
	return &StageError{Package: pkg, Stage: stage, Err: err}
}

// ExitCode maps an operation error to a process exit code: 0 for nil, the
// child's code when an external tool or the package exited non-zero,
// otherwise 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exec.ExitCode(err); ok && code > 0 {
		return code
	}
	return 1
}

// Operation is one lifecycle request. The set of operations is closed.
type Operation interface {
	operation()
}

// SyncOp compares every registry entry's remote version with the local one.
type SyncOp struct{}

// InstallOp installs or updates one package.
type InstallOp struct {
	ID string
}

// RunOp launches one installed package.
type RunOp struct {
	ID string
}

// StatusOp lists the packages present on disk.
type StatusOp struct{}

func (SyncOp) operation()    {}
func (InstallOp) operation() {}
func (RunOp) operation()     {}
func (StatusOp) operation()  {}

// Result is the outcome of an Operation. Its dynamic type is one of
// *SyncReport, *InstallReport, *RunReport or *StatusReport.
type Result interface {
	result()
}

// SyncEntry reports one registry entry.
type SyncEntry struct {
	ID               string `json:"id"`
	RemoteVersion    string `json:"remote_version,omitempty"`
	InstalledVersion string `json:"installed_version,omitempty"`
	Drift            bool   `json:"drift"`
	Error            string `json:"error,omitempty"`

	Err error `json:"-"`
}

// SyncReport lists every registry entry in registry order.
type SyncReport struct {
	Entries []SyncEntry `json:"games"`
}

// Failed returns the entries whose manifest could not be fetched.
func (r *SyncReport) Failed() []SyncEntry {
	var failed []SyncEntry
	for _, e := range r.Entries {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}

// InstallReport describes a completed install.
type InstallReport struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Ref     string `json:"ref,omitempty"`
	LogPath string `json:"log_path,omitempty"`
}

// RunReport describes a finished run.
type RunReport struct {
	ID       string `json:"id"`
	Version  string `json:"version"`
	ExitCode int    `json:"exit_code"`
}

// StatusEntry reports one package directory.
type StatusEntry struct {
	ID        string `json:"id"`
	Installed bool   `json:"installed"`
	Version   string `json:"version,omitempty"`
	Problem   string `json:"problem,omitempty"`
}

// String renders the entry as `<id>: INSTALLED v<version>` or
// `<id>: not installed`.
func (e StatusEntry) String() string {
	if e.Installed {
		return fmt.Sprintf("%s: INSTALLED v%s", e.ID, e.Version)
	}
	return fmt.Sprintf("%s: not installed", e.ID)
}

// StatusReport lists package directories sorted by name.
type StatusReport struct {
	Entries []StatusEntry `json:"games"`
}

func (*SyncReport) result()    {}
func (*InstallReport) result() {}
func (*RunReport) result()     {}
func (*StatusReport) result()  {}

// ErrSyncIncomplete is returned by Sync when at least one entry failed.
// The report still lists every entry.
var ErrSyncIncomplete = errors.New("sync incomplete")
