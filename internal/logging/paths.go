// Package logging records tool output produced while managing packages.
//
// Every package gets a directory beneath the logs root holding one file per
// operation, currently install.log for the git and pip output of the most
// recent install.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// InstallLog is the log name written by install.
const InstallLog = "install"

// PathManager handles log file path construction and directory management.
type PathManager struct {
	baseDir string
}

// NewPathManager creates a new PathManager with the given base directory.
// The base directory is typically ~/.paiqm/logs.
func NewPathManager(baseDir string) *PathManager {
	return &PathManager{baseDir: baseDir}
}

// BaseDir returns the base log directory.
func (p *PathManager) BaseDir() string {
	return p.baseDir
}

// PackageDir returns the log directory for a package.
// Path format: <baseDir>/<packageID>/
func (p *PathManager) PackageDir(packageID string) string {
	return filepath.Join(p.baseDir, packageID)
}

// LogPath returns the full path of a named log.
// Path format: <baseDir>/<packageID>/<name>.log
func (p *PathManager) LogPath(packageID, name string) string {
	return filepath.Join(p.baseDir, packageID, name+".log")
}

// EnsureLog creates the package log directory if needed and returns the
// full log file path.
func (p *PathManager) EnsureLog(packageID, name string) (string, error) {
	if err := os.MkdirAll(p.PackageDir(packageID), 0o750); err != nil {
		return "", fmt.Errorf("create package log directory: %w", err)
	}
	return p.LogPath(packageID, name), nil
}

// LogExists checks if the named log exists for a package.
func (p *PathManager) LogExists(packageID, name string) bool {
	_, err := os.Stat(p.LogPath(packageID, name))
	return err == nil
}

// ListLogs returns the names of the logs recorded for a package, sorted.
func (p *PathManager) ListLogs(packageID string) ([]string, error) {
	entries, err := os.ReadDir(p.PackageDir(packageID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read package log directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == ".log" {
			names = append(names, name[:len(name)-len(ext)])
		}
	}
	sort.Strings(names)
	return names, nil
}
