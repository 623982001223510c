// Package workspace maps package ids to their on-disk workspace directories.
//
// Every package owns exactly one directory under the root:
//
//	<root>/<id>/repo/            source checkout
//	<root>/<id>/venv/            isolated environment
//	<root>/<id>/installed.json   install record
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

const (
	sourceDirName = "repo"
	envDirName    = "venv"
	dirMode       = 0o755
)

// ErrInvalidID is returned for ids that are not a single safe path segment.
var ErrInvalidID = errors.New("invalid package id")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateID checks that id can be used as a directory name under the root.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Layout resolves workspace paths beneath a root directory.
type Layout struct {
	root string
}

// New creates a Layout rooted at root.
// The root is typically ~/.paiqm/games.
func New(root string) *Layout {
	return &Layout{root: root}
}

// Root returns the workspace root.
func (l *Layout) Root() string {
	return l.root
}

// Dir returns the workspace directory for a package.
// Path format: <root>/<id>/
func (l *Layout) Dir(id string) string {
	return filepath.Join(l.root, id)
}

// SourceDir returns the checkout directory for a package.
// Path format: <root>/<id>/repo/
func (l *Layout) SourceDir(id string) string {
	return filepath.Join(l.root, id, sourceDirName)
}

// EnvDir returns the environment directory for a package.
// Path format: <root>/<id>/venv/
func (l *Layout) EnvDir(id string) string {
	return filepath.Join(l.root, id, envDirName)
}

// Ensure creates the workspace directory for a package if needed and
// returns its path.
func (l *Layout) Ensure(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	dir := l.Dir(id)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", fmt.Errorf("create workspace directory: %w", err)
	}
	return dir, nil
}

// List returns the names of all package directories under the root,
// sorted. A missing root yields an empty list.
func (l *Layout) List() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read workspace root: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)
	return ids, nil
}
