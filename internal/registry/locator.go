package registry

import (
	"os"
	"path/filepath"
)

// Locator decides which registry file to read.
//
// Resolution order: the explicit override, registry.json beside the
// executable, registry.json in the working directory. The last candidate
// is returned without checking that it exists, so a missing registry
// surfaces when it is read.
type Locator struct {
	override   string
	executable func() (string, error)
	getwd      func() (string, error)
}

// NewLocator creates a Locator. An empty override falls through to the
// default locations.
func NewLocator(override string) *Locator {
	return &Locator{
		override:   override,
		executable: os.Executable,
		getwd:      os.Getwd,
	}
}

// Locate returns the registry path to read.
func (l *Locator) Locate() (string, error) {
	if l.override != "" {
		return filepath.Abs(l.override)
	}

	if exe, err := l.executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		candidate := filepath.Join(filepath.Dir(exe), FileName)
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	wd, err := l.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, FileName), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
