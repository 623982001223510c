// Package state persists the install record of a package workspace.
package state

import (
	"errors"
)

// FileName is the name of the install record inside a package workspace.
const FileName = "installed.json"

// Sentinel errors for install records.
var (
	ErrNotInstalled = errors.New("package not installed")
	ErrCorrupt      = errors.New("install record corrupt")
)

// Record is the persisted proof that an install completed.
type Record struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// Complete reports whether both fields are populated.
func (r Record) Complete() bool {
	return r.ID != "" && r.Version != ""
}

// Recorder reads and writes install records.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/recorder.go . Recorder
type Recorder interface {
	// Record atomically writes rec to dir/installed.json, replacing any
	// previous record.
	Record(dir string, rec Record) error

	// Read returns the record stored in dir.
	// Returns ErrNotInstalled if no record exists and ErrCorrupt if it
	// cannot be decoded or is incomplete.
	Read(dir string) (*Record, error)
}
