// Package registry loads the local catalog of installable packages.
package registry

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for registry operations.
var (
	// ErrUnavailable is returned when the registry cannot be read or parsed.
	ErrUnavailable = errors.New("registry unavailable")

	// ErrUnknownPackage is returned when an id has no registry entry.
	ErrUnknownPackage = errors.New("unknown package")
)

// FileName is the registry file name looked up beside the executable and
// in the working directory.
const FileName = "registry.json"

// Entry is one catalog record.
type Entry struct {
	// ID is the package identifier and its workspace directory name.
	ID string `json:"id" validate:"required,pkgid"`

	// ManifestURL locates the package manifest. Relative paths are resolved
	// against the registry file's directory when the registry is loaded.
	ManifestURL string `json:"manifest_url" validate:"required"`

	// Repo is the source repository, anything git clone accepts.
	Repo string `json:"repo" validate:"required"`

	// Ref is the revision to check out. A manifest ref overrides it.
	Ref string `json:"ref"`
}

// Registry is the ordered catalog loaded from disk.
type Registry struct {
	Entries []Entry `json:"games" validate:"unique=ID,dive"`

	// Path is the file the registry was loaded from.
	Path string `json:"-"`
}

// Lookup returns the entry for id.
func (r *Registry) Lookup(id string) (Entry, error) {
	for _, e := range r.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnknownPackage, id)
}

// IDs returns the package ids in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// Store loads the registry.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/store.go . Store
type Store interface {
	// Load reads, validates and returns the registry.
	// Returns ErrUnavailable if the file is missing or invalid.
	Load(ctx context.Context) (*Registry, error)
}
