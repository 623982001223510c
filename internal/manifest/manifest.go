// Package manifest retrieves and validates remote package manifests.
//
// A manifest is fetched fresh on every call. Documents may be YAML (the
// default), JSON or TOML and must satisfy the embedded JSON schema before
// they are decoded.
package manifest

import (
	"context"
	"errors"

	"github.com/jmgilman/paiqm/internal/auth"
	"github.com/jmgilman/paiqm/internal/registry"
)

// Sentinel errors for manifest operations.
var (
	// ErrUnreachable is returned on network failure, timeout or a non-2xx response.
	ErrUnreachable = errors.New("manifest unreachable")

	// ErrMalformed is returned when the document cannot be parsed or fails validation.
	ErrMalformed = errors.New("manifest malformed")

	// ErrIDMismatch is returned alongside ErrMalformed when the manifest id
	// differs from the registry entry id.
	ErrIDMismatch = errors.New("manifest id does not match registry entry")
)

// Manifest describes one package release.
type Manifest struct {
	ID           string       `mapstructure:"id" json:"id"`
	Version      string       `mapstructure:"version" json:"version"`
	Ref          string       `mapstructure:"ref" json:"ref,omitempty"`
	Requirements Requirements `mapstructure:"requirements" json:"requirements"`
	Runtime      Runtime      `mapstructure:"runtime" json:"runtime"`
}

// Requirements lists the dependencies installed into the package environment.
type Requirements struct {
	Pip []string `mapstructure:"pip" json:"pip"`
}

// Runtime describes how the package is launched.
type Runtime struct {
	Entry Entry `mapstructure:"entry" json:"entry"`
}

// Entry is the module run with `python -m` and its arguments.
type Entry struct {
	Module string   `mapstructure:"module" json:"module"`
	Args   []string `mapstructure:"args" json:"args"`
}

// ResolveRef returns the revision to check out: the manifest ref when set,
// otherwise the registry ref.
func (m *Manifest) ResolveRef(entry registry.Entry) string {
	if m.Ref != "" {
		return m.Ref
	}
	return entry.Ref
}

// Credentials resolves the credential to present to a manifest host.
type Credentials interface {
	// Lookup returns nil when the host needs no credential.
	Lookup(host string) (*auth.Credential, error)
}

// Fetcher retrieves the manifest for a registry entry.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/fetcher.go . Fetcher
type Fetcher interface {
	// Fetch downloads, parses and validates the manifest for entry.
	// Returns ErrUnreachable or ErrMalformed on failure.
	Fetch(ctx context.Context, entry registry.Entry) (*Manifest, error)
}
