package auth

import (
	"errors"
	"fmt"

	"github.com/jmgilman/paiqm/internal/keychain"
)

// HostCredentials stores per-host credentials and resolves the credential
// to present when fetching from a host.
type HostCredentials struct {
	storage  Storage
	fallback string
}

// NewHostCredentials creates a HostCredentials. A non-empty fallback token
// is used as a bearer credential for hosts without a stored credential.
func NewHostCredentials(storage Storage, fallback string) *HostCredentials {
	return &HostCredentials{storage: storage, fallback: fallback}
}

// Store validates and saves the credential for host.
func (h *HostCredentials) Store(host string, cred Credential) error {
	host, err := NormalizeHost(host)
	if err != nil {
		return err
	}
	if err := cred.Validate(); err != nil {
		return err
	}
	return StoreCredential(h.storage, accountFor(host), cred)
}

// Stored returns the credential saved for host.
// Returns ErrNotFound when none is saved.
func (h *HostCredentials) Stored(host string) (*Credential, error) {
	host, err := NormalizeHost(host)
	if err != nil {
		return nil, err
	}

	cred, err := LoadCredential(h.storage, accountFor(host))
	if errors.Is(err, keychain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, host)
	}
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// Remove deletes the credential saved for host.
func (h *HostCredentials) Remove(host string) error {
	host, err := NormalizeHost(host)
	if err != nil {
		return err
	}
	return h.storage.Delete(accountFor(host))
}

// Lookup returns the credential to present to host, or nil when the host
// needs none. A stored credential wins over the fallback token. An
// unavailable keyring is treated as having no stored credential.
func (h *HostCredentials) Lookup(host string) (*Credential, error) {
	if h.storage != nil {
		cred, err := h.Stored(host)
		switch {
		case err == nil:
			return cred, nil
		case errors.Is(err, ErrNotFound), errors.Is(err, keychain.ErrUnavailable):
		default:
			return nil, err
		}
	}

	if h.fallback != "" {
		return &Credential{Type: CredentialTypeBearer, Value: h.fallback}, nil
	}
	return nil, nil
}
