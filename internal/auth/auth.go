// Package auth manages credentials for authenticated manifest hosts.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// CredentialType distinguishes how a credential is presented to a host.
type CredentialType string

const (
	// CredentialTypeBearer is sent as an Authorization: Bearer header.
	CredentialTypeBearer CredentialType = "bearer"

	// CredentialTypeBasic is a "user:password" pair sent as HTTP basic auth.
	CredentialTypeBasic CredentialType = "basic"
)

// Sentinel errors for credential operations.
var (
	ErrNotFound          = errors.New("no credential stored for host")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidHost       = errors.New("invalid host")
)

// Credential holds a host credential with its type.
type Credential struct {
	Type  CredentialType `json:"type"`
	Value string         `json:"value"`
}

// BasicAuth splits a basic credential into user and password.
func (c Credential) BasicAuth() (user, password string, ok bool) {
	if c.Type != CredentialTypeBasic {
		return "", "", false
	}
	return strings.Cut(c.Value, ":")
}

// Validate checks the credential value against its type.
func (c Credential) Validate() error {
	switch c.Type {
	case CredentialTypeBearer:
		if strings.TrimSpace(c.Value) == "" {
			return fmt.Errorf("%w: token is empty", ErrInvalidCredential)
		}
		if strings.ContainsAny(c.Value, " \t\r\n") {
			return fmt.Errorf("%w: token contains whitespace", ErrInvalidCredential)
		}
	case CredentialTypeBasic:
		user, _, ok := c.BasicAuth()
		if !ok || user == "" {
			return fmt.Errorf("%w: expected user:password", ErrInvalidCredential)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCredential, c.Type)
	}
	return nil
}

// Storage abstracts credential storage backends.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/storage.go . Storage
type Storage interface {
	// Set stores a credential.
	Set(account, secret string) error

	// Get retrieves a credential.
	Get(account string) (string, error)

	// Delete removes a credential.
	Delete(account string) error
}

// StoreCredential is a helper function to store a credential in JSON format.
func StoreCredential(storage Storage, account string, cred Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	return storage.Set(account, string(data))
}

// LoadCredential is a helper function to load a credential from JSON format.
func LoadCredential(storage Storage, account string) (*Credential, error) {
	data, err := storage.Get(account)
	if err != nil {
		return nil, err
	}

	var cred Credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		return nil, fmt.Errorf("unmarshal credential: %w", err)
	}
	return &cred, nil
}

// NormalizeHost reduces a host or URL to its lowercase host[:port] form.
func NormalizeHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidHost)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidHost, raw)
	}
	return strings.ToLower(u.Host), nil
}

// accountFor returns the storage account used for a host.
func accountFor(host string) string {
	return "manifest/" + host
}
