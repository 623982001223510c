// Package keychain provides OS keyring storage for credentials.
package keychain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"
)

// serviceName is the service identifier used for all paiqm credentials.
const serviceName = "paiqm"

// ErrNotFound is returned when a credential is not found in the keychain.
var ErrNotFound = errors.New("credential not found in keychain")

// ErrUnavailable is returned when no usable keyring backend exists on this host.
var ErrUnavailable = errors.New("no keyring backend available")

// Keychain provides secure credential storage using the OS keyring.
// It satisfies auth.Storage.
type Keychain interface {
	// Set stores a credential in the keychain.
	Set(account, secret string) error

	// Get retrieves a credential from the keychain.
	// Returns ErrNotFound if the credential does not exist.
	Get(account string) (string, error)

	// Delete removes a credential from the keychain.
	// Returns nil if the credential does not exist.
	Delete(account string) error
}

type keychain struct {
	cfg  keyring.Config
	open func(keyring.Config) (keyring.Keyring, error)

	once sync.Once
	ring keyring.Keyring
	err  error
}

// New creates a new Keychain backed by the platform keyring. The keyring is
// opened on first use.
func New() Keychain {
	return &keychain{
		cfg: keyring.Config{
			ServiceName: serviceName,
			AllowedBackends: []keyring.BackendType{
				keyring.KeychainBackend,
				keyring.SecretServiceBackend,
				keyring.KWalletBackend,
				keyring.WinCredBackend,
			},
			KeychainTrustApplication:       true,
			KeychainSynchronizable:         false,
			KeychainAccessibleWhenUnlocked: true,
		},
		open: keyring.Open,
	}
}

func (k *keychain) backend() (keyring.Keyring, error) {
	k.once.Do(func() {
		k.ring, k.err = k.open(k.cfg)
		if k.err != nil {
			k.err = fmt.Errorf("%w: %w", ErrUnavailable, k.err)
		}
	})
	return k.ring, k.err
}

func (k *keychain) Set(account, secret string) error {
	ring, err := k.backend()
	if err != nil {
		return err
	}

	return ring.Set(keyring.Item{
		Key:   account,
		Data:  []byte(secret),
		Label: "paiqm - " + account,
	})
}

func (k *keychain) Get(account string) (string, error) {
	ring, err := k.backend()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(account)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return string(item.Data), nil
}

func (k *keychain) Delete(account string) error {
	ring, err := k.backend()
	if err != nil {
		return err
	}

	if err := ring.Remove(account); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
