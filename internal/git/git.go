// Package git keeps a package's source checkout in sync with its repository.
package git

import (
	"context"
	"errors"
	"io"
)

// ErrSyncFailed is returned when clone, fetch, checkout or fast-forward fails.
// The wrapped error carries git's exit code.
var ErrSyncFailed = errors.New("source sync failed")

// SyncRequest describes one checkout convergence.
type SyncRequest struct {
	Repo   string    // Anything git clone accepts
	Dir    string    // Checkout directory
	Ref    string    // Branch, tag or commit; empty keeps the default branch
	Output io.Writer // Receives git's progress output (nil = captured)
}

// Checkout converges a working copy onto a ref.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/checkout.go . Checkout
type Checkout interface {
	// Sync clones Repo into Dir when no clone exists, otherwise fetches.
	// It then checks out Ref and, when Ref is a branch with an upstream,
	// fast-forwards to it. Running Sync twice yields the same tree.
	Sync(ctx context.Context, req SyncRequest) error
}
