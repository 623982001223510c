package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

const (
	lockFileName = ".lock"
	lockFileMode = 0o644
	lockPoll     = 10 * time.Millisecond
)

// DefaultLockTimeout bounds how long Lock waits for another holder.
const DefaultLockTimeout = 5 * time.Second

// ErrLocked is returned when another process holds a package's workspace
// lock for longer than the lock timeout.
var ErrLocked = errors.New("workspace is locked by another process")

// Lock is an exclusive advisory lock on one package workspace.
type Lock struct {
	file *os.File
}

// Lock takes the exclusive lock for a package, creating the workspace if
// needed. It polls until the lock is free, timeout elapses or ctx is done.
func (l *Layout) Lock(ctx context.Context, id string, timeout time.Duration) (*Lock, error) {
	dir, err := l.Ensure(id)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, lockFileName)
	//nolint:gosec // G304: path is built from a validated id
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFileMode)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := acquire(ctx, file, timeout); err != nil {
		file.Close()
		if errors.Is(err, ErrLocked) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, id)
		}
		return nil, err
	}
	return &Lock{file: file}, nil
}

// Unlock releases the lock. Calling it more than once is a no-op.
func (k *Lock) Unlock() error {
	if k == nil || k.file == nil {
		return nil
	}
	file := k.file
	k.file = nil

	//nolint:errcheck // closing the descriptor releases the lock anyway
	syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
	return file.Close()
}

func acquire(ctx context.Context, file *os.File, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, syscall.EWOULDBLOCK) {
			return fmt.Errorf("acquire lock: %w", err)
		}

		if time.Now().After(deadline) {
			return ErrLocked
		}
		time.Sleep(lockPoll)
	}
}
