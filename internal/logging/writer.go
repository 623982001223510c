package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// MarkPrefix starts every section header written by Mark.
const MarkPrefix = "==> "

// TeeWriter copies tool output to a primary writer and a log file.
// It implements io.WriteCloser.
type TeeWriter struct {
	primary io.Writer
	logFile *os.File
	now     func() time.Time
	mu      sync.Mutex
}

// NewTeeWriter creates a TeeWriter that writes to both the primary writer
// and the specified log file path. The log file is created or truncated,
// so each install starts a fresh log. A nil primary writes to the log file
// only.
func NewTeeWriter(primary io.Writer, logPath string) (*TeeWriter, error) {
	//nolint:gosec // G304: logPath is constructed by PathManager
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &TeeWriter{
		primary: primary,
		logFile: logFile,
		now:     time.Now,
	}, nil
}

// Write writes data to the log file, then to the primary writer.
func (t *TeeWriter) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.logFile != nil {
		if _, err := t.logFile.Write(p); err != nil {
			return 0, fmt.Errorf("write to log file: %w", err)
		}
	}

	if t.primary != nil {
		return t.primary.Write(p)
	}

	return len(p), nil
}

// Mark writes a timestamped section header to the log file only:
//
//	==> 2025-01-02T15:04:05Z source
//
// The terminal never sees headers. Mark after Close is a no-op.
func (t *TeeWriter) Mark(format string, args ...any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.logFile == nil {
		return nil
	}

	header := fmt.Sprintf("%s%s %s\n", MarkPrefix, t.now().UTC().Format(time.RFC3339), fmt.Sprintf(format, args...))
	if _, err := io.WriteString(t.logFile, header); err != nil {
		return fmt.Errorf("write to log file: %w", err)
	}
	return nil
}

// Close closes the log file. The primary writer is not closed.
func (t *TeeWriter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.logFile != nil {
		if err := t.logFile.Close(); err != nil {
			return fmt.Errorf("close log file: %w", err)
		}
		t.logFile = nil
	}
	return nil
}

// LogPath returns the path of the log file, or empty string once closed.
func (t *TeeWriter) LogPath() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.logFile != nil {
		return t.logFile.Name()
	}
	return ""
}
