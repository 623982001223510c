package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	fileMode = 0644
	dirMode  = 0755
)

type fileRecorder struct{}

// NewRecorder returns a Recorder backed by installed.json files.
func NewRecorder() Recorder {
	return &fileRecorder{}
}

func (r *fileRecorder) Record(dir string, rec Record) error {
	if !rec.Complete() {
		return fmt.Errorf("record %q: id and version are required", rec.ID)
	}

	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create workspace directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "installed-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Clean up on error
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rec); err != nil {
		tmp.Close()
		return fmt.Errorf("encode record: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, fileMode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, filepath.Join(dir, FileName)); err != nil {
		return fmt.Errorf("rename record file: %w", err)
	}

	tmpPath = "" // Prevent cleanup
	return nil
}

func (r *fileRecorder) Read(dir string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotInstalled
	}
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if !rec.Complete() {
		return nil, fmt.Errorf("%w: missing id or version", ErrCorrupt)
	}

	return &rec, nil
}
