package logging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultTailLines is the default number of lines to read when tailing.
const DefaultTailLines = 100

// Reader reads package log files.
type Reader struct {
	pathMgr *PathManager
}

// NewReader creates a new Reader with the given PathManager.
func NewReader(pathMgr *PathManager) *Reader {
	return &Reader{pathMgr: pathMgr}
}

// ReadAll reads every line of a package log.
func (r *Reader) ReadAll(packageID, name string) ([]string, error) {
	return readAllLines(r.pathMgr.LogPath(packageID, name))
}

// ReadLastN reads the last n lines of a package log.
// If n <= 0, uses DefaultTailLines.
func (r *Reader) ReadLastN(packageID, name string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultTailLines
	}
	return readLastNLines(r.pathMgr.LogPath(packageID, name), n)
}

// Follow streams lines appended to a package log to out, like `tail -f`.
// It blocks until ctx is cancelled, polling every pollInterval.
func (r *Reader) Follow(ctx context.Context, packageID, name string, out io.Writer, pollInterval time.Duration) error {
	file, err := os.Open(r.pathMgr.LogPath(packageID, name))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	reader := bufio.NewReader(file)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := drain(reader, out); err != nil {
				return err
			}
		}
	}
}

// FollowWithHistory prints the last n lines and then follows new output,
// like `tail -n N -f`.
func (r *Reader) FollowWithHistory(ctx context.Context, packageID, name string, out io.Writer, n int, pollInterval time.Duration) error {
	lines, err := r.ReadLastN(packageID, name, n)
	if err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}

	return r.Follow(ctx, packageID, name, out, pollInterval)
}

// drain copies everything currently readable, including a trailing
// partial line.
func drain(reader *bufio.Reader, out io.Writer) error {
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := out.Write(line); werr != nil {
				return fmt.Errorf("write output: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
	}
}

func readAllLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan log file: %w", err)
	}
	return lines, nil
}

// readLastNLines keeps the last n lines in a ring buffer.
func readLastNLines(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	ring := make([]string, n)
	idx := 0
	count := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % n
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan log file: %w", err)
	}

	if count == 0 {
		return nil, nil
	}
	if count < n {
		return ring[:count], nil
	}

	result := make([]string, n)
	for i := range n {
		result[i] = ring[(idx+i)%n]
	}
	return result, nil
}
