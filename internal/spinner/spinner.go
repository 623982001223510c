// Package spinner shows a spinner and the latest line of tool output while
// a package installs, updating in place on the terminal.
package spinner

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// maxLineSize bounds a single line of tool output shown on the status line.
const maxLineSize = 1024 * 1024

// Spinner displays a title, a spinner and the most recent output line.
// Output piped through Writer() feeds the status line.
type Spinner struct {
	title  string
	reader *io.PipeReader
	writer *io.PipeWriter
	lineCh chan string
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	stopped bool
	wg      sync.WaitGroup
}

// New creates a Spinner that renders to output (os.Stderr when nil).
func New(title string, output io.Writer) *Spinner {
	if output == nil {
		output = os.Stderr
	}

	reader, writer := io.Pipe()
	return &Spinner{
		title:  title,
		reader: reader,
		writer: writer,
		lineCh: make(chan string, 100),
		output: output,
	}
}

// Writer returns the io.Writer handed to subprocesses.
func (s *Spinner) Writer() io.Writer {
	return s.writer
}

// Start renders the spinner until Stop is called. It blocks, so callers run
// it in a goroutine. Calling Start after Stop returns immediately.
func (s *Spinner) Start() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.program = tea.NewProgram(newModel(s.title, s.lineCh, terminalWidth()),
		tea.WithOutput(s.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	s.wg.Add(1)
	go s.readLines()
	s.mu.Unlock()

	_, err := s.program.Run()
	s.wg.Wait()
	return err
}

// Stop ends the display and clears the spinner line. It is safe to call
// more than once and before Start.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true

	_ = s.writer.Close()
	if s.program != nil {
		s.program.Quit()
	}
}

// readLines forwards non-empty lines to the model and closes the channel
// once the writer is closed.
func (s *Spinner) readLines() {
	defer s.wg.Done()
	defer close(s.lineCh)
	defer s.reader.Close()

	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case s.lineCh <- line:
		default:
			// Drop lines the display cannot keep up with.
		}
	}

	// Keep the writer unblocked after an oversized line stops the scanner.
	_, _ = io.Copy(io.Discard, s.reader)
}

func terminalWidth() int {
	if fd := int(os.Stderr.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

var titleStyle = lipgloss.NewStyle().Bold(true)

type model struct {
	spinner    spinner.Model
	title      string
	statusLine string
	width      int
	lineCh     <-chan string
	quitting   bool
}

type lineMsg string

func newModel(title string, lineCh <-chan string, width int) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		spinner: s,
		title:   title,
		width:   width,
		lineCh:  lineCh,
	}
}

// Init implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForLine(m.lineCh),
	)
}

// Update implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case lineMsg:
		m.statusLine = string(msg)
		return m, waitForLine(m.lineCh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
//
//nolint:gocritic // hugeParam: tea.Model interface requires value receiver
func (m model) View() string {
	if m.quitting {
		return ""
	}

	head := m.spinner.View() + " " + titleStyle.Render(m.title)
	if m.statusLine == "" {
		return head
	}

	// spinner, spaces and separator
	maxLineWidth := m.width - lipgloss.Width(head) - 3
	if maxLineWidth < 10 {
		maxLineWidth = 10
	}
	return head + " · " + truncate(m.statusLine, maxLineWidth)
}

// waitForLine waits for the next line; a closed channel quits the program.
func waitForLine(lineCh <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-lineCh
		if !ok {
			return tea.Quit()
		}
		return lineMsg(line)
	}
}

// truncate shortens s to maxWidth runes, ending in "..." when cut.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxWidth {
		return s
	}
	return string(r[:maxWidth-3]) + "..."
}
