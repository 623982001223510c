// Package prompt provides the interactive questions paiqm asks on a
// terminal, using charmbracelet/huh.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrCanceled is returned when the user cancels a prompt.
var ErrCanceled = errors.New("canceled by user")

// ErrNotInteractive is returned when a prompt is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("not an interactive terminal")

// Prompter abstracts user interaction for testability.
//
//go:generate go run github.com/matryer/moq@latest -pkg mocks -out mocks/prompter.go . Prompter
type Prompter interface {
	// Interactive reports whether prompts can be shown.
	Interactive() bool

	// Select asks the user to pick one of options and returns it.
	Select(title string, options []string) (string, error)

	// Secret prompts for masked input. validate may be nil.
	Secret(title string, validate func(string) error) (string, error)

	// Confirm prompts for yes/no confirmation.
	Confirm(title string) (bool, error)
}

// HuhPrompter implements Prompter with huh forms on the process terminal.
type HuhPrompter struct {
	in  *os.File
	out io.Writer
}

// New creates a HuhPrompter bound to stdin and stderr.
func New() *HuhPrompter {
	return &HuhPrompter{in: os.Stdin, out: os.Stderr}
}

// Interactive reports whether stdin is a terminal.
func (p *HuhPrompter) Interactive() bool {
	return term.IsTerminal(int(p.in.Fd()))
}

// Select asks the user to pick one of options.
func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options provided")
	}
	if !p.Interactive() {
		return "", ErrNotInteractive
	}

	selected := options[0]
	err := p.run(huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&selected))
	if err != nil {
		return "", fmt.Errorf("select prompt: %w", err)
	}
	return selected, nil
}

// Secret prompts for masked input and trims surrounding whitespace.
func (p *HuhPrompter) Secret(title string, validate func(string) error) (string, error) {
	if !p.Interactive() {
		return "", ErrNotInteractive
	}

	var value string
	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if validate != nil {
		input = input.Validate(func(s string) error {
			return validate(strings.TrimSpace(s))
		})
	}

	if err := p.run(input); err != nil {
		return "", fmt.Errorf("secret prompt: %w", err)
	}
	return strings.TrimSpace(value), nil
}

// Confirm prompts for yes/no confirmation.
func (p *HuhPrompter) Confirm(title string) (bool, error) {
	if !p.Interactive() {
		return false, ErrNotInteractive
	}

	var confirmed bool
	err := p.run(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed))
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return confirmed, nil
}

func (p *HuhPrompter) run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithInput(p.in).
		WithOutput(p.out).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCanceled
	}
	return err
}
