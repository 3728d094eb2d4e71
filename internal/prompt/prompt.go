// Package prompt asks the user for single values with small bubbletea
// programs. Each call takes over the terminal until the value is entered or
// the prompt is cancelled with esc or ctrl+c.
package prompt

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rezmoss/taskit/internal/journal"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("prompt cancelled")

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)
)

// TextOptions configures a free text prompt.
type TextOptions struct {
	Default     string
	Placeholder string
	// Suggest returns completions for the current input. Each completion
	// replaces the whole input when accepted with tab.
	Suggest func(input string) []string
	// Validate rejects the input on enter; the prompt stays open.
	Validate func(input string) error
}

// Terminal runs prompts on the controlling terminal.
type Terminal struct {
	opts []tea.ProgramOption
}

func NewTerminal(opts ...tea.ProgramOption) *Terminal {
	return &Terminal{opts: opts}
}

// outcome is implemented by every prompt model.
type outcome interface {
	tea.Model
	cancelled() bool
}

func (t *Terminal) run(m outcome) (tea.Model, error) {
	final, err := tea.NewProgram(m, t.opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	if o, ok := final.(outcome); ok && o.cancelled() {
		return nil, ErrCancelled
	}
	return final, nil
}

func (t *Terminal) Text(label string, o TextOptions) (string, error) {
	final, err := t.run(newTextModel(label, o))
	if err != nil {
		return "", err
	}
	return final.(textModel).value(), nil
}

func (t *Terminal) Date(label string, def journal.Date) (journal.Date, error) {
	if def.IsZero() {
		def = journal.Today()
	}
	final, err := t.run(newDateModel(label, def))
	if err != nil {
		return journal.Date{}, err
	}
	return final.(dateModel).date, nil
}

// Time asks for a time of day. def, when non-nil, is used for empty input.
func (t *Terminal) Time(label string, def *journal.SimpleTime) (journal.SimpleTime, error) {
	o := TextOptions{Placeholder: "HH:MM"}
	if def != nil {
		o.Default = def.String()
	}
	o.Validate = func(s string) error {
		_, err := journal.ParseSimpleTime(s)
		return err
	}
	s, err := t.Text(label, o)
	if err != nil {
		return journal.SimpleTime{}, err
	}
	return journal.ParseSimpleTime(s)
}

func (t *Terminal) Confirm(label string) (bool, error) {
	final, err := t.run(confirmModel{label: label})
	if err != nil {
		return false, err
	}
	return final.(confirmModel).answer, nil
}

// Select returns the index of the chosen option.
func (t *Terminal) Select(label string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("select %q: no options", label)
	}
	final, err := t.run(newSelectModel(label, options))
	if err != nil {
		return 0, err
	}
	return final.(selectModel).cursor, nil
}

// Editor edits multi-line text, prefilled with initial.
func (t *Terminal) Editor(label, initial string) (string, error) {
	final, err := t.run(newEditorModel(label, initial))
	if err != nil {
		return "", err
	}
	return final.(editorModel).area.Value(), nil
}

// Stopwatch shows the time elapsed since start until enter is pressed and
// returns the instant it was stopped.
func (t *Terminal) Stopwatch(start time.Time) (time.Time, error) {
	final, err := t.run(newStopwatchModel(start, time.Now))
	if err != nil {
		return time.Time{}, err
	}
	return final.(stopwatchModel).end, nil
}
