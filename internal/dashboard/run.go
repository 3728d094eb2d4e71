package dashboard

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezmoss/taskit/internal/journal"
	"github.com/rezmoss/taskit/internal/prompt"
	"github.com/rezmoss/taskit/internal/summary"
)

// Prompter collects filter values while the dashboard is suspended.
// prompt.Terminal implements it.
type Prompter interface {
	Text(label string, o prompt.TextOptions) (string, error)
	Date(label string, def journal.Date) (journal.Date, error)
}

// Run shows the dashboard until the user quits. Prompt effects stop the
// program, ask p for the value and start a fresh program, which redraws the
// whole screen. Nothing is ever written back.
func Run(data journal.SaveData, p Prompter, opts ...tea.ProgramOption) error {
	state := NewState(data)
	for {
		final, err := tea.NewProgram(newModel(state), opts...).Run()
		if err != nil {
			return fmt.Errorf("run dashboard: %w", err)
		}
		m, ok := final.(model)
		if !ok {
			return nil
		}
		eff, ok := m.effect.(Prompt)
		if !ok {
			return nil
		}
		f, err := interpret(p, eff, state.Categories())
		if errors.Is(err, prompt.ErrCancelled) {
			continue
		}
		if err != nil {
			return err
		}
		state.Resolve(f)
	}
}

// interpret runs the prompt behind eff and turns the answer into a filter.
func interpret(p Prompter, eff Prompt, categories journal.Categories) (summary.Filter, error) {
	switch eff.Column {
	case StartDate:
		d, err := p.Date("Start date filter:", journal.Today())
		if err != nil {
			return nil, err
		}
		return summary.AtOrAfter{Date: d}, nil
	case EndDate:
		d, err := p.Date("End date filter:", journal.Today())
		if err != nil {
			return nil, err
		}
		return summary.AtOrBefore{Date: d}, nil
	case CategoryColumn:
		name, err := p.Text("Select a category:", prompt.TextOptions{
			Suggest: categories.Suggest,
			Validate: func(s string) error {
				if !categories.Contains(s) {
					return fmt.Errorf("%w: %q", journal.ErrUnknownCategory, s)
				}
				return nil
			},
		})
		if err != nil {
			return nil, err
		}
		return summary.CategoryIs{Name: name}, nil
	}
	return nil, fmt.Errorf("no prompt for the %s column", eff.Column)
}
