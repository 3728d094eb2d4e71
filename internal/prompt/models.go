package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rezmoss/taskit/internal/journal"
)

const maxSuggestions = 5

func isCancel(k tea.KeyMsg) bool {
	return k.Type == tea.KeyCtrlC || k.Type == tea.KeyEsc
}

// text

type textModel struct {
	label       string
	input       textinput.Model
	opts        TextOptions
	suggestions []string
	err         error
	done        bool
	quit        bool
}

func newTextModel(label string, o TextOptions) textModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = o.Placeholder
	ti.CharLimit = 256
	ti.Width = 60
	ti.SetValue(o.Default)
	ti.CursorEnd()
	ti.Focus()

	m := textModel{label: label, input: ti, opts: o}
	if o.Suggest != nil {
		m.input.ShowSuggestions = true
		m.refreshSuggestions()
	}
	return m
}

func (m *textModel) refreshSuggestions() {
	if m.opts.Suggest == nil {
		return
	}
	m.suggestions = m.opts.Suggest(m.input.Value())
	m.input.SetSuggestions(m.suggestions)
}

func (m textModel) value() string { return m.input.Value() }

func (m textModel) cancelled() bool { return m.quit }

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancel(k):
			m.quit = true
			return m, tea.Quit
		case k.Type == tea.KeyEnter:
			if m.opts.Validate != nil {
				if err := m.opts.Validate(m.input.Value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
		m.err = nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return labelStyle.Render(m.label) + " " + answerStyle.Render(m.input.Value()) + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label) + "\n")
	b.WriteString(m.input.View() + "\n")
	for i, s := range m.suggestions {
		if i == maxSuggestions {
			b.WriteString(hintStyle.Render(fmt.Sprintf("  ... %d more", len(m.suggestions)-maxSuggestions)) + "\n")
			break
		}
		b.WriteString(hintStyle.Render("  "+s) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	hint := "enter to confirm, esc to cancel"
	if m.opts.Suggest != nil {
		hint = "tab to complete, " + hint
	}
	b.WriteString(hintStyle.Render(hint) + "\n")
	return b.String()
}

// date

type dateModel struct {
	label string
	input textinput.Model
	date  journal.Date
	err   error
	done  bool
	quit  bool
}

func newDateModel(label string, def journal.Date) dateModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	ti.Width = 12
	ti.SetValue(def.String())
	ti.CursorEnd()
	ti.Focus()
	return dateModel{label: label, input: ti, date: def}
}

func (m dateModel) cancelled() bool { return m.quit }

func (m dateModel) Init() tea.Cmd { return textinput.Blink }

func (m dateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancel(k):
			m.quit = true
			return m, tea.Quit
		case k.Type == tea.KeyEnter:
			d, err := journal.ParseDate(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.date = d
			m.done = true
			return m, tea.Quit
		case k.Type == tea.KeyUp, k.Type == tea.KeyDown:
			if d, err := journal.ParseDate(m.input.Value()); err == nil {
				step := 1
				if k.Type == tea.KeyDown {
					step = -1
				}
				m.date = d.AddDays(step)
				m.input.SetValue(m.date.String())
				m.input.CursorEnd()
			}
			return m, nil
		}
		m.err = nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m dateModel) View() string {
	if m.done {
		return labelStyle.Render(m.label) + " " + answerStyle.Render(m.date.String()) + "\n"
	}
	s := labelStyle.Render(m.label) + "\n" + m.input.View() + "\n"
	if m.err != nil {
		s += errorStyle.Render(m.err.Error()) + "\n"
	}
	return s + hintStyle.Render("up/down to change day, enter to confirm, esc to cancel") + "\n"
}

// confirm

type confirmModel struct {
	label  string
	answer bool
	done   bool
	quit   bool
}

func (m confirmModel) cancelled() bool { return m.quit }

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case isCancel(k):
		m.quit = true
		return m, tea.Quit
	case k.Type == tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	}
	switch strings.ToLower(k.String()) {
	case "y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n":
		m.answer, m.done = false, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return labelStyle.Render(m.label) + " " + answerStyle.Render(answer) + "\n"
	}
	return labelStyle.Render(m.label) + " " + hintStyle.Render("[y/N]") + "\n"
}

// select

const selectWindow = 10

type selectModel struct {
	label   string
	options []string
	cursor  int
	done    bool
	quit    bool
}

func newSelectModel(label string, options []string) selectModel {
	return selectModel{label: label, options: options}
}

func (m selectModel) cancelled() bool { return m.quit }

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case isCancel(k):
		m.quit = true
		return m, tea.Quit
	case k.Type == tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	}
	switch k.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.options) - 1
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return labelStyle.Render(m.label) + " " + answerStyle.Render(m.options[m.cursor]) + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label) + "\n")
	first := 0
	if m.cursor >= selectWindow {
		first = m.cursor - selectWindow + 1
	}
	last := min(first+selectWindow, len(m.options))
	for i := first; i < last; i++ {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+m.options[i]) + "\n")
			continue
		}
		b.WriteString("  " + m.options[i] + "\n")
	}
	b.WriteString(hintStyle.Render("up/down to move, enter to select, esc to cancel") + "\n")
	return b.String()
}

// editor

type editorModel struct {
	label string
	area  textarea.Model
	done  bool
	quit  bool
}

func newEditorModel(label, initial string) editorModel {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(8)
	ta.SetValue(initial)
	ta.Focus()
	return editorModel{label: label, area: ta}
}

func (m editorModel) cancelled() bool { return m.quit }

func (m editorModel) Init() tea.Cmd { return textarea.Blink }

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancel(k):
			m.quit = true
			return m, tea.Quit
		case k.Type == tea.KeyCtrlS, k.Type == tea.KeyCtrlD:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m editorModel) View() string {
	if m.done {
		return labelStyle.Render(m.label) + " " + answerStyle.Render("saved") + "\n"
	}
	return labelStyle.Render(m.label) + "\n" + m.area.View() + "\n" +
		hintStyle.Render("ctrl+s to save, esc to cancel") + "\n"
}

// stopwatch

const stopwatchTick = 500 * time.Millisecond

type stopwatchTickMsg time.Time

func stopwatchTickCmd() tea.Cmd {
	return tea.Tick(stopwatchTick, func(t time.Time) tea.Msg {
		return stopwatchTickMsg(t)
	})
}

type stopwatchModel struct {
	start time.Time
	now   func() time.Time
	last  time.Time
	end   time.Time
	done  bool
	quit  bool
}

func newStopwatchModel(start time.Time, now func() time.Time) stopwatchModel {
	return stopwatchModel{start: start, now: now, last: now()}
}

func (m stopwatchModel) cancelled() bool { return m.quit }

func (m stopwatchModel) Init() tea.Cmd { return stopwatchTickCmd() }

func (m stopwatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.end = m.now()
			m.done = true
			return m, tea.Quit
		}
	case stopwatchTickMsg:
		m.last = m.now()
		return m, stopwatchTickCmd()
	}
	return m, nil
}

func (m stopwatchModel) elapsed() time.Duration {
	at := m.last
	if m.done {
		at = m.end
	}
	return journal.SimpleTimeOf(at).Sub(journal.SimpleTimeOf(m.start))
}

func (m stopwatchModel) View() string {
	d := m.elapsed()
	clock := fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
	if m.done {
		return labelStyle.Render("Stopped after") + " " + answerStyle.Render(clock) + "\n"
	}
	return labelStyle.Render(clock) + " " + hintStyle.Render("(<Enter> to finish, ctrl+c to discard)") + "\n"
}
