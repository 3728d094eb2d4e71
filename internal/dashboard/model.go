package dashboard

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// model adapts State to a bubbletea program. It quits as soon as the
// reducer asks for an effect and leaves the effect for the driver.
type model struct {
	state  *State
	help   help.Model
	width  int
	height int
	effect Effect
}

func newModel(s *State) model {
	return model{state: s, help: help.New()}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		for _, message := range messagesFor(msg, m.state.Editing != nil) {
			if eff := m.state.Handle(message); eff != nil {
				m.effect = eff
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	footer := m.help.View(helpKeys{keyMap: keys, editing: m.state.Editing != nil})
	return render(m.state, m.width, m.height, footer)
}
