package dashboard

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Kill  key.Binding
	Quit  key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding

	Apply  key.Binding
	Cancel key.Binding
	Erase  key.Binding
}

var keys = keyMap{
	Kill: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "exit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "scroll down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev filter"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next filter"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add filter"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "discard"),
	),
	Erase: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "erase"),
	),
}

// helpKeys shows the bindings that apply in the current mode.
type helpKeys struct {
	keyMap
	editing bool
}

var _ help.KeyMap = helpKeys{}

func (h helpKeys) ShortHelp() []key.Binding {
	if h.editing {
		return []key.Binding{h.Apply, h.Cancel, h.Erase, h.Up, h.Down, h.Kill}
	}
	return []key.Binding{h.Left, h.Right, h.Enter, h.Up, h.Down, h.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// messagesFor maps a key press to reducer messages. Ctrl+C and scrolling
// work in every mode; typing is only captured while a filter is edited.
func messagesFor(k tea.KeyMsg, editing bool) []Message {
	switch {
	case key.Matches(k, keys.Kill):
		return []Message{Exit{}}
	case key.Matches(k, keys.Down):
		return []Message{ScrollDown{}}
	case key.Matches(k, keys.Up):
		return []Message{ScrollUp{}}
	}

	if editing {
		switch {
		case key.Matches(k, keys.Erase):
			return []Message{Backspace{}}
		case key.Matches(k, keys.Apply):
			return []Message{FinishFilter{}}
		case key.Matches(k, keys.Cancel):
			return []Message{CancelFilter{}}
		case k.Type == tea.KeySpace:
			return []Message{Typed{Rune: ' '}}
		case k.Type == tea.KeyRunes && !k.Alt:
			msgs := make([]Message, 0, len(k.Runes))
			for _, r := range k.Runes {
				msgs = append(msgs, Typed{Rune: r})
			}
			return msgs
		}
		return nil
	}

	switch {
	case key.Matches(k, keys.Quit):
		return []Message{Exit{}}
	case key.Matches(k, keys.Left):
		return []Message{TabLeft{}}
	case key.Matches(k, keys.Right):
		return []Message{TabRight{}}
	case key.Matches(k, keys.Enter):
		return []Message{Enter{}}
	}
	return nil
}
