// Package dashboard is the read-only journal browser behind `taskit show`.
//
// State is a pure reducer: Handle folds one input message into the state and
// returns an Effect for the driver. Prompt effects are served outside the
// bubbletea program, after which the driver resumes with a fresh program.
package dashboard

import (
	"github.com/rezmoss/taskit/internal/journal"
	"github.com/rezmoss/taskit/internal/summary"
)

// Column is a filter category in the dashboard header.
type Column int

const (
	StartDate Column = iota
	EndDate
	CategoryColumn
	Description
)

const lastColumn = Description

var columnTitles = [...]string{"Start Date", "End Date", "Category", "Description"}

func (c Column) String() string {
	if c < 0 || int(c) >= len(columnTitles) {
		return "Unknown"
	}
	return columnTitles[c]
}

// scrollStep is how many lines one scroll message moves the events panel.
const scrollStep = 3

// Message is an input to the reducer.
type Message interface{ message() }

type (
	Exit         struct{}
	ScrollDown   struct{}
	ScrollUp     struct{}
	TabLeft      struct{}
	TabRight     struct{}
	Enter        struct{}
	Typed        struct{ Rune rune }
	Backspace    struct{}
	FinishFilter struct{}
	CancelFilter struct{}
)

func (Exit) message()         {}
func (ScrollDown) message()   {}
func (ScrollUp) message()     {}
func (TabLeft) message()      {}
func (TabRight) message()     {}
func (Enter) message()        {}
func (Typed) message()        {}
func (Backspace) message()    {}
func (FinishFilter) message() {}
func (CancelFilter) message() {}

// Effect is work the reducer asks the driver to do. A nil Effect means none.
type Effect interface{ effect() }

// Halt ends the dashboard.
type Halt struct{}

// Prompt asks the driver to collect a filter value for Column.
type Prompt struct{ Column Column }

func (Halt) effect()   {}
func (Prompt) effect() {}

// State is everything the dashboard shows.
type State struct {
	events     []journal.Event
	ref        summary.Reference
	categories journal.Categories
	notes      map[journal.Date]string

	Scroll  int
	Column  Column
	Applied []summary.Filter
	// Editing is the description filter being typed, if any. It filters
	// the view like an applied one.
	Editing *summary.DescriptionContains
}

// NewState snapshots data. Events are shown newest first.
func NewState(data journal.SaveData) *State {
	data = data.Clone()
	journal.SortNewestFirst(data.Events)
	return &State{
		events:     data.Events,
		ref:        summary.ReferenceOf(data),
		categories: data.AllCategories(),
		notes:      data.DailyNotes,
	}
}

// Handle applies msg and reports what the driver should do next.
func (s *State) Handle(msg Message) Effect {
	switch msg := msg.(type) {
	case Exit:
		return Halt{}
	case ScrollDown:
		s.Scroll += scrollStep
	case ScrollUp:
		s.Scroll = max(s.Scroll-scrollStep, 0)
	case TabLeft:
		s.Column = max(s.Column-1, StartDate)
	case TabRight:
		s.Column = min(s.Column+1, lastColumn)
	case Enter:
		if s.Column == Description {
			s.Editing = &summary.DescriptionContains{}
			return nil
		}
		return Prompt{Column: s.Column}
	case Typed:
		if s.Editing != nil {
			s.Editing.Text += string(msg.Rune)
		}
	case Backspace:
		if s.Editing != nil && s.Editing.Text != "" {
			r := []rune(s.Editing.Text)
			s.Editing.Text = string(r[:len(r)-1])
		}
	case FinishFilter:
		if s.Editing != nil {
			s.Applied = append(s.Applied, *s.Editing)
			s.Editing = nil
		}
	case CancelFilter:
		s.Editing = nil
	}
	return nil
}

// Resolve applies the filter collected for a Prompt effect.
func (s *State) Resolve(f summary.Filter) {
	if f != nil {
		s.Applied = append(s.Applied, f)
	}
}

// Filters returns the applied filters followed by the one under edit.
func (s *State) Filters() []summary.Filter {
	filters := make([]summary.Filter, 0, len(s.Applied)+1)
	filters = append(filters, s.Applied...)
	if s.Editing != nil {
		filters = append(filters, *s.Editing)
	}
	return filters
}

// Visible returns the events passing every filter, newest first.
func (s *State) Visible() []journal.Event {
	return summary.Select(s.events, s.Filters()...)
}

func (s *State) Totals() summary.Totals {
	return summary.Aggregate(s.ref, s.Visible())
}

// Categories lists active then archived categories, for the category prompt.
func (s *State) Categories() journal.Categories {
	return s.categories
}
