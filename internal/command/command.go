// Package command holds the interactive flows behind each CLI subcommand.
// A flow reads the loaded store, asks the user for input and returns the
// deltas to commit. Flows never write to storage.
package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rezmoss/taskit/internal/journal"
	"github.com/rezmoss/taskit/internal/prompt"
)

var (
	ErrUnknownCategory  = journal.ErrUnknownCategory
	ErrCategoryRejected = errors.New("event needs an existing category")
	ErrTagRejected      = errors.New("description uses a tag that was not created")
	ErrNoEvents         = errors.New("no events recorded yet")
)

// maxCategoryAttempts bounds how often creating an unknown category can be
// declined before the command gives up.
const maxCategoryAttempts = 3

// Prompter asks the user for values. prompt.Terminal implements it.
type Prompter interface {
	Text(label string, o prompt.TextOptions) (string, error)
	Date(label string, def journal.Date) (journal.Date, error)
	Time(label string, def *journal.SimpleTime) (journal.SimpleTime, error)
	Confirm(label string) (bool, error)
	Select(label string, options []string) (int, error)
	Editor(label, initial string) (string, error)
	Stopwatch(start time.Time) (time.Time, error)
}

// Record asks for every field of a new event.
func Record(data journal.SaveData, p Prompter) ([]journal.Delta, error) {
	var deltas []journal.Delta
	date, err := p.Date("Date:", journal.Today())
	if err != nil {
		return nil, err
	}
	start, err := p.Time("Start time:", nil)
	if err != nil {
		return nil, err
	}
	category, created, err := chooseCategory(data, p, "")
	if err != nil {
		return nil, err
	}
	deltas = append(deltas, created...)
	description, err := askDescription(data, p, "")
	if err != nil {
		return nil, err
	}
	end, err := p.Time("End time:", nil)
	if err != nil {
		return nil, err
	}
	tagDeltas, err := confirmNewTags(data, p, description)
	if err != nil {
		return nil, err
	}
	deltas = append(deltas, tagDeltas...)

	return append(deltas, journal.AddEvent{Event: journal.Event{
		StartTime:   start,
		EndTime:     end,
		Date:        date,
		Category:    category,
		Description: description,
	}}), nil
}

// Stopwatch times an activity live and records it once stopped. Discarding
// the stopwatch yields no deltas.
func Stopwatch(data journal.SaveData, p Prompter, now func() time.Time) ([]journal.Delta, error) {
	began := now()
	stopped, err := p.Stopwatch(began)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return nil, nil
		}
		return nil, err
	}

	var deltas []journal.Delta
	category, created, err := chooseCategory(data, p, "")
	if err != nil {
		return nil, err
	}
	deltas = append(deltas, created...)
	description, err := askDescription(data, p, "")
	if err != nil {
		return nil, err
	}
	tagDeltas, err := confirmNewTags(data, p, description)
	if err != nil {
		return nil, err
	}
	deltas = append(deltas, tagDeltas...)

	return append(deltas, journal.AddEvent{Event: journal.Event{
		StartTime:   journal.SimpleTimeOf(began),
		EndTime:     journal.SimpleTimeOf(stopped),
		Date:        journal.DateOf(began),
		Category:    category,
		Description: description,
	}}), nil
}

// chooseCategory asks for a category until an active one is picked or the
// user agrees to create a new one. Empty answers re-ask. It gives up after
// maxCategoryAttempts declined creations.
func chooseCategory(data journal.SaveData, p Prompter, def string) (string, []journal.Delta, error) {
	opts := prompt.TextOptions{Default: def, Suggest: data.Categories.Suggest}
	for declined := 0; declined < maxCategoryAttempts; {
		category, err := p.Text("Select a category:", opts)
		if err != nil {
			return "", nil, err
		}
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		if data.Categories.Contains(category) {
			return category, nil, nil
		}
		create, err := p.Confirm(fmt.Sprintf("Category %s does not currently exist. Create it?", category))
		if err != nil {
			return "", nil, err
		}
		if create {
			return category, []journal.Delta{journal.AddCategory{Name: category}}, nil
		}
		declined++
	}
	return "", nil, ErrCategoryRejected
}

func askDescription(data journal.SaveData, p Prompter, def string) (string, error) {
	return p.Text("Notes:", prompt.TextOptions{
		Default: def,
		Suggest: func(input string) []string { return suggestTags(data.Tags, input) },
	})
}

// suggestTags completes a "#partial" last word against the tag registry.
// Each suggestion is the whole input with the last word completed.
func suggestTags(tags []string, input string) []string {
	idx := strings.LastIndexByte(input, ' ')
	last := input[idx+1:]
	if !strings.HasPrefix(last, "#") {
		return nil
	}
	partial := last[1:]
	var out []string
	for _, tag := range tags {
		if strings.HasPrefix(tag, partial) {
			out = append(out, input[:idx+1]+"#"+tag)
		}
	}
	return out
}

// confirmNewTags asks to create every tag in the description that is not
// registered yet. Declining any of them aborts.
func confirmNewTags(data journal.SaveData, p Prompter, description string) ([]journal.Delta, error) {
	var deltas []journal.Delta
	seen := map[string]bool{}
	for _, tag := range journal.DescriptionTags(description) {
		if data.HasTag(tag) || seen[tag] {
			continue
		}
		seen[tag] = true
		create, err := p.Confirm(fmt.Sprintf("Tag #%s does not currently exist. Create it?", tag))
		if err != nil {
			return nil, err
		}
		if !create {
			return nil, fmt.Errorf("%w: #%s", ErrTagRejected, tag)
		}
		deltas = append(deltas, journal.AddTag{Name: tag})
	}
	return deltas, nil
}
