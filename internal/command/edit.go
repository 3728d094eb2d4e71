package command

import (
	"fmt"
	"strings"

	"github.com/rezmoss/taskit/internal/journal"
	"github.com/rezmoss/taskit/internal/prompt"
)

// Amend lets the user pick an event, newest first, and edit it.
func Amend(data journal.SaveData, p Prompter) ([]journal.Delta, error) {
	if len(data.Events) == 0 {
		return nil, ErrNoEvents
	}
	options := make([]string, len(data.Events))
	for reverse := range data.Events {
		idx, _ := data.EventIndex(reverse)
		options[reverse] = fmt.Sprintf("(%02d) %s", reverse+1, data.Events[idx])
	}
	reverse, err := p.Select("Select event to modify:", options)
	if err != nil {
		return nil, err
	}
	return AmendAt(data, p, reverse)
}

// AmendAt edits the event reverse positions back from the most recent one;
// 0 is the latest event.
func AmendAt(data journal.SaveData, p Prompter, reverse int) ([]journal.Delta, error) {
	idx, ok := data.EventIndex(reverse)
	if !ok {
		if len(data.Events) == 0 {
			return nil, ErrNoEvents
		}
		return nil, fmt.Errorf("%w: %d", journal.ErrEventIndexOutOfRange, reverse)
	}
	original := data.Events[idx]

	var deltas []journal.Delta
	date, err := p.Date("Date:", original.Date)
	if err != nil {
		return nil, err
	}
	start, err := p.Time("Start time:", &original.StartTime)
	if err != nil {
		return nil, err
	}
	category, err := p.Text("Select a category:", prompt.TextOptions{
		Default: original.Category,
		Suggest: data.Categories.Suggest,
	})
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	description, err := askDescription(data, p, original.Description)
	if err != nil {
		return nil, err
	}
	end, err := p.Time("End time:", &original.EndTime)
	if err != nil {
		return nil, err
	}

	// archived categories stay valid for events recorded before archiving
	if !data.KnownCategory(category) {
		create, err := p.Confirm(fmt.Sprintf("Category %s does not currently exist. Create it?", category))
		if err != nil {
			return nil, err
		}
		if !create {
			return nil, ErrCategoryRejected
		}
		deltas = append(deltas, journal.AddCategory{Name: category})
	}
	tagDeltas, err := confirmNewTags(data, p, description)
	if err != nil {
		return nil, err
	}
	deltas = append(deltas, tagDeltas...)

	return append(deltas, journal.ReplaceEvent{
		Index:    idx,
		Original: &original,
		Event: journal.Event{
			StartTime:   start,
			EndTime:     end,
			Date:        date,
			Category:    category,
			Description: description,
		},
	}), nil
}

// Archive hides an active category from new events.
func Archive(data journal.SaveData, name string) ([]journal.Delta, error) {
	if !data.Categories.Contains(name) {
		return nil, fmt.Errorf("%w: %q is not an active category", ErrUnknownCategory, name)
	}
	return []journal.Delta{journal.ArchiveCategory{Name: name}}, nil
}

// Tag attaches a tag to an active category, creating the tag on request.
func Tag(data journal.SaveData, p Prompter) ([]journal.Delta, error) {
	category, err := p.Text("Select a category to tag:", prompt.TextOptions{
		Suggest: data.Categories.Suggest,
		Validate: func(s string) error {
			if !data.Categories.Contains(s) {
				return fmt.Errorf("%w: %q", ErrUnknownCategory, s)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	tag, err := p.Text("Select a tag:", prompt.TextOptions{
		Suggest: func(input string) []string {
			if strings.HasPrefix(input, "#") {
				return suggestTags(data.Tags, input)
			}
			return journal.Categories{Options: data.Tags}.Suggest(input)
		},
		Validate: func(s string) error {
			if strings.TrimPrefix(strings.TrimSpace(s), "#") == "" {
				return fmt.Errorf("tag cannot be empty")
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")

	var deltas []journal.Delta
	if !data.HasTag(tag) {
		create, err := p.Confirm(fmt.Sprintf("Tag #%s does not currently exist. Create it?", tag))
		if err != nil {
			return nil, err
		}
		if !create {
			return nil, fmt.Errorf("%w: #%s", ErrTagRejected, tag)
		}
		deltas = append(deltas, journal.AddTag{Name: tag})
	}
	return append(deltas, journal.TagCategory{Category: category, Tag: tag}), nil
}

// Note sets the free-text note of a day, starting from the existing one.
func Note(data journal.SaveData, p Prompter) ([]journal.Delta, error) {
	date, err := p.Date("Date:", journal.Today())
	if err != nil {
		return nil, err
	}
	note, err := p.Editor("Daily note:", data.DailyNotes[date])
	if err != nil {
		return nil, err
	}
	return []journal.Delta{journal.SetDailyNote{Date: date, Note: note}}, nil
}

// Rename renames an active or archived category across all events.
func Rename(data journal.SaveData, from, to string) ([]journal.Delta, error) {
	to = strings.TrimSpace(to)
	if !data.KnownCategory(from) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, from)
	}
	if to == "" {
		return nil, fmt.Errorf("new category name cannot be empty")
	}
	if from != to && data.KnownCategory(to) {
		return nil, fmt.Errorf("category %q already exists", to)
	}
	return []journal.Delta{journal.RenameCategory{Old: from, New: to}}, nil
}
