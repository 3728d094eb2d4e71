package journal

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrEventIndexOutOfRange = errors.New("event index out of range")
	ErrMissingDate          = errors.New("no valid date")
	ErrUnknownCategory      = errors.New("unknown category")
)

// Delta is one mutation intent. Intents carry no reference to the snapshot
// they were built from, so they can be applied to a freshly loaded store.
type Delta interface {
	apply(s *SaveData) error
	fmt.Stringer
}

type AddCategory struct{ Name string }

type ArchiveCategory struct{ Name string }

// RenameCategory renames a category everywhere it is referenced.
type RenameCategory struct{ Old, New string }

type AddEvent struct{ Event Event }

// ReplaceEvent overwrites Events[Index]. Original, when set, is the event the
// index pointed at when the intent was built; the store uses it to re-resolve
// the index before applying.
type ReplaceEvent struct {
	Index    int
	Original *Event
	Event    Event
}

type AddTag struct{ Name string }

type TagCategory struct{ Category, Tag string }

// SetDailyNote replaces the note for Date.
type SetDailyNote struct {
	Date Date
	Note string
}

// Apply folds deltas onto s in order and stops at the first failure.
func Apply(s *SaveData, deltas ...Delta) error {
	s.normalize()
	for i, d := range deltas {
		if err := d.apply(s); err != nil {
			return fmt.Errorf("delta %d (%s): %w", i, d, err)
		}
	}
	return nil
}

func (d AddCategory) apply(s *SaveData) error {
	s.Categories.insert(d.Name)
	return nil
}

// The archived list gains the name even if it was not active.
func (d ArchiveCategory) apply(s *SaveData) error {
	s.Categories.remove(d.Name)
	s.ArchivedCategories.Options = append(s.ArchivedCategories.Options, d.Name)
	return nil
}

func (d RenameCategory) apply(s *SaveData) error {
	if d.Old == d.New {
		return nil
	}
	// renaming onto a known name merges into it wherever it already lives
	if s.KnownCategory(d.New) {
		s.Categories.remove(d.Old)
		s.ArchivedCategories.remove(d.Old)
	} else {
		renameIn(&s.Categories, d.Old, d.New)
		renameIn(&s.ArchivedCategories, d.Old, d.New)
	}
	for i := range s.Events {
		if s.Events[i].Category == d.Old {
			s.Events[i].Category = d.New
		}
	}
	if tags, ok := s.TagMap[d.Old]; ok {
		delete(s.TagMap, d.Old)
		merged := s.TagMap[d.New]
		for _, tag := range tags {
			if !slices.Contains(merged, tag) {
				merged = append(merged, tag)
			}
		}
		s.TagMap[d.New] = merged
	}
	return nil
}

func renameIn(c *Categories, from, to string) {
	for i, name := range c.Options {
		if name == from {
			c.Options[i] = to
		}
	}
}

func (d AddEvent) apply(s *SaveData) error {
	if !d.Event.Date.Valid() {
		return fmt.Errorf("event: %w", ErrMissingDate)
	}
	s.Events = append(s.Events, d.Event)
	return nil
}

func (d ReplaceEvent) apply(s *SaveData) error {
	if d.Index < 0 || d.Index >= len(s.Events) {
		return fmt.Errorf("%w: %d of %d", ErrEventIndexOutOfRange, d.Index, len(s.Events))
	}
	if !d.Event.Date.Valid() {
		return fmt.Errorf("event: %w", ErrMissingDate)
	}
	s.Events[d.Index] = d.Event
	return nil
}

func (d AddTag) apply(s *SaveData) error {
	if !slices.Contains(s.Tags, d.Name) {
		s.Tags = append(s.Tags, d.Name)
	}
	return nil
}

func (d TagCategory) apply(s *SaveData) error {
	tags := s.TagMap[d.Category]
	if !slices.Contains(tags, d.Tag) {
		s.TagMap[d.Category] = append(tags, d.Tag)
	}
	return nil
}

func (d SetDailyNote) apply(s *SaveData) error {
	if !d.Date.Valid() {
		return fmt.Errorf("daily note: %w", ErrMissingDate)
	}
	s.DailyNotes[d.Date] = d.Note
	return nil
}

func (d AddCategory) String() string     { return fmt.Sprintf("add category %q", d.Name) }
func (d ArchiveCategory) String() string { return fmt.Sprintf("archive category %q", d.Name) }
func (d RenameCategory) String() string {
	return fmt.Sprintf("rename category %q to %q", d.Old, d.New)
}
func (d AddEvent) String() string { return fmt.Sprintf("add event %s", d.Event) }
func (d ReplaceEvent) String() string {
	return fmt.Sprintf("replace event %d with %s", d.Index, d.Event)
}
func (d AddTag) String() string { return fmt.Sprintf("add tag %q", d.Name) }
func (d TagCategory) String() string {
	return fmt.Sprintf("tag category %q with %q", d.Category, d.Tag)
}
func (d SetDailyNote) String() string { return fmt.Sprintf("set note for %s", d.Date) }
