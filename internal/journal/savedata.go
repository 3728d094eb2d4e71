package journal

import (
	"slices"
	"strings"
)

// Categories is a list of category names, stored as {"options": [...]}.
type Categories struct {
	Options []string `json:"options"`
}

func (c Categories) Contains(name string) bool {
	return slices.Contains(c.Options, name)
}

// Suggest returns the names starting with prefix, in stored order.
func (c Categories) Suggest(prefix string) []string {
	var out []string
	for _, name := range c.Options {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

func (c *Categories) insert(name string) bool {
	if c.Contains(name) {
		return false
	}
	c.Options = append(c.Options, name)
	return true
}

func (c *Categories) remove(name string) {
	c.Options = slices.DeleteFunc(c.Options, func(s string) bool { return s == name })
}

// SaveData is the current revision of the store.
type SaveData = SaveDataV4

// NewSaveData returns an empty store with every collection allocated.
func NewSaveData() SaveData {
	return SaveData{
		Categories:         Categories{Options: []string{}},
		ArchivedCategories: Categories{Options: []string{}},
		Tags:               []string{},
		TagMap:             map[string][]string{},
		Events:             []Event{},
		DailyNotes:         map[Date]string{},
	}
}

// Clone copies every collection so the result can be mutated independently.
func (s SaveDataV4) Clone() SaveData {
	out := SaveData{
		Categories:         Categories{Options: slices.Clone(s.Categories.Options)},
		ArchivedCategories: Categories{Options: slices.Clone(s.ArchivedCategories.Options)},
		Tags:               slices.Clone(s.Tags),
		TagMap:             make(map[string][]string, len(s.TagMap)),
		Events:             slices.Clone(s.Events),
		DailyNotes:         make(map[Date]string, len(s.DailyNotes)),
	}
	for k, v := range s.TagMap {
		out.TagMap[k] = slices.Clone(v)
	}
	for k, v := range s.DailyNotes {
		out.DailyNotes[k] = v
	}
	out.normalize()
	return out
}

// KnownCategory reports whether name is active or archived.
func (s SaveDataV4) KnownCategory(name string) bool {
	return s.Categories.Contains(name) || s.ArchivedCategories.Contains(name)
}

// AllCategories lists active then archived names.
func (s SaveDataV4) AllCategories() Categories {
	all := slices.Concat(s.Categories.Options, s.ArchivedCategories.Options)
	return Categories{Options: all}
}

func (s SaveDataV4) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// EventIndex converts a position counted from the most recent event into an
// index into Events.
func (s SaveDataV4) EventIndex(reverse int) (int, bool) {
	if reverse < 0 || reverse >= len(s.Events) {
		return 0, false
	}
	return len(s.Events) - 1 - reverse, true
}

// normalize replaces nil collections so the encoded form never holds null.
func (s *SaveDataV4) normalize() {
	if s.Categories.Options == nil {
		s.Categories.Options = []string{}
	}
	if s.ArchivedCategories.Options == nil {
		s.ArchivedCategories.Options = []string{}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.TagMap == nil {
		s.TagMap = map[string][]string{}
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	if s.DailyNotes == nil {
		s.DailyNotes = map[Date]string{}
	}
}
