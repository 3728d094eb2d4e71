package journal

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Event is one timed activity. EndTime before StartTime means the activity
// ran past midnight into the next day.
type Event struct {
	StartTime   SimpleTime `json:"start_time"`
	EndTime     SimpleTime `json:"end_time"`
	Date        Date       `json:"date"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
}

// Files written before descriptions were renamed store them as "comments".
type eventJSON struct {
	StartTime   SimpleTime `json:"start_time"`
	EndTime     SimpleTime `json:"end_time"`
	Date        Date       `json:"date"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	Comments    *string    `json:"comments"`
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event{
		StartTime: raw.StartTime,
		EndTime:   raw.EndTime,
		Date:      raw.Date,
		Category:  raw.Category,
	}
	switch {
	case raw.Description != nil:
		e.Description = *raw.Description
	case raw.Comments != nil:
		e.Description = *raw.Comments
	}
	return nil
}

func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Tags returns the names of the #tag markers in the description, in order.
func (e Event) Tags() []string {
	return DescriptionTags(e.Description)
}

func (e Event) Equal(other Event) bool {
	return e == other
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s-%s [%s] %s", e.Date, e.StartTime, e.EndTime, e.Category, e.Description)
}

// DescriptionTags extracts space separated words starting with '#'.
func DescriptionTags(description string) []string {
	var tags []string
	for _, word := range strings.Split(description, " ") {
		if len(word) > 1 && word[0] == '#' {
			tags = append(tags, word[1:])
		}
	}
	return tags
}

// SortNewestFirst orders events by date, then start time, latest first.
// Ties keep their recorded order.
func SortNewestFirst(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmpInt(b.StartTime.minutes(), a.StartTime.minutes())
	})
}
