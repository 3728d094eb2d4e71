// Package summary filters events and totals their durations.
package summary

import (
	"fmt"
	"strings"

	"github.com/rezmoss/taskit/internal/journal"
)

// Filter is a predicate over events. Filters combine by conjunction.
type Filter interface {
	Match(e journal.Event) bool
	String() string
}

// AtOrAfter keeps events on or after Date.
type AtOrAfter struct{ Date journal.Date }

// AtOrBefore keeps events on or before Date.
type AtOrBefore struct{ Date journal.Date }

type CategoryIs struct{ Name string }

// DescriptionContains is a case-sensitive substring match.
type DescriptionContains struct{ Text string }

func (f AtOrAfter) Match(e journal.Event) bool  { return !e.Date.Before(f.Date) }
func (f AtOrBefore) Match(e journal.Event) bool { return !e.Date.After(f.Date) }
func (f CategoryIs) Match(e journal.Event) bool { return e.Category == f.Name }
func (f DescriptionContains) Match(e journal.Event) bool {
	return strings.Contains(e.Description, f.Text)
}

func (f AtOrAfter) String() string  { return fmt.Sprintf("At/After: %s", f.Date) }
func (f AtOrBefore) String() string { return fmt.Sprintf("At/Before: %s", f.Date) }
func (f CategoryIs) String() string { return fmt.Sprintf("Category: %s", f.Name) }
func (f DescriptionContains) String() string {
	return fmt.Sprintf("Description contains: %s", f.Text)
}

// MatchAll reports whether e passes every filter. Nil filters are skipped.
func MatchAll(e journal.Event, filters ...Filter) bool {
	for _, f := range filters {
		if f != nil && !f.Match(e) {
			return false
		}
	}
	return true
}

// Select returns the events passing every filter, in their original order.
func Select(events []journal.Event, filters ...Filter) []journal.Event {
	out := make([]journal.Event, 0, len(events))
	for _, e := range events {
		if MatchAll(e, filters...) {
			out = append(out, e)
		}
	}
	return out
}
