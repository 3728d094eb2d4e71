package summary

import (
	"sort"
	"time"

	"github.com/rezmoss/taskit/internal/journal"
)

// Total is the summed duration for one category or tag.
type Total struct {
	Name     string
	Duration time.Duration
}

// Totals is the aggregate view of a set of events.
type Totals struct {
	All        time.Duration
	Categories []Total
	Tags       []Total
}

// Reference is the part of the store aggregation needs besides the events.
type Reference struct {
	Categories []string
	Tags       []string
	TagMap     map[string][]string
}

func ReferenceOf(data journal.SaveData) Reference {
	return Reference{
		Categories: data.Categories.Options,
		Tags:       data.Tags,
		TagMap:     data.TagMap,
	}
}

// Aggregate totals events per category and per tag.
//
// Every active category is listed, with zero if nothing matched. Categories
// that only appear on events (archived ones) are listed too, so the category
// totals always sum to All. A tag's total is the sum of the totals of the
// categories mapped to it.
func Aggregate(ref Reference, events []journal.Event) Totals {
	byCategory := make(map[string]time.Duration, len(ref.Categories))
	for _, name := range ref.Categories {
		byCategory[name] = 0
	}
	var all time.Duration
	for _, e := range events {
		d := e.Duration()
		byCategory[e.Category] += d
		all += d
	}

	byTag := make(map[string]time.Duration, len(ref.Tags))
	for _, tag := range ref.Tags {
		byTag[tag] = 0
	}
	for category, tags := range ref.TagMap {
		for _, tag := range tags {
			byTag[tag] += byCategory[category]
		}
	}

	return Totals{
		All:        all,
		Categories: sortedTotals(byCategory),
		Tags:       sortedTotals(byTag),
	}
}

func sortedTotals(m map[string]time.Duration) []Total {
	out := make([]Total, 0, len(m))
	for name, d := range m {
		out = append(out, Total{Name: name, Duration: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Day is a run of events sharing a date.
type Day struct {
	Date   journal.Date
	Total  time.Duration
	Events []journal.Event
}

// ByDay groups consecutive events with the same date, so sorted input gives
// one Day per date.
func ByDay(events []journal.Event) []Day {
	var days []Day
	for _, e := range events {
		if n := len(days); n > 0 && days[n-1].Date == e.Date {
			days[n-1].Events = append(days[n-1].Events, e)
			days[n-1].Total += e.Duration()
			continue
		}
		days = append(days, Day{Date: e.Date, Total: e.Duration(), Events: []journal.Event{e}})
	}
	return days
}
