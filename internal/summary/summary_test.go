package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezmoss/taskit/internal/journal"
)

func ev(day int, start, end string, category, description string) journal.Event {
	s, err := journal.ParseSimpleTime(start)
	if err != nil {
		panic(err)
	}
	e, err := journal.ParseSimpleTime(end)
	if err != nil {
		panic(err)
	}
	return journal.Event{
		StartTime:   s,
		EndTime:     e,
		Date:        journal.NewDate(2024, time.January, day),
		Category:    category,
		Description: description,
	}
}

func sample() []journal.Event {
	return []journal.Event{
		ev(1, "09:00", "17:30", "Work", "standup and #review"),
		ev(2, "07:00", "08:00", "Gym", "legs"),
		ev(3, "23:00", "01:00", "Work", "incident #oncall"),
		ev(4, "10:00", "11:00", "Reading", "Review of papers"),
	}
}

func date(day int) journal.Date { return journal.NewDate(2024, time.January, day) }

func TestFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		want    []string
	}{
		{"no filters", nil, []string{"standup and #review", "legs", "incident #oncall", "Review of papers"}},
		{"at or after is inclusive", []Filter{AtOrAfter{date(3)}}, []string{"incident #oncall", "Review of papers"}},
		{"at or before is inclusive", []Filter{AtOrBefore{date(2)}}, []string{"standup and #review", "legs"}},
		{"category", []Filter{CategoryIs{"Work"}}, []string{"standup and #review", "incident #oncall"}},
		{"description is case sensitive", []Filter{DescriptionContains{"review"}}, []string{"standup and #review"}},
		{"conjunction", []Filter{CategoryIs{"Work"}, AtOrAfter{date(2)}}, []string{"incident #oncall"}},
		{"nil filter ignored", []Filter{nil, CategoryIs{"Gym"}}, []string{"legs"}},
		{"empty date range", []Filter{AtOrAfter{date(3)}, AtOrBefore{date(2)}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(sample(), tt.filters...)
			descriptions := make([]string, 0, len(got))
			for _, e := range got {
				descriptions = append(descriptions, e.Description)
			}
			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func TestFilterOrderDoesNotMatter(t *testing.T) {
	f1 := CategoryIs{"Work"}
	f2 := DescriptionContains{"#"}
	f3 := AtOrBefore{date(3)}
	assert.Equal(t, Select(sample(), f1, f2, f3), Select(sample(), f3, f2, f1))
	assert.Equal(t, Select(sample(), f1, f2), Select(sample(), f2, f1))
}

func TestFilterStrings(t *testing.T) {
	assert.Equal(t, "At/After: 2024-01-03", AtOrAfter{date(3)}.String())
	assert.Equal(t, "At/Before: 2024-01-03", AtOrBefore{date(3)}.String())
	assert.Equal(t, "Category: Work", CategoryIs{"Work"}.String())
	assert.Equal(t, "Description contains: x", DescriptionContains{"x"}.String())
}

func TestAggregate(t *testing.T) {
	ref := Reference{
		Categories: []string{"Work", "Gym", "Idle"},
		Tags:       []string{"paid", "health", "unused"},
		TagMap: map[string][]string{
			"Work": {"paid"},
			"Gym":  {"health"},
			"Idle": {"health"},
		},
	}

	totals := Aggregate(ref, sample())

	assert.Equal(t, 8*time.Hour+30*time.Minute+time.Hour+2*time.Hour+time.Hour, totals.All)
	assert.Equal(t, []Total{
		{"Gym", time.Hour},
		{"Idle", 0},
		{"Reading", time.Hour},
		{"Work", 10*time.Hour + 30*time.Minute},
	}, totals.Categories)
	assert.Equal(t, []Total{
		{"health", time.Hour},
		{"paid", 10*time.Hour + 30*time.Minute},
		{"unused", 0},
	}, totals.Tags)

	var sum time.Duration
	for _, c := range totals.Categories {
		sum += c.Duration
	}
	assert.Equal(t, totals.All, sum)
}

func TestAggregateTagsFollowCategoryTotals(t *testing.T) {
	ref := Reference{
		Categories: []string{"Work", "Gym"},
		Tags:       []string{"all"},
		TagMap:     map[string][]string{"Work": {"all"}, "Gym": {"all"}},
	}
	filtered := Select(sample(), AtOrAfter{date(2)})
	totals := Aggregate(ref, filtered)

	byName := map[string]time.Duration{}
	for _, c := range totals.Categories {
		byName[c.Name] = c.Duration
	}
	require.Len(t, totals.Tags, 1)
	assert.Equal(t, byName["Work"]+byName["Gym"], totals.Tags[0].Duration)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(Reference{Categories: []string{"Work"}}, nil)
	assert.Zero(t, totals.All)
	assert.Equal(t, []Total{{"Work", 0}}, totals.Categories)
	assert.Empty(t, totals.Tags)
}

func TestArchivedCategoryStillCounts(t *testing.T) {
	data := journal.NewSaveData()
	work := ev(1, "09:00", "17:30", "Work", "")
	require.NoError(t, journal.Apply(&data,
		journal.AddCategory{Name: "Work"},
		journal.AddEvent{Event: work},
		journal.ArchiveCategory{Name: "Work"},
	))

	assert.Empty(t, data.Categories.Suggest("W"))
	assert.Equal(t, "Work", data.Events[0].Category)

	totals := Aggregate(ReferenceOf(data), data.Events)
	assert.Equal(t, []Total{{"Work", 8*time.Hour + 30*time.Minute}}, totals.Categories)
	assert.Equal(t, "8h30m", journal.FormatDuration(totals.Categories[0].Duration))
}

func TestByDay(t *testing.T) {
	events := []journal.Event{
		ev(2, "07:00", "08:00", "Gym", ""),
		ev(2, "09:00", "10:30", "Work", ""),
		ev(1, "09:00", "10:00", "Work", ""),
	}
	days := ByDay(events)
	require.Len(t, days, 2)
	assert.Equal(t, date(2), days[0].Date)
	assert.Equal(t, 2*time.Hour+30*time.Minute, days[0].Total)
	assert.Len(t, days[0].Events, 2)
	assert.Equal(t, time.Hour, days[1].Total)
}
