package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rezmoss/taskit/internal/journal"
	"github.com/rezmoss/taskit/internal/summary"
)

const headerCellWidth = 20

var (
	headerCellStyle = lipgloss.NewStyle().
			Width(headerCellWidth).
			Foreground(lipgloss.Color("#FAFAFA"))

	headerCursorStyle = headerCellStyle.
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("#7D56F4"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD"))

	dayStyle      = lipgloss.NewStyle().Bold(true)
	dayTotalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7DC6F"))
	noteStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A90E2")).
			Faint(true).
			Italic(true)
	spanStyle     = lipgloss.NewStyle().Bold(true)
	durationStyle = lipgloss.NewStyle().Faint(true)
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A90E2"))
	tagStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C678DD"))
	allStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func renderHeader(cursor Column) string {
	cells := make([]string, len(columnTitles))
	for i, title := range columnTitles {
		style := headerCellStyle
		if Column(i) == cursor {
			style = headerCursorStyle
		}
		cells[i] = style.Render(title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func filterLines(s *State) []string {
	lines := make([]string, 0, len(s.Applied)+1)
	for _, f := range s.Applied {
		lines = append(lines, f.String())
	}
	if s.Editing != nil {
		lines = append(lines, "(*) "+s.Editing.String())
	}
	if len(lines) == 0 {
		lines = append(lines, emptyStyle.Render("no filters"))
	}
	return lines
}

func eventLines(s *State, events []journal.Event) []string {
	var lines []string
	for _, day := range summary.ByDay(events) {
		lines = append(lines, fmt.Sprintf("------ %s (%s) ------",
			dayStyle.Render(day.Date.String()),
			dayTotalStyle.Render(journal.FormatDuration(day.Total))))
		if note, ok := s.notes[day.Date]; ok && note != "" {
			lines = append(lines, noteStyle.Render("["+note+"]"))
		}
		for _, e := range day.Events {
			lines = append(lines,
				spanStyle.Render(fmt.Sprintf("%s-%s", e.StartTime, e.EndTime))+" "+
					durationStyle.Render(journal.FormatDuration(e.Duration())),
				categoryStyle.Render(e.Category)+" - "+e.Description,
				"",
			)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, emptyStyle.Render("no matching events"))
	}
	return lines
}

func totalLines(t summary.Totals) []string {
	lines := []string{
		titleStyle.Render("Aggregated durations"),
		allStyle.Render("all") + ": " + journal.FormatDuration(t.All),
	}
	for _, c := range t.Categories {
		lines = append(lines, categoryStyle.Render(c.Name)+": "+journal.FormatDuration(c.Duration))
	}
	lines = append(lines, "")
	for _, tag := range t.Tags {
		lines = append(lines, tagStyle.Render("#"+tag.Name)+": "+journal.FormatDuration(tag.Duration))
	}
	return lines
}

// panel wraps lines to width, skips the first offset wrapped lines and
// keeps at most height of the rest inside a border.
func panel(lines []string, width, height, offset int) string {
	inner := max(width-2, 1)
	rows := strings.Split(lipgloss.NewStyle().Width(inner).Render(strings.Join(lines, "\n")), "\n")
	if offset >= len(rows) {
		rows = nil
	} else {
		rows = rows[offset:]
	}
	if height > 0 && len(rows) > height {
		rows = rows[:height]
	}
	return panelStyle.
		Width(inner).
		Height(max(height, 1)).
		Render(strings.Join(rows, "\n"))
}

// render lays out the header, the three panels and the footer for a
// terminal of the given size.
func render(s *State, width, height int, footer string) string {
	visible := s.Visible()
	panelWidth := width / 3
	// header, footer and the panel borders
	panelHeight := max(height-4, 1)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(filterLines(s), panelWidth, panelHeight, 0),
		panel(eventLines(s, visible), panelWidth, panelHeight, s.Scroll),
		panel(totalLines(summary.Aggregate(s.ref, visible)), width-2*panelWidth, panelHeight, 0),
	)
	return lipgloss.JoinVertical(lipgloss.Left, renderHeader(s.Column), body, footer)
}
