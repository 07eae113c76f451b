package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/seliret/hourglass/internal/store"
	"github.com/seliret/hourglass/internal/weekly"
)

type timesheetModel struct {
	store  *store.Store
	width  int
	height int

	employeeID   int64
	employeeName string
	offset       int // weeks back from the current week (0 = current)

	entries  []store.TimeEntry
	totals   []store.ProjectTotal
	projects map[int64]store.Project
}

func newTimesheetModel(s *store.Store) timesheetModel {
	return timesheetModel{store: s}
}

func (t *timesheetModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type timesheetDataMsg struct {
	entries  []store.TimeEntry
	totals   []store.ProjectTotal
	projects map[int64]store.Project
}

func (t timesheetModel) setEmployee(e store.Employee) (timesheetModel, tea.Cmd) {
	t.employeeID = e.ID
	t.employeeName = e.Name
	t.offset = 0
	return t, t.refresh()
}

func (t timesheetModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	start := weekly.StartOfWeek(now, time.Sunday).AddDate(0, 0, -7*t.offset)
	return start, start.AddDate(0, 0, 7)
}

func (t timesheetModel) refresh() tea.Cmd {
	if t.employeeID == 0 {
		return nil
	}
	id := t.employeeID
	from, to := t.dateRange()
	s := t.store

	return func() tea.Msg {
		entries, err := s.ListEntries(id, from, to)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		totals, err := s.GetProjectTotals(id, from, to)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}

		projects := make(map[int64]store.Project)
		plist, _ := s.ListProjects(true)
		for i := range plist {
			projects[plist[i].ID] = plist[i]
		}

		return timesheetDataMsg{entries: entries, totals: totals, projects: projects}
	}
}

func (t timesheetModel) update(msg tea.Msg) (timesheetModel, tea.Cmd) {
	switch msg := msg.(type) {
	case timesheetDataMsg:
		t.entries = msg.entries
		t.totals = msg.totals
		t.projects = msg.projects
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			t.offset++
			return t, t.refresh()
		case key.Matches(msg, keys.Right):
			if t.offset > 0 {
				t.offset--
			}
			return t, t.refresh()
		}
	}
	return t, nil
}

func (t timesheetModel) view() string {
	w := t.width - 4

	if t.employeeID == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Timesheet"),
			"",
			mutedStyle.Render("No employee selected. Press 3 to pick one from the Team view."),
		)
		return panelStyle.Width(w).Render(content)
	}

	from, to := t.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Timesheet"), "  ", highlightStyle.Render(t.employeeName), "  ", dateLabel,
	)

	entryTable := t.renderEntries(w)
	totalsTable := t.renderTotals()
	nav := mutedStyle.Render("  ←/→: older/newer week  e: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", entryTable, "", totalsTable, "", nav),
	)
}

func (t timesheetModel) renderEntries(w int) string {
	if len(t.entries) == 0 {
		return mutedStyle.Render("  No entries this week")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-20s %-10s %8s  %s", "Day", "Project", "Kind", "Hours", "Note")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 64))))

	for _, e := range t.entries {
		name, dot := "—", mutedStyle.Render("·")
		if e.ProjectID != nil {
			if p, ok := t.projects[*e.ProjectID]; ok {
				name = p.Name
				dot = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
			}
		}
		kind := e.Kind
		if kind == store.KindAbsence {
			kind = errorStyle.Render(kind)
		}
		rows = append(rows, fmt.Sprintf("  %-12s %s %-18s %-10s %8s  %s",
			e.Day.Format("Mon Jan 02"), dot, name, kind, formatHours(e.Hours), e.Note,
		))
	}

	return strings.Join(rows, "\n")
}

func (t timesheetModel) renderTotals() string {
	if len(t.totals) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, titleStyle.Render("  By project"))
	for _, pt := range t.totals {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(pt.ProjectColor)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-20s %8s  (%d entries)",
			dot, pt.ProjectName, formatHours(pt.TotalHours), pt.EntryCount,
		))
	}
	return strings.Join(rows, "\n")
}
