package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/seliret/hourglass/internal/store"
)

type teamModel struct {
	store  *store.Store
	width  int
	height int

	employees []store.Employee
	cursor    int
	selected  int64 // ID of the currently selected employee

	detail  *store.Employee
	reports []store.Employee
}

func newTeamModel(s *store.Store) teamModel {
	return teamModel{store: s}
}

func (t *teamModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type teamDataMsg struct {
	employees []store.Employee
}

type employeeDetailMsg struct {
	detail  *store.Employee
	reports []store.Employee
}

func (t teamModel) refresh() tea.Cmd {
	return func() tea.Msg {
		employees, _ := t.store.ListEmployees(false)
		return teamDataMsg{employees: employees}
	}
}

// loadDetail fetches the highlighted employee's record and, if anyone
// reports to them, their team.
func (t teamModel) loadDetail() tea.Cmd {
	if t.cursor >= len(t.employees) {
		return nil
	}
	id := t.employees[t.cursor].ID
	s := t.store

	return func() tea.Msg {
		detail, err := s.GetEmployee(id)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		reports, err := s.ListTeam(id)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return employeeDetailMsg{detail: detail, reports: reports}
	}
}

func (t teamModel) update(msg tea.Msg) (teamModel, tea.Cmd) {
	switch msg := msg.(type) {
	case teamDataMsg:
		t.employees = msg.employees
		if t.cursor >= len(t.employees) {
			t.cursor = max(0, len(t.employees)-1)
		}
		return t, t.loadDetail()

	case employeeDetailMsg:
		t.detail = msg.detail
		t.reports = msg.reports
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
				return t, t.loadDetail()
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.employees)-1 {
				t.cursor++
				return t, t.loadDetail()
			}
		case key.Matches(msg, keys.Enter):
			if t.cursor < len(t.employees) {
				e := t.employees[t.cursor]
				t.selected = e.ID
				return t, func() tea.Msg { return employeeSelectedMsg{employee: e} }
			}
		}
	}
	return t, nil
}

func (t teamModel) view() string {
	w := t.width - 4
	title := titleStyle.Render("Team")

	if len(t.employees) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No employees. Run `hourglass seed` to load demo data."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-8s %-22s %-16s", "", "Badge", "Name", "Department")))

	names := make(map[int64]string, len(t.employees))
	for _, e := range t.employees {
		names[e.ID] = e.Name
	}

	for i, e := range t.employees {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := " "
		if e.ID == t.selected {
			marker = successStyle.Render("●")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-8s %-22s %-16s", cursor, marker, e.Badge, e.Name, e.Department)))
	}

	rows = append(rows, "")
	rows = append(rows, t.renderDetail(names))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select employee for chart/timesheet"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t teamModel) renderDetail(names map[int64]string) string {
	if t.detail == nil {
		return ""
	}

	manager := "—"
	if t.detail.ManagerID != nil {
		if name, ok := names[*t.detail.ManagerID]; ok {
			manager = name
		}
	}

	lines := []string{
		titleStyle.Render("  " + t.detail.Name),
		mutedStyle.Render(fmt.Sprintf("  %s · %s · manager: %s", t.detail.Email, t.detail.Department, manager)),
	}
	if len(t.reports) > 0 {
		var reportNames []string
		for _, r := range t.reports {
			reportNames = append(reportNames, r.Name)
		}
		lines = append(lines, mutedStyle.Render("  reports: "+strings.Join(reportNames, ", ")))
	}
	return strings.Join(lines, "\n")
}
