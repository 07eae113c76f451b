package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/seliret/hourglass/internal/export"
	"github.com/seliret/hourglass/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	selected *store.Employee

	chart     chartModel
	timesheet timesheetModel
	team      teamModel
	settings  settingsModel

	help   help.Model
	status string

	defaultBadge string
}

func NewApp(s *store.Store, weeksWindow int, defaultBadge string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:        s,
		activeView:   viewChart,
		chart:        newChartModel(s, weeksWindow),
		timesheet:    newTimesheetModel(s),
		team:         newTeamModel(s),
		settings:     newSettingsModel(s),
		help:         h,
		defaultBadge: defaultBadge,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.team.refresh(),
		a.resolveDefaultEmployee(),
	)
}

// resolveDefaultEmployee selects the configured employee, or the first one
// on record, so the chart has something to show on startup.
func (a App) resolveDefaultEmployee() tea.Cmd {
	badge := a.defaultBadge
	s := a.store
	return func() tea.Msg {
		if badge != "" {
			if e, err := s.GetEmployeeByBadge(badge); err == nil {
				return employeeSelectedMsg{employee: *e}
			}
		}
		employees, err := s.ListEmployees(false)
		if err != nil || len(employees) == 0 {
			return nil
		}
		return employeeSelectedMsg{employee: employees[0]}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.chart.setSize(a.width, contentHeight)
		a.timesheet.setSize(a.width, contentHeight)
		a.team.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			if a.selected == nil {
				a.status = "Select an employee before exporting"
				return a, nil
			}
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewChart
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTimesheet
			return a, a.timesheet.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewTeam
			return a, a.team.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case employeeSelectedMsg:
		a.selected = &msg.employee
		a.status = "Selected " + msg.employee.Name
		var chartCmd, tsCmd tea.Cmd
		a.chart, chartCmd = a.chart.setEmployee(msg.employee)
		a.timesheet, tsCmd = a.timesheet.setEmployee(msg.employee)
		return a, tea.Batch(chartCmd, tsCmd)

	case settingsSavedMsg:
		a.status = "Settings saved"
		var cmd tea.Cmd
		a.chart, cmd = a.chart.beginFetch()
		return a, cmd

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewChart:
		a.chart, cmd = a.chart.update(msg)
	case viewTimesheet:
		a.timesheet, cmd = a.timesheet.update(msg)
	case viewTeam:
		a.team, cmd = a.team.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	if a.activeView == viewSettings {
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTimesheet:
		return a.timesheet.refresh()
	case viewTeam:
		return a.team.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewChart:
		content = a.chart.view()
	case viewTimesheet:
		content = a.timesheet.view()
	case viewTeam:
		content = a.team.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("hourglass")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Selected employee indicator in footer
	selectedInfo := ""
	if a.selected != nil {
		selectedInfo = highlightStyle.Render(" ● " + a.selected.Name)
	}

	left := footerStyle.Render(helpView)
	right := selectedInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	employee := *a.selected
	s := a.store

	return func() tea.Msg {
		from := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Now().UTC().AddDate(0, 0, 1)
		entries, err := s.ListEntries(employee.ID, from, to)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		// Build project lookup
		projects := make(map[int64]*store.Project)
		plist, _ := s.ListProjects(true)
		for i := range plist {
			projects[plist[i].ID] = &plist[i]
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("hourglass-%s-%s.csv", employee.Badge, dateStr))
			if err := export.ToCSV(employee, entries, projects, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("hourglass-%s-%s.json", employee.Badge, dateStr))
			if err := export.ToJSON(employee, entries, projects, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
