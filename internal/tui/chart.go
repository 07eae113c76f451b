package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/seliret/hourglass/internal/store"
	"github.com/seliret/hourglass/internal/weekly"
)

type chartModel struct {
	store  *store.Store
	width  int
	height int

	employeeID   int64
	employeeName string
	weeksWindow  int

	weeks     []weekly.WeekBucket
	weekIdx   int
	viewState weekly.ViewState
	target    float64

	// fetchGen guards against a slow stale fetch overwriting a newer one:
	// results whose generation no longer matches are dropped.
	fetchGen int
	loaded   bool

	chart barchart.Model
}

func newChartModel(s *store.Store, weeksWindow int) chartModel {
	if weeksWindow <= 0 {
		weeksWindow = 8
	}
	return chartModel{
		store:       s,
		weeksWindow: weeksWindow,
		viewState:   weekly.NewViewState(),
		target:      weekly.DefaultTarget,
		chart:       barchart.New(60, 12),
	}
}

func (c *chartModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type weeklyDataMsg struct {
	gen    int
	weeks  []weekly.WeekBucket
	target float64
}

// setEmployee switches the chart to a new employee: week index back to the
// most recent week, full refetch.
func (c chartModel) setEmployee(e store.Employee) (chartModel, tea.Cmd) {
	c.employeeID = e.ID
	c.employeeName = e.Name
	c.weekIdx = 0
	return c.beginFetch()
}

func (c chartModel) beginFetch() (chartModel, tea.Cmd) {
	c.fetchGen++
	gen := c.fetchGen
	id := c.employeeID
	window := c.weeksWindow
	s := c.store
	weekStart := c.weekStart()

	return c, func() tea.Msg {
		if id == 0 {
			return weeklyDataMsg{gen: gen}
		}
		target := weekly.DefaultTarget
		if v, err := s.GetSetting("target_hours"); err == nil {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				target = parsed
			}
		}

		now := time.Now().UTC()
		to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		from := weekly.StartOfWeek(now, weekStart).AddDate(0, 0, -7*(window-1))

		summaries, err := s.GetDailySummary(id, from, to)
		if err != nil {
			// Leave the last rendered chart in place.
			return statusMsg{text: fmt.Sprintf("Fetch failed: %v", err), isError: true}
		}

		records := weekly.FromSummaries(summaries)
		return weeklyDataMsg{
			gen:    gen,
			weeks:  weekly.Bucketize(records, weekStart),
			target: target,
		}
	}
}

func (c chartModel) weekStart() time.Weekday {
	if v, err := c.store.GetSetting("week_start"); err == nil && strings.EqualFold(v, "monday") {
		return time.Monday
	}
	return time.Sunday
}

func (c chartModel) update(msg tea.Msg) (chartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case weeklyDataMsg:
		if msg.gen != c.fetchGen {
			return c, nil // stale response, a newer fetch is in flight
		}
		c.weeks = msg.weeks
		if msg.target > 0 {
			c.target = msg.target
		}
		c.weekIdx = 0
		c.loaded = true
		c.buildChart()
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.weekIdx = weekly.Cycle(c.weekIdx, 1, len(c.weeks))
			c.buildChart()
			return c, nil
		case key.Matches(msg, keys.Right):
			c.weekIdx = weekly.Cycle(c.weekIdx, -1, len(c.weeks))
			c.buildChart()
			return c, nil
		case key.Matches(msg, keys.Duration):
			return c.toggle(weekly.GroupDuration)
		case key.Matches(msg, keys.Attendance):
			return c.toggle(weekly.GroupAttendance)
		case key.Matches(msg, keys.Projects):
			return c.toggle(weekly.GroupProjects)
		case key.Matches(msg, keys.Target):
			return c.toggle(weekly.GroupTarget)
		}
	}
	return c, nil
}

func (c chartModel) toggle(g weekly.LegendGroup) (chartModel, tea.Cmd) {
	c.viewState = c.viewState.Toggle(g)
	c.buildChart()
	return c, nil
}

func (c chartModel) currentWeek() (weekly.WeekBucket, bool) {
	if len(c.weeks) == 0 || c.weekIdx >= len(c.weeks) {
		return weekly.WeekBucket{}, false
	}
	return c.weeks[c.weekIdx], true
}

// buildChart replaces the chart's data wholesale: labels, all series, and
// the title are rebuilt from the currently selected week.
func (c *chartModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if c.height > 30 {
		chartHeight = 16
	}

	c.chart = barchart.New(chartWidth, chartHeight)

	week, ok := c.currentWeek()
	if !ok {
		return
	}
	set := weekly.BuildSeries(week, c.target)
	if set.Empty() {
		return
	}

	var bars []barchart.BarData
	for i, label := range set.Labels {
		var values []barchart.BarValue
		switch c.viewState.Mode {
		case weekly.ViewDuration:
			values = append(values, barchart.BarValue{
				Name:  "Duration",
				Value: set.Duration[i],
				Style: lipgloss.NewStyle().Foreground(colorDuration),
			})
		case weekly.ViewAttendance:
			values = append(values,
				barchart.BarValue{
					Name:  "Attendance",
					Value: set.Attendance[i],
					Style: lipgloss.NewStyle().Foreground(colorAttendance),
				},
				barchart.BarValue{
					Name:  "Absence",
					Value: set.Absence[i],
					Style: lipgloss.NewStyle().Foreground(colorAbsence),
				},
			)
		case weekly.ViewProjects:
			for pi, name := range set.ProjectNames {
				values = append(values, barchart.BarValue{
					Name:  name,
					Value: set.Projects[name][i],
					Style: lipgloss.NewStyle().Foreground(projectColor(pi)),
				})
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	c.chart.PushAll(bars)
	c.chart.Draw()
}

func (c chartModel) view() string {
	w := c.width - 4

	if c.employeeID == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Weekly Hours"),
			"",
			mutedStyle.Render("No employee selected. Press 3 to pick one from the Team view."),
		)
		return panelStyle.Width(w).Render(content)
	}

	week, ok := c.currentWeek()
	if c.loaded && !ok {
		// The no-data sentinel hides the chart entirely.
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Weekly Hours"),
			"",
			mutedStyle.Render(fmt.Sprintf("No timesheet data for %s", c.employeeName)),
		)
		return panelStyle.Width(w).Render(content)
	}

	set := weekly.BuildSeries(week, c.target)

	title := titleStyle.Render("Weekly Hours")
	who := highlightStyle.Render(c.employeeName)
	rangeLabel := mutedStyle.Render(set.Title)
	position := mutedStyle.Render(fmt.Sprintf("week %d/%d", c.weekIdx+1, max(len(c.weeks), 1)))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		title, "  ", who, "  ", rangeLabel, "  ", position,
	)

	chartView := c.chart.View()
	legend := c.renderLegend(set)

	rows := []string{header, "", chartView, "", legend}
	if c.viewState.Target {
		rows = append(rows, c.renderTargetLine(set))
	}
	rows = append(rows, "", mutedStyle.Render("  ←/→: older/newer week  d/a/p: view  t: target"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderLegend lists the four legend groups; the active ones carry their
// series colors, the hidden ones are muted.
func (c chartModel) renderLegend(set weekly.SeriesSet) string {
	var items []string

	entry := func(color lipgloss.Color, label string, visible bool) string {
		if !visible {
			return mutedStyle.Render("○ " + label)
		}
		dot := lipgloss.NewStyle().Foreground(color).Render("●")
		return fmt.Sprintf("%s %s", dot, label)
	}

	items = append(items, entry(colorDuration, "Duration", c.viewState.Mode == weekly.ViewDuration))
	items = append(items, entry(colorAttendance, "Attendance", c.viewState.Mode == weekly.ViewAttendance))
	items = append(items, entry(colorAbsence, "Absence", c.viewState.Mode == weekly.ViewAttendance))

	if c.viewState.Mode == weekly.ViewProjects {
		for pi, name := range set.ProjectNames {
			items = append(items, entry(projectColor(pi), name, true))
		}
	} else {
		items = append(items, entry(colorPrimary, "Projects", false))
	}

	items = append(items, entry(colorWarning, "Target", c.viewState.Target))

	return "  " + strings.Join(items, "  ")
}

func (c chartModel) renderTargetLine(set weekly.SeriesSet) string {
	planned := c.target * 7
	logged := weekly.Total(set.Duration)
	line := fmt.Sprintf("  target ── %s/day · %s planned · %s logged",
		formatHours(c.target), formatHours(planned), formatHours(logged))
	if logged >= planned {
		return successStyle.Render(line)
	}
	return warningStyle.Render(line)
}
