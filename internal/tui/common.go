package tui

import (
	"fmt"

	"github.com/seliret/hourglass/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewChart viewState = iota
	viewTimesheet
	viewTeam
	viewSettings
)

var viewNames = []string{"Chart", "Timesheet", "Team", "Settings"}

// --- Messages ---

// employeeSelectedMsg is the "selected user changed" notification. The team
// view publishes it; chart and timesheet views are passive subscribers.
type employeeSelectedMsg struct {
	employee store.Employee
}

type statusMsg struct {
	text    string
	isError bool
}

type settingsSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
