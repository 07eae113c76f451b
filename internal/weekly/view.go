package weekly

// ViewMode is one of the three mutually exclusive chart displays. Exactly
// one mode is active at a time.
type ViewMode int

const (
	ViewDuration ViewMode = iota
	ViewAttendance
	ViewProjects
)

func (m ViewMode) String() string {
	switch m {
	case ViewDuration:
		return "Duration"
	case ViewAttendance:
		return "Attendance"
	case ViewProjects:
		return "Projects"
	}
	return "Unknown"
}

// LegendGroup is a clickable legend entry.
type LegendGroup int

const (
	GroupDuration LegendGroup = iota
	GroupAttendance
	GroupProjects
	GroupTarget
)

func (g LegendGroup) String() string {
	switch g {
	case GroupDuration:
		return "Duration"
	case GroupAttendance:
		return "Attendance"
	case GroupProjects:
		return "Projects"
	case GroupTarget:
		return "Target"
	}
	return "Unknown"
}

// groupMode maps a legend group to the mode it shows.
var groupMode = map[LegendGroup]ViewMode{
	GroupDuration:   ViewDuration,
	GroupAttendance: ViewAttendance,
	GroupProjects:   ViewProjects,
}

// hideFallback is the mode shown when the active group's legend entry is
// clicked again.
var hideFallback = map[ViewMode]ViewMode{
	ViewDuration:   ViewAttendance,
	ViewAttendance: ViewDuration,
	ViewProjects:   ViewAttendance,
}

// ViewState is the legend-driven visibility state of the chart. Target is
// an overlay orthogonal to the active mode.
type ViewState struct {
	Mode   ViewMode
	Target bool
}

// NewViewState returns the initial state: attendance/absence visible,
// target hidden.
func NewViewState() ViewState {
	return ViewState{Mode: ViewAttendance}
}

// Toggle applies one legend click and returns the resulting state.
// Clicking a hidden group shows it; clicking the visible group falls back
// to its alternate; clicking Target only flips the overlay.
func (v ViewState) Toggle(g LegendGroup) ViewState {
	if g == GroupTarget {
		v.Target = !v.Target
		return v
	}
	mode, ok := groupMode[g]
	if !ok {
		return v
	}
	if v.Mode == mode {
		v.Mode = hideFallback[mode]
	} else {
		v.Mode = mode
	}
	return v
}
