package weekly

import (
	"fmt"
	"sort"
)

// NoDataTitle marks a SeriesSet built from an empty week.
const NoDataTitle = "No Data"

// DefaultTarget is the expected hours per working day.
const DefaultTarget = 8.0

// SeriesSet is the chart-ready shape of one week. It is rebuilt on every
// render and never persisted. All numeric series have the same length as
// Labels (7 for a populated week, 0 for an empty one).
type SeriesSet struct {
	Title      string
	Labels     []string
	Duration   []float64
	Attendance []float64
	Absence    []float64
	Target     []float64

	ProjectNames []string // sorted; only projects seen in this week
	Projects     map[string][]float64
}

// BuildSeries flattens one WeekBucket into a SeriesSet. Days without a
// record are zero-filled; an empty bucket yields empty series and the
// NoDataTitle sentinel. There are no error conditions.
func BuildSeries(w WeekBucket, target float64) SeriesSet {
	if len(w.Days) == 0 {
		return SeriesSet{Title: NoDataTitle, Projects: map[string][]float64{}}
	}
	if target <= 0 {
		target = DefaultTarget
	}

	byDay := make(map[string]DayRecord, len(w.Days))
	nameSet := make(map[string]struct{})
	for _, rec := range w.Days {
		byDay[rec.Day.Format(dayFormat)] = rec
		for name := range rec.Projects {
			nameSet[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	set := SeriesSet{
		Title:        fmt.Sprintf("%s — %s", w.Start.Format("Jan 02"), w.End().Format("Jan 02, 2006")),
		ProjectNames: names,
		Projects:     make(map[string][]float64, len(names)),
	}

	end := w.End()
	for d := w.Start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rec := byDay[d.Format(dayFormat)] // zero value for missing days
		set.Labels = append(set.Labels, d.Format("Mon 02"))
		set.Duration = append(set.Duration, rec.Duration)
		set.Attendance = append(set.Attendance, rec.Attendance)
		set.Absence = append(set.Absence, rec.Absence)
		set.Target = append(set.Target, target)
		for _, name := range names {
			set.Projects[name] = append(set.Projects[name], rec.Projects[name])
		}
	}
	return set
}

// Empty reports whether the set carries no data.
func (s SeriesSet) Empty() bool {
	return len(s.Labels) == 0
}

// Total sums a series.
func Total(series []float64) float64 {
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum
}
