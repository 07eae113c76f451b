// Package weekly turns per-day timesheet aggregates into week buckets and
// chart-ready series, and owns the legend view-toggle state machine.
package weekly

import (
	"sort"
	"time"

	"github.com/seliret/hourglass/internal/store"
)

const dayFormat = "2006-01-02"

// DayRecord is one calendar day of aggregated time for one employee.
type DayRecord struct {
	Day        time.Time
	Duration   float64 // attendance + absence
	Attendance float64
	Absence    float64
	Projects   map[string]float64 // hours per project logged that day
}

// WeekBucket is a contiguous 7-day window. Days holds only the days that
// have records; the series builder zero-fills the rest.
type WeekBucket struct {
	Start time.Time
	Days  []DayRecord
}

func (w WeekBucket) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// FromSummaries merges per-project daily summary rows into one DayRecord
// per day. Rows with unparseable days are dropped.
func FromSummaries(rows []store.DailySummary) []DayRecord {
	byDay := make(map[string]*DayRecord)
	var order []string
	for _, r := range rows {
		rec, ok := byDay[r.Day]
		if !ok {
			day, err := time.Parse(dayFormat, r.Day)
			if err != nil {
				continue
			}
			rec = &DayRecord{Day: day, Projects: make(map[string]float64)}
			byDay[r.Day] = rec
			order = append(order, r.Day)
		}
		rec.Attendance += r.Hours
		rec.Absence += r.Absence
		rec.Duration += r.Hours + r.Absence
		if r.ProjectName != "" && r.Hours > 0 {
			rec.Projects[r.ProjectName] += r.Hours
		}
	}

	sort.Strings(order)
	records := make([]DayRecord, 0, len(order))
	for _, key := range order {
		records = append(records, *byDay[key])
	}
	return records
}

// Bucketize groups day records into week buckets starting on weekStart.
// Bucket 0 is the most recent week; higher indices are older.
func Bucketize(records []DayRecord, weekStart time.Weekday) []WeekBucket {
	byStart := make(map[string]*WeekBucket)
	var starts []time.Time
	for _, rec := range records {
		start := StartOfWeek(rec.Day, weekStart)
		key := start.Format(dayFormat)
		bucket, ok := byStart[key]
		if !ok {
			bucket = &WeekBucket{Start: start}
			byStart[key] = bucket
			starts = append(starts, start)
		}
		bucket.Days = append(bucket.Days, rec)
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].After(starts[j]) })
	buckets := make([]WeekBucket, 0, len(starts))
	for _, start := range starts {
		b := byStart[start.Format(dayFormat)]
		sort.Slice(b.Days, func(i, j int) bool { return b.Days[i].Day.Before(b.Days[j].Day) })
		buckets = append(buckets, *b)
	}
	return buckets
}

// StartOfWeek returns the first day of the week containing day.
func StartOfWeek(day time.Time, weekStart time.Weekday) time.Time {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// Cycle moves idx by delta within [0, n), wrapping at both edges. Week
// navigation is cyclic, not clamped.
func Cycle(idx, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((idx+delta)%n + n) % n
}
