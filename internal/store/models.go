package store

import "time"

type Employee struct {
	ID         int64
	Badge      string
	Name       string
	Email      string
	Department string
	ManagerID  *int64
	Active     bool
	CreatedAt  time.Time
}

type Project struct {
	ID        int64
	Name      string
	Color     string
	Archived  bool
	CreatedAt time.Time
}

// Entry kinds. Absence entries carry no project.
const (
	KindWork    = "work"
	KindAbsence = "absence"
)

type TimeEntry struct {
	ID         int64
	EmployeeID int64
	ProjectID  *int64
	Day        time.Time
	Hours      float64
	Kind       string
	Note       string
	CreatedAt  time.Time
}

// ProjectTotal is one row of the per-project aggregation query.
type ProjectTotal struct {
	ProjectID    int64
	ProjectName  string
	ProjectColor string
	TotalHours   float64
	EntryCount   int
}

// DailySummary is one row of the per-day aggregation query: hours logged by
// one employee on one day against one project. Absence hours come back as
// rows with an empty project name and the hours in Absence.
type DailySummary struct {
	Day          string // YYYY-MM-DD
	ProjectName  string
	ProjectColor string
	Hours        float64
	Absence      float64
}

type Setting struct {
	Key   string
	Value string
}
