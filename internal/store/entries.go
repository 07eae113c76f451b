package store

import (
	"database/sql"
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// AddEntry records hours for an employee on a day. projectID is nil for
// absence entries.
func (s *Store) AddEntry(employeeID int64, projectID *int64, day time.Time, hours float64, kind, note string) (*TimeEntry, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO time_entries (employee_id, project_id, day, hours, kind, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		employeeID, projectID, day.Format(dayFormat), hours, kind, note, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEntry(id)
}

func (s *Store) GetEntry(id int64) (*TimeEntry, error) {
	e := &TimeEntry{}
	var projectID sql.NullInt64
	var day, createdAt string

	err := s.db.QueryRow(
		`SELECT id, employee_id, project_id, day, hours, kind, note, created_at
		 FROM time_entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.EmployeeID, &projectID, &day, &e.Hours, &e.Kind, &e.Note, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	if projectID.Valid {
		e.ProjectID = &projectID.Int64
	}
	e.Day, _ = time.Parse(dayFormat, day)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// ListEntries returns the raw timesheet rows for an employee with day in
// [from, to). The whole range is returned or an error, never a partial set.
func (s *Store) ListEntries(employeeID int64, from, to time.Time) ([]TimeEntry, error) {
	if employeeID <= 0 {
		return nil, invalidArgf("employee id is required")
	}
	if from.After(to) {
		return nil, invalidArgf("start date %s is after end date %s", from.Format(dayFormat), to.Format(dayFormat))
	}

	rows, err := s.db.Query(
		`SELECT id, employee_id, project_id, day, hours, kind, note, created_at
		 FROM time_entries
		 WHERE employee_id = ? AND day >= ? AND day < ?
		 ORDER BY day, id`,
		employeeID, from.Format(dayFormat), to.Format(dayFormat),
	)
	if err != nil {
		return nil, queryFailf(err, "list entries for employee %d", employeeID)
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		var e TimeEntry
		var projectID sql.NullInt64
		var day, createdAt string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &projectID, &day, &e.Hours, &e.Kind, &e.Note, &createdAt); err != nil {
			return nil, err
		}
		if projectID.Valid {
			e.ProjectID = &projectID.Int64
		}
		e.Day, _ = time.Parse(dayFormat, day)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetProjectTotals aggregates one employee's logged hours per project over
// [from, to).
func (s *Store) GetProjectTotals(employeeID int64, from, to time.Time) ([]ProjectTotal, error) {
	if employeeID <= 0 {
		return nil, invalidArgf("employee id is required")
	}
	if from.After(to) {
		return nil, invalidArgf("start date %s is after end date %s", from.Format(dayFormat), to.Format(dayFormat))
	}

	rows, err := s.db.Query(`
		SELECT e.project_id, p.name, p.color, COALESCE(SUM(e.hours), 0), COUNT(*)
		FROM time_entries e
		JOIN projects p ON p.id = e.project_id
		WHERE e.employee_id = ? AND e.kind = 'work'
		  AND e.day >= ? AND e.day < ?
		GROUP BY e.project_id
		ORDER BY p.name`,
		employeeID, from.Format(dayFormat), to.Format(dayFormat),
	)
	if err != nil {
		return nil, queryFailf(err, "project totals for employee %d", employeeID)
	}
	defer rows.Close()

	var totals []ProjectTotal
	for rows.Next() {
		var t ProjectTotal
		if err := rows.Scan(&t.ProjectID, &t.ProjectName, &t.ProjectColor, &t.TotalHours, &t.EntryCount); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// GetDailySummary aggregates one employee's hours per day and project over
// [from, to). Absence hours come back in the Absence column of rows with an
// empty project name.
func (s *Store) GetDailySummary(employeeID int64, from, to time.Time) ([]DailySummary, error) {
	if employeeID <= 0 {
		return nil, invalidArgf("employee id is required")
	}
	if from.After(to) {
		return nil, invalidArgf("start date %s is after end date %s", from.Format(dayFormat), to.Format(dayFormat))
	}

	rows, err := s.db.Query(`
		SELECT e.day, COALESCE(p.name, ''), COALESCE(p.color, ''),
		       COALESCE(SUM(CASE WHEN e.kind = 'work' THEN e.hours END), 0),
		       COALESCE(SUM(CASE WHEN e.kind = 'absence' THEN e.hours END), 0)
		FROM time_entries e
		LEFT JOIN projects p ON p.id = e.project_id
		WHERE e.employee_id = ? AND e.day >= ? AND e.day < ?
		GROUP BY e.day, e.project_id
		ORDER BY e.day, p.name`,
		employeeID, from.Format(dayFormat), to.Format(dayFormat),
	)
	if err != nil {
		return nil, queryFailf(err, "daily summary for employee %d", employeeID)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		if err := rows.Scan(&ds.Day, &ds.ProjectName, &ds.ProjectColor, &ds.Hours, &ds.Absence); err != nil {
			return nil, err
		}
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}
