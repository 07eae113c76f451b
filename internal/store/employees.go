package store

import (
	"database/sql"
	"fmt"
	"time"
)

const employeeCols = `id, badge, name, email, department, manager_id, active, created_at`

func scanEmployee(scan func(...any) error) (*Employee, error) {
	e := &Employee{}
	var managerID sql.NullInt64
	var active int
	var createdAt string
	if err := scan(&e.ID, &e.Badge, &e.Name, &e.Email, &e.Department, &managerID, &active, &createdAt); err != nil {
		return nil, err
	}
	if managerID.Valid {
		e.ManagerID = &managerID.Int64
	}
	e.Active = active == 1
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// GetEmployee returns the detail record for one employee.
func (s *Store) GetEmployee(id int64) (*Employee, error) {
	if id <= 0 {
		return nil, invalidArgf("employee id is required")
	}
	row := s.db.QueryRow(`SELECT `+employeeCols+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row.Scan)
	if err != nil {
		return nil, queryFailf(err, "get employee %d", id)
	}
	return e, nil
}

// GetEmployeeByBadge resolves an employee by badge number.
func (s *Store) GetEmployeeByBadge(badge string) (*Employee, error) {
	if badge == "" {
		return nil, invalidArgf("badge is required")
	}
	row := s.db.QueryRow(`SELECT `+employeeCols+` FROM employees WHERE badge = ?`, badge)
	e, err := scanEmployee(row.Scan)
	if err != nil {
		return nil, queryFailf(err, "get employee by badge %q", badge)
	}
	return e, nil
}

// ListTeam returns the active employees reporting to the given manager.
func (s *Store) ListTeam(managerID int64) ([]Employee, error) {
	if managerID <= 0 {
		return nil, invalidArgf("manager id is required")
	}
	rows, err := s.db.Query(
		`SELECT `+employeeCols+` FROM employees WHERE manager_id = ? AND active = 1 ORDER BY name`,
		managerID,
	)
	if err != nil {
		return nil, queryFailf(err, "list team of %d", managerID)
	}
	defer rows.Close()
	return collectEmployees(rows)
}

// ListEmployees returns all employees, optionally including inactive ones.
func (s *Store) ListEmployees(includeInactive bool) ([]Employee, error) {
	query := `SELECT ` + employeeCols + ` FROM employees`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func collectEmployees(rows *sql.Rows) ([]Employee, error) {
	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// CreateEmployee inserts a new employee record.
func (s *Store) CreateEmployee(badge, name, email, department string, managerID *int64) (*Employee, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO employees (badge, name, email, department, manager_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		badge, name, email, department, managerID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEmployee(id)
}
