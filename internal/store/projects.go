package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateProject(name, color string) (*Project, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO projects (name, color, created_at) VALUES (?, ?, ?)`,
		name, color, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetProject(id)
}

func (s *Store) GetProject(id int64) (*Project, error) {
	p := &Project{}
	var createdAt string
	var archived int
	err := s.db.QueryRow(
		`SELECT id, name, color, archived, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Color, &archived, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	p.Archived = archived == 1
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}

func (s *Store) ListProjects(includeArchived bool) ([]Project, error) {
	query := `SELECT id, name, color, archived, created_at FROM projects`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var createdAt string
		var archived int
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &archived, &createdAt); err != nil {
			return nil, err
		}
		p.Archived = archived == 1
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
