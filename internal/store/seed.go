package store

import (
	"fmt"
	"math/rand"
	"time"
)

// Seed fills an empty database with a small demo team and the given number
// of weeks of timesheet history. It refuses to run on a database that
// already has employees.
func (s *Store) Seed(weeks int) error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("database already has %d employees, refusing to seed", count)
	}
	if weeks <= 0 {
		weeks = 8
	}

	manager, err := s.CreateEmployee("E1000", "Dana Whitfield", "dana@example.com", "Engineering", nil)
	if err != nil {
		return err
	}
	team := []struct {
		badge, name, email string
	}{
		{"E1001", "Avery Collins", "avery@example.com"},
		{"E1002", "Jordan Blake", "jordan@example.com"},
		{"E1003", "Sam Okafor", "sam@example.com"},
	}
	var employees []*Employee
	for _, m := range team {
		e, err := s.CreateEmployee(m.badge, m.name, m.email, "Engineering", &manager.ID)
		if err != nil {
			return err
		}
		employees = append(employees, e)
	}

	projectDefs := []struct {
		name, color string
	}{
		{"Atlas", "#6C63FF"},
		{"Borealis", "#2EC4B6"},
		{"Caldera", "#F39C12"},
	}
	var projects []*Project
	for _, pd := range projectDefs {
		p, err := s.CreateProject(pd.name, pd.color)
		if err != nil {
			return err
		}
		projects = append(projects, p)
	}

	rng := rand.New(rand.NewSource(42))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, e := range append(employees, manager) {
		for d := 0; d < weeks*7; d++ {
			day := today.AddDate(0, 0, -d)
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			// Roughly one sick day per month.
			if rng.Intn(22) == 0 {
				if _, err := s.AddEntry(e.ID, nil, day, 8, KindAbsence, "sick leave"); err != nil {
					return err
				}
				continue
			}
			remaining := 6 + rng.Float64()*3
			for _, p := range projects {
				if remaining <= 0 || rng.Intn(3) == 0 {
					continue
				}
				h := float64(int(rng.Float64()*remaining*2)) / 2
				if h == 0 {
					continue
				}
				if h > remaining {
					h = remaining
				}
				if _, err := s.AddEntry(e.ID, &p.ID, day, h, KindWork, ""); err != nil {
					return err
				}
				remaining -= h
			}
		}
	}
	return nil
}
