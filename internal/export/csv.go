package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/seliret/hourglass/internal/store"
)

func ToCSV(employee store.Employee, entries []store.TimeEntry, projects map[int64]*store.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Badge", "Employee", "Day", "Project", "Kind", "Hours", "Note"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			employee.Badge,
			employee.Name,
			e.Day.Format("2006-01-02"),
			projectName(e, projects),
			e.Kind,
			fmt.Sprintf("%.2f", e.Hours),
			e.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func projectName(e store.TimeEntry, projects map[int64]*store.Project) string {
	if e.ProjectID == nil {
		return ""
	}
	if p, ok := projects[*e.ProjectID]; ok {
		return p.Name
	}
	return "Unknown"
}
