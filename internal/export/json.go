package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/seliret/hourglass/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Badge      string      `json:"badge"`
	Employee   string      `json:"employee"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID        int64   `json:"id"`
	Day       string  `json:"day"`
	Project   string  `json:"project,omitempty"`
	ProjectID *int64  `json:"project_id,omitempty"`
	Kind      string  `json:"kind"`
	Hours     float64 `json:"hours"`
	Note      string  `json:"note,omitempty"`
}

func ToJSON(employee store.Employee, entries []store.TimeEntry, projects map[int64]*store.Project, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Badge:      employee.Badge,
		Employee:   employee.Name,
		Count:      len(entries),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			ID:        e.ID,
			Day:       e.Day.Format("2006-01-02"),
			Project:   projectName(e, projects),
			ProjectID: e.ProjectID,
			Kind:      e.Kind,
			Hours:     e.Hours,
			Note:      e.Note,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
