package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixtureTeam creates a manager with two reports and one project, and
// returns them in that order.
func fixtureTeam(t *testing.T, s *Store) (*Employee, *Employee, *Employee, *Project) {
	t.Helper()
	manager, err := s.CreateEmployee("M100", "Morgan Hale", "morgan@example.com", "Engineering", nil)
	if err != nil {
		t.Fatalf("create manager: %v", err)
	}
	r1, err := s.CreateEmployee("E101", "Alex Reed", "alex@example.com", "Engineering", &manager.ID)
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	r2, err := s.CreateEmployee("E102", "Casey Lund", "casey@example.com", "Engineering", &manager.ID)
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	p, err := s.CreateProject("Atlas", "#6C63FF")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return manager, r1, r2, p
}

func day(offset int) time.Time {
	return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/hourglass.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestDefaultSettingsSeeded(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetSetting("target_hours")
	if err != nil {
		t.Fatal(err)
	}
	if v != "8" {
		t.Fatalf("target_hours = %q, want 8", v)
	}

	v, err = s.GetSetting("week_start")
	if err != nil {
		t.Fatal(err)
	}
	if v != "sunday" {
		t.Fatalf("week_start = %q, want sunday", v)
	}
}

// ============================================================
// Employees
// ============================================================

func TestCreateAndGetEmployee(t *testing.T) {
	s := newTestStore(t)
	e, err := s.CreateEmployee("E100", "Alex Reed", "alex@example.com", "Engineering", nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if e.Badge != "E100" || e.Name != "Alex Reed" || e.Department != "Engineering" {
		t.Fatalf("unexpected employee: %+v", e)
	}
	if !e.Active {
		t.Fatal("new employees should be active")
	}

	got, err := s.GetEmployee(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Badge != "E100" {
		t.Fatalf("Badge = %q, want E100", got.Badge)
	}
}

func TestGetEmployeeInvalidID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEmployee(0)
	if err == nil {
		t.Fatal("expected error for id 0")
	}
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError, got %T", err)
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEmployee(999)
	if err == nil {
		t.Fatal("expected error for missing employee")
	}
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError, got %T", err)
	}
	if qe.Unwrap() == nil {
		t.Fatal("query failure should carry the underlying cause")
	}
}

func TestGetEmployeeByBadge(t *testing.T) {
	s := newTestStore(t)
	created, _ := s.CreateEmployee("E100", "Alex Reed", "", "", nil)

	e, err := s.GetEmployeeByBadge("E100")
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != created.ID {
		t.Fatalf("ID = %d, want %d", e.ID, created.ID)
	}

	if _, err := s.GetEmployeeByBadge(""); err == nil {
		t.Fatal("expected error for empty badge")
	}
}

func TestDuplicateBadgeRejected(t *testing.T) {
	s := newTestStore(t)
	s.CreateEmployee("E100", "Alex Reed", "", "", nil)

	if _, err := s.CreateEmployee("E100", "Other Person", "", "", nil); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestListTeam(t *testing.T) {
	s := newTestStore(t)
	manager, r1, r2, _ := fixtureTeam(t, s)

	team, err := s.ListTeam(manager.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(team) != 2 {
		t.Fatalf("team size = %d, want 2", len(team))
	}
	// Ordered by name
	if team[0].ID != r1.ID || team[1].ID != r2.ID {
		t.Fatalf("unexpected team order: %v, %v", team[0].Name, team[1].Name)
	}
}

func TestListTeamExcludesInactive(t *testing.T) {
	s := newTestStore(t)
	manager, r1, _, _ := fixtureTeam(t, s)

	if _, err := s.db.Exec(`UPDATE employees SET active = 0 WHERE id = ?`, r1.ID); err != nil {
		t.Fatal(err)
	}

	team, err := s.ListTeam(manager.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(team) != 1 {
		t.Fatalf("team size = %d, want 1", len(team))
	}
}

func TestListTeamInvalidManager(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ListTeam(-1); err == nil {
		t.Fatal("expected error for negative manager id")
	}
}

func TestListTeamEmpty(t *testing.T) {
	s := newTestStore(t)
	e, _ := s.CreateEmployee("E100", "Alex Reed", "", "", nil)

	team, err := s.ListTeam(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(team) != 0 {
		t.Fatalf("expected empty team, got %d", len(team))
	}
}

func TestListEmployees(t *testing.T) {
	s := newTestStore(t)
	_, r1, _, _ := fixtureTeam(t, s)

	all, err := s.ListEmployees(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}

	s.db.Exec(`UPDATE employees SET active = 0 WHERE id = ?`, r1.ID)

	active, _ := s.ListEmployees(false)
	if len(active) != 2 {
		t.Fatalf("active len = %d, want 2", len(active))
	}
	withInactive, _ := s.ListEmployees(true)
	if len(withInactive) != 3 {
		t.Fatalf("withInactive len = %d, want 3", len(withInactive))
	}
}

// ============================================================
// Projects
// ============================================================

func TestCreateAndGetProject(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("Atlas", "#6C63FF")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Atlas" || p.Color != "#6C63FF" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if p.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
}

func TestListProjectsExcludesArchived(t *testing.T) {
	s := newTestStore(t)
	p1, _ := s.CreateProject("Atlas", "#6C63FF")
	s.CreateProject("Borealis", "#2EC4B6")

	s.db.Exec(`UPDATE projects SET archived = 1 WHERE id = ?`, p1.ID)

	active, err := s.ListProjects(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Name != "Borealis" {
		t.Fatalf("unexpected active projects: %+v", active)
	}

	all, _ := s.ListProjects(true)
	if len(all) != 2 {
		t.Fatalf("all len = %d, want 2", len(all))
	}
}

// ============================================================
// Entries
// ============================================================

func TestAddAndGetEntry(t *testing.T) {
	s := newTestStore(t)
	_, r1, _, p := fixtureTeam(t, s)

	e, err := s.AddEntry(r1.ID, &p.ID, day(1), 6.5, KindWork, "feature work")
	if err != nil {
		t.Fatal(err)
	}
	if e.Hours != 6.5 || e.Kind != KindWork || e.Note != "feature work" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.ProjectID == nil || *e.ProjectID != p.ID {
		t.Fatal("project id not stored")
	}
	if !e.Day.Equal(day(1)) {
		t.Fatalf("Day = %v, want %v", e.Day, day(1))
	}
}

func TestAddAbsenceWithoutProject(t *testing.T) {
	s := newTestStore(t)
	_, r1, _, _ := fixtureTeam(t, s)

	e, err := s.AddEntry(r1.ID, nil, day(1), 8, KindAbsence, "sick leave")
	if err != nil {
		t.Fatal(err)
	}
	if e.ProjectID != nil {
		t.Fatal("absence should have nil project")
	}
}

func TestListEntriesRange(t *testing.T) {
	s := newTestStore(t)
	_, r1, r2, p := fixtureTeam(t, s)

	s.AddEntry(r1.ID, &p.ID, day(0), 8, KindWork, "")
	s.AddEntry(r1.ID, &p.ID, day(3), 4, KindWork, "")
	s.AddEntry(r1.ID, &p.ID, day(7), 8, KindWork, "") // outside [day0, day7)
	s.AddEntry(r2.ID, &p.ID, day(1), 8, KindWork, "") // other employee

	entries, err := s.ListEntries(r1.ID, day(0), day(7))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	// Ordered by day
	if !entries[0].Day.Equal(day(0)) || !entries[1].Day.Equal(day(3)) {
		t.Fatalf("unexpected order: %v, %v", entries[0].Day, entries[1].Day)
	}
}

func TestListEntriesValidation(t *testing.T) {
	s := newTestStore(t)

	var qe *QueryError

	_, err := s.ListEntries(0, day(0), day(7))
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError for id 0, got %v", err)
	}

	_, err = s.ListEntries(1, day(7), day(0))
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError for inverted range, got %v", err)
	}
}

func TestListEntriesEmptyRange(t *testing.T) {
	s := newTestStore(t)
	_, r1, _, _ := fixtureTeam(t, s)

	// from == to is an empty, but valid, range
	entries, err := s.ListEntries(r1.ID, day(0), day(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

// ============================================================
// Aggregations
// ============================================================

func TestGetProjectTotals(t *testing.T) {
	s := newTestStore(t)
	_, r1, _, p1 := fixtureTeam(t, s)
	p2, _ := s.CreateProject("Borealis", "#2EC4B6")

	s.AddEntry(r1.ID, &p1.ID, day(0), 4, KindWork, "")
	s.AddEntry(r1.ID, &p1.ID, day(1), 2.5, KindWork, "")
	s.AddEntry(r1.ID, &p2.ID, day(1), 3, KindWork, "")
	s.AddEntry(r1.ID, nil, day(2), 8, KindAbsence, "") // not counted

	totals, err := s.GetProjectTotals(r1.ID, day(0), day(7))
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 2 {
		t.Fatalf("len = %d, want 2", len(totals))
	}
	// Ordered by project name
	if totals[0].ProjectName != "Atlas" || totals[0].TotalHours != 6.5 || totals[0].EntryCount != 2 {
		t.Fatalf("unexpected Atlas total: %+v", totals[0])
	}
	if totals[1].ProjectName != "Borealis" || totals[1].TotalHours != 3 {
		t.Fatalf("unexpected Borealis total: %+v", totals[1])
	}
}

func TestGetProjectTotalsValidation(t *testing.T) {
	s := newTestStore(t)

	var qe *QueryError
	_, err := s.GetProjectTotals(-5, day(0), day(7))
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError, got %v", err)
	}
	_, err = s.GetProjectTotals(1, day(7), day(0))
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError, got %v", err)
	}
}

func TestGetDailySummary(t *testing.T) {
	s := newTestStore(t)
	_, r1, _, p1 := fixtureTeam(t, s)
	p2, _ := s.CreateProject("Borealis", "#2EC4B6")

	s.AddEntry(r1.ID, &p1.ID, day(0), 4, KindWork, "")
	s.AddEntry(r1.ID, &p1.ID, day(0), 2, KindWork, "") // same day+project, summed
	s.AddEntry(r1.ID, &p2.ID, day(0), 1.5, KindWork, "")
	s.AddEntry(r1.ID, nil, day(1), 8, KindAbsence, "")

	rows, err := s.GetDailySummary(r1.ID, day(0), day(7))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}

	if rows[0].Day != day(0).Format("2006-01-02") || rows[0].ProjectName != "Atlas" || rows[0].Hours != 6 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ProjectName != "Borealis" || rows[1].Hours != 1.5 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}

	absence := rows[2]
	if absence.ProjectName != "" {
		t.Fatalf("absence row should have empty project, got %q", absence.ProjectName)
	}
	if absence.Absence != 8 || absence.Hours != 0 {
		t.Fatalf("unexpected absence row: %+v", absence)
	}
}

func TestGetDailySummaryEmpty(t *testing.T) {
	s := newTestStore(t)
	_, r1, _, _ := fixtureTeam(t, s)

	rows, err := s.GetDailySummary(r1.ID, day(0), day(7))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestGetDailySummaryValidation(t *testing.T) {
	s := newTestStore(t)

	var qe *QueryError
	_, err := s.GetDailySummary(0, day(0), day(7))
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError, got %v", err)
	}
	_, err = s.GetDailySummary(1, day(7), day(0))
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError, got %v", err)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSetAndGetSetting(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("target_hours", "7.5"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting("target_hours")
	if err != nil {
		t.Fatal(err)
	}
	if v != "7.5" {
		t.Fatalf("value = %q, want 7.5", v)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) < 2 {
		t.Fatalf("expected at least 2 seeded settings, got %d", len(settings))
	}
}

// ============================================================
// Seed
// ============================================================

func TestSeed(t *testing.T) {
	s := newTestStore(t)

	if err := s.Seed(2); err != nil {
		t.Fatal(err)
	}

	employees, _ := s.ListEmployees(false)
	if len(employees) != 4 {
		t.Fatalf("employees = %d, want 4", len(employees))
	}
	projects, _ := s.ListProjects(false)
	if len(projects) != 3 {
		t.Fatalf("projects = %d, want 3", len(projects))
	}

	manager, err := s.GetEmployeeByBadge("E1000")
	if err != nil {
		t.Fatal(err)
	}
	team, err := s.ListTeam(manager.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(team) != 3 {
		t.Fatalf("team = %d, want 3", len(team))
	}

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM time_entries`).Scan(&count)
	if count == 0 {
		t.Fatal("seed created no time entries")
	}
}

func TestSeedRefusesNonEmpty(t *testing.T) {
	s := newTestStore(t)
	s.CreateEmployee("E100", "Alex Reed", "", "", nil)

	if err := s.Seed(2); err == nil {
		t.Fatal("expected seed to refuse a non-empty database")
	}
}
