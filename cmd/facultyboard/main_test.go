package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/facultyboard/internal/config"
	"github.com/julianstephens/facultyboard/internal/directory"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/storage"
	"github.com/julianstephens/facultyboard/internal/timetable"
	"github.com/julianstephens/facultyboard/internal/validation"
)

func TestNewDirectory(t *testing.T) {
	roster := filepath.Join(t.TempDir(), "roster.yaml")
	data := `faculty:
  - name: Dr. Lise Meitner
    department: Physics
    email: lise.meitner@faculty.edu
  - id: fac-010
    name: Dr. Emmy Noether
    department: Mathematics
    email: emmy.noether@faculty.edu
    status: absent
`
	if err := os.WriteFile(roster, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		cfg       config.File
		wantLen   int
		wantAdded func(string) bool
		wantErr   bool
	}{
		{
			name:      "demo roster",
			cfg:       config.File{},
			wantLen:   7,
			wantAdded: func(id string) bool { return id == "fac-008" },
		},
		{
			name:      "uuid ids",
			cfg:       config.File{IDScheme: "uuid"},
			wantLen:   7,
			wantAdded: func(id string) bool { return strings.HasPrefix(id, "fac-") && len(id) > len("fac-008") },
		},
		{
			name:      "roster file",
			cfg:       config.File{Roster: roster},
			wantLen:   2,
			wantAdded: func(id string) bool { return id == "fac-012" },
		},
		{
			name:    "unknown id scheme",
			cfg:     config.File{IDScheme: "serial"},
			wantErr: true,
		},
		{
			name:    "missing roster",
			cfg:     config.File{Roster: filepath.Join(t.TempDir(), "absent.yaml")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := newDirectory(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newDirectory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if dir.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", dir.Len(), tt.wantLen)
			}
			added := dir.Add(models.Faculty{Name: "Dr. New Hire", Department: "Biology", Email: "new.hire@faculty.edu"})
			if !tt.wantAdded(added.ID) {
				t.Errorf("new faculty id = %q", added.ID)
			}
		})
	}
}

// openSession mirrors main: load the stored weeks, then build the directory
// around them.
func openSession(t *testing.T, path string) (*directory.Store, *timetable.Service) {
	t.Helper()
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	stored, err := store.ListTimetables()
	if err != nil {
		t.Fatalf("ListTimetables() error = %v", err)
	}
	dir, err := newDirectory(config.File{}, stored)
	if err != nil {
		t.Fatalf("newDirectory() error = %v", err)
	}
	return dir, timetable.NewService(dir, store, timetable.NewGenerator(dir, timetable.WithSeed(3)))
}

func TestNewFacultyDoesNotInheritStoredWeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timetables.json")

	dir, svc := openSession(t, path)
	alice := dir.Add(models.Faculty{Name: "Dr. Alice Hart", Department: "History", Email: "alice.hart@faculty.edu"})
	if _, err := svc.SavePeriod(alice.ID, validation.PeriodInput{
		Day:          string(models.Monday),
		PeriodNumber: 1,
		CourseCode:   "ZZ999",
		CourseTitle:  "Private Seminar",
	}); err != nil {
		t.Fatalf("SavePeriod() error = %v", err)
	}

	dir, svc = openSession(t, path)
	bob := dir.Add(models.Faculty{Name: "Dr. Bob Lane", Department: "History", Email: "bob.lane@faculty.edu"})
	if bob.ID == alice.ID {
		t.Fatalf("Add() reused %s from the previous session", alice.ID)
	}

	week, err := svc.Week(bob.ID)
	if err != nil {
		t.Fatalf("Week() error = %v", err)
	}
	for _, p := range week {
		if p.CourseCode == "ZZ999" {
			t.Errorf("week for %s carries %+v from %s", bob.ID, p, alice.ID)
		}
	}
}
