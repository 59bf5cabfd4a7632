package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/facultyboard/internal/models"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRoster(t *testing.T) {
	path := writeRoster(t, `
faculty:
  - id: fac-010
    name: "  Dr. Lise Meitner "
    department: Physics
    email: lise.meitner@faculty.edu
    status: substituted
    substitutedBy: fac-011
  - name: Dr. Emmy Noether
    department: Mathematics
    email: emmy.noether@faculty.edu
    phone: 555-000-1234
`)

	got, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadRoster() returned %d records, want 2", len(got))
	}

	want0 := models.Faculty{
		ID:            "fac-010",
		Name:          "Dr. Lise Meitner",
		Department:    "Physics",
		Email:         "lise.meitner@faculty.edu",
		Status:        models.StatusSubstituted,
		SubstitutedBy: "fac-011",
	}
	if got[0] != want0 {
		t.Errorf("record 0 = %+v, want %+v", got[0], want0)
	}
	if got[1].ID != "" || got[1].Status != models.StatusAvailable || got[1].Phone != "555-000-1234" {
		t.Errorf("record 1 = %+v", got[1])
	}
}

func TestLoadRosterErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "faculty: []\n", want: "lists no faculty"},
		{name: "bad email", content: "faculty:\n  - name: Ada\n    department: Math\n    email: nope\n", want: "email"},
		{name: "bad status", content: "faculty:\n  - name: Ada\n    department: Math\n    email: a@b.edu\n    status: retired\n", want: "status"},
		{
			name:    "duplicate id",
			content: "faculty:\n  - {id: fac-001, name: Ada, department: Math, email: a@b.edu}\n  - {id: fac-001, name: Bob, department: Math, email: b@b.edu}\n",
			want:    "duplicate id",
		},
		{name: "not yaml", content: "faculty: [", want: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRoster(writeRoster(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadRoster() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := LoadRoster(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadRoster(missing) error = nil")
	}
}
