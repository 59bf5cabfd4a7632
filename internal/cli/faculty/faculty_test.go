package faculty

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/facultyboard/internal/cli"
	"github.com/julianstephens/facultyboard/internal/directory"
	"github.com/julianstephens/facultyboard/internal/models"
)

func setupTestContext(t *testing.T, seed []models.Faculty) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &cli.Context{Directory: directory.New(seed), Out: &out}, &out
}

func TestFacultyListCmd(t *testing.T) {
	tests := []struct {
		name     string
		cmd      FacultyListCmd
		contains []string
		excludes []string
		wantErr  bool
	}{
		{
			name:     "all",
			cmd:      FacultyListCmd{},
			contains: []string{"Dr. Alan Turing", "Dr. Isaac Newton", "substituted by Dr. Grace Hopper"},
		},
		{
			name:     "by status",
			cmd:      FacultyListCmd{Status: "Absent"},
			contains: []string{"Dr. Marie Curie", "Dr. Nikola Tesla"},
			excludes: []string{"Dr. Alan Turing"},
		},
		{
			name:     "by department",
			cmd:      FacultyListCmd{Department: "computer science", ShowIDs: true},
			contains: []string{"(ID: fac-001)", "(ID: fac-006)"},
			excludes: []string{"fac-002"},
		},
		{
			name:     "search",
			cmd:      FacultyListCmd{Search: "lovelace"},
			contains: []string{"Dr. Ada Lovelace"},
			excludes: []string{"Dr. Alan Turing"},
		},
		{
			name:     "no match",
			cmd:      FacultyListCmd{Search: "nobody"},
			contains: []string{"No faculty found"},
		},
		{
			name:    "bad status",
			cmd:     FacultyListCmd{Status: "retired"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t, directory.DemoRoster())
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output missing %q:\n%s", s, out.String())
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out.String(), s) {
					t.Errorf("output unexpectedly contains %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestFacultyShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t, directory.DemoRoster())

	cmd := &FacultyShowCmd{ID: "fac-003"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, s := range []string{"Dr. Albert Einstein (fac-003)", "Physics", "555-345-6789", "substituting for Dr. Marie Curie"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out.String())
		}
	}

	missing := &FacultyShowCmd{ID: "fac-404"}
	if err := missing.Run(ctx); !errors.Is(err, directory.ErrNotFound) {
		t.Errorf("Run(unknown) error = %v, want directory.ErrNotFound", err)
	}
}

func TestFacultyShowCmdWarnsOnDanglingPartner(t *testing.T) {
	ctx, out := setupTestContext(t, []models.Faculty{
		{ID: "fac-001", Name: "Dr. A", Department: "Physics", Email: "a@faculty.edu", Status: models.StatusSubstituted, SubstitutedBy: "fac-099"},
	})

	cmd := &FacultyShowCmd{ID: "fac-001"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "fac-099 is not in the directory") {
		t.Errorf("expected a dangling partner warning:\n%s", out.String())
	}
}

func TestFacultyCountsCmd(t *testing.T) {
	ctx, out := setupTestContext(t, directory.DemoRoster())

	cmd := &FacultyCountsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"7 total", "Available     3", "Absent        2", "Substituting  1", "Substituted   1"}
	for _, s := range want {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out.String())
		}
	}
}

func TestFacultyCheckCmd(t *testing.T) {
	t.Run("demo roster has loose references", func(t *testing.T) {
		ctx, out := setupTestContext(t, directory.DemoRoster())
		cmd := &FacultyCheckCmd{}
		if err := cmd.Run(ctx); err == nil {
			t.Error("expected conflicts for the demo roster")
		}
		if !strings.Contains(out.String(), "fac-007") {
			t.Errorf("report does not mention fac-007:\n%s", out.String())
		}
	})

	t.Run("paired directory is clean", func(t *testing.T) {
		ctx, out := setupTestContext(t, []models.Faculty{
			{ID: "fac-001", Name: "Dr. A", Status: models.StatusAbsent},
			{ID: "fac-002", Name: "Dr. B", Status: models.StatusAvailable},
		})
		if _, _, err := ctx.Directory.PairSubstitution("fac-001", "fac-002"); err != nil {
			t.Fatalf("PairSubstitution() error = %v", err)
		}

		cmd := &FacultyCheckCmd{}
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("Run() error = %v\n%s", err, out.String())
		}
		if !strings.Contains(out.String(), "No conflicts detected.") {
			t.Errorf("unexpected report:\n%s", out.String())
		}
	})
}
