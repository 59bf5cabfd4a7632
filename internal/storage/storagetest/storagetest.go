// Package storagetest holds the behaviour every PeriodRepository must share.
package storagetest

import (
	"errors"
	"testing"

	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/storage"
)

// Period builds a stored period for facultyID in the given slot.
func Period(facultyID string, day models.Day, n int, course string) models.Period {
	return models.Period{
		ID:           models.PeriodID(facultyID, day, n),
		Day:          day,
		PeriodNumber: n,
		StartTime:    "08:00",
		EndTime:      "08:50",
		CourseCode:   course,
		CourseTitle:  course + " title",
		FacultyID:    facultyID,
	}
}

// Run exercises repo, which must be initialized and empty.
func Run(t *testing.T, newRepo func(t *testing.T) storage.PeriodRepository) {
	t.Run("unseeded faculty", func(t *testing.T) {
		repo := newRepo(t)
		ok, err := repo.HasTimetable("fac-001")
		if err != nil {
			t.Fatalf("HasTimetable() error = %v", err)
		}
		if ok {
			t.Error("HasTimetable() = true for an empty repository")
		}
		periods, err := repo.ListPeriods("fac-001")
		if err != nil {
			t.Fatalf("ListPeriods() error = %v", err)
		}
		if len(periods) != 0 {
			t.Errorf("ListPeriods() len = %d, want 0", len(periods))
		}
	})

	t.Run("save and list timetable", func(t *testing.T) {
		repo := newRepo(t)
		week := []models.Period{
			Period("fac-001", models.Wednesday, 2, "CS201"),
			Period("fac-001", models.Monday, 5, "CS101"),
			Period("fac-001", models.Monday, 1, "MA101"),
		}
		week[0].Location = "Room 101"
		if err := repo.SaveTimetable("fac-001", week); err != nil {
			t.Fatalf("SaveTimetable() error = %v", err)
		}

		ok, err := repo.HasTimetable("fac-001")
		if err != nil || !ok {
			t.Fatalf("HasTimetable() = %v, %v", ok, err)
		}

		got, err := repo.ListPeriods("fac-001")
		if err != nil {
			t.Fatalf("ListPeriods() error = %v", err)
		}
		want := []string{"fac-001-Monday-1", "fac-001-Monday-5", "fac-001-Wednesday-2"}
		if len(got) != len(want) {
			t.Fatalf("ListPeriods() len = %d, want %d", len(got), len(want))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("ListPeriods()[%d].ID = %q, want %q", i, got[i].ID, id)
			}
		}
		if got[2] != week[0] {
			t.Errorf("round trip = %+v, want %+v", got[2], week[0])
		}
	})

	t.Run("save timetable replaces week", func(t *testing.T) {
		repo := newRepo(t)
		_ = repo.SaveTimetable("fac-001", []models.Period{Period("fac-001", models.Monday, 1, "CS101")})
		if err := repo.SaveTimetable("fac-001", []models.Period{Period("fac-001", models.Friday, 8, "EE201")}); err != nil {
			t.Fatalf("SaveTimetable() error = %v", err)
		}
		got, _ := repo.ListPeriods("fac-001")
		if len(got) != 1 || got[0].Day != models.Friday {
			t.Errorf("ListPeriods() = %+v, want only the Friday period", got)
		}
	})

	t.Run("weeks are per faculty", func(t *testing.T) {
		repo := newRepo(t)
		_ = repo.SaveTimetable("fac-001", []models.Period{Period("fac-001", models.Monday, 1, "CS101")})
		_ = repo.SaveTimetable("fac-002", []models.Period{Period("fac-002", models.Monday, 1, "PH101")})

		got, _ := repo.ListPeriods("fac-002")
		if len(got) != 1 || got[0].CourseCode != "PH101" {
			t.Errorf("ListPeriods(fac-002) = %+v", got)
		}

		ids, err := repo.ListTimetables()
		if err != nil {
			t.Fatalf("ListTimetables() error = %v", err)
		}
		if len(ids) != 2 || ids[0] != "fac-001" || ids[1] != "fac-002" {
			t.Errorf("ListTimetables() = %v", ids)
		}
	})

	t.Run("save period upserts", func(t *testing.T) {
		repo := newRepo(t)
		p := Period("fac-003", models.Tuesday, 4, "PH201")
		if err := repo.SavePeriod(p); err != nil {
			t.Fatalf("SavePeriod() error = %v", err)
		}
		if ok, _ := repo.HasTimetable("fac-003"); !ok {
			t.Error("SavePeriod() did not mark the week as seeded")
		}

		p.CourseCode = "PH301"
		p.CourseTitle = "Electromagnetism"
		p.Location = "Lab 2"
		if err := repo.SavePeriod(p); err != nil {
			t.Fatalf("SavePeriod() (update) error = %v", err)
		}

		got, _ := repo.ListPeriods("fac-003")
		if len(got) != 1 || got[0] != p {
			t.Errorf("ListPeriods() = %+v, want [%+v]", got, p)
		}
	})

	t.Run("delete period", func(t *testing.T) {
		repo := newRepo(t)
		p := Period("fac-001", models.Thursday, 3, "CS301")
		_ = repo.SaveTimetable("fac-001", []models.Period{p})

		if err := repo.DeletePeriod("fac-001", p.ID); err != nil {
			t.Fatalf("DeletePeriod() error = %v", err)
		}
		if err := repo.DeletePeriod("fac-001", p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeletePeriod() error = %v, want ErrNotFound", err)
		}
		if err := repo.DeletePeriod("fac-002", p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeletePeriod() for another faculty error = %v, want ErrNotFound", err)
		}

		ok, _ := repo.HasTimetable("fac-001")
		if !ok {
			t.Error("emptied week is no longer seeded")
		}
	})

	t.Run("clear timetable", func(t *testing.T) {
		repo := newRepo(t)
		_ = repo.SaveTimetable("fac-001", []models.Period{Period("fac-001", models.Monday, 1, "CS101")})
		if err := repo.ClearTimetable("fac-001"); err != nil {
			t.Fatalf("ClearTimetable() error = %v", err)
		}
		if ok, _ := repo.HasTimetable("fac-001"); ok {
			t.Error("HasTimetable() = true after ClearTimetable")
		}
		if got, _ := repo.ListPeriods("fac-001"); len(got) != 0 {
			t.Errorf("ListPeriods() after clear = %+v", got)
		}
	})
}
