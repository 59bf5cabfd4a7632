package timetable

import (
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/facultyboard/internal/errors"
	"github.com/julianstephens/facultyboard/internal/logger"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/storage"
	"github.com/julianstephens/facultyboard/internal/validation"
)

// ErrFacultyNotFound is returned for timetable requests naming an unknown faculty.
var ErrFacultyNotFound = apperrors.NotFound("faculty")

// Directory is what the service needs from the faculty directory.
type Directory interface {
	FacultyLookup
	List() []models.Faculty
}

// Service keeps each faculty's week in a repository. A week is generated the
// first time it is requested and edited from then on; the substitution
// overlay is applied on every read so it tracks the faculty's current status.
type Service struct {
	dir  Directory
	repo storage.PeriodRepository
	gen  *Generator
}

func NewService(dir Directory, repo storage.PeriodRepository, gen *Generator) *Service {
	if gen == nil {
		gen = NewGenerator(dir)
	}
	return &Service{dir: dir, repo: repo, gen: gen}
}

// Generator exposes the underlying generator.
func (s *Service) Generator() *Generator {
	return s.gen
}

func (s *Service) faculty(id string) (models.Faculty, error) {
	f, ok := s.dir.Get(id)
	if !ok {
		return models.Faculty{}, fmt.Errorf("%w: %s", ErrFacultyNotFound, id)
	}
	return f, nil
}

// base returns the stored week of f, seeding it on first use.
func (s *Service) base(f models.Faculty) ([]models.Period, error) {
	seeded, err := s.repo.HasTimetable(f.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check timetable for %s: %w", f.ID, err)
	}
	if !seeded {
		week := s.gen.GenerateBase(f.ID)
		if err := s.repo.SaveTimetable(f.ID, week); err != nil {
			return nil, fmt.Errorf("failed to seed timetable for %s: %w", f.ID, err)
		}
		logger.Debug("Seeded timetable", "faculty", f.ID, "periods", len(week))
	}

	periods, err := s.repo.ListPeriods(f.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timetable for %s: %w", f.ID, err)
	}
	return periods, nil
}

// Week returns facultyID's week, sorted, with the substitution overlay applied.
func (s *Service) Week(facultyID string) ([]models.Period, error) {
	f, err := s.faculty(facultyID)
	if err != nil {
		return nil, err
	}
	periods, err := s.base(f)
	if err != nil {
		return nil, err
	}
	week := s.gen.ApplyOverlay(f, periods)
	SortPeriods(week)
	return week, nil
}

// SavePeriod validates input and stores it as one of facultyID's periods.
// The slot times come from the period table and the id is derived from the
// slot, so moving a period replaces whatever held the target slot. A catalog
// course code fills in a missing title.
func (s *Service) SavePeriod(facultyID string, input validation.PeriodInput) (models.Period, error) {
	f, err := s.faculty(facultyID)
	if err != nil {
		return models.Period{}, err
	}

	input = input.Normalize()
	if err := validation.Struct(input); err != nil {
		return models.Period{}, err
	}

	slot, ok := SlotFor(input.PeriodNumber)
	if !ok {
		return models.Period{}, fmt.Errorf("no period %d in the period table", input.PeriodNumber)
	}

	title := input.CourseTitle
	if title == "" {
		course, ok := CourseByCode(input.CourseCode)
		if !ok {
			return models.Period{}, validation.FieldErrors{"courseTitle": "is required for courses outside the catalog"}
		}
		title = course.Title
	}

	// Make sure the week exists so the edit lands on top of it.
	if _, err := s.base(f); err != nil {
		return models.Period{}, err
	}

	day := models.Day(input.Day)
	p := models.Period{
		ID:           models.PeriodID(f.ID, day, slot.Number),
		Day:          day,
		PeriodNumber: slot.Number,
		StartTime:    slot.Start,
		EndTime:      slot.End,
		CourseCode:   input.CourseCode,
		CourseTitle:  title,
		FacultyID:    f.ID,
		Location:     input.Location,
	}

	if input.PreviousID != "" && input.PreviousID != p.ID {
		if err := s.repo.DeletePeriod(f.ID, input.PreviousID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return models.Period{}, fmt.Errorf("failed to move period %s: %w", input.PreviousID, err)
		}
	}
	if err := s.repo.SavePeriod(p); err != nil {
		return models.Period{}, fmt.Errorf("failed to save period %s: %w", p.ID, err)
	}

	logger.Info("Period saved", "faculty", f.ID, "period", p.ID, "course", p.CourseCode)
	return p, nil
}

// DeletePeriod removes one stored period. A miss returns storage.ErrNotFound.
func (s *Service) DeletePeriod(facultyID, periodID string) error {
	f, err := s.faculty(facultyID)
	if err != nil {
		return err
	}
	if _, err := s.base(f); err != nil {
		return err
	}
	if err := s.repo.DeletePeriod(f.ID, periodID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("period %s: %w", periodID, err)
		}
		return fmt.Errorf("failed to delete period %s: %w", periodID, err)
	}
	logger.Info("Period deleted", "faculty", f.ID, "period", periodID)
	return nil
}

// Regenerate throws away facultyID's stored week and draws a new one.
func (s *Service) Regenerate(facultyID string) ([]models.Period, error) {
	f, err := s.faculty(facultyID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearTimetable(f.ID); err != nil {
		return nil, fmt.Errorf("failed to clear timetable for %s: %w", f.ID, err)
	}
	logger.Info("Regenerating timetable", "faculty", f.ID)
	return s.Week(f.ID)
}

// Forget drops the stored week of facultyID. The faculty need not be in the
// directory any more, so removals can clean up after themselves.
func (s *Service) Forget(facultyID string) error {
	if err := s.repo.ClearTimetable(facultyID); err != nil {
		return fmt.Errorf("failed to clear timetable for %s: %w", facultyID, err)
	}
	logger.Debug("Timetable discarded", "faculty", facultyID)
	return nil
}

// AllWeeks returns every directory member's week keyed by faculty id.
func (s *Service) AllWeeks() (map[string][]models.Period, error) {
	all := s.dir.List()
	out := make(map[string][]models.Period, len(all))
	for _, f := range all {
		week, err := s.Week(f.ID)
		if err != nil {
			return nil, err
		}
		out[f.ID] = week
	}
	return out, nil
}
