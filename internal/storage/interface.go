package storage

import (
	apperrors "github.com/julianstephens/facultyboard/internal/errors"
	"github.com/julianstephens/facultyboard/internal/models"
)

// ErrNotFound is returned when a stored period does not exist.
var ErrNotFound = apperrors.NotFound("period")

// PeriodRepository persists each faculty's base week: periods as they were
// seeded or edited, before any substitution overlay.
type PeriodRepository interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Timetables
	// HasTimetable reports whether facultyID's week has been seeded. A seeded
	// week stays seeded after all of its periods are deleted.
	HasTimetable(facultyID string) (bool, error)
	// SaveTimetable replaces facultyID's whole week.
	SaveTimetable(facultyID string, periods []models.Period) error
	ClearTimetable(facultyID string) error
	// ListTimetables returns the ids of every seeded faculty.
	ListTimetables() ([]string, error)

	// Periods
	ListPeriods(facultyID string) ([]models.Period, error)
	// SavePeriod inserts or replaces the period with p.ID and marks the
	// owning week as seeded.
	SavePeriod(p models.Period) error
	DeletePeriod(facultyID, periodID string) error

	// Utils
	GetConfigPath() string
}
