package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/facultyboard/internal/logger"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/storage"
)

const periodColumns = "id, faculty_id, day, period_number, start_time, end_time, course_code, course_title, location"

func (s *Store) HasTimetable(facultyID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS (SELECT 1 FROM timetables WHERE faculty_id = $1)", facultyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check timetable: %w", err)
	}
	return exists, nil
}

func (s *Store) SaveTimetable(facultyID string, periods []models.Period) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM periods WHERE faculty_id = $1", facultyID); err != nil {
		return fmt.Errorf("failed to clear periods: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO timetables (faculty_id, generated_at) VALUES ($1, $2) ON CONFLICT (faculty_id) DO UPDATE SET generated_at = EXCLUDED.generated_at",
		facultyID, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}

	for _, p := range periods {
		p.FacultyID = facultyID
		if err := upsertPeriod(tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Debug("Timetable saved", "faculty", facultyID, "periods", len(periods))
	return nil
}

func (s *Store) ClearTimetable(facultyID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM periods WHERE faculty_id = $1", facultyID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM timetables WHERE faculty_id = $1", facultyID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) ListTimetables() ([]string, error) {
	rows, err := s.db.Query("SELECT faculty_id FROM timetables ORDER BY faculty_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) ListPeriods(facultyID string) ([]models.Period, error) {
	rows, err := s.db.Query(`
		SELECT `+periodColumns+` FROM periods
		WHERE faculty_id = $1
		ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday'], day), period_number`,
		facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := []models.Period{}
	for rows.Next() {
		var p models.Period
		var day string
		if err := rows.Scan(&p.ID, &p.FacultyID, &day, &p.PeriodNumber, &p.StartTime, &p.EndTime,
			&p.CourseCode, &p.CourseTitle, &p.Location); err != nil {
			return nil, err
		}
		p.Day = models.Day(day)
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) SavePeriod(p models.Period) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO timetables (faculty_id, generated_at) VALUES ($1, $2) ON CONFLICT (faculty_id) DO NOTHING",
		p.FacultyID, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}

	if _, err := tx.Exec(
		"DELETE FROM periods WHERE faculty_id = $1 AND day = $2 AND period_number = $3 AND id <> $4",
		p.FacultyID, string(p.Day), p.PeriodNumber, p.ID,
	); err != nil {
		return err
	}

	if err := upsertPeriod(tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeletePeriod(facultyID, periodID string) error {
	res, err := s.db.Exec("DELETE FROM periods WHERE faculty_id = $1 AND id = $2", facultyID, periodID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func upsertPeriod(tx *sql.Tx, p models.Period) error {
	_, err := tx.Exec(`
		INSERT INTO periods (`+periodColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			faculty_id = EXCLUDED.faculty_id,
			day = EXCLUDED.day,
			period_number = EXCLUDED.period_number,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			course_code = EXCLUDED.course_code,
			course_title = EXCLUDED.course_title,
			location = EXCLUDED.location,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.FacultyID, string(p.Day), p.PeriodNumber, p.StartTime, p.EndTime,
		p.CourseCode, p.CourseTitle, p.Location, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save period %s: %w", p.ID, err)
	}
	return nil
}
