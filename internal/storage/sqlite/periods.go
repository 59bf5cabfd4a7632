package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/facultyboard/internal/logger"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/storage"
)

const periodColumns = "id, faculty_id, day, period_number, start_time, end_time, course_code, course_title, location"

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *Store) HasTimetable(facultyID string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM timetables WHERE faculty_id = ?", facultyID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check timetable: %w", err)
	}
	return n > 0, nil
}

func (s *Store) SaveTimetable(facultyID string, periods []models.Period) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM periods WHERE faculty_id = ?", facultyID); err != nil {
		return fmt.Errorf("failed to clear periods: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO timetables (faculty_id, generated_at) VALUES (?, ?) ON CONFLICT(faculty_id) DO UPDATE SET generated_at = excluded.generated_at",
		facultyID, now(),
	); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}

	for _, p := range periods {
		p.FacultyID = facultyID
		if err := insertPeriod(tx, p); err != nil {
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

	if _, err := tx.Exec("DELETE FROM periods WHERE faculty_id = ?", facultyID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM timetables WHERE faculty_id = ?", facultyID); err != nil {
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
		WHERE faculty_id = ?
		ORDER BY CASE day
			WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3
			WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 END, period_number`,
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
		"INSERT INTO timetables (faculty_id, generated_at) VALUES (?, ?) ON CONFLICT(faculty_id) DO NOTHING",
		p.FacultyID, now(),
	); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}

	// One period per slot: drop whatever else occupies it.
	if _, err := tx.Exec(
		"DELETE FROM periods WHERE faculty_id = ? AND day = ? AND period_number = ? AND id <> ?",
		p.FacultyID, string(p.Day), p.PeriodNumber, p.ID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO periods (`+periodColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			faculty_id = excluded.faculty_id,
			day = excluded.day,
			period_number = excluded.period_number,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			course_code = excluded.course_code,
			course_title = excluded.course_title,
			location = excluded.location,
			updated_at = excluded.updated_at`,
		p.ID, p.FacultyID, string(p.Day), p.PeriodNumber, p.StartTime, p.EndTime,
		p.CourseCode, p.CourseTitle, p.Location, now(),
	); err != nil {
		return fmt.Errorf("failed to save period: %w", err)
	}

	return tx.Commit()
}

func (s *Store) DeletePeriod(facultyID, periodID string) error {
	res, err := s.db.Exec("DELETE FROM periods WHERE faculty_id = ? AND id = ?", facultyID, periodID)
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

func insertPeriod(tx *sql.Tx, p models.Period) error {
	_, err := tx.Exec(
		"INSERT INTO periods ("+periodColumns+", updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.FacultyID, string(p.Day), p.PeriodNumber, p.StartTime, p.EndTime,
		p.CourseCode, p.CourseTitle, p.Location, now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert period %s: %w", p.ID, err)
	}
	return nil
}
