package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/directory"
	"github.com/julianstephens/facultyboard/internal/logger"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/timetable"
	"github.com/julianstephens/facultyboard/internal/tui/components/facultylist"
	"github.com/julianstephens/facultyboard/internal/tui/components/week"
	"github.com/julianstephens/facultyboard/internal/validation"
)

var errNoCandidates = errors.New("no available faculty can substitute")

// handleComponentMessage reacts to the requests the faculty list and week
// view emit.
func (m *Model) handleComponentMessage(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case facultylist.AddFacultyMsg:
		m.editingFacultyID = ""
		m.facultyForm = &FacultyFormModel{Status: models.StatusAvailable}
		m.form = NewFacultyForm(m.facultyForm, true)
		m.openDialog(constants.StateEditFaculty)
		return true, m.form.Init()

	case facultylist.EditFacultyMsg:
		f := msg.Faculty
		m.editingFacultyID = f.ID
		m.facultyForm = &FacultyFormModel{
			Name:       f.Name,
			Department: f.Department,
			Email:      f.Email,
			Phone:      f.Phone,
			Status:     f.Status,
		}
		m.form = NewFacultyForm(m.facultyForm, false)
		m.openDialog(constants.StateEditFaculty)
		return true, m.form.Init()

	case facultylist.SetStatusMsg:
		if err := m.changeStatus(msg.ID, msg.Status); err != nil {
			m.setError(err)
		}
		return true, nil

	case facultylist.AssignSubstituteMsg:
		return true, m.openSubstitutePicker(msg.Faculty)

	case facultylist.ReleaseMsg:
		if err := m.release(msg.ID); err != nil {
			m.setError(err)
		}
		return true, nil

	case facultylist.DeleteFacultyMsg:
		m.facultyToDelete = msg.ID
		m.openDialog(constants.StateConfirmDelete)
		return true, nil

	case facultylist.OpenTimetableMsg:
		if err := m.loadWeek(msg.ID); err != nil {
			m.setError(err)
			return true, nil
		}
		m.state = constants.StateTimetable
		return true, nil

	case week.AddPeriodMsg:
		m.editingPeriodID = ""
		m.periodForm = &PeriodFormModel{
			Day:          msg.Day,
			PeriodNumber: 1,
			CourseCode:   timetable.Catalog[0].Code,
		}
		m.form = NewPeriodForm(m.periodForm)
		m.openDialog(constants.StateEditPeriod)
		return true, m.form.Init()

	case week.EditPeriodMsg:
		m.editingPeriodID = msg.Period.ID
		m.periodForm = periodFormFrom(msg.Period)
		m.form = NewPeriodForm(m.periodForm)
		m.openDialog(constants.StateEditPeriod)
		return true, m.form.Init()

	case week.DeletePeriodMsg:
		m.periodToDelete = msg.Period
		m.openDialog(constants.StateConfirmDeletePeriod)
		return true, nil

	case week.RegenerateMsg:
		m.openDialog(constants.StateConfirmRegenerate)
		return true, nil

	case week.PickFacultyMsg:
		all := m.dir.List()
		if len(all) == 0 {
			m.setError(errors.New("the directory is empty"))
			return true, nil
		}
		m.pickForm = &PickFormModel{}
		if owner, ok := m.week.Owner(); ok {
			m.pickForm.FacultyID = owner.ID
		}
		m.form = NewPickerForm(m.pickForm, "Show timetable for", all, "")
		m.openDialog(constants.StatePickFaculty)
		return true, m.form.Init()
	}
	return false, nil
}

func (m *Model) saveFaculty() error {
	fm := m.facultyForm
	input := validation.FacultyInput{
		Name:       fm.Name,
		Department: fm.Department,
		Email:      fm.Email,
		Phone:      fm.Phone,
		Status:     string(fm.Status),
	}.Normalize()
	if err := validation.Struct(input); err != nil {
		return err
	}

	if m.editingFacultyID == "" {
		f := m.dir.Add(input.Faculty())
		m.refresh()
		m.setStatus("Added %s (%s)", f.Name, f.ID)
		return nil
	}

	f, ok := m.dir.Update(m.editingFacultyID, input.Faculty())
	if !ok {
		return fmt.Errorf("%w: %s", directory.ErrNotFound, m.editingFacultyID)
	}
	m.refresh()
	m.setStatus("Updated %s", f.Name)
	return nil
}

// changeStatus moves a record to absent or available. Any substitution it
// takes part in is released first so the partner is not left pointing at it.
func (m *Model) changeStatus(id string, status models.Status) error {
	f, ok := m.dir.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", directory.ErrNotFound, id)
	}
	if f.Partner() != "" {
		if _, err := m.dir.ReleaseSubstitution(id); err != nil {
			return err
		}
	}
	if _, ok := m.dir.UpdateStatus(id, status, "", ""); !ok {
		return fmt.Errorf("could not mark %s as %s", f.Name, status.Label())
	}
	m.refresh()
	m.setStatus("%s is now %s", f.Name, status.Label())
	return nil
}

func (m *Model) openSubstitutePicker(f models.Faculty) tea.Cmd {
	if f.Status != models.StatusAbsent {
		m.setError(fmt.Errorf("only absent faculty can be given a substitute (%s is %s)", f.Name, f.Status.Label()))
		return nil
	}

	suggested, ok := m.dir.FindSubstitute(f.ID)
	if !ok {
		m.setError(errNoCandidates)
		return nil
	}

	candidates := []models.Faculty{suggested}
	for _, c := range m.dir.Search(directory.Filter{Status: models.StatusAvailable}) {
		if c.ID != f.ID && c.ID != suggested.ID {
			candidates = append(candidates, c)
		}
	}

	m.substituteFor = f.ID
	m.pickForm = &PickFormModel{FacultyID: suggested.ID}
	m.form = NewPickerForm(m.pickForm, "Substitute for "+f.Name, candidates, suggested.ID)
	m.openDialog(constants.StatePickSubstitute)
	return m.form.Init()
}

func (m *Model) assignSubstitute(absentID, substituteID string) error {
	absent, substitute, err := m.dir.PairSubstitution(absentID, substituteID)
	if err != nil {
		return err
	}
	m.substituteFor = ""
	m.refresh()
	m.setStatus("%s is covered by %s", absent.Name, substitute.Name)
	return nil
}

func (m *Model) release(id string) error {
	f, ok := m.dir.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", directory.ErrNotFound, id)
	}
	if f.Partner() == "" {
		return fmt.Errorf("%s has no active substitution", f.Name)
	}
	if _, err := m.dir.ReleaseSubstitution(id); err != nil {
		return err
	}
	m.refresh()
	m.setStatus("Released the substitution of %s", f.Name)
	return nil
}

// removeFaculty deletes a record along with its stored week.
func (m *Model) removeFaculty(id string) error {
	name := m.dir.Resolve(id)
	if !m.dir.Remove(id) {
		return fmt.Errorf("%w: %s", directory.ErrNotFound, id)
	}
	if err := m.timetables.Forget(id); err != nil {
		logger.Warn("Failed to discard timetable of removed faculty", "id", id, "error", err)
	}
	m.refresh()
	m.setStatus("Removed %s", name)
	return nil
}

func (m *Model) savePeriod() error {
	owner, ok := m.week.Owner()
	if !ok {
		return errors.New("no faculty selected")
	}
	p, err := m.timetables.SavePeriod(owner.ID, m.periodForm.Input(m.editingPeriodID))
	if err != nil {
		return err
	}
	if err := m.loadWeek(owner.ID); err != nil {
		return err
	}
	m.week.SetDay(p.Day)
	m.setStatus("Saved %s P%d: %s", p.Day, p.PeriodNumber, p.CourseCode)
	return nil
}

func (m *Model) deletePeriod(p models.Period) error {
	owner, ok := m.week.Owner()
	if !ok {
		return errors.New("no faculty selected")
	}
	if err := m.timetables.DeletePeriod(owner.ID, p.ID); err != nil {
		return err
	}
	if err := m.loadWeek(owner.ID); err != nil {
		return err
	}
	m.setStatus("Deleted %s P%d", p.Day, p.PeriodNumber)
	return nil
}

func (m *Model) regenerate() error {
	owner, ok := m.week.Owner()
	if !ok {
		return errors.New("no faculty selected")
	}
	periods, err := m.timetables.Regenerate(owner.ID)
	if err != nil {
		return err
	}
	if err := m.loadWeek(owner.ID); err != nil {
		return err
	}
	m.setStatus("Regenerated %d periods for %s", len(periods), owner.Name)
	return nil
}
