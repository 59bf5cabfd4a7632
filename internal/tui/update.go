package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}

	switch m.state {
	case constants.StateEditFaculty, constants.StateEditPeriod, constants.StatePickSubstitute, constants.StatePickFaculty:
		cmd := m.updateForm(msg)
		return m, cmd
	case constants.StateConfirmDelete, constants.StateConfirmDeletePeriod, constants.StateConfirmRegenerate:
		m.updateConfirm(msg)
		return m, nil
	}

	if handled, cmd := m.handleComponentMessage(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		// While the search prompt is open every key belongs to the list.
		if !m.facultyList.Filtering() {
			m.statusLine = ""
			m.errorLine = ""
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab):
				m.cycleView(1)
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.cycleView(-1)
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateOverview:
		m.overview, cmd = m.overview.Update(msg)
	case constants.StateFaculty:
		m.facultyList, cmd = m.facultyList.Update(msg)
	case constants.StateTimetable:
		m.week, cmd = m.week.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleView(step int) {
	n := len(constants.MainViews)
	for i, v := range constants.MainViews {
		if v == m.state {
			m.state = constants.MainViews[(i+step+n)%n]
			return
		}
	}
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeDialog()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		state := m.state
		if err := m.submitForm(); err != nil {
			logger.Warn("Form submission failed", "error", err)
			m.setError(err)
		}
		// A picked faculty opens on the timetable tab.
		m.closeDialog()
		if state == constants.StatePickFaculty && m.errorLine == "" {
			m.state = constants.StateTimetable
		}
	case huh.StateAborted:
		m.closeDialog()
	}
	return cmd
}

func (m *Model) submitForm() error {
	switch m.state {
	case constants.StateEditFaculty:
		return m.saveFaculty()
	case constants.StateEditPeriod:
		return m.savePeriod()
	case constants.StatePickSubstitute:
		return m.assignSubstitute(m.substituteFor, m.pickForm.FacultyID)
	case constants.StatePickFaculty:
		return m.loadWeek(m.pickForm.FacultyID)
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		var err error
		switch m.state {
		case constants.StateConfirmDelete:
			err = m.removeFaculty(m.facultyToDelete)
		case constants.StateConfirmDeletePeriod:
			err = m.deletePeriod(m.periodToDelete)
		case constants.StateConfirmRegenerate:
			err = m.regenerate()
		}
		if err != nil {
			m.setError(err)
		}
		m.facultyToDelete = ""
		m.closeDialog()
	case key.Matches(keyMsg, m.keys.Cancel):
		m.facultyToDelete = ""
		m.closeDialog()
	}
}
