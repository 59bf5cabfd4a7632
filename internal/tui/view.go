package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/facultyboard/internal/constants"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateOverview:  "Overview",
	constants.StateFaculty:   "Faculty",
	constants.StateTimetable: "Timetable",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateOverview:
		content = docStyle.Render(m.overview.View())
	case constants.StateFaculty:
		content = docStyle.Render(m.facultyList.View())
	case constants.StateTimetable:
		content = docStyle.Render(m.week.View())
	case constants.StateEditFaculty, constants.StateEditPeriod, constants.StatePickSubstitute, constants.StatePickFaculty:
		content = docStyle.Render(m.formTitle() + "\n\n" + m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirm(
			dangerStyle.Render(fmt.Sprintf("Remove %s from the directory?", m.dir.Resolve(m.facultyToDelete))),
			warningStyle.Render("Their stored timetable is discarded too."),
		)
	case constants.StateConfirmDeletePeriod:
		p := m.periodToDelete
		content = m.viewConfirm(
			dangerStyle.Render(fmt.Sprintf("Delete %s P%d (%s)?", p.Day, p.PeriodNumber, p.CourseCode)),
		)
	case constants.StateConfirmRegenerate:
		owner, _ := m.week.Owner()
		content = m.viewConfirm(
			dangerStyle.Render(fmt.Sprintf("Regenerate the timetable of %s?", owner.Name)),
			warningStyle.Render("All edits to this week are lost."),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatusLine(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.mainView()
	var tabs []string
	for _, v := range constants.MainViews {
		if v == active {
			tabs = append(tabs, activeTabStyle.Render(tabTitles[v]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabTitles[v]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatusLine() string {
	switch {
	case m.errorLine != "":
		return dangerStyle.Render("✗ " + m.errorLine)
	case m.statusLine != "":
		return statusLineStyle.Render("✓ " + m.statusLine)
	}
	return ""
}

func (m Model) formTitle() string {
	switch m.state {
	case constants.StateEditFaculty:
		if m.editingFacultyID == "" {
			return "Add faculty"
		}
		return "Edit " + m.dir.Resolve(m.editingFacultyID)
	case constants.StateEditPeriod:
		owner, _ := m.week.Owner()
		if m.editingPeriodID == "" {
			return "Add period for " + owner.Name
		}
		return "Edit period of " + owner.Name
	case constants.StatePickSubstitute:
		return "Assign substitute"
	case constants.StatePickFaculty:
		return "Pick faculty"
	}
	return ""
}

func (m Model) viewConfirm(lines ...string) string {
	lines = append(lines, "", "[y] Yes", "[n] No")
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}
