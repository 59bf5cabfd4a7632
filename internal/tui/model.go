package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/directory"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/timetable"
	"github.com/julianstephens/facultyboard/internal/tui/components/facultylist"
	"github.com/julianstephens/facultyboard/internal/tui/components/overview"
	"github.com/julianstephens/facultyboard/internal/tui/components/week"
)

type Model struct {
	dir           *directory.Store
	timetables    *timetable.Service
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	overview      overview.Model
	facultyList   facultylist.Model
	week          week.Model
	form          *huh.Form
	facultyForm   *FacultyFormModel
	periodForm    *PeriodFormModel
	pickForm      *PickFormModel
	quitting      bool
	width         int
	height        int

	editingFacultyID string // empty while adding
	editingPeriodID  string // empty while adding
	substituteFor    string // absent faculty awaiting a substitute
	facultyToDelete  string
	periodToDelete   models.Period

	statusLine string
	errorLine  string
}

func NewModel(dir *directory.Store, timetables *timetable.Service) Model {
	m := Model{
		dir:         dir,
		timetables:  timetables,
		state:       constants.StateOverview,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		overview:    overview.New(),
		facultyList: facultylist.New(0, 0),
		week:        week.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads every view from the directory. The shown week is reloaded
// too since its overlay depends on its owner's status.
func (m *Model) refresh() {
	all := m.dir.List()
	m.facultyList.SetFaculty(all, m.dir.Resolve)
	m.overview.SetDirectory(all, m.dir.Resolve)

	owner, ok := m.week.Owner()
	if !ok {
		return
	}
	if _, exists := m.dir.Get(owner.ID); !exists {
		m.week.Clear()
		return
	}
	if err := m.loadWeek(owner.ID); err != nil {
		m.setError(err)
	}
}

func (m *Model) loadWeek(facultyID string) error {
	f, ok := m.dir.Get(facultyID)
	if !ok {
		return fmt.Errorf("%w: %s", directory.ErrNotFound, facultyID)
	}
	periods, err := m.timetables.Week(facultyID)
	if err != nil {
		return err
	}
	m.week.SetWeek(f, periods, m.dir.Resolve)
	return nil
}

func (m *Model) setStatus(format string, args ...any) {
	m.statusLine = fmt.Sprintf(format, args...)
	m.errorLine = ""
}

func (m *Model) setError(err error) {
	m.errorLine = err.Error()
	m.statusLine = ""
}

// mainView is the tab shown behind any dialog.
func (m Model) mainView() constants.SessionState {
	if isMainView(m.state) {
		return m.state
	}
	return m.previousState
}

func isMainView(s constants.SessionState) bool {
	for _, v := range constants.MainViews {
		if v == s {
			return true
		}
	}
	return false
}

// openDialog switches to a form or confirmation, remembering the tab to
// return to.
func (m *Model) openDialog(s constants.SessionState) {
	m.previousState = m.mainView()
	m.state = s
}

func (m *Model) closeDialog() {
	m.state = m.previousState
	m.form = nil
	m.facultyForm = nil
	m.periodForm = nil
	m.pickForm = nil
}

func (m *Model) resize() {
	// tabs, status line, help and the document padding
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.overview.SetSize(w, h)
	m.facultyList.SetSize(w, h)
	m.week.SetSize(w, h)
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateFaculty:
		return []key.Binding{m.keys.Tab, m.keys.Add, m.keys.Edit, m.keys.Absent, m.keys.Substitute, m.keys.Open, m.keys.Help, m.keys.Quit}
	case constants.StateTimetable:
		return []key.Binding{m.keys.Tab, m.keys.Left, m.keys.Right, m.keys.Add, m.keys.Pick, m.keys.Help, m.keys.Quit}
	case constants.StateConfirmDelete, constants.StateConfirmDeletePeriod, constants.StateConfirmRegenerate:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case constants.StateEditFaculty, constants.StateEditPeriod, constants.StatePickSubstitute, constants.StatePickFaculty:
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	switch m.state {
	case constants.StateFaculty:
		return [][]key.Binding{
			global,
			{m.keys.Up, m.keys.Down, m.keys.Search, m.keys.Filter, m.keys.Open},
			{m.keys.Add, m.keys.Edit, m.keys.Delete},
			{m.keys.Absent, m.keys.Available, m.keys.Substitute, m.keys.Release},
		}
	case constants.StateTimetable:
		return [][]key.Binding{
			global,
			{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right},
			{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Regenerate, m.keys.Pick},
		}
	case constants.StateOverview:
		return [][]key.Binding{global}
	}
	return [][]key.Binding{m.ShortHelp()}
}
