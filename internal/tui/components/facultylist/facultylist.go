package facultylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/facultyboard/internal/models"
)

type AddFacultyMsg struct{}

type EditFacultyMsg struct {
	Faculty models.Faculty
}

// SetStatusMsg asks for a plain status change (absent or available).
type SetStatusMsg struct {
	ID     string
	Status models.Status
}

type AssignSubstituteMsg struct {
	Faculty models.Faculty
}

type ReleaseMsg struct {
	ID string
}

type DeleteFacultyMsg struct {
	ID string
}

type OpenTimetableMsg struct {
	ID string
}

type Item struct {
	Faculty models.Faculty
	Partner string // resolved name of the substitution partner
}

func (i Item) Title() string { return i.Faculty.Name }

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Faculty.Department, i.Faculty.Status.Label())
	switch i.Faculty.Status {
	case models.StatusSubstituted:
		if i.Partner != "" {
			desc += " by " + i.Partner
		}
	case models.StatusSubstituting:
		if i.Partner != "" {
			desc += " for " + i.Partner
		}
	}
	return desc
}

func (i Item) FilterValue() string {
	return i.Faculty.Name + " " + i.Faculty.Department + " " + i.Faculty.Email
}

type KeyMap struct {
	Add        key.Binding
	Edit       key.Binding
	Absent     key.Binding
	Available  key.Binding
	Substitute key.Binding
	Release    key.Binding
	Delete     key.Binding
	Filter     key.Binding
	Open       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Absent:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "absent")),
		Available:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "available")),
		Substitute: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "substitute")),
		Release:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "release")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "timetable")),
	}
}

// filterCycle is the order 'f' steps through; "" shows everyone.
var filterCycle = append([]models.Status{""}, models.AllStatuses...)

type Model struct {
	list         list.Model
	keys         KeyMap
	items        []Item
	statusFilter models.Status
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Faculty"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Absent, keys.Substitute}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Absent, keys.Available, keys.Substitute, keys.Release, keys.Delete, keys.Filter, keys.Open}
	}

	return Model{list: l, keys: keys}
}

// SetFaculty replaces the records shown. resolve maps an id to a display name.
func (m *Model) SetFaculty(faculty []models.Faculty, resolve func(string) string) {
	m.items = make([]Item, len(faculty))
	for i, f := range faculty {
		item := Item{Faculty: f}
		if partner := f.Partner(); partner != "" {
			item.Partner = resolve(partner)
		}
		m.items[i] = item
	}
	m.applyFilter()
}

func (m *Model) applyFilter() {
	var items []list.Item
	for _, it := range m.items {
		if m.statusFilter != "" && it.Faculty.Status != m.statusFilter {
			continue
		}
		items = append(items, it)
	}
	m.list.SetItems(items)
}

// CycleFilter steps the status filter and returns the new value.
func (m *Model) CycleFilter() models.Status {
	for i, st := range filterCycle {
		if st == m.statusFilter {
			m.statusFilter = filterCycle[(i+1)%len(filterCycle)]
			break
		}
	}
	m.applyFilter()
	return m.statusFilter
}

func (m Model) StatusFilter() models.Status {
	return m.statusFilter
}

// Filtering reports whether the search prompt has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the highlighted record.
func (m Model) Selected() (models.Faculty, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Faculty, true
	}
	return models.Faculty{}, false
}

// Len is the number of rows currently shown.
func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddFacultyMsg{} }
		case key.Matches(msg, m.keys.Filter):
			m.CycleFilter()
			return m, nil
		}

		f, ok := m.Selected()
		if !ok {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditFacultyMsg{Faculty: f} }
		case key.Matches(msg, m.keys.Absent):
			return m, func() tea.Msg { return SetStatusMsg{ID: f.ID, Status: models.StatusAbsent} }
		case key.Matches(msg, m.keys.Available):
			return m, func() tea.Msg { return SetStatusMsg{ID: f.ID, Status: models.StatusAvailable} }
		case key.Matches(msg, m.keys.Substitute):
			return m, func() tea.Msg { return AssignSubstituteMsg{Faculty: f} }
		case key.Matches(msg, m.keys.Release):
			return m, func() tea.Msg { return ReleaseMsg{ID: f.ID} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteFacultyMsg{ID: f.ID} }
		case key.Matches(msg, m.keys.Open):
			return m, func() tea.Msg { return OpenTimetableMsg{ID: f.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := "All faculty"
	if m.statusFilter != "" {
		header = "Status: " + m.statusFilter.Label()
	}
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return header + "\n\n  No faculty to show.\n  Press 'a' to add one or 'f' to change the filter."
	}
	return header + "\n" + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-1)
}
