package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/timetable"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	activeDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Padding(0, 1).
			Bold(true).
			Underline(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	courseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	coverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type AddPeriodMsg struct {
	Day models.Day
}

type EditPeriodMsg struct {
	Period models.Period
}

type DeletePeriodMsg struct {
	Period models.Period
}

type RegenerateMsg struct {
	FacultyID string
}

type PickFacultyMsg struct{}

type KeyMap struct {
	PrevDay    key.Binding
	NextDay    key.Binding
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Regenerate key.Binding
	Pick       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add period")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit period")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete period")),
		Regenerate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "regenerate")),
		Pick:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick faculty")),
	}
}

// Model shows one faculty's week a day at a time.
type Model struct {
	viewport viewport.Model
	keys     KeyMap
	owner    *models.Faculty
	days     map[models.Day][]models.Period
	resolve  func(string) string
	day      int
	cursor   int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
		days:     timetable.GroupByDay(nil),
		resolve:  func(id string) string { return id },
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetWeek replaces the periods shown. The selected day is kept.
func (m *Model) SetWeek(owner models.Faculty, periods []models.Period, resolve func(string) string) {
	if m.owner == nil || m.owner.ID != owner.ID {
		m.cursor = 0
	}
	m.owner = &owner
	m.days = timetable.GroupByDay(periods)
	if resolve != nil {
		m.resolve = resolve
	}
	m.clampCursor()
	m.Render()
}

// Clear drops the shown week, e.g. after its owner was removed.
func (m *Model) Clear() {
	m.owner = nil
	m.days = timetable.GroupByDay(nil)
	m.cursor = 0
	m.Render()
}

// Owner returns the faculty whose week is shown.
func (m Model) Owner() (models.Faculty, bool) {
	if m.owner == nil {
		return models.Faculty{}, false
	}
	return *m.owner, true
}

func (m Model) Day() models.Day {
	return models.Weekdays[m.day]
}

// SetDay selects d if it is a weekday.
func (m *Model) SetDay(d models.Day) {
	if i := d.Index(); i >= 0 {
		m.day = i
		m.cursor = 0
		m.Render()
	}
}

// Selected returns the period under the cursor.
func (m Model) Selected() (models.Period, bool) {
	periods := m.days[m.Day()]
	if m.cursor < 0 || m.cursor >= len(periods) {
		return models.Period{}, false
	}
	return periods[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.days[m.Day()])
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.PrevDay):
			m.day = (m.day + len(models.Weekdays) - 1) % len(models.Weekdays)
			m.cursor = 0
			m.Render()
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.day = (m.day + 1) % len(models.Weekdays)
			m.cursor = 0
			m.Render()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.Render()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.days[m.Day()])-1 {
				m.cursor++
				m.Render()
			}
			return m, nil
		case key.Matches(msg, m.keys.Pick):
			return m, func() tea.Msg { return PickFacultyMsg{} }
		}

		if m.owner == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			day := m.Day()
			return m, func() tea.Msg { return AddPeriodMsg{Day: day} }
		case key.Matches(msg, m.keys.Regenerate):
			id := m.owner.ID
			return m, func() tea.Msg { return RegenerateMsg{FacultyID: id} }
		}

		p, ok := m.Selected()
		if !ok {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditPeriodMsg{Period: p} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeletePeriodMsg{Period: p} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.owner == nil {
		return "No faculty selected. Press 'p' to pick one."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) Render() {
	if m.owner == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n", m.owner.Name, m.owner.Status.Label())

	var tabs []string
	for i, d := range models.Weekdays {
		label := fmt.Sprintf("%s (%d)", d.Short(), len(m.days[d]))
		if i == m.day {
			tabs = append(tabs, activeDayStyle.Render(label))
		} else {
			tabs = append(tabs, dayStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	periods := m.days[m.Day()]
	if len(periods) == 0 {
		b.WriteString("  No classes. Press 'a' to add one.\n")
	}
	for i, p := range periods {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		slot := timeStyle.Render(fmt.Sprintf("P%d %s-%s", p.PeriodNumber, p.StartTime, p.EndTime))
		line := fmt.Sprintf("%s%s %s %s", marker, slot, courseStyle.Render(p.CourseCode), p.CourseTitle)
		if p.Location != "" {
			line += " @ " + p.Location
		}
		if note := m.coverNote(p); note != "" {
			line += " " + coverStyle.Render(note)
		}
		b.WriteString(line + "\n")
	}

	m.viewport.SetContent(b.String())
}

// coverNote describes a period taught on someone else's behalf.
func (m Model) coverNote(p models.Period) string {
	switch {
	case !p.IsCovered():
		return ""
	case p.OriginalFacultyID == m.owner.ID:
		return "covered by " + m.resolve(p.FacultyID)
	default:
		return "covering for " + m.resolve(p.OriginalFacultyID)
	}
}
