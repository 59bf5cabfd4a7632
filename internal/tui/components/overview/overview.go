package overview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/validation"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			Width(16).
			Align(lipgloss.Center)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true).
			MarginTop(1)

	conflictStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))
)

// Pair is an active substitution as shown on the dashboard.
type Pair struct {
	Absent     string
	Substitute string
}

type Model struct {
	counts    models.StatusCount
	pairs     []Pair
	conflicts []validation.Conflict
	width     int
	height    int
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetDirectory recomputes the dashboard from the full roster. resolve maps
// an id to a display name.
func (m *Model) SetDirectory(faculty []models.Faculty, resolve func(string) string) {
	m.counts = models.CountStatuses(faculty)

	m.pairs = nil
	for _, f := range faculty {
		if f.Status != models.StatusSubstituted || f.SubstitutedBy == "" {
			continue
		}
		m.pairs = append(m.pairs, Pair{Absent: f.Name, Substitute: resolve(f.SubstitutedBy)})
	}

	result := validation.CheckDirectory(faculty)
	m.conflicts = result.Conflicts
}

func (m Model) Counts() models.StatusCount {
	return m.counts
}

func (m Model) Pairs() []Pair {
	return m.pairs
}

func (m Model) Conflicts() []validation.Conflict {
	return m.conflicts
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Faculty overview (%d total)", m.counts.Total())))
	b.WriteString("\n")

	cards := make([]string, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		cards = append(cards, cardStyle.Render(
			countStyle.Render(fmt.Sprintf("%d", m.counts.Get(st)))+"\n"+labelStyle.Render(st.Label()),
		))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Active substitutions"))
	b.WriteString("\n")
	if len(m.pairs) == 0 {
		b.WriteString(labelStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, p := range m.pairs {
		fmt.Fprintf(&b, "  %s  ->  %s\n", p.Absent, p.Substitute)
	}

	b.WriteString(sectionStyle.Render("Consistency"))
	b.WriteString("\n")
	if len(m.conflicts) == 0 {
		b.WriteString(okStyle.Render("  ✓ all substitution links are paired"))
		b.WriteString("\n")
	} else {
		b.WriteString(conflictStyle.Render(fmt.Sprintf("  ⚠ %d conflict(s)", len(m.conflicts))))
		b.WriteString("\n")
		for _, c := range m.conflicts {
			fmt.Fprintf(&b, "  - %s\n", c.Description)
		}
	}

	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
