package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/timetable"
	"github.com/julianstephens/facultyboard/internal/validation"
)

// otherCourse is the course select value for codes outside the catalog.
const otherCourse = "__other__"

// FacultyFormModel backs the add/edit faculty form.
type FacultyFormModel struct {
	Name       string
	Department string
	Email      string
	Phone      string
	Status     models.Status
}

// PeriodFormModel backs the period editor.
type PeriodFormModel struct {
	Day          models.Day
	PeriodNumber int
	CourseCode   string
	CustomCode   string
	CustomTitle  string
	Location     string
}

// PickFormModel backs the substitute and faculty pickers.
type PickFormModel struct {
	FacultyID string
}

func fieldValidator(tag string) func(string) error {
	return func(s string) error {
		return validation.Field(strings.TrimSpace(s), tag)
	}
}

// NewFacultyForm builds the faculty editor. New records also choose a
// starting status; substitution states are only reachable by pairing.
func NewFacultyForm(fm *FacultyFormModel, adding bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Value(&fm.Name).
			Validate(fieldValidator("required,min=2,max=100")),
		huh.NewInput().
			Title("Department").
			Value(&fm.Department).
			Validate(fieldValidator("required,min=2,max=100")),
		huh.NewInput().
			Title("Email").
			Value(&fm.Email).
			Validate(fieldValidator("required,email")),
		huh.NewInput().
			Title("Phone").
			Description("Optional").
			Value(&fm.Phone).
			Validate(fieldValidator("omitempty,max=32")),
	}
	if adding {
		fields = append(fields, huh.NewSelect[models.Status]().
			Title("Status").
			Options(
				huh.NewOption(models.StatusAvailable.Label(), models.StatusAvailable),
				huh.NewOption(models.StatusAbsent.Label(), models.StatusAbsent),
			).
			Value(&fm.Status))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

// NewPeriodForm builds the period editor. Picking "Other" reveals a second
// group for a course code and title outside the catalog.
func NewPeriodForm(fm *PeriodFormModel) *huh.Form {
	days := make([]huh.Option[models.Day], 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		days = append(days, huh.NewOption(string(d), d))
	}

	slots := make([]huh.Option[int], 0, len(timetable.PeriodTable))
	for _, s := range timetable.PeriodTable {
		slots = append(slots, huh.NewOption(fmt.Sprintf("P%d  %s-%s", s.Number, s.Start, s.End), s.Number))
	}

	courses := make([]huh.Option[string], 0, len(timetable.Catalog)+1)
	for _, c := range timetable.Catalog {
		courses = append(courses, huh.NewOption(c.Code+"  "+c.Title, c.Code))
	}
	courses = append(courses, huh.NewOption("Other...", otherCourse))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Day]().
				Title("Day").
				Options(days...).
				Value(&fm.Day),
			huh.NewSelect[int]().
				Title("Period").
				Options(slots...).
				Value(&fm.PeriodNumber),
			huh.NewSelect[string]().
				Title("Course").
				Options(courses...).
				Height(8).
				Value(&fm.CourseCode),
			huh.NewInput().
				Title("Location").
				Description("Optional").
				Value(&fm.Location).
				Validate(fieldValidator("max=64")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Course code").
				Value(&fm.CustomCode).
				Validate(fieldValidator("required,max=16")),
			huh.NewInput().
				Title("Course title").
				Value(&fm.CustomTitle).
				Validate(fieldValidator("required,max=120")),
		).WithHideFunc(func() bool {
			return fm.CourseCode != otherCourse
		}),
	).WithTheme(huh.ThemeDracula())
}

// Input converts the form into what the timetable service accepts.
func (fm PeriodFormModel) Input(previousID string) validation.PeriodInput {
	in := validation.PeriodInput{
		Day:          string(fm.Day),
		PeriodNumber: fm.PeriodNumber,
		CourseCode:   fm.CourseCode,
		Location:     fm.Location,
		PreviousID:   previousID,
	}
	if fm.CourseCode == otherCourse {
		in.CourseCode = fm.CustomCode
		in.CourseTitle = fm.CustomTitle
	}
	return in
}

// periodFormFrom pre-fills the editor. A catalog code carrying a different
// title is treated as a custom course so the title survives.
func periodFormFrom(p models.Period) *PeriodFormModel {
	fm := &PeriodFormModel{
		Day:          p.Day,
		PeriodNumber: p.PeriodNumber,
		CourseCode:   p.CourseCode,
		Location:     p.Location,
	}
	if c, ok := timetable.CourseByCode(p.CourseCode); !ok || c.Title != p.CourseTitle {
		fm.CourseCode = otherCourse
		fm.CustomCode = p.CourseCode
		fm.CustomTitle = p.CourseTitle
	}
	return fm
}

// NewPickerForm builds a single select over faculty records.
func NewPickerForm(fm *PickFormModel, title string, faculty []models.Faculty, suggested string) *huh.Form {
	options := make([]huh.Option[string], 0, len(faculty))
	for _, f := range faculty {
		label := fmt.Sprintf("%s (%s, %s)", f.Name, f.Department, f.Status.Label())
		if f.ID == suggested {
			label += "  [suggested]"
		}
		options = append(options, huh.NewOption(label, f.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Height(10).
				Value(&fm.FacultyID),
		),
	).WithTheme(huh.ThemeDracula())
}
