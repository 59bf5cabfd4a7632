package timetables

import (
	"fmt"

	"github.com/julianstephens/facultyboard/internal/cli"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/timetable"
	"github.com/julianstephens/facultyboard/internal/validation"
)

type TimetableShowCmd struct {
	FacultyID string `arg:"" help:"Faculty ID." name:"faculty-id"`
	Day       string `help:"Only show one weekday (name, abbreviation or 1-5)."`
	ShowIDs   bool   `help:"Show period IDs." name:"show-ids"`
}

func (c *TimetableShowCmd) Run(ctx *cli.Context) error {
	f, err := ctx.LookupFaculty(c.FacultyID)
	if err != nil {
		return err
	}

	days := models.Weekdays
	if c.Day != "" {
		d, err := cli.ParseDay(c.Day)
		if err != nil {
			return err
		}
		days = []models.Day{d}
	}

	week, err := ctx.Timetables.Week(f.ID)
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}

	ctx.Printf("Timetable for %s (%s):\n", f.Name, cli.FormatStatus(ctx.Directory, f))
	grouped := timetable.GroupByDay(week)
	for _, d := range days {
		ctx.Printf("\n%s\n", d)
		if len(grouped[d]) == 0 {
			ctx.Println("  (no classes)")
			continue
		}
		for _, p := range grouped[d] {
			line := cli.FormatPeriod(ctx.Directory, f.ID, p)
			if c.ShowIDs {
				line += fmt.Sprintf(" [%s]", p.ID)
			}
			ctx.Printf("  %s\n", line)
		}
	}
	return nil
}

type TimetableSetCmd struct {
	FacultyID string `arg:"" help:"Faculty ID." name:"faculty-id"`
	Day       string `help:"Weekday (name, abbreviation or 1-5)." required:""`
	Period    int    `help:"Period number (1-8)." required:""`
	Course    string `help:"Course code, e.g. CS101." required:""`
	Title     string `help:"Course title. Required for codes outside the catalog."`
	Location  string `help:"Room or building."`
	From      string `help:"Period ID being moved; it is removed once the new slot is saved."`
}

func (c *TimetableSetCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Day)
	if err != nil {
		return err
	}

	p, err := ctx.Timetables.SavePeriod(c.FacultyID, validation.PeriodInput{
		Day:          string(day),
		PeriodNumber: c.Period,
		CourseCode:   c.Course,
		CourseTitle:  c.Title,
		Location:     c.Location,
		PreviousID:   c.From,
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Saved %s: %s %s (%s-%s)\n", p.ID, p.CourseCode, p.CourseTitle, p.StartTime, p.EndTime)
	return nil
}

type TimetableDeleteCmd struct {
	FacultyID string `arg:"" help:"Faculty ID." name:"faculty-id"`
	PeriodID  string `arg:"" help:"Period ID, e.g. fac-001-Monday-3." name:"period-id"`
}

func (c *TimetableDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Timetables.DeletePeriod(c.FacultyID, c.PeriodID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted period %s\n", c.PeriodID)
	return nil
}

type TimetableRegenerateCmd struct {
	FacultyID string `arg:"" help:"Faculty ID." name:"faculty-id"`
	Yes       bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *TimetableRegenerateCmd) Run(ctx *cli.Context) error {
	f, err := ctx.LookupFaculty(c.FacultyID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Discard the stored week of %s and draw a new one?", f.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Regeneration cancelled.")
			return nil
		}
	}

	week, err := ctx.Timetables.Regenerate(f.ID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Regenerated timetable for %s (%d periods)\n", f.Name, len(week))
	return nil
}
