package faculty

import (
	"fmt"
	"strings"

	"github.com/julianstephens/facultyboard/internal/cli"
	"github.com/julianstephens/facultyboard/internal/directory"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/validation"
)

type FacultyListCmd struct {
	Status     string `help:"Only show faculty with this status (available, absent, substituting, substituted)."`
	Department string `help:"Only show faculty in this department."`
	Search     string `help:"Case-insensitive match against name, department and email." short:"s"`
	ShowIDs    bool   `help:"Show faculty IDs." name:"show-ids"`
}

func (c *FacultyListCmd) Run(ctx *cli.Context) error {
	filter := directory.Filter{Query: c.Search, Department: c.Department}
	if c.Status != "" {
		st, err := cli.ParseStatus(c.Status)
		if err != nil {
			return err
		}
		filter.Status = st
	}

	faculty := ctx.Directory.Search(filter)
	if len(faculty) == 0 {
		ctx.Println("No faculty found")
		return nil
	}

	ctx.Println("Faculty:")
	for _, f := range faculty {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", f.ID)
		}
		ctx.Printf("  [%s] %s%s - %s\n", cli.FormatStatus(ctx.Directory, f), f.Name, idStr, f.Department)
	}
	return nil
}

type FacultyShowCmd struct {
	ID string `arg:"" help:"Faculty ID."`
}

func (c *FacultyShowCmd) Run(ctx *cli.Context) error {
	f, err := ctx.LookupFaculty(c.ID)
	if err != nil {
		return err
	}

	ctx.Printf("%s (%s)\n", f.Name, f.ID)
	ctx.Printf("  Department: %s\n", f.Department)
	ctx.Printf("  Email:      %s\n", f.Email)
	if f.Phone != "" {
		ctx.Printf("  Phone:      %s\n", f.Phone)
	}
	ctx.Printf("  Status:     %s\n", cli.FormatStatus(ctx.Directory, f))

	if partner := f.Partner(); partner != "" {
		if _, ok := ctx.Directory.Get(partner); !ok {
			ctx.Printf("  Warning:    partner %s is not in the directory\n", partner)
		}
	}
	return nil
}

type FacultyCountsCmd struct{}

func (c *FacultyCountsCmd) Run(ctx *cli.Context) error {
	counts := ctx.Directory.StatusCounts()
	ctx.Printf("Faculty overview (%d total):\n", counts.Total())
	for _, st := range models.AllStatuses {
		ctx.Printf("  %-13s %d\n", st.Label(), counts.Get(st))
	}
	return nil
}

// FacultyCheckCmd reports substitution references that do not line up.
type FacultyCheckCmd struct{}

func (c *FacultyCheckCmd) Run(ctx *cli.Context) error {
	result := validation.CheckDirectory(ctx.Directory.List())
	ctx.Println(strings.TrimRight(result.FormatReport(), "\n"))
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
