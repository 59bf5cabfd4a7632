package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/facultyboard/internal/backup"
	"github.com/julianstephens/facultyboard/internal/config"
	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/directory"
	"github.com/julianstephens/facultyboard/internal/logger"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/storage"
	"github.com/julianstephens/facultyboard/internal/timetable"
)

// Context is handed to every command's Run method.
type Context struct {
	Directory  *directory.Store
	Timetables *timetable.Service
	Store      storage.PeriodRepository
	Backend    config.Backend
	Config     config.File
	ConfigDir  string

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader
}

func (c *Context) stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted output to the command's stdout.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.stdout(), format, args...)
}

// Println writes a line to the command's stdout.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.stdout(), args...)
}

// Confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// PerformAutomaticBackup snapshots the SQLite timetable database. Other
// backends are skipped and failures are only logged.
func (c *Context) PerformAutomaticBackup() {
	if c.Backend.Kind != constants.BackendSQLite || c.Store == nil {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LookupFaculty returns the directory record for id.
func (c *Context) LookupFaculty(id string) (models.Faculty, error) {
	f, ok := c.Directory.Get(id)
	if !ok {
		return models.Faculty{}, fmt.Errorf("%w: %s", directory.ErrNotFound, id)
	}
	return f, nil
}

// ParseDay accepts a weekday name, its three letter abbreviation or its
// position (1=Monday ... 5=Friday), case-insensitively.
func ParseDay(s string) (models.Day, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	for _, d := range models.Weekdays {
		name := strings.ToLower(string(d))
		if part == name || part == name[:3] {
			return d, nil
		}
	}
	if num, err := strconv.Atoi(part); err == nil && num >= 1 && num <= len(models.Weekdays) {
		return models.Weekdays[num-1], nil
	}
	return "", fmt.Errorf("invalid weekday: %s (want Monday through Friday)", s)
}

// ParseStatus accepts one of the four status names, case-insensitively.
func ParseStatus(s string) (models.Status, error) {
	st := models.Status(strings.TrimSpace(strings.ToLower(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}

// FormatStatus renders a record's status, naming the substitution partner
// when there is one.
func FormatStatus(dir *directory.Store, f models.Faculty) string {
	switch {
	case f.Status == models.StatusSubstituted && f.SubstitutedBy != "":
		return fmt.Sprintf("substituted by %s", dir.Resolve(f.SubstitutedBy))
	case f.Status == models.StatusSubstituting && f.Substituting != "":
		return fmt.Sprintf("substituting for %s", dir.Resolve(f.Substituting))
	default:
		return string(f.Status)
	}
}

// FormatPeriod renders one line of owner's timetable.
func FormatPeriod(dir *directory.Store, owner string, p models.Period) string {
	line := fmt.Sprintf("%d  %s-%s  %-6s %s", p.PeriodNumber, p.StartTime, p.EndTime, p.CourseCode, p.CourseTitle)
	if p.Location != "" {
		line += fmt.Sprintf(" @ %s", p.Location)
	}
	switch {
	case !p.IsCovered():
	case p.OriginalFacultyID == owner:
		line += fmt.Sprintf("  (covered by %s)", dir.Resolve(p.FacultyID))
	default:
		line += fmt.Sprintf("  (covering for %s)", dir.Resolve(p.OriginalFacultyID))
	}
	return line
}
