package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/facultyboard/internal/cli"
	"github.com/julianstephens/facultyboard/internal/cli/backups"
	"github.com/julianstephens/facultyboard/internal/cli/connection"
	"github.com/julianstephens/facultyboard/internal/cli/faculty"
	"github.com/julianstephens/facultyboard/internal/cli/system"
	"github.com/julianstephens/facultyboard/internal/cli/timetables"
	"github.com/julianstephens/facultyboard/internal/config"
	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/directory"
	apperrors "github.com/julianstephens/facultyboard/internal/errors"
	"github.com/julianstephens/facultyboard/internal/logger"
	"github.com/julianstephens/facultyboard/internal/models"
	"github.com/julianstephens/facultyboard/internal/storage"
	"github.com/julianstephens/facultyboard/internal/timetable"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, logs and the default database." env:"FACULTYBOARD_CONFIG_DIR" default:"${config_dir}" name:"config-dir"`
	DB        string `help:"Timetable storage: empty for in-memory, a file path (SQLite, or JSON for *.json), 'sqlite' for the default database, a PostgreSQL connection string without password, or 'keyring'." env:"FACULTYBOARD_DB"`
	Roster    string `help:"YAML roster to seed the faculty directory with instead of the demo data." env:"FACULTYBOARD_ROSTER" type:"path"`
	IDScheme  string `help:"Id scheme for new faculty (sequence or uuid)." name:"id-scheme"`
	Seed      int64  `help:"Random seed for timetable generation. 0 uses the clock."`
	Debug     bool   `help:"Log at debug level and echo logs to stderr."`

	Tui     system.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Init    system.InitCmd   `cmd:"" help:"Initialize timetable storage."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Faculty struct {
		List   faculty.FacultyListCmd   `cmd:"" help:"List faculty." default:"1"`
		Show   faculty.FacultyShowCmd   `cmd:"" help:"Show one faculty record."`
		Counts faculty.FacultyCountsCmd `cmd:"" help:"Count faculty by status."`
		Check  faculty.FacultyCheckCmd  `cmd:"" help:"Check substitution references for conflicts."`
	} `cmd:"" help:"Browse the faculty directory."`
	Timetable struct {
		Show       timetables.TimetableShowCmd       `cmd:"" help:"Show a faculty's weekly timetable."`
		Set        timetables.TimetableSetCmd        `cmd:"" help:"Add or replace a period."`
		Delete     timetables.TimetableDeleteCmd     `cmd:"" help:"Delete a period."`
		Regenerate timetables.TimetableRegenerateCmd `cmd:"" help:"Discard a week and generate a new one."`
	} `cmd:"" help:"Manage weekly timetables."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`
	Connection struct {
		Set    connection.ConnectionSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Show   connection.ConnectionShowCmd   `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete connection.ConnectionDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the PostgreSQL connection string."`
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		apperrors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Faculty directory and weekly timetable board"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)
	command := ctx.Command()

	configDir, err := config.ExpandHome(CLI.ConfigDir)
	if err != nil {
		apperrors.Fatal(err)
	}

	fileCfg, err := config.Load(configDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg := fileCfg.Merge(config.File{
		DB:       CLI.DB,
		Roster:   CLI.Roster,
		IDScheme: CLI.IDScheme,
		Seed:     CLI.Seed,
		Debug:    CLI.Debug,
	})

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("Starting", "command", command, "config_dir", configDir)

	backend, err := config.ResolveBackend(cfg.DB, configDir)
	if err != nil {
		apperrors.Fatal(err)
	}

	// Managing the keyring entry must work before a PostgreSQL backend can open.
	var store storage.PeriodRepository
	if strings.HasPrefix(command, "connection") {
		store = storage.NewMemoryStore()
	} else if store, err = cli.OpenStore(backend); err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	// init prepares storage itself and doctor reports load failures as a check
	var stored []string
	if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "doctor") &&
		!strings.HasPrefix(command, "connection") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		// Stored weeks outlive the in-memory directory, so their ids stay taken.
		if stored, err = store.ListTimetables(); err != nil {
			apperrors.Fatal(err)
		}
	}

	dir, err := newDirectory(cfg, stored)
	if err != nil {
		apperrors.Fatal(err)
	}

	gen := timetable.NewGenerator(dir, timetable.WithSeed(cfg.Seed))
	appCtx := &cli.Context{
		Directory:  dir,
		Timetables: timetable.NewService(dir, store, gen),
		Store:      store,
		Backend:    backend,
		Config:     cfg,
		ConfigDir:  configDir,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// newDirectory seeds the faculty directory from the configured roster, or
// from the demo data when none is set. Ids in reserved are never assigned to
// new faculty.
func newDirectory(cfg config.File, reserved []string) (*directory.Store, error) {
	gen, err := directory.GeneratorFor(cfg.IDScheme)
	if err != nil {
		return nil, err
	}

	var seed []models.Faculty
	if cfg.Roster != "" {
		path, err := config.ExpandHome(cfg.Roster)
		if err != nil {
			return nil, err
		}
		if seed, err = config.LoadRoster(path); err != nil {
			return nil, err
		}
		logger.Info("Roster loaded", "path", path, "faculty", len(seed))
	} else {
		seed = directory.DemoRoster()
	}

	return directory.New(seed, directory.WithIDGenerator(gen), directory.WithReservedIDs(reserved)), nil
}
