package system

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/facultyboard/internal/backup"
	"github.com/julianstephens/facultyboard/internal/cli"
	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/keyring"
	"github.com/julianstephens/facultyboard/internal/migration"
	"github.com/julianstephens/facultyboard/internal/storage/sqlite"
	"github.com/julianstephens/facultyboard/internal/validation"
	"github.com/julianstephens/facultyboard/migrations"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) error
	warning bool // failures are reported but do not fail the command
	needsDB bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "Keyring", run: checkKeyring, warning: true},
	{name: "Directory references", run: checkDirectoryReferences, warning: true},
	{name: "Orphaned timetables", run: checkOrphanedTimetables, warning: true, needsDB: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for _, chk := range checks {
		if chk.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", chk.name)
			continue
		}

		err := chk.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", chk.name)
		case chk.warning:
			ctx.Printf("⚠ %s: WARNING\n", chk.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", chk.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if chk.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if store, ok := ctx.Store.(*sqlite.Store); ok {
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Other backends validate their schema on load
		return nil
	}

	subFS, err := migrations.SQLite()
	if err != nil {
		return err
	}
	runner := migration.NewRunner(store.GetDB(), subFS)

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Backend.Kind != constants.BackendSQLite {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s (run 'facultyboard backup create')", mgr.GetBackupDir())
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Backend.Kind != constants.BackendPostgres || ctx.Backend.Target != "" {
		return nil
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkDirectoryReferences(ctx *cli.Context) error {
	result := validation.CheckDirectory(ctx.Directory.List())
	if result.HasConflicts() {
		return fmt.Errorf("%d substitution reference(s) do not pair up (run 'facultyboard faculty check')", len(result.Conflicts))
	}
	return nil
}

// checkOrphanedTimetables looks for stored weeks whose faculty is no longer
// in the directory, which happens when the roster changes between runs.
func checkOrphanedTimetables(ctx *cli.Context) error {
	ids, err := ctx.Store.ListTimetables()
	if err != nil {
		return fmt.Errorf("failed to list timetables: %w", err)
	}

	var orphans []string
	for _, id := range ids {
		if _, ok := ctx.Directory.Get(id); !ok {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return fmt.Errorf("stored timetables for unknown faculty: %s", strings.Join(orphans, ", "))
	}
	return nil
}
