package backups

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/facultyboard/internal/backup"
	"github.com/julianstephens/facultyboard/internal/cli"
	"github.com/julianstephens/facultyboard/internal/config"
	"github.com/julianstephens/facultyboard/internal/constants"
	"github.com/julianstephens/facultyboard/internal/directory"
	"github.com/julianstephens/facultyboard/internal/storage"
	"github.com/julianstephens/facultyboard/internal/storage/sqlite"
	"github.com/julianstephens/facultyboard/internal/timetable"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), constants.PeriodsDBFileName)
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	dir := directory.NewDemo()
	var out bytes.Buffer
	return &cli.Context{
		Directory:  dir,
		Timetables: timetable.NewService(dir, store, timetable.NewGenerator(dir, timetable.WithSeed(5))),
		Store:      store,
		Backend:    config.Backend{Kind: constants.BackendSQLite, Target: dbPath},
		Out:        &out,
	}, &out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %s", out.String())
	}
	out.Reset()

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: "+constants.BackupFilePrefix) {
		t.Errorf("unexpected output: %s", out.String())
	}
	out.Reset()

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := setupTestContext(t)

	week, err := ctx.Timetables.Week("fac-001")
	if err != nil {
		t.Fatalf("Week() error = %v", err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	for _, p := range week {
		if err := ctx.Timetables.DeletePeriod("fac-001", p.ID); err != nil {
			t.Fatalf("DeletePeriod() error = %v", err)
		}
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Previous database saved as") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load() after restore error = %v", err)
	}
	restored, err := ctx.Timetables.Week("fac-001")
	if err != nil {
		t.Fatalf("Week() error = %v", err)
	}
	if len(restored) != len(week) {
		t.Errorf("restored week has %d periods, want %d", len(restored), len(week))
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out := setupTestContext(t)
	ctx.In = strings.NewReader("n\n")

	path, err := backup.NewManager(ctx.Store.GetConfigPath()).CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: path}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t)
	cmd := &BackupRestoreCmd{BackupFile: "timetables-20200101-0000.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackupsRequireSQLite(t *testing.T) {
	ctx := &cli.Context{
		Store:   storage.NewMemoryStore(),
		Backend: config.Backend{Kind: constants.BackendMemory},
	}

	cmds := []interface{ Run(*cli.Context) error }{
		&BackupCreateCmd{},
		&BackupListCmd{},
		&BackupRestoreCmd{BackupFile: "x.db", Yes: true},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(ctx); !errors.Is(err, errNotSQLite) {
			t.Errorf("%T error = %v, want errNotSQLite", cmd, err)
		}
	}
}
