package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/facultyboard/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), constants.PeriodsDBFileName)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE periods (id TEXT PRIMARY KEY, course_code TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO periods VALUES ('fac-001-Monday-1', 'CS101'), ('fac-001-Monday-2', 'CS201')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countPeriods(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM periods").Scan(&n); err != nil {
		t.Fatalf("failed to count periods in %s: %v", path, err)
	}
	return n
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want inside %s", backupPath, mgr.GetBackupDir())
	}
	if !strings.HasPrefix(filepath.Base(backupPath), constants.BackupFilePrefix) {
		t.Errorf("backup name %q lacks prefix", filepath.Base(backupPath))
	}
	if n := countPeriods(t, backupPath); n != 2 {
		t.Errorf("backup has %d periods, want 2", n)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup should fail without a database")
	}
}

func TestBackupNamesDoNotCollide(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 3, 2, 9, 30, 15, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 4 {
		t.Fatalf("ListBackups returned %d backups, want 4", len(backups))
	}
	for _, b := range backups {
		if b.Timestamp.Hour() != 9 || b.Timestamp.Minute() != 30 {
			t.Errorf("backup %s parsed as %v", b.Name(), b.Timestamp)
		}
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	start := time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		mgr.now = func() time.Time { return at }
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first: %v then %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	if backups[0].Size == 0 {
		t.Error("backup size not reported")
	}
}

func TestListBackupsWithoutDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "timetables.db"))
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Errorf("ListBackups() = %v, %v; want empty", backups, err)
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.maxBackups = 3

	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		at := start.Add(time.Duration(i) * 24 * time.Hour)
		mgr.now = func() time.Time { return at }
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("kept %d backups, want 3", len(backups))
	}
	if got := backups[len(backups)-1].Timestamp.Day(); got != 3 {
		t.Errorf("oldest kept backup is from day %d, want 3", got)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM periods"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	safety, err := mgr.RestoreBackup(mgr.Resolve(filepath.Base(backupPath)))
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if n := countPeriods(t, dbPath); n != 2 {
		t.Errorf("restored database has %d periods, want 2", n)
	}
	if safety == "" {
		t.Fatal("no safety backup was taken")
	}
	if n := countPeriods(t, safety); n != 0 {
		t.Errorf("safety backup has %d periods, want the pre-restore 0", n)
	}
}

func TestRestoreBackupRejectsBadFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup accepted a missing file")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(garbage, []byte("definitely not sqlite, just some bytes to fill a header page"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(garbage); err == nil {
		t.Error("RestoreBackup accepted a corrupt file")
	}
	if n := countPeriods(t, dbPath); n != 2 {
		t.Errorf("database changed after failed restore: %d periods", n)
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{name: "timetables-20260301-0915.db", wantOK: true},
		{name: "timetables-20260301-091500.db", wantOK: true},
		{name: "timetables-20260301-091500-2.db", wantOK: true},
		{name: "timetables-latest.db"},
		{name: "other-20260301-0915.db"},
		{name: "timetables-20260301-0915.sql"},
	}
	for _, tt := range tests {
		if _, ok := parseStamp(tt.name); ok != tt.wantOK {
			t.Errorf("parseStamp(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
		}
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager("/tmp/fb/timetables.db")
	if got := mgr.Resolve("timetables-20260301-0915.db"); got != filepath.Join("/tmp/fb/backups", "timetables-20260301-0915.db") {
		t.Errorf("Resolve(name) = %q", got)
	}
	if got := mgr.Resolve("/elsewhere/x.db"); got != "/elsewhere/x.db" {
		t.Errorf("Resolve(path) = %q", got)
	}
}
