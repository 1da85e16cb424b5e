package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/devmadhava/habitx/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "habitx.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE habits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		frequency TEXT NOT NULL
	)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}

	for _, name := range []string{"Read", "Exercise"} {
		if _, err := db.Exec("INSERT INTO habits (name, frequency) VALUES (?, 'daily')", name); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}

	return dbPath
}

func countHabits(t *testing.T, dbPath string) int {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database %s: %v", dbPath, err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to query database %s: %v", dbPath, err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}
	if got := countHabits(t, backupPath); got != 2 {
		t.Errorf("backup contains %d habits, want 2", got)
	}
	if filepath.Dir(backupPath) != mgr.BackupDir() {
		t.Errorf("backup landed in %s, want %s", filepath.Dir(backupPath), mgr.BackupDir())
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))

	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup() on missing database should return an error")
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup() #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first: %v after %v",
				backups[i].Timestamp, backups[i-1].Timestamp)
		}
	}
	for _, b := range backups {
		if b.Size == 0 {
			t.Errorf("backup %s reports zero size", b.Path)
		}
	}
}

func TestListBackupsEmptyDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitx.db"))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	for _, name := range []string{"notes.txt", "other-20250101-120000.db", constants.BackupFilePrefix + "garbage.db"} {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write foreign file: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1 (foreign files should be ignored)", len(backups))
	}
}

func TestLatestBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	latest, err := mgr.LatestBackup()
	if err != nil {
		t.Fatalf("LatestBackup() failed: %v", err)
	}
	if latest != nil {
		t.Errorf("LatestBackup() = %+v, want nil before any backup", latest)
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	latest, err = mgr.LatestBackup()
	if err != nil {
		t.Fatalf("LatestBackup() failed: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestBackup() = nil after a backup was created")
	}
	if time.Since(latest.Timestamp) > time.Minute {
		t.Errorf("latest backup timestamp %v is not recent", latest.Timestamp)
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	// Plant old backups beyond the retention limit; rotation should trim
	// down to MaxBackups after the next real backup.
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < constants.MaxBackups+5; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute).Format(timestampFormat)
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if err := copyFile(dbPath, filepath.Join(mgr.BackupDir(), name)); err != nil {
			t.Fatalf("failed to plant backup: %v", err)
		}
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), constants.MaxBackups)
	}

	// The newest backup must survive rotation.
	if time.Since(backups[0].Timestamp) > time.Minute {
		t.Errorf("newest backup %v was rotated away", backups[0].Timestamp)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	// Change the live database after the backup.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits (name, frequency) VALUES ('Meditate', 'daily')"); err != nil {
		t.Fatalf("failed to modify database: %v", err)
	}
	db.Close()

	if got := countHabits(t, dbPath); got != 3 {
		t.Fatalf("precondition failed: %d habits, want 3", got)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}

	if got := countHabits(t, dbPath); got != 2 {
		t.Errorf("restored database has %d habits, want 2", got)
	}

	// The pre-restore state must have been snapshotted as a safety backup.
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	found := false
	for _, b := range backups {
		if countHabits(t, b.Path) == 3 {
			found = true
			break
		}
	}
	if !found {
		t.Error("no safety backup of the pre-restore database was created")
	}
}

func TestRestoreBackupMissingFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if err := mgr.RestoreBackup(filepath.Join(mgr.BackupDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup() with missing file should return an error")
	}
}

func TestRestoreBackupRejectsCorruptFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	corrupt := filepath.Join(mgr.BackupDir(), constants.BackupFilePrefix+"20250101-120000"+constants.BackupFileSuffix)
	if err := os.WriteFile(corrupt, []byte("this is not a database"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	if err := mgr.RestoreBackup(corrupt); err == nil {
		t.Error("RestoreBackup() with corrupt file should return an error")
	}
	if got := countHabits(t, dbPath); got != 2 {
		t.Errorf("live database changed after failed restore: %d habits, want 2", got)
	}
}
