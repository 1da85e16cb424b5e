package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/storage"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := storage.NewSQLiteStore(dbPath)

	ctx := &cli.Context{
		Store:     store,
		Engine:    storage.NewEngine(store),
		ConfigDir: tempDir,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}

	// Fresh database carries default settings
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("expected default timezone %q, got %q", constants.DefaultTimezone, settings.Timezone)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not created")
	}

	// Mark the database as "used" so the wipe is observable
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get initial settings: %v", err)
	}
	settings.Username = "marker"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save modified settings: %v", err)
	}

	forceCmd := &InitCmd{Force: true}
	if err := forceCmd.Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}

	newSettings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after force: %v", err)
	}
	if newSettings.Username != constants.DefaultUsername {
		t.Errorf("expected default username %q after force, got %q", constants.DefaultUsername, newSettings.Username)
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}

	forceCmd := &InitCmd{Force: true}
	if err := forceCmd.Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_DemoSeedsData(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{Demo: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init with demo failed: %v", err)
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) == 0 {
		t.Fatal("expected demo habits after init --demo, got none")
	}

	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(completions) == 0 {
		t.Error("expected demo completions after init --demo, got none")
	}
}

func TestInitCmd_DemoRefusesNonEmptyStore(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{Demo: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init with demo failed: %v", err)
	}

	// Seeding again must refuse rather than duplicate the fixture
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error when seeding demo data into a non-empty store, got nil")
	}
}
