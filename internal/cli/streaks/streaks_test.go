package streaks

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/storage"
	"github.com/devmadhava/habitx/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:  store,
		Engine: storage.NewEngine(store),
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func seedHabit(t *testing.T, ctx *cli.Context, name string, days ...string) models.Habit {
	t.Helper()
	habit, err := ctx.Store.AddHabit(models.Habit{Name: name, Frequency: models.FrequencyDaily})
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	for _, d := range days {
		at, err := time.Parse("2006-01-02", d)
		if err != nil {
			t.Fatalf("bad test date %q: %v", d, err)
		}
		if _, err := ctx.Store.MarkComplete(habit.ID, at); err != nil {
			t.Fatalf("failed to mark %s complete on %s: %v", name, d, err)
		}
	}
	return habit
}

func TestStreakCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	seedHabit(t, ctx, "Read", "2025-08-01", "2025-08-02", "2025-08-03")

	cmd := &StreakCmd{Habit: "Read", Runs: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("streak command failed: %v", err)
	}
}

func TestStreakCmd_UnknownHabit(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &StreakCmd{Habit: "nope"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for unknown habit, got nil")
	}
}

func TestStreakCmd_InvalidTimezone(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	seedHabit(t, ctx, "Read")

	cmd := &StreakCmd{Habit: "Read", Timezone: "Mars/Olympus"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for invalid timezone, got nil")
	}
}

func TestStreaksCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	// Empty store prints a notice rather than failing
	cmd := &StreaksCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("streaks command on empty store failed: %v", err)
	}

	seedHabit(t, ctx, "Read", "2025-08-01", "2025-08-02")
	seedHabit(t, ctx, "Exercise", "2025-08-02")

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("streaks command failed: %v", err)
	}
}

func TestConsistencyCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	// Empty store prints a notice rather than failing
	cmd := &ConsistencyCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("consistency command on empty store failed: %v", err)
	}

	seedHabit(t, ctx, "Read", "2025-08-01", "2025-08-02", "2025-08-03")
	seedHabit(t, ctx, "Exercise", "2025-08-01", "2025-08-03")

	if err := cmd.Run(ctx); err != nil {
		t.Errorf("consistency command failed: %v", err)
	}
}

func TestActiveCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	seedHabit(t, ctx, "Read", "2025-08-01")
	seedHabit(t, ctx, "Exercise")

	// Read is done on the 1st, Exercise is not
	cmd := &ActiveCmd{Date: "2025-08-01"}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("active command failed: %v", err)
	}
}

func TestActiveCmd_BadDate(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &ActiveCmd{Date: "not-a-date"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for malformed date, got nil")
	}
}

func TestDemoDataDrivesAnalytics(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	n, err := storage.SeedDemoData(ctx.Store)
	if err != nil {
		t.Fatalf("failed to seed demo data: %v", err)
	}
	if n == 0 {
		t.Fatal("expected demo data to create habits")
	}

	if err := (&StreaksCmd{}).Run(ctx); err != nil {
		t.Errorf("streaks over demo data failed: %v", err)
	}
	if err := (&ConsistencyCmd{}).Run(ctx); err != nil {
		t.Errorf("consistency over demo data failed: %v", err)
	}
	if err := (&ActiveCmd{}).Run(ctx); err != nil {
		t.Errorf("active over demo data failed: %v", err)
	}
}
