package system

import (
	"os"
	"testing"

	"github.com/mitchellh/go-ps"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
)

// fakeProcess satisfies ps.Process for doctor tests.
type fakeProcess struct {
	pid  int
	ppid int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return p.ppid }
func (p fakeProcess) Executable() string { return p.name }

// withProcesses swaps the process lister for the duration of a test.
func withProcesses(t *testing.T, processes []ps.Process) {
	t.Helper()
	orig := listProcessesFunc
	listProcessesFunc = func() ([]ps.Process, error) { return processes, nil }
	t.Cleanup(func() { listProcessesFunc = orig })
}

func setupDoctorDB(t *testing.T) (*cli.Context, func()) {
	ctx, _, cleanup := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return ctx, cleanup
}

func TestDoctorCmd_HealthyDatabase(t *testing.T) {
	ctx, cleanup := setupDoctorDB(t)
	defer cleanup()
	withProcesses(t, nil)

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor failed on a healthy database: %v", err)
	}
}

func TestDoctorCmd_DuplicateHabitNames(t *testing.T) {
	ctx, cleanup := setupDoctorDB(t)
	defer cleanup()
	withProcesses(t, nil)

	for i := 0; i < 2; i++ {
		if _, err := ctx.Store.AddHabit(models.Habit{Name: "Read", Frequency: models.FrequencyDaily}); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected doctor to fail on duplicate habit names, got nil")
	}
}

func TestDoctorCmd_FixDuplicateHabitNames(t *testing.T) {
	ctx, cleanup := setupDoctorDB(t)
	defer cleanup()
	withProcesses(t, nil)

	for i := 0; i < 2; i++ {
		if _, err := ctx.Store.AddHabit(models.Habit{Name: "Read", Frequency: models.FrequencyDaily}); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}

	cmd := &DoctorCmd{Fix: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor --fix failed: %v", err)
	}

	// The newer duplicate is soft-deleted; one active habit remains
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("expected 1 active habit after fix, got %d", len(habits))
	}

	all, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		t.Fatalf("failed to list all habits: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both habits to survive as rows, got %d", len(all))
	}
}

func TestDoctorCmd_InvalidConfiguredTimezone(t *testing.T) {
	ctx, cleanup := setupDoctorDB(t)
	defer cleanup()
	withProcesses(t, nil)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.Timezone = "Mars/Olympus"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected doctor to fail on an unresolvable timezone, got nil")
	}
}

func TestDoctorCmd_ConcurrentProcessIsWarningOnly(t *testing.T) {
	ctx, cleanup := setupDoctorDB(t)
	defer cleanup()

	// Another habitx process is a warning, not a failure
	withProcesses(t, []ps.Process{
		fakeProcess{pid: os.Getpid() + 1, name: constants.AppName},
	})

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor failed because of a concurrent process warning: %v", err)
	}
}

func TestCheckConcurrentProcesses(t *testing.T) {
	self := os.Getpid()

	tests := []struct {
		name      string
		processes []ps.Process
		wantErr   bool
	}{
		{
			name:      "no processes",
			processes: nil,
			wantErr:   false,
		},
		{
			name: "only self",
			processes: []ps.Process{
				fakeProcess{pid: self, name: constants.AppName},
			},
			wantErr: false,
		},
		{
			name: "unrelated processes",
			processes: []ps.Process{
				fakeProcess{pid: self + 1, name: "bash"},
				fakeProcess{pid: self + 2, name: "vim"},
			},
			wantErr: false,
		},
		{
			name: "another instance",
			processes: []ps.Process{
				fakeProcess{pid: self, name: constants.AppName},
				fakeProcess{pid: self + 1, name: constants.AppName},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcesses(t, tt.processes)

			err := checkConcurrentProcesses()
			if (err != nil) != tt.wantErr {
				t.Errorf("checkConcurrentProcesses() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
