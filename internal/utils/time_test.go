package utils

import (
	"testing"
	"time"

	"github.com/devmadhava/habitx/internal/models"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns UTC", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "valid timezone Asia/Kolkata", timezone: "Asia/Kolkata", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Error("LoadLocation() returned nil location without error")
			}
		})
	}

	loc, err := LoadLocation("")
	if err != nil {
		t.Fatalf("LoadLocation(\"\") returned error: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("LoadLocation(\"\") = %v, want UTC", loc)
	}
}

func TestNowInTimezone(t *testing.T) {
	now, err := NowInTimezone("America/New_York")
	if err != nil {
		t.Fatalf("NowInTimezone() returned error: %v", err)
	}
	if now.IsZero() {
		t.Error("NowInTimezone() returned zero time")
	}
	if now.Location().String() != "America/New_York" {
		t.Errorf("NowInTimezone() location = %v, want America/New_York", now.Location())
	}

	if _, err := NowInTimezone("Invalid/Timezone"); err == nil {
		t.Error("NowInTimezone(invalid) should return an error")
	}
}

func TestGetTodayFromSettings(t *testing.T) {
	today, err := GetTodayFromSettings(models.Settings{Timezone: "UTC"})
	if err != nil {
		t.Fatalf("GetTodayFromSettings() returned error: %v", err)
	}
	if want := time.Now().UTC().Format("2006-01-02"); today != want {
		t.Errorf("GetTodayFromSettings() = %q, want %q", today, want)
	}

	if _, err := GetTodayFromSettings(models.Settings{Timezone: "Nowhere/Nonsense"}); err == nil {
		t.Error("GetTodayFromSettings(invalid tz) should return an error")
	}
}

func TestParseCompletionTime(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load America/New_York: %v", err)
	}
	kiritimati, err := time.LoadLocation("Pacific/Kiritimati")
	if err != nil {
		t.Fatalf("failed to load Pacific/Kiritimati: %v", err)
	}

	tests := []struct {
		name    string
		value   string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{
			name:  "full timestamp in UTC",
			value: "2025-06-10 21:30",
			loc:   time.UTC,
			want:  time.Date(2025, 6, 10, 21, 30, 0, 0, time.UTC),
		},
		{
			name:  "full timestamp converts from local offset",
			value: "2025-06-10 21:30",
			loc:   newYork,
			want:  time.Date(2025, 6, 11, 1, 30, 0, 0, time.UTC),
		},
		{
			name:  "bare date resolves to local noon",
			value: "2025-06-10",
			loc:   newYork,
			want:  time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC),
		},
		{
			name:  "bare date in UTC",
			value: "2025-06-10",
			loc:   time.UTC,
			want:  time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage input",
			value:   "not-a-date",
			loc:     time.UTC,
			wantErr: true,
		},
		{
			name:    "impossible date",
			value:   "2025-13-40",
			loc:     time.UTC,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompletionTime(tt.value, tt.loc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCompletionTime() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseCompletionTime() = %v, want %v", got, tt.want)
			}
		})
	}

	// A bare date must land on the intended local calendar day even at
	// extreme offsets (UTC+14 here).
	got, err := ParseCompletionTime("2025-06-10", kiritimati)
	if err != nil {
		t.Fatalf("ParseCompletionTime() returned error: %v", err)
	}
	if localDate := got.In(kiritimati).Format("2006-01-02"); localDate != "2025-06-10" {
		t.Errorf("round-tripped local date = %s, want 2025-06-10", localDate)
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"UTC", true},
		{"America/New_York", true},
		{"", true},
		{"Local", true},
		{"Mars/Olympus", false},
		{"EST5EDT4", false},
	}

	for _, tt := range tests {
		if got := ValidateTimezone(tt.timezone); got != tt.want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
		}
	}
}
