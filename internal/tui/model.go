package tui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/storage"
	"github.com/devmadhava/habitx/internal/streak"
	"github.com/devmadhava/habitx/internal/tui/components/habitlist"
)

type HabitFormModel struct {
	Name        string
	Description string
	Frequency   models.Frequency
}

type SettingsFormModel struct {
	Timezone string
	Username string
	Color    string
}

type Model struct {
	store         storage.Provider
	engine        *streak.Engine
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	habitList     habitlist.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	settingsForm  *SettingsFormModel
	editingHabit  *models.Habit
	habitToDelete *models.Habit
	streakHabit   *models.Habit
	streakResult  streak.Result
	averages      []streak.HabitAverage
	mostOK        bool
	most          streak.HabitAverage
	least         streak.HabitAverage
	settings      models.Settings
	timezone      string
	accent        string
	quitting      bool
	width         int
	height        int
	formError     string // Error message to display for form operations
}

func New(store storage.Provider, engine *streak.Engine) Model {
	settings, _ := store.GetSettings()
	timezone := settings.Timezone
	if timezone == "" {
		timezone = constants.DefaultTimezone
	}

	m := Model{
		store:    store,
		engine:   engine,
		state:    constants.StateHabits,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		settings: settings,
		timezone: timezone,
		accent:   accentColor(settings.Color),
	}

	m.habitList = habitlist.New(m.buildEntries(), 0, 0)
	m.refreshConsistency()

	return m
}

// buildEntries assembles the habit list entries: every habit including
// soft-deleted ones, each joined with its streak metrics and whether the
// current calendar period already has a completion.
func (m *Model) buildEntries() []habitlist.Entry {
	habits, err := m.store.GetAllHabits(true)
	if err != nil {
		return nil
	}

	results := make(map[int64]streak.Result)
	if all, err := m.engine.AllStreaks(m.timezone); err == nil {
		for _, hs := range all {
			if hs.Err == nil {
				results[hs.Habit.ID] = hs.Result
			}
		}
	}

	pending := make(map[int64]bool)
	if active, err := m.engine.Active(m.timezone, m.engine.Now()); err == nil {
		for _, h := range active {
			pending[h.ID] = true
		}
	}

	entries := make([]habitlist.Entry, 0, len(habits))
	for _, h := range habits {
		isDeleted := h.DeletedAt != nil
		result, hasResult := results[h.ID]
		entries = append(entries, habitlist.Entry{
			Habit:     h,
			Result:    result,
			HasResult: hasResult,
			DoneNow:   !isDeleted && !pending[h.ID],
			IsDeleted: isDeleted,
		})
	}
	return entries
}

// refreshHabits reloads the list after any mutation.
func (m *Model) refreshHabits() {
	m.habitList.SetEntries(m.buildEntries())
	m.refreshConsistency()
}

// refreshConsistency recomputes the ranking shown on the consistency tab.
func (m *Model) refreshConsistency() {
	m.mostOK = false
	m.averages = nil

	averages, err := m.engine.Averages(m.timezone)
	if err != nil || len(averages) == 0 {
		return
	}

	most, least, err := streak.Rank(averages)
	if err != nil {
		return
	}

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].Average != averages[j].Average {
			return averages[i].Average > averages[j].Average
		}
		return averages[i].Habit.ID < averages[j].Habit.ID
	})

	m.averages = averages
	m.most = most
	m.least = least
	m.mostOK = true
}

// markHabit records a completion for the current instant. Errors are
// swallowed; the follow-up refresh shows the stored truth either way.
func (m *Model) markHabit(id int64) {
	_, _ = m.store.MarkComplete(id, time.Now().UTC())
	m.refreshHabits()
}

func (m *Model) unmarkHabit(id int64) {
	_ = m.store.UnmarkComplete(id, time.Now().UTC())
	m.refreshHabits()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.Add)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.habitList.Init()
}
