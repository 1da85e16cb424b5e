package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width-4, msg.Height-6)
	}

	// Handle Add Habit State
	if m.state == constants.StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			habit := models.Habit{
				Name:        strings.TrimSpace(m.habitForm.Name),
				Description: strings.TrimSpace(m.habitForm.Description),
				Frequency:   m.habitForm.Frequency,
			}
			if _, err := m.store.AddHabit(habit); err == nil {
				m.formError = ""
				m.refreshHabits()
				m.state = constants.StateHabits
			} else {
				// Stay in form state on error to allow retry
				m.formError = err.Error()
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.state = constants.StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Edit Habit State
	if m.state == constants.StateEditHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.editingHabit.Name = strings.TrimSpace(m.habitForm.Name)
			m.editingHabit.Description = strings.TrimSpace(m.habitForm.Description)
			if err := m.store.UpdateHabit(*m.editingHabit); err == nil {
				m.formError = ""
				m.refreshHabits()
				m.state = constants.StateHabits
			} else {
				m.formError = err.Error()
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.state = constants.StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Edit Settings State
	if m.state == constants.StateEditSettings {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateSettings
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			settings := models.Settings{
				Timezone: strings.TrimSpace(m.settingsForm.Timezone),
				Username: strings.TrimSpace(m.settingsForm.Username),
				Color:    m.settingsForm.Color,
			}
			if err := m.store.SaveSettings(settings); err == nil {
				m.formError = ""
				m.settings = settings
				m.timezone = settings.Timezone
				m.accent = accentColor(settings.Color)
				// Streaks depend on the timezone, so recompute everything
				m.refreshHabits()
				m.state = constants.StateSettings
			} else {
				m.formError = err.Error()
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.state = constants.StateSettings
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == constants.StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if m.habitToDelete != nil {
					if err := m.store.DeleteHabit(m.habitToDelete.ID); err == nil {
						m.refreshHabits()
					}
				}
				m.habitToDelete = nil
				m.state = constants.StateHabits
			case "n", "N", "esc":
				m.habitToDelete = nil
				m.state = constants.StateHabits
			}
		}
		return m, nil
	}

	// Handle Streak Detail State
	if m.state == constants.StateStreakDetail {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc", "q", "enter", "s":
				m.streakHabit = nil
				m.state = constants.StateHabits
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The list filter input owns the keyboard while filtering
		if m.state == constants.StateHabits && m.habitList.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Tab):
			switch m.state {
			case constants.StateHabits:
				m.state = constants.StateConsistency
			case constants.StateConsistency:
				m.state = constants.StateSettings
			case constants.StateSettings:
				m.state = constants.StateHabits
			}
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			switch m.state {
			case constants.StateHabits:
				m.state = constants.StateSettings
			case constants.StateConsistency:
				m.state = constants.StateHabits
			case constants.StateSettings:
				m.state = constants.StateConsistency
			}
			return m, nil

		case key.Matches(msg, m.keys.Edit) && m.state == constants.StateSettings:
			m.settingsForm = &SettingsFormModel{
				Timezone: m.settings.Timezone,
				Username: m.settings.Username,
				Color:    m.settings.Color,
			}
			m.form = newSettingsForm(m.settingsForm)
			m.state = constants.StateEditSettings
			return m, m.form.Init()
		}

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{
			Frequency: models.FrequencyDaily,
		}
		m.form = newHabitForm(m.habitForm)
		m.formError = ""
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habitlist.EditHabitMsg:
		habit, err := m.store.GetHabit(msg.ID)
		if err != nil {
			return m, nil
		}
		m.editingHabit = &habit
		m.habitForm = &HabitFormModel{
			Name:        habit.Name,
			Description: habit.Description,
			Frequency:   habit.Frequency,
		}
		m.form = newEditHabitForm(m.habitForm)
		m.formError = ""
		m.state = constants.StateEditHabit
		return m, m.form.Init()

	case habitlist.MarkHabitMsg:
		m.markHabit(msg.ID)
		return m, nil

	case habitlist.UnmarkHabitMsg:
		m.unmarkHabit(msg.ID)
		return m, nil

	case habitlist.DeleteHabitMsg:
		habit, err := m.store.GetHabit(msg.ID)
		if err != nil {
			return m, nil
		}
		m.habitToDelete = &habit
		m.state = constants.StateConfirmDelete
		return m, nil

	case habitlist.RestoreHabitMsg:
		if err := m.store.RestoreHabit(msg.ID); err == nil {
			m.refreshHabits()
		}
		return m, nil

	case habitlist.ShowStreakMsg:
		habit, err := m.store.GetHabit(msg.ID)
		if err != nil {
			return m, nil
		}
		result, err := m.engine.GetStreak(msg.ID, m.timezone)
		if err != nil {
			return m, nil
		}
		m.streakHabit = &habit
		m.streakResult = result
		m.state = constants.StateStreakDetail
		return m, nil
	}

	if m.state == constants.StateHabits {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
