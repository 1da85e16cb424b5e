package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitList.View())
	case constants.StateConsistency:
		content = docStyle.Render(m.viewConsistency())
	case constants.StateSettings:
		content = docStyle.Render(m.viewSettings())
	case constants.StateStreakDetail:
		content = docStyle.Render(m.viewStreakDetail())
	case constants.StateAddHabit, constants.StateEditHabit, constants.StateEditSettings:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := []struct {
		title string
		state constants.SessionState
	}{
		{"Habits", constants.StateHabits},
		{"Consistency", constants.StateConsistency},
		{"Settings", constants.StateSettings},
	}

	rendered := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if m.state == tab.state {
			rendered = append(rendered, m.activeTabStyle().Render(tab.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	if m.formError != "" {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			dangerStyle.Render("Error: "+m.formError),
			m.form.View(),
		)
	}
	return m.form.View()
}

func (m Model) viewConsistency() string {
	if !m.mostOK {
		return "\n  No habits to rank yet.\n  Add habits and mark completions to see consistency."
	}

	var b strings.Builder

	b.WriteString(m.accentStyle().Render(fmt.Sprintf("Most consistent:  %s (average streak %.2f)", m.most.Habit.Name, m.most.Average)))
	b.WriteString("\n")
	b.WriteString(warningStyle.Render(fmt.Sprintf("Least consistent: %s (average streak %.2f)", m.least.Habit.Name, m.least.Average)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%4s  %-24s %-7s %8s\n", "ID", "NAME", "FREQ", "AVERAGE"))
	for _, avg := range m.averages {
		b.WriteString(fmt.Sprintf("%4d  %-24s %-7s %8.2f\n", avg.Habit.ID, avg.Habit.Name, avg.Habit.Frequency, avg.Average))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Timezone: %s", m.timezone)))

	return b.String()
}

func (m Model) viewSettings() string {
	var b strings.Builder

	b.WriteString(m.accentStyle().Render("Current Settings"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Timezone: %s\n", m.settings.Timezone))
	b.WriteString(fmt.Sprintf("  Username: %s\n", m.settings.Username))
	b.WriteString(fmt.Sprintf("  Color:    %s\n", m.settings.Color))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Press 'e' to edit."))

	return b.String()
}

func (m Model) viewStreakDetail() string {
	if m.streakHabit == nil {
		return ""
	}

	unit := "days"
	if m.streakHabit.Frequency == models.FrequencyWeekly {
		unit = "weeks"
	}

	var b strings.Builder
	b.WriteString(m.accentStyle().Render(fmt.Sprintf("%s (%s, timezone %s)", m.streakHabit.Name, m.streakHabit.Frequency, m.timezone)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Current streak: %d %s\n", m.streakResult.Current, unit))
	b.WriteString(fmt.Sprintf("  Longest streak: %d %s\n", m.streakResult.Longest, unit))
	b.WriteString(fmt.Sprintf("  Average streak: %.2f %s\n", m.streakResult.Average, unit))
	if len(m.streakResult.Runs) > 0 {
		b.WriteString(fmt.Sprintf("  Runs (oldest first): %v\n", m.streakResult.Runs))
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Press esc to go back."))

	return b.String()
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if m.habitToDelete != nil {
		name = m.habitToDelete.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Are you sure you want to delete %q?", name)),
			"The habit can be restored later; completions are kept.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
