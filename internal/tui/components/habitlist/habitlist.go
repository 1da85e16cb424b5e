// Package habitlist renders the scrollable habit list with streak status.
package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/streak"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID int64
}

type MarkHabitMsg struct {
	ID int64
}

type UnmarkHabitMsg struct {
	ID int64
}

type DeleteHabitMsg struct {
	ID int64
}

type RestoreHabitMsg struct {
	ID int64
}

type ShowStreakMsg struct {
	ID int64
}

// Entry is one habit with the presentation state the list needs. The parent
// model computes streaks and done-status; the list only renders them.
type Entry struct {
	Habit     models.Habit
	Result    streak.Result
	HasResult bool
	DoneNow   bool
	IsDeleted bool
}

type Item struct {
	Entry
}

func (i Item) Title() string {
	title := i.Habit.Name
	if i.IsDeleted {
		title = "[DELETED] " + title
	} else if i.DoneNow {
		title = "✓ " + title
	} else {
		title = "○ " + title
	}
	return title
}

func (i Item) Description() string {
	if i.IsDeleted {
		return "can restore with 'r'"
	}

	status := "not done today"
	if i.Habit.Frequency == models.FrequencyWeekly {
		status = "not done this week"
	}
	if i.DoneNow {
		status = "done today"
		if i.Habit.Frequency == models.FrequencyWeekly {
			status = "done this week"
		}
	}

	if !i.HasResult {
		return status
	}
	return fmt.Sprintf("current %d, longest %d, %s", i.Result.Current, i.Result.Longest, status)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Mark    key.Binding
	Unmark  key.Binding
	Delete  key.Binding
	Restore key.Binding
	Streak  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark done"),
		),
		Unmark: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Streak: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "streak detail"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []Entry, width, height int) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Mark, keys.Unmark, keys.Delete, keys.Restore, keys.Streak}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Mark, keys.Unmark, keys.Delete, keys.Restore, keys.Streak}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m *Model) SetEntries(entries []Entry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
}

// Filtering reports whether the list is capturing keys for its filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted {
					return m, func() tea.Msg { return EditHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && !i.DoneNow {
					return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Unmark):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && i.DoneNow {
					return m, func() tea.Msg { return UnmarkHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted {
					return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.IsDeleted {
					return m, func() tea.Msg { return RestoreHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Streak):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted {
					return m, func() tea.Msg { return ShowStreakMsg{ID: i.Habit.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
