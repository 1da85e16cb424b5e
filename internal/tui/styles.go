package tui

import "github.com/charmbracelet/lipgloss"

var (
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// accentColors maps the settings color names to ANSI 256 codes. Unknown
// names fall back to the default accent.
var accentColors = map[string]string{
	"blue":   "39",
	"green":  "42",
	"red":    "196",
	"purple": "99",
	"orange": "214",
	"pink":   "205",
}

func accentColor(name string) string {
	if code, ok := accentColors[name]; ok {
		return code
	}
	return accentColors["blue"]
}

// activeTabStyle renders the selected tab in the user's accent color.
func (m Model) activeTabStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.accent)).
		Background(lipgloss.Color("236")).
		Padding(0, 1).
		Bold(true)
}

// accentStyle highlights headings and the most consistent habit.
func (m Model) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.accent)).
		Bold(true)
}
