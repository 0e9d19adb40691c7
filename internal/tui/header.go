package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/dash/internal/theme"
)

// HeaderView renders the top bar: greeting on the left, theme switch and
// logout hint on the right.
func HeaderView(user string, styles theme.Styles, width int) string {
	if user == "" {
		user = "User"
	}
	greeting := styles.Title.Render("Welcome back, " + user + "!")

	mode := "○ Dark Mode"
	if styles.Name == theme.Dark {
		mode = "● Dark Mode"
	}
	right := styles.Muted.Render(mode) + "  " +
		styles.HelpKey.Render("L") + styles.HelpDesc.Render(" logout")

	gap := max(width-lipgloss.Width(greeting)-lipgloss.Width(right)-2, 1)
	line := greeting + lipgloss.NewStyle().Width(gap).Render("") + right

	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.BorderColor).
		Render(line)
}
