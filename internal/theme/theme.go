// Package theme holds the dark and light palettes of the dashboard.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Name identifies a palette.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"

	Default = Dark
)

// Parse accepts a palette name case-insensitively.
func Parse(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	default:
		return "", fmt.Errorf("unknown theme %q (must be 'dark' or 'light')", s)
	}
}

// Toggle returns the other palette.
func (n Name) Toggle() Name {
	if n == Light {
		return Dark
	}
	return Light
}

func (n Name) String() string { return string(n) }

// Styles describes the lipgloss styles shared across the UI.
type Styles struct {
	Name Name

	Border       lipgloss.Style
	FocusBorder  lipgloss.Style
	Title        lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
	ActiveItem   lipgloss.Style
	SelectedRow  lipgloss.Style
	TableHeader  lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	Badge        lipgloss.Style
	PageLink     lipgloss.Style
	CurrentPage  lipgloss.Style
	Ellipsis     lipgloss.Style
	Disabled     lipgloss.Style
	Modal        lipgloss.Style
	HelpKey      lipgloss.Style
	HelpDesc     lipgloss.Style
	BorderColor  lipgloss.Color
	FocusColor   lipgloss.Color
	PrimaryColor lipgloss.Color
}

type palette struct {
	text, muted, border, focus, primary, onPrimary, selected, errorC, success lipgloss.Color
}

var palettes = map[Name]palette{
	Dark: {
		text:      "252",
		muted:     "244",
		border:    "240",
		focus:     "62",
		primary:   "69",
		onPrimary: "230",
		selected:  "237",
		errorC:    "196",
		success:   "42",
	},
	Light: {
		text:      "235",
		muted:     "243",
		border:    "250",
		focus:     "33",
		primary:   "27",
		onPrimary: "255",
		selected:  "254",
		errorC:    "160",
		success:   "28",
	},
}

// For returns the styles of palette n. Unknown names get the default palette.
func For(n Name) Styles {
	p, ok := palettes[n]
	if !ok {
		n = Default
		p = palettes[n]
	}

	return Styles{
		Name: n,

		Border:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border),
		FocusBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.focus),
		Title:       lipgloss.NewStyle().Foreground(p.text).Bold(true),
		Text:        lipgloss.NewStyle().Foreground(p.text),
		Muted:       lipgloss.NewStyle().Foreground(p.muted),
		Accent:      lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		ActiveItem:  lipgloss.NewStyle().Foreground(p.onPrimary).Background(p.primary).Bold(true),
		SelectedRow: lipgloss.NewStyle().Foreground(p.text).Background(p.selected),
		TableHeader: lipgloss.NewStyle().Foreground(p.muted).Bold(true),
		Error:       lipgloss.NewStyle().Foreground(p.errorC).Bold(true),
		Success:     lipgloss.NewStyle().Foreground(p.success),
		Badge:       lipgloss.NewStyle().Foreground(p.success).Bold(true),
		PageLink:    lipgloss.NewStyle().Foreground(p.text).Padding(0, 1),
		CurrentPage: lipgloss.NewStyle().Foreground(p.onPrimary).Background(p.primary).Bold(true).Padding(0, 1),
		Ellipsis:    lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		Disabled:    lipgloss.NewStyle().Foreground(p.border),
		Modal:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.focus).Padding(1, 2),
		HelpKey:     lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		HelpDesc:    lipgloss.NewStyle().Foreground(p.muted),

		BorderColor:  p.border,
		FocusColor:   p.focus,
		PrimaryColor: p.primary,
	}
}
