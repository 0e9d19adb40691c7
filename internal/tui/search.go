package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchMsg represents messages that the search box handles
type SearchMsg interface {
	isSearchMsg()
}

// Search message implementations
type FocusSearchMsg struct{}

func (FocusSearchMsg) isSearchMsg() {}

type BlurSearchMsg struct{}

func (BlurSearchMsg) isSearchMsg() {}

type ClearSearchMsg struct{}

func (ClearSearchMsg) isSearchMsg() {}

// SearchKeyMsg forwards a keystroke typed into the search box.
type SearchKeyMsg struct {
	Key tea.KeyMsg
}

func (SearchKeyMsg) isSearchMsg() {}

type ResizeSearchMsg struct {
	Width int
}

func (ResizeSearchMsg) isSearchMsg() {}

// SearchModel holds the search box state
type SearchModel struct {
	Input textinput.Model
}

// NewSearchModel creates an unfocused, empty search box
func NewSearchModel() SearchModel {
	input := textinput.New()
	input.Placeholder = "Search posts..."
	input.Prompt = "/ "
	input.CharLimit = 200
	input.Width = 40
	return SearchModel{Input: input}
}

// Update applies msg and returns any command the text input needs, such as
// cursor blinking.
func (s *SearchModel) Update(msg SearchMsg) tea.Cmd {
	switch m := msg.(type) {
	case FocusSearchMsg:
		return s.Input.Focus()
	case BlurSearchMsg:
		s.Input.Blur()
	case ClearSearchMsg:
		s.Input.SetValue("")
	case SearchKeyMsg:
		var cmd tea.Cmd
		s.Input, cmd = s.Input.Update(m.Key)
		return cmd
	case ResizeSearchMsg:
		s.Input.Width = max(m.Width, 10)
	}
	return nil
}

// Value returns the text currently typed
func (s *SearchModel) Value() string {
	return s.Input.Value()
}

// IsActive returns whether the search box has focus
func (s *SearchModel) IsActive() bool {
	return s.Input.Focused()
}

// SearchView renders the search box inside a rounded border
func SearchView(model SearchModel, border lipgloss.Style, width int) string {
	return border.Width(max(width-2, 1)).Render(model.Input.View())
}
