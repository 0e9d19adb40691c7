package tui

import (
	"strings"

	"github.com/yiblet/dash/internal/feed"
	"github.com/yiblet/dash/internal/theme"
)

// Route is one sidebar menu entry
type Route struct {
	Label string
	Path  string
}

// Routes lists the sidebar menu in display order
var Routes = []Route{
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Posts", Path: "/dashboard/posts"},
	{Label: "Projects", Path: "/dashboard/projects"},
	{Label: "Analytics", Path: "/dashboard/analytics"},
	{Label: "Notifications", Path: "/dashboard/notifications"},
	{Label: "Settings", Path: "/dashboard/settings"},
}

// SidebarMsg represents messages that the sidebar handles
type SidebarMsg interface {
	isSidebarMsg()
}

// Sidebar message implementations
type NavigateUpMsg struct{}

func (NavigateUpMsg) isSidebarMsg() {}

type NavigateDownMsg struct{}

func (NavigateDownMsg) isSidebarMsg() {}

// SetActiveRouteMsg marks the route at Path as the one being shown
type SetActiveRouteMsg struct {
	Path string
}

func (SetActiveRouteMsg) isSidebarMsg() {}

type ToggleSidebarMsg struct{}

func (ToggleSidebarMsg) isSidebarMsg() {}

type ResizeSidebarMsg struct {
	Width  int
	Height int
}

func (ResizeSidebarMsg) isSidebarMsg() {}

// SidebarModel holds the state for the navigation sidebar
type SidebarModel struct {
	Cursor    int    // Highlighted menu entry
	Active    string // Path of the route being shown
	Collapsed bool   // Hidden, like the closed mobile sidebar
	Width     int
	Height    int
}

// NewSidebarModel creates a sidebar with the dashboard route active
func NewSidebarModel(width, height int) SidebarModel {
	return SidebarModel{
		Cursor: 0,
		Active: Routes[0].Path,
		Width:  width,
		Height: height,
	}
}

// Update handles sidebar messages
func (s *SidebarModel) Update(msg SidebarMsg) error {
	switch m := msg.(type) {
	case NavigateUpMsg:
		if s.Cursor > 0 {
			s.Cursor--
		}
	case NavigateDownMsg:
		if s.Cursor < len(Routes)-1 {
			s.Cursor++
		}
	case SetActiveRouteMsg:
		if i := routeIndex(m.Path); i >= 0 {
			s.Active = m.Path
			s.Cursor = i
		}
	case ToggleSidebarMsg:
		s.Collapsed = !s.Collapsed
	case ResizeSidebarMsg:
		s.Width = m.Width
		s.Height = m.Height
	}
	return nil
}

// Highlighted returns the route under the cursor
func (s *SidebarModel) Highlighted() Route {
	return Routes[min(max(s.Cursor, 0), len(Routes)-1)]
}

// ActiveRoute returns the route being shown
func (s *SidebarModel) ActiveRoute() Route {
	if i := routeIndex(s.Active); i >= 0 {
		return Routes[i]
	}
	return Routes[0]
}

func routeIndex(path string) int {
	for i, r := range Routes {
		if r.Path == path {
			return i
		}
	}
	return -1
}

// SidebarView renders the sidebar. A collapsed sidebar renders as nothing.
func SidebarView(model SidebarModel, styles theme.Styles, focused bool) string {
	if model.Collapsed {
		return ""
	}

	border := styles.Border
	if focused {
		border = styles.FocusBorder
	}
	style := border.
		Padding(0, 1).
		Width(model.Width).
		Height(max(model.Height-2, 1))

	inner := max(model.Width-2, 4)

	var content strings.Builder
	content.WriteString(styles.Title.Render("⚡ Dashboard") + "\n\n")

	for i, route := range Routes {
		label := feed.TruncateTitle(route.Label, inner-2)

		line := "  " + label
		switch {
		case route.Path == model.Active:
			line = styles.ActiveItem.Width(inner).Render("▌ " + label)
		case focused && i == model.Cursor:
			line = styles.SelectedRow.Width(inner).Render("› " + label)
		default:
			line = styles.Muted.Render(line)
		}
		content.WriteString(line + "\n")
	}

	return style.Render(strings.TrimRight(content.String(), "\n"))
}
