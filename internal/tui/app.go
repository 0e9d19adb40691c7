package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/dash/internal/auth"
	"github.com/yiblet/dash/internal/clipboard"
	"github.com/yiblet/dash/internal/listview"
	"github.com/yiblet/dash/internal/logging"
	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/store"
	"github.com/yiblet/dash/internal/theme"
)

// PaneType represents which pane is focused
type PaneType int

const (
	SidebarPane PaneType = iota
	PostsPane
)

// UIMode represents the current modal state of the application
type UIMode int

const (
	NormalMode UIMode = iota
	SearchMode
	HelpMode
	NumberInputMode
	DetailMode
	LogoutMode
)

const (
	defaultPageSize = 5
	sidebarWidth    = 24
	flashDuration   = 2 * time.Second
)

// Loader fetches the full post list.
type Loader interface {
	Load(ctx context.Context) ([]post.Post, error)
}

// Options wires the app to its collaborators. Only Loader is required.
type Options struct {
	Loader    Loader
	Session   *auth.Session
	Guard     auth.Guard
	Clipboard clipboard.Clipboard
	Config    store.ConfigStore // where the chosen theme is saved
	PageSize  int
	Theme     theme.Name
	Now       func() time.Time
}

// AppMsg represents messages that the app component handles
type AppMsg interface {
	isAppMsg()
}

// PostsLoadedMsg carries the outcome of one load.
type PostsLoadedMsg struct {
	Posts []post.Post
	Err   error
}

func (PostsLoadedMsg) isAppMsg() {}

type flashExpiredMsg struct{}

func (flashExpiredMsg) isAppMsg() {}

// AppModel orchestrates all sub-models
type AppModel struct {
	Width       int      // Window width
	Height      int      // Window height
	ActivePane  PaneType // Currently focused pane
	CurrentMode UIMode   // Current modal state

	// Sub-models
	Sidebar SidebarModel
	Posts   PostsPaneModel
	Search  SearchModel
	Modal   ModalModel
	Spinner spinner.Model
	State   *listview.ViewState[post.Post]

	Loading bool  // a load is in flight
	LoadErr error // outcome of the last load, nil on success

	Styles theme.Styles

	// Number input mode for commands like "3g"
	NumberBuffer string

	// Flash message for temporary notifications
	FlashMessage string
	FlashExpiry  time.Time

	notice string // printed after the program exits

	loader    Loader
	session   *auth.Session
	guard     auth.Guard
	clipboard clipboard.Clipboard
	config    store.ConfigStore
	now       func() time.Time
}

// NewAppModel creates a new app model with all sub-models
func NewAppModel(opts Options) *AppModel {
	defaultWidth := 120
	defaultHeight := 30

	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	guard := opts.Guard
	if guard == nil {
		guard = auth.PassThrough{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	name := theme.Load(opts.Config, opts.Theme)
	styles := theme.For(name)

	a := &AppModel{
		Width:       defaultWidth,
		Height:      defaultHeight,
		ActivePane:  PostsPane,
		CurrentMode: NormalMode,
		Sidebar:     NewSidebarModel(sidebarWidth, defaultHeight),
		Posts:       NewPostsPaneModel(defaultWidth-sidebarWidth, defaultHeight),
		Search:      NewSearchModel(),
		Modal:       NewModalModel(),
		Spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Accent)),
		State:       listview.NewViewState[post.Post](pageSize),
		Loading:     true,
		Styles:      styles,
		loader:      opts.Loader,
		session:     opts.Session,
		guard:       guard,
		clipboard:   opts.Clipboard,
		config:      opts.Config,
		now:         now,
	}
	a.layout()
	return a
}

// Notice returns the message to print once the program has exited.
func (a *AppModel) Notice() string {
	return a.notice
}

// Init starts the first load (required by tea.Model interface)
func (a *AppModel) Init() tea.Cmd {
	return tea.Batch(a.load(), a.Spinner.Tick)
}

// load fetches posts in the background
func (a *AppModel) load() tea.Cmd {
	loader := a.loader
	return func() tea.Msg {
		if loader == nil {
			return PostsLoadedMsg{Err: fmt.Errorf("no post source configured")}
		}
		posts, err := loader.Load(context.Background())
		return PostsLoadedMsg{Posts: posts, Err: err}
	}
}

// Update handles app-level messages and routes to appropriate sub-models
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleWindowResize(m)
	case tea.KeyMsg:
		return a.handleKeyPress(m)
	case PostsLoadedMsg:
		return a, a.handlePostsLoaded(m)
	case spinner.TickMsg:
		if !a.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.Spinner, cmd = a.Spinner.Update(m)
		return a, cmd
	case flashExpiredMsg:
		// Clear flash message when it expires
		a.FlashMessage = ""
		a.FlashExpiry = time.Time{}
		return a, nil
	}

	return a, nil
}

// handlePostsLoaded applies a load result. A failure leaves the list as it was.
func (a *AppModel) handlePostsLoaded(msg PostsLoadedMsg) tea.Cmd {
	a.Loading = false
	if msg.Err != nil {
		a.LoadErr = msg.Err
		if a.State.Loaded() {
			return a.setFlashMessage("Reload failed: "+msg.Err.Error(), flashDuration)
		}
		return nil
	}

	a.LoadErr = nil
	a.State.SetSourceItems(msg.Posts)
	a.Search.Update(ClearSearchMsg{})
	a.Posts.Update(ResetRowMsg{})
	return nil
}

// handleWindowResize processes window resize events
func (a *AppModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Ensure minimum total width of 40 characters
	a.Width = max(msg.Width, 40)
	a.Height = max(msg.Height, 12)
	a.layout()
	return a, nil
}

// layout sizes the panes below the header and above the status line
func (a *AppModel) layout() {
	bodyHeight := max(a.Height-3, 4)
	left := 0
	if !a.Sidebar.Collapsed {
		left = min(sidebarWidth, a.Width/3)
	}
	a.Sidebar.Update(ResizeSidebarMsg{Width: left, Height: bodyHeight})
	a.Posts.Update(ResizePostsPaneMsg{Width: a.Width - left, Height: bodyHeight})
	a.Search.Update(ResizeSearchMsg{Width: a.Width - left - 12})
}

// handleKeyPress processes key press events using mode-first architecture
func (a *AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch a.CurrentMode {
	case SearchMode:
		return a.handleSearchModeKeys(msg)
	case HelpMode:
		return a.handleHelpModeKeys(key)
	case NumberInputMode:
		return a.handleNumberInputModeKeys(key)
	case DetailMode:
		return a.handleDetailModeKeys(key)
	case LogoutMode:
		return a.handleLogoutModeKeys(key)
	default:
		return a.handleNormalModeKeys(key)
	}
}

// handleSearchModeKeys sends keystrokes to the search box; every edit
// re-filters the list from page one.
func (a *AppModel) handleSearchModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "enter":
		a.Search.Update(BlurSearchMsg{})
		a.CurrentMode = NormalMode
		return a, nil
	}

	before := a.Search.Value()
	cmd := a.Search.Update(SearchKeyMsg{Key: msg})
	if value := a.Search.Value(); value != before {
		a.State.SetQuery(value)
		a.Posts.Update(ResetRowMsg{})
	}
	return a, cmd
}

// handleHelpModeKeys processes keys when in help mode
func (a *AppModel) handleHelpModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "z", "esc", "q":
		a.CurrentMode = NormalMode
	}
	return a, nil
}

// handleNumberInputModeKeys processes keys when in number input mode
func (a *AppModel) handleNumberInputModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.NumberBuffer = ""
		a.CurrentMode = NormalMode
		return a, nil
	case "backspace":
		if len(a.NumberBuffer) > 1 {
			a.NumberBuffer = a.NumberBuffer[:len(a.NumberBuffer)-1]
		} else {
			a.NumberBuffer = ""
			a.CurrentMode = NormalMode
		}
		return a, nil
	}

	if key >= "0" && key <= "9" {
		a.NumberBuffer += key
		return a, nil
	}

	multiplier := parseMultiplier(a.NumberBuffer)
	a.NumberBuffer = ""
	a.CurrentMode = NormalMode
	if isMovementCommand(key) {
		return a.executeCommand(multiplier, key, a.ActivePane)
	}
	// Invalid key cancels number input
	return a, nil
}

// handleDetailModeKeys processes keys while the post detail modal is open
func (a *AppModel) handleDetailModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "c":
		return a, a.copyToClipboard()
	case "esc", "enter", "q":
		a.Modal.Update(HideModalMsg{})
		a.CurrentMode = NormalMode
	}
	return a, nil
}

// handleLogoutModeKeys processes keys in the logout confirmation
func (a *AppModel) handleLogoutModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "y", "Y":
		if err := a.session.Logout(); err != nil {
			logging.Error(err)
			a.Modal.Update(ShowModalMsg{
				Title:   "Logout Error",
				Content: fmt.Sprintf("Failed to log out: %v", err),
				Options: "[N] Close",
			})
			return a, nil
		}
		a.Modal.Update(HideModalMsg{})
		a.CurrentMode = NormalMode
		a.notice = "Logged out"
		return a, tea.Quit
	case "n", "N", "esc":
		a.Modal.Update(HideModalMsg{})
		a.CurrentMode = NormalMode
	}
	return a, nil
}

// handleNormalModeKeys processes keys when in normal mode
func (a *AppModel) handleNormalModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "z":
		a.CurrentMode = HelpMode
		return a, nil
	case "tab":
		if a.ActivePane == SidebarPane || a.Sidebar.Collapsed {
			a.ActivePane = PostsPane
		} else {
			a.ActivePane = SidebarPane
		}
		return a, nil
	case "b":
		a.Sidebar.Update(ToggleSidebarMsg{})
		if a.Sidebar.Collapsed {
			a.ActivePane = PostsPane
		}
		a.layout()
		return a, nil
	case "t":
		return a, a.toggleTheme()
	case "L":
		if a.session == nil {
			return a, a.setFlashMessage("No session to log out of", flashDuration)
		}
		a.Modal.Update(ShowLogoutConfirmation(a.session.User()))
		a.CurrentMode = LogoutMode
		return a, nil
	case "R":
		if a.Loading {
			return a, nil
		}
		a.Loading = true
		if !a.State.Loaded() {
			a.LoadErr = nil
		}
		return a, tea.Batch(a.load(), a.Spinner.Tick)
	}

	// Handle number input (digits 1-9)
	if key >= "1" && key <= "9" {
		a.NumberBuffer = key
		a.CurrentMode = NumberInputMode
		return a, nil
	}

	if isMovementCommand(key) {
		return a.executeCommand(1, key, a.ActivePane)
	}

	switch a.ActivePane {
	case SidebarPane:
		return a.handleSidebarKeys(key)
	case PostsPane:
		return a.handlePostsKeys(key)
	}
	return a, nil
}

// handleSidebarKeys processes non-movement keys when the sidebar is focused
func (a *AppModel) handleSidebarKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "l", "right":
		return a, a.navigate(a.Sidebar.Highlighted().Path)
	}
	return a, nil
}

// handlePostsKeys processes non-movement keys when the posts pane is focused
func (a *AppModel) handlePostsKeys(key string) (tea.Model, tea.Cmd) {
	if !a.showsPosts() {
		return a, nil
	}

	switch key {
	case "/":
		a.CurrentMode = SearchMode
		return a, a.Search.Update(FocusSearchMsg{})
	case "r", "esc":
		a.State.Reset()
		a.Search.Update(ClearSearchMsg{})
		a.Posts.Update(ResetRowMsg{})
	case "enter":
		if p, ok := a.Posts.Selected(a.State.Page()); ok {
			a.Modal.Update(ShowPostDetail(p, a.Modal.Width, a.now()))
			a.CurrentMode = DetailMode
		}
	case "c":
		return a, a.copyToClipboard()
	}
	return a, nil
}

// isMovementCommand checks if a key is a movement command that can use multipliers
func isMovementCommand(key string) bool {
	switch key {
	case "up", "k", "down", "j", "g", "G", "n", "p", "]", "[":
		return true
	}
	return false
}

// executeCommand executes a movement with a number multiplier on the specified pane
func (a *AppModel) executeCommand(multiplier int, key string, pane PaneType) (tea.Model, tea.Cmd) {
	if pane == SidebarPane {
		for range min(multiplier, len(Routes)) {
			switch key {
			case "up", "k":
				a.Sidebar.Update(NavigateUpMsg{})
			case "down", "j":
				a.Sidebar.Update(NavigateDownMsg{})
			}
		}
		return a, nil
	}

	if !a.showsPosts() {
		return a, nil
	}

	page := a.State.CurrentPage()
	switch key {
	case "up", "k":
		for range min(multiplier, a.Posts.Cursor) {
			a.Posts.Update(RowUpMsg{})
		}
		return a, nil
	case "down", "j":
		rows := len(a.State.Page().Items)
		for range min(multiplier, rows) {
			a.Posts.Update(RowDownMsg{Rows: rows})
		}
		return a, nil
	case "n", "]":
		a.State.SetPage(saturatingAdd(page, multiplier))
	case "p", "[":
		a.State.SetPage(saturatingAdd(page, -multiplier))
	case "g":
		// With a number: go to page N; without: first page
		a.State.SetPage(multiplier)
	case "G":
		a.State.SetPage(a.State.TotalPages())
	}
	if a.State.CurrentPage() != page {
		a.Posts.Update(ResetRowMsg{})
	}
	return a, nil
}

// parseMultiplier reads a count prefix. Counts too large for an int saturate.
func parseMultiplier(buf string) int {
	n, err := strconv.Atoi(buf)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return math.MaxInt
	case err != nil || n < 1:
		return 1
	}
	return n
}

// saturatingAdd adds b to a, sticking at the int bounds instead of wrapping
func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// showsPosts reports whether the active route renders the posts list
func (a *AppModel) showsPosts() bool {
	switch a.Sidebar.Active {
	case auth.DashboardPath, "/dashboard/posts":
		return true
	}
	return false
}

// navigate moves to path if the route guard allows it
func (a *AppModel) navigate(path string) tea.Cmd {
	decision := a.guard.Check(path, a.authenticated())
	if decision.Allowed() {
		a.Sidebar.Update(SetActiveRouteMsg{Path: path})
		return nil
	}
	if decision.Redirect == auth.LoginPath {
		a.notice = auth.ErrNotLoggedIn.Error()
		return tea.Quit
	}
	a.Sidebar.Update(SetActiveRouteMsg{Path: decision.Redirect})
	return nil
}

func (a *AppModel) authenticated() bool {
	return a.session != nil && a.session.Authenticated()
}

// toggleTheme flips the palette and saves the choice
func (a *AppModel) toggleTheme() tea.Cmd {
	name := a.Styles.Name.Toggle()
	a.Styles = theme.For(name)
	a.Spinner.Style = a.Styles.Accent

	if a.config == nil {
		return a.setFlashMessage("Theme: "+name.String(), flashDuration)
	}
	if err := theme.Save(a.config, name); err != nil {
		logging.Error(err)
		return a.setFlashMessage(fmt.Sprintf("Theme not saved: %v", err), flashDuration)
	}
	return a.setFlashMessage("Theme: "+name.String(), flashDuration)
}

// setFlashMessage sets a flash message that will disappear after the specified duration
func (a *AppModel) setFlashMessage(message string, duration time.Duration) tea.Cmd {
	a.FlashMessage = message
	a.FlashExpiry = a.now().Add(duration)
	return tea.Tick(duration, func(t time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

// copyToClipboard copies the selected post body to the clipboard
func (a *AppModel) copyToClipboard() tea.Cmd {
	p, ok := a.Posts.Selected(a.State.Page())
	if !ok {
		return a.setFlashMessage("No post selected", flashDuration)
	}

	if err := clipboard.CopyText(a.clipboard, p.Body); err != nil {
		logging.Error(err)
		return a.setFlashMessage(fmt.Sprintf("Error: %v", err), flashDuration)
	}
	return a.setFlashMessage(fmt.Sprintf("Copied post #%d (%d bytes)", p.ID, len(p.Body)), flashDuration)
}

// View method for tea.Model compatibility
func (a *AppModel) View() string {
	return AppView(*a)
}

// AppView renders the complete application as a pure function
func AppView(model AppModel) string {
	if model.Width == 0 {
		return "Initializing..."
	}

	if model.CurrentMode == HelpMode {
		return renderHelpView(model) + "\n" + renderStatusLine(model)
	}

	normalView := renderNormalView(model)
	if model.Modal.Active {
		return ModalView(model.Modal, model.Styles, normalView, model.Width, model.Height)
	}
	return normalView
}

// renderNormalView renders the header, sidebar and active page
func renderNormalView(model AppModel) string {
	user := auth.DefaultUser
	if model.session != nil {
		user = model.session.User()
	}
	header := HeaderView(user, model.Styles, model.Width)

	var page string
	if model.showsPosts() {
		page = PostsPaneView(
			model.Posts,
			model.State,
			model.Search,
			LoadStatus{Loading: model.Loading, Spinner: model.Spinner.View(), Err: model.LoadErr},
			model.Styles,
			model.ActivePane == PostsPane,
			model.now(),
		)
	} else {
		page = renderPlaceholder(model)
	}

	body := page
	if sidebar := SidebarView(model.Sidebar, model.Styles, model.ActivePane == SidebarPane); sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, page)
	}

	return header + "\n" + body + "\n" + renderStatusLine(model)
}

// renderPlaceholder fills the page area for routes without content
func renderPlaceholder(model AppModel) string {
	route := model.Sidebar.ActiveRoute()
	border := model.Styles.Border
	if model.ActivePane == PostsPane {
		border = model.Styles.FocusBorder
	}
	return border.
		Padding(1, 2).
		Width(max(model.Posts.Width-2, 1)).
		Height(max(model.Posts.Height-2, 1)).
		Render(model.Styles.Title.Render(route.Label) + "\n\n" +
			model.Styles.Muted.Render("Nothing here yet."))
}

// renderStatusLine renders the bottom status line (pure function)
func renderStatusLine(model AppModel) string {
	statusStyle := lipgloss.NewStyle().Width(model.Width)

	// Prioritize flash message if active and not expired
	if model.FlashMessage != "" && model.now().Before(model.FlashExpiry) {
		return statusStyle.Inherit(model.Styles.Success).Render(model.FlashMessage)
	}

	var statusLine string
	switch {
	case model.NumberBuffer != "":
		statusLine = model.NumberBuffer + " (g: go to page, n/p: skip pages, j/k: move rows, Esc to cancel)"
	default:
		switch model.CurrentMode {
		case HelpMode:
			statusLine = "Help Mode - Press z to return to normal view, q to quit"
		case SearchMode:
			statusLine = "Search: type to filter (Enter or Esc to finish)"
		case DetailMode:
			statusLine = "Post detail - c to copy, Esc to close"
		case LogoutMode:
			statusLine = "Confirm logout - y/n"
		default:
			statusLine = "Press z for help, q to quit"
			if q := model.State.Query(); strings.TrimSpace(q) != "" {
				statusLine = fmt.Sprintf("Filter: %q - %d matches (r to reset)", q, len(model.State.Filtered()))
			}
		}
	}

	return statusStyle.Inherit(model.Styles.Muted).Render(statusLine)
}

// renderHelpView renders the help content as a single pane (pure function)
func renderHelpView(model AppModel) string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"NAVIGATION", [][2]string{
			{"j, ↓", "Next row (sidebar: next entry)"},
			{"k, ↑", "Previous row (sidebar: previous entry)"},
			{"Tab", "Toggle focus between sidebar and page"},
			{"Enter", "Open route (sidebar) or post detail (posts)"},
			{"b", "Show or hide the sidebar"},
		}},
		{"SEARCH", [][2]string{
			{"/", "Search titles and IDs"},
			{"Enter, Esc", "Leave the search box"},
			{"r", "Reset search"},
		}},
		{"PAGINATION", [][2]string{
			{"n, ]", "Next page"},
			{"p, [", "Previous page"},
			{"#g", "Go to page # (g alone: first page)"},
			{"G", "Last page"},
		}},
		{"POSTS", [][2]string{
			{"c", "Copy the selected post body"},
			{"R", "Reload posts"},
		}},
		{"GLOBAL", [][2]string{
			{"t", "Toggle dark / light theme"},
			{"L", "Log out"},
			{"z", "Toggle this help screen"},
			{"q, Ctrl+c", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(model.Styles.Title.Render("dash - posts dashboard") + "\n")
	for _, section := range sections {
		b.WriteString("\n" + model.Styles.Accent.Render(section.title) + "\n")
		for _, kv := range section.keys {
			b.WriteString("  " + model.Styles.HelpKey.Width(12).Render(kv[0]) + model.Styles.HelpDesc.Render(kv[1]) + "\n")
		}
	}
	b.WriteString("\nPress z again to return to normal view.")

	return model.Styles.Border.
		Padding(1).
		Width(max(model.Width-2, 1)).
		Render(b.String())
}
