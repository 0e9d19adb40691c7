package tui

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yiblet/dash/internal/auth"
	"github.com/yiblet/dash/internal/clipboard/mockboard"
	"github.com/yiblet/dash/internal/logging"
	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/source"
	"github.com/yiblet/dash/internal/store/memstore"
	"github.com/yiblet/dash/internal/theme"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tui-test")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "dash.log"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(app *AppModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = app.Update(key(k))
	}
	return cmd
}

// newLoadedApp creates an app holding n posts, loaded through its own source
func newLoadedApp(t *testing.T, n int) *AppModel {
	t.Helper()
	app := NewAppModel(Options{
		Loader:    source.StaticSource(samplePosts(n)),
		Clipboard: mockboard.New(),
		Now:       func() time.Time { return fixedNow },
	})
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	app.Update(app.load()())
	return app
}

func TestNewAppModel(t *testing.T) {
	app := NewAppModel(Options{Loader: source.StaticSource(nil)})

	if app.ActivePane != PostsPane {
		t.Errorf("Expected posts pane focused, got %v", app.ActivePane)
	}
	if !app.Loading {
		t.Error("Expected app to start loading")
	}
	if app.State.PageSize() != defaultPageSize {
		t.Errorf("Expected default page size %d, got %d", defaultPageSize, app.State.PageSize())
	}
	if app.Styles.Name != theme.Default {
		t.Errorf("Expected default theme, got %s", app.Styles.Name)
	}
	if app.Init() == nil {
		t.Error("Expected Init to start loading")
	}
	if !strings.Contains(app.View(), "Loading posts...") {
		t.Error("Expected loading view before the first load")
	}
}

func TestAppModel_WindowResize(t *testing.T) {
	app := NewAppModel(Options{})

	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	if app.Width != 140 || app.Height != 30 {
		t.Errorf("Expected 140x30, got %dx%d", app.Width, app.Height)
	}
	if app.Sidebar.Width != sidebarWidth {
		t.Errorf("Expected sidebar width %d, got %d", sidebarWidth, app.Sidebar.Width)
	}
	if app.Posts.Width != 140-sidebarWidth {
		t.Errorf("Expected posts width %d, got %d", 140-sidebarWidth, app.Posts.Width)
	}

	// Collapsing the sidebar gives the page the full width
	press(app, "b")
	if app.Posts.Width != 140 {
		t.Errorf("Expected full-width posts pane, got %d", app.Posts.Width)
	}

	app.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	if app.Width != 40 {
		t.Errorf("Expected minimum width 40, got %d", app.Width)
	}
}

func TestAppModel_LoadSuccess(t *testing.T) {
	app := newLoadedApp(t, 12)

	if app.Loading {
		t.Error("Expected loading to finish")
	}
	if app.LoadErr != nil {
		t.Errorf("Expected no error, got %v", app.LoadErr)
	}
	if got := len(app.State.Source()); got != 12 {
		t.Errorf("Expected 12 posts, got %d", got)
	}

	view := app.View()
	for _, want := range []string{"Welcome back, User!", "Total Posts", "#1", "Page 1 of 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestAppModel_LoadFailure(t *testing.T) {
	failure := &source.LoadFailure{Kind: source.KindStatus, Reason: "failed to fetch posts: unexpected status 500"}
	app := NewAppModel(Options{Loader: source.FuncSource(func(context.Context) ([]post.Post, error) {
		return nil, failure
	})})
	app.Update(app.load()())

	if app.State.Loaded() {
		t.Error("Expected state to stay unloaded")
	}
	view := app.View()
	if !strings.Contains(view, "Failed to load posts. Please try again later.") {
		t.Error("Expected failure message")
	}
	if !strings.Contains(view, "unexpected status 500") {
		t.Error("Expected failure reason")
	}
}

func TestAppModel_ReloadFailureKeepsState(t *testing.T) {
	app := newLoadedApp(t, 12)
	press(app, "n")

	cmd := press(app, "R")
	if cmd == nil || !app.Loading {
		t.Fatal("Expected reload to start")
	}
	// A second R while loading is ignored
	if cmd := press(app, "R"); cmd != nil {
		t.Error("Expected no second load while one is in flight")
	}

	app.Update(PostsLoadedMsg{Err: errors.New("network down")})
	if app.State.CurrentPage() != 2 {
		t.Errorf("Expected page 2 kept after failed reload, got %d", app.State.CurrentPage())
	}
	if len(app.State.Source()) != 12 {
		t.Errorf("Expected source kept, got %d", len(app.State.Source()))
	}
	if !strings.Contains(app.FlashMessage, "network down") {
		t.Errorf("Expected flash with the failure, got %q", app.FlashMessage)
	}
}

func TestAppModel_ReloadSuccessResetsQueryAndPage(t *testing.T) {
	app := newLoadedApp(t, 30)
	press(app, "/", "1", "esc")
	press(app, "n")

	app.Update(PostsLoadedMsg{Posts: samplePosts(8)})
	if app.State.Query() != "" || app.Search.Value() != "" {
		t.Errorf("Expected query cleared, got %q / %q", app.State.Query(), app.Search.Value())
	}
	if app.State.CurrentPage() != 1 {
		t.Errorf("Expected page 1, got %d", app.State.CurrentPage())
	}
}

func TestAppModel_Search(t *testing.T) {
	app := newLoadedApp(t, 30)
	press(app, "n", "n")

	press(app, "/")
	if app.CurrentMode != SearchMode || !app.Search.IsActive() {
		t.Fatal("Expected search mode")
	}

	// Keys typed in search mode go to the box, not to commands
	press(app, "2", "q")
	if app.State.Query() != "2q" {
		t.Errorf("Expected query %q, got %q", "2q", app.State.Query())
	}
	press(app, "backspace")
	if app.State.Query() != "2" {
		t.Errorf("Expected query %q, got %q", "2", app.State.Query())
	}
	if app.State.CurrentPage() != 1 {
		t.Errorf("Expected query change to reset page, got %d", app.State.CurrentPage())
	}
	// "2", "12", "20".."29" match by ID
	if got := len(app.State.Filtered()); got != 12 {
		t.Errorf("Expected 12 matches, got %d", got)
	}

	press(app, "enter")
	if app.CurrentMode != NormalMode || app.Search.IsActive() {
		t.Error("Expected enter to leave search mode")
	}
	if app.State.Query() != "2" {
		t.Error("Expected query kept after leaving search")
	}

	press(app, "r")
	if app.State.Query() != "" || app.Search.Value() != "" {
		t.Error("Expected r to reset the search")
	}
}

func TestAppModel_Pagination(t *testing.T) {
	app := newLoadedApp(t, 50)

	tests := []struct {
		keys []string
		want int
	}{
		{[]string{"n"}, 2},
		{[]string{"]", "]"}, 4},
		{[]string{"p"}, 3},
		{[]string{"["}, 2},
		{[]string{"G"}, 10},
		{[]string{"n"}, 10},
		{[]string{"g"}, 1},
		{[]string{"p"}, 1},
		{[]string{"7", "g"}, 7},
		{[]string{"9", "9", "g"}, 10},
		{[]string{"3", "p"}, 7},
		{[]string{"2", "n"}, 9},
	}

	for _, tt := range tests {
		press(app, tt.keys...)
		if got := app.State.CurrentPage(); got != tt.want {
			t.Errorf("After %v: expected page %d, got %d", tt.keys, tt.want, got)
		}
		if app.CurrentMode != NormalMode {
			t.Errorf("After %v: expected normal mode", tt.keys)
		}
	}
}

func TestAppModel_NumberInputCancel(t *testing.T) {
	app := newLoadedApp(t, 50)

	press(app, "4")
	if app.CurrentMode != NumberInputMode || app.NumberBuffer != "4" {
		t.Fatalf("Expected number input with 4, got mode %v buffer %q", app.CurrentMode, app.NumberBuffer)
	}
	press(app, "backspace")
	if app.CurrentMode != NormalMode || app.NumberBuffer != "" {
		t.Error("Expected backspace on one digit to cancel")
	}

	press(app, "4", "esc")
	if app.CurrentMode != NormalMode || app.State.CurrentPage() != 1 {
		t.Error("Expected esc to cancel without moving")
	}

	press(app, "4", "x")
	if app.CurrentMode != NormalMode || app.State.CurrentPage() != 1 {
		t.Error("Expected an invalid key to cancel without moving")
	}
}

func TestAppModel_RowCursorAndDetail(t *testing.T) {
	app := newLoadedApp(t, 12)

	press(app, "j", "j", "k", "j")
	if app.Posts.Cursor != 2 {
		t.Errorf("Expected cursor 2, got %d", app.Posts.Cursor)
	}
	press(app, "9", "j")
	if app.Posts.Cursor != 4 {
		t.Errorf("Expected cursor clamped to 4, got %d", app.Posts.Cursor)
	}

	press(app, "n")
	if app.Posts.Cursor != 0 {
		t.Errorf("Expected page change to reset the cursor, got %d", app.Posts.Cursor)
	}

	press(app, "j", "enter")
	if app.CurrentMode != DetailMode || !app.Modal.Active {
		t.Fatal("Expected detail modal")
	}
	if !strings.HasPrefix(app.Modal.Title, "#7 ") {
		t.Errorf("Expected detail of post 7, got %q", app.Modal.Title)
	}
	if !strings.Contains(app.View(), "body of post 7") {
		t.Error("Expected body in detail overlay")
	}

	press(app, "esc")
	if app.CurrentMode != NormalMode || app.Modal.Active {
		t.Error("Expected esc to close the detail")
	}
}

func TestAppModel_Copy(t *testing.T) {
	cb := mockboard.New()
	app := newLoadedApp(t, 3)
	app.clipboard = cb

	press(app, "j", "c")
	if cb.Text() != "body of post 2" {
		t.Errorf("Expected body of post 2 copied, got %q", cb.Text())
	}
	if !strings.Contains(app.FlashMessage, "Copied post #2") {
		t.Errorf("Unexpected flash %q", app.FlashMessage)
	}

	app.clipboard = mockboard.Unsupported()
	press(app, "c")
	if !strings.Contains(app.FlashMessage, "not supported") {
		t.Errorf("Expected unsupported flash, got %q", app.FlashMessage)
	}

	press(app, "/", "zzz", "esc", "c")
	if app.FlashMessage != "No post selected" {
		t.Errorf("Expected no selection flash, got %q", app.FlashMessage)
	}
}

func TestAppModel_FlashExpires(t *testing.T) {
	app := newLoadedApp(t, 3)
	press(app, "c")
	if app.FlashMessage == "" {
		t.Fatal("Expected a flash message")
	}
	app.Update(flashExpiredMsg{})
	if app.FlashMessage != "" {
		t.Error("Expected flash cleared")
	}
}

func TestAppModel_ThemeToggle(t *testing.T) {
	s := memstore.NewMemoryStore()
	app := NewAppModel(Options{Config: s.Config(), Theme: theme.Light})
	if app.Styles.Name != theme.Light {
		t.Fatalf("Expected configured theme light, got %s", app.Styles.Name)
	}

	press(app, "t")
	if app.Styles.Name != theme.Dark {
		t.Errorf("Expected dark after toggle, got %s", app.Styles.Name)
	}
	if got := theme.Load(s.Config(), theme.Light); got != theme.Dark {
		t.Errorf("Expected dark saved, got %s", got)
	}

	// The saved choice wins over the configured fallback
	again := NewAppModel(Options{Config: s.Config(), Theme: theme.Light})
	if again.Styles.Name != theme.Dark {
		t.Errorf("Expected saved dark theme, got %s", again.Styles.Name)
	}
}

func TestAppModel_Logout(t *testing.T) {
	s := memstore.NewMemoryStore()
	session := auth.NewSession(s.Config())
	if _, err := session.Login("ada"); err != nil {
		t.Fatal(err)
	}
	app := NewAppModel(Options{Session: session})

	if !strings.Contains(app.View(), "Welcome back, ada!") {
		t.Error("Expected greeting with the user name")
	}

	press(app, "L")
	if app.CurrentMode != LogoutMode || !app.Modal.Active {
		t.Fatal("Expected logout confirmation")
	}
	press(app, "n")
	if app.CurrentMode != NormalMode || !session.Authenticated() {
		t.Error("Expected cancel to keep the session")
	}

	press(app, "L")
	if cmd := press(app, "y"); cmd == nil {
		t.Error("Expected quit after logout")
	}
	if session.Authenticated() {
		t.Error("Expected session cleared")
	}
	if app.Notice() != "Logged out" {
		t.Errorf("Expected logout notice, got %q", app.Notice())
	}
}

func TestAppModel_LogoutWithoutSession(t *testing.T) {
	app := NewAppModel(Options{})
	press(app, "L")
	if app.CurrentMode != NormalMode {
		t.Error("Expected no confirmation without a session")
	}
	if app.FlashMessage == "" {
		t.Error("Expected a flash message")
	}
}

func TestAppModel_SidebarNavigation(t *testing.T) {
	app := newLoadedApp(t, 12)

	press(app, "tab")
	if app.ActivePane != SidebarPane {
		t.Fatal("Expected sidebar focus")
	}
	press(app, "j", "j", "enter")
	if app.Sidebar.Active != "/dashboard/projects" {
		t.Errorf("Expected projects route, got %q", app.Sidebar.Active)
	}
	if !strings.Contains(app.View(), "Nothing here yet.") {
		t.Error("Expected placeholder panel")
	}

	// Page keys do nothing on a route without the list
	press(app, "tab", "n")
	if app.State.CurrentPage() != 1 {
		t.Errorf("Expected page unchanged, got %d", app.State.CurrentPage())
	}

	press(app, "tab", "k", "enter")
	if !app.showsPosts() {
		t.Error("Expected posts route to show the list")
	}
}

func TestAppModel_GuardRedirect(t *testing.T) {
	s := memstore.NewMemoryStore()
	app := NewAppModel(Options{
		Session: auth.NewSession(s.Config()),
		Guard:   auth.RequireSession{},
	})

	press(app, "tab", "j")
	cmd := press(app, "enter")
	if cmd == nil {
		t.Fatal("Expected quit when the guard redirects to login")
	}
	if app.Notice() != auth.ErrNotLoggedIn.Error() {
		t.Errorf("Unexpected notice %q", app.Notice())
	}
	if app.Sidebar.Active != "/dashboard" {
		t.Errorf("Expected route unchanged, got %q", app.Sidebar.Active)
	}
}

func TestAppModel_HelpMode(t *testing.T) {
	app := newLoadedApp(t, 3)

	press(app, "z")
	if app.CurrentMode != HelpMode {
		t.Fatal("Expected help mode")
	}
	view := app.View()
	if !strings.Contains(view, "PAGINATION") {
		t.Error("Expected help content")
	}
	// Keys other than exit are ignored
	press(app, "n")
	if app.State.CurrentPage() != 1 {
		t.Error("Expected page unchanged in help mode")
	}
	press(app, "z")
	if app.CurrentMode != NormalMode {
		t.Error("Expected z to leave help")
	}
}

func TestAppModel_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			app := newLoadedApp(t, 3)
			if cmd := press(app, k); cmd == nil {
				t.Error("Expected quit command but got nil")
			}
		})
	}

	// ctrl+c works even inside the search box
	app := newLoadedApp(t, 3)
	press(app, "/")
	if cmd := press(app, "ctrl+c"); cmd == nil {
		t.Error("Expected quit from search mode")
	}
}

func TestAppModel_RetryAfterFailedFirstLoad(t *testing.T) {
	fail := true
	app := NewAppModel(Options{Loader: source.FuncSource(func(context.Context) ([]post.Post, error) {
		if fail {
			return nil, &source.LoadFailure{Kind: source.KindNetwork, Reason: "failed to fetch posts: connection refused"}
		}
		return samplePosts(3), nil
	})})
	app.Update(app.load()())
	if !strings.Contains(app.View(), "Failed to load posts") {
		t.Fatal("Expected failure view after the first load")
	}

	cmd := press(app, "R")
	if cmd == nil || !app.Loading {
		t.Fatal("Expected retry to start")
	}
	view := app.View()
	if !strings.Contains(view, "Loading posts...") {
		t.Error("Expected loading view while retrying")
	}
	if strings.Contains(view, "Failed to load posts") {
		t.Error("Expected failure view replaced while retrying")
	}

	fail = false
	app.Update(app.load()())
	if app.LoadErr != nil || !app.State.Loaded() {
		t.Errorf("Expected successful retry, got err %v", app.LoadErr)
	}
}

func TestAppModel_HugeCountPrefix(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"max int next", append(strings.Split("9223372036854775807", ""), "n"), 10},
		{"overflowing goto", append(strings.Split("99999999999999999999", ""), "g"), 10},
		{"overflowing next", append(strings.Split("99999999999999999999", ""), "n"), 10},
		{"overflowing prev", append(strings.Split("99999999999999999999", ""), "p"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newLoadedApp(t, 50)
			press(app, "n")
			press(app, tt.keys...)
			if got := app.State.CurrentPage(); got != tt.want {
				t.Errorf("Expected page %d, got %d", tt.want, got)
			}
			if app.CurrentMode != NormalMode {
				t.Error("Expected normal mode after the command")
			}
		})
	}
}

func TestAppModel_HugeCountRowMove(t *testing.T) {
	app := newLoadedApp(t, 12)

	press(app, append(strings.Split("99999999999999999999", ""), "j")...)
	if app.Posts.Cursor != 4 {
		t.Errorf("Expected cursor on the last row, got %d", app.Posts.Cursor)
	}
	press(app, append(strings.Split("300000000", ""), "k")...)
	if app.Posts.Cursor != 0 {
		t.Errorf("Expected cursor on the first row, got %d", app.Posts.Cursor)
	}

	press(app, "tab")
	press(app, append(strings.Split("300000000", ""), "j")...)
	if app.Sidebar.Cursor != len(Routes)-1 {
		t.Errorf("Expected sidebar cursor on the last route, got %d", app.Sidebar.Cursor)
	}
}

func TestParseMultiplier(t *testing.T) {
	tests := []struct {
		buf  string
		want int
	}{
		{"7", 7},
		{"42", 42},
		{"99999999999999999999", math.MaxInt},
		{"", 1},
		{"0", 1},
	}
	for _, tt := range tests {
		if got := parseMultiplier(tt.buf); got != tt.want {
			t.Errorf("parseMultiplier(%q) = %d, want %d", tt.buf, got, tt.want)
		}
	}

	if got := saturatingAdd(math.MaxInt-1, 5); got != math.MaxInt {
		t.Errorf("Expected saturation at MaxInt, got %d", got)
	}
	if got := saturatingAdd(2, -math.MaxInt); got != 2-math.MaxInt {
		t.Errorf("Expected %d, got %d", 2-math.MaxInt, got)
	}
	if got := saturatingAdd(math.MinInt+1, -5); got != math.MinInt {
		t.Errorf("Expected saturation at MinInt, got %d", got)
	}
}
