package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yiblet/dash/internal/auth"
	"github.com/yiblet/dash/internal/clipboard"
	"github.com/yiblet/dash/internal/clipboard/sysboard"
	"github.com/yiblet/dash/internal/config"
	"github.com/yiblet/dash/internal/dashfs"
	"github.com/yiblet/dash/internal/feed"
	"github.com/yiblet/dash/internal/listview"
	"github.com/yiblet/dash/internal/logging"
	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/source"
	"github.com/yiblet/dash/internal/store"
	"github.com/yiblet/dash/internal/store/dbstore"
	"github.com/yiblet/dash/internal/theme"
	"github.com/yiblet/dash/internal/tui"
)

// tableWidth is the width of tables printed by 'dash posts'
const tableWidth = 100

// CLI handles the command-line interface
type CLI struct {
	filesystem    *dashfs.DashFS
	configManager *config.ConfigManager
	config        *config.Config
	store         store.Store
	feed          *feed.Manager
	session       *auth.Session
	guard         auth.Guard
	clipboard     clipboard.Clipboard
	offline       bool
	out           io.Writer
	now           func() time.Time
}

// New creates a new CLI instance
func New() (*CLI, error) {
	return NewWithArgs(nil)
}

// NewWithArgs creates a new CLI instance honoring the global flags in args
func NewWithArgs(args *Args) (*CLI, error) {
	if args == nil {
		args = &Args{}
	}

	filesystem, err := dashfs.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Config file precedence: flag > default
	configManager := config.NewConfigManagerWithPath(filesystem.ConfigPath())
	if args.ConfigPath != nil {
		configManager = config.NewConfigManagerWithPath(filesystem.Resolve(*args.ConfigPath, dashfs.ConfigFile))
	}
	cfg, err := configManager.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logging.Configure(filesystem.Resolve(cfg.LogFile, dashfs.LogFile))
	logging.SetTraceEnabled(args.Trace)

	dbPath := filesystem.DBPath()
	if args.DBPath != nil {
		dbPath = filesystem.Resolve(*args.DBPath, dashfs.DBFile)
	}
	sqliteStore, err := dbstore.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create database store: %w", err)
	}

	offline := args.Offline || cfg.Source == config.SourceCache

	return &CLI{
		filesystem:    filesystem,
		configManager: configManager,
		config:        cfg,
		store:         sqliteStore,
		feed:          feed.NewManager(newSource(cfg, sqliteStore, offline), sqliteStore.Posts()),
		session:       auth.NewSession(sqliteStore.Config()),
		guard:         auth.NewGuard(cfg.EnforceRoutes),
		clipboard:     sysboard.New(),
		offline:       offline,
		out:           os.Stdout,
		now:           time.Now,
	}, nil
}

// newSource picks where posts are loaded from
func newSource(cfg *config.Config, st store.Store, offline bool) source.Source {
	if offline {
		return source.NewStoreSource(st.Posts())
	}
	src := source.NewHTTPSource(cfg.APIURL)
	src.Timeout = cfg.Timeout()
	src.Retries = cfg.Retries
	return src
}

// Close releases the database
func (c *CLI) Close() error {
	return c.store.Close()
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Posts != nil:
		return c.executePosts(args.Posts)
	case args.Sync != nil:
		return c.executeSync(args.Sync)
	case args.Status != nil:
		return c.executeStatus()
	case args.Login != nil:
		return c.executeLogin(args.Login)
	case args.Logout != nil:
		return c.executeLogout()
	case args.Theme != nil:
		return c.executeTheme(args.Theme)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	default:
		// Default behavior: launch TUI
		return c.launchTUI()
	}
}

// currentTheme returns the saved theme, falling back to the configured one
func (c *CLI) currentTheme() theme.Name {
	fallback, err := theme.Parse(c.config.Theme)
	if err != nil {
		fallback = theme.Default
	}
	return theme.Load(c.store.Config(), fallback)
}

// executePosts handles the 'dash posts' command
func (c *CLI) executePosts(cmd *PostsCmd) error {
	if err := c.session.Require(); err != nil {
		return err
	}

	if cmd.ID != nil {
		return c.executePostDetail(*cmd.ID)
	}

	posts, err := c.feed.Load(context.Background())
	if err != nil {
		fmt.Fprintln(c.out, "Failed to load posts. Please try again later.")
		return err
	}

	state := listview.NewViewState[post.Post](c.config.PageSize)
	state.SetSourceItems(posts)
	state.SetQuery(cmd.Query)
	state.SetPage(cmd.Page)

	styles := theme.For(c.currentTheme())
	page := state.Page()

	if len(page.Items) == 0 {
		fmt.Fprintln(c.out, tui.EmptyView(styles))
	} else {
		fmt.Fprintln(c.out, tui.PostsTable(page.Items, styles, tableWidth, -1, c.now()))
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, tui.PaginationView(page, state.PageNumbers(), styles))
	return nil
}

// executePostDetail prints one post from the local cache
func (c *CLI) executePostDetail(id int) error {
	p, err := c.feed.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("post %d is not cached; run `dash sync` or open the dashboard first", id)
	}
	if err != nil {
		return fmt.Errorf("failed to read post %d: %w", id, err)
	}

	detail := tui.ShowPostDetail(p, tableWidth, c.now())
	fmt.Fprintln(c.out, detail.Title)
	fmt.Fprintln(c.out, detail.Content)
	return nil
}

// executeSync handles the 'dash sync' command
func (c *CLI) executeSync(cmd *SyncCmd) error {
	if cmd.Clear {
		if err := c.feed.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Fprintln(c.out, "Cleared cached posts.")
		return nil
	}

	if c.offline {
		return fmt.Errorf("cannot sync in offline mode")
	}

	n, err := c.feed.Sync(context.Background())
	if source.IsLoadFailure(err) {
		return fmt.Errorf("sync failed: %w", err)
	}
	if err != nil {
		return fmt.Errorf("sync fetched posts but could not cache them: %w", err)
	}
	fmt.Fprintf(c.out, "Synced %d posts.\n", n)
	return nil
}

// executeStatus handles the 'dash status' command
func (c *CLI) executeStatus() error {
	stats, err := c.feed.Stats()
	if err != nil {
		return err
	}

	user := "not logged in"
	if c.session.Authenticated() {
		user = c.session.User()
	}
	src := "api (" + c.config.APIURL + ")"
	if c.offline {
		src = "cache"
	}
	lastSync := "never"
	if !stats.LastSync.IsZero() {
		lastSync = stats.LastSync.Local().Format(time.DateTime)
	}

	fmt.Fprintf(c.out, "Session:     %s\n", user)
	fmt.Fprintf(c.out, "Theme:       %s\n", c.currentTheme())
	fmt.Fprintf(c.out, "Source:      %s\n", src)
	fmt.Fprintf(c.out, "Cached:      %d posts\n", stats.Count)
	fmt.Fprintf(c.out, "Last sync:   %s\n", lastSync)
	fmt.Fprintf(c.out, "Log file:    %s\n", logging.Path())
	return nil
}

// executeLogin handles the 'dash login' command
func (c *CLI) executeLogin(cmd *LoginCmd) error {
	decision := c.guard.Check(auth.LoginPath, c.session.Authenticated())
	if decision.Redirect == auth.DashboardPath {
		fmt.Fprintf(c.out, "Already logged in as %s.\n", c.session.User())
		return nil
	}

	if _, err := c.session.Login(cmd.User); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	logging.Infof("logged in as %s", c.session.User())
	fmt.Fprintf(c.out, "Logged in as %s.\n", c.session.User())
	return nil
}

// executeLogout handles the 'dash logout' command
func (c *CLI) executeLogout() error {
	if err := c.session.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

// executeTheme handles the 'dash theme' command
func (c *CLI) executeTheme(cmd *ThemeCmd) error {
	current := c.currentTheme()
	if cmd.Value == nil {
		fmt.Fprintln(c.out, current)
		return nil
	}

	next := current.Toggle()
	if !strings.EqualFold(*cmd.Value, "toggle") {
		name, err := theme.Parse(*cmd.Value)
		if err != nil {
			return err
		}
		next = name
	}

	if err := theme.Save(c.store.Config(), next); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Theme set to %s.\n", next)
	return nil
}

// executeConfig handles the 'dash config' command
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Get != nil:
		return c.executeConfigGet(cmd.Get)
	case cmd.Set != nil:
		return c.executeConfigSet(cmd.Set)
	case cmd.List != nil:
		return c.executeConfigList(cmd.List)
	default:
		return fmt.Errorf("no config subcommand specified")
	}
}

// executeConfigGet handles the 'dash config get' command
func (c *CLI) executeConfigGet(cmd *ConfigGetCmd) error {
	value, err := c.configManager.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to get config value: %w", err)
	}
	fmt.Fprintln(c.out, value)
	return nil
}

// executeConfigSet handles the 'dash config set' command
func (c *CLI) executeConfigSet(cmd *ConfigSetCmd) error {
	if err := c.configManager.Update(cmd.Key, cmd.Value); err != nil {
		return fmt.Errorf("failed to set config value: %w", err)
	}
	fmt.Fprintf(c.out, "Set %s = %s\n", cmd.Key, cmd.Value)
	return nil
}

// executeConfigList handles the 'dash config list' command
func (c *CLI) executeConfigList(cmd *ConfigListCmd) error {
	values, err := c.configManager.List()
	if err != nil {
		return fmt.Errorf("failed to list config values: %w", err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(c.out, "Config file: %s%s\n", c.configManager.GetConfigPath(), c.configFileNote())
	fmt.Fprintln(c.out, "Current configuration:")
	for _, k := range keys {
		fmt.Fprintf(c.out, "  %s: %s\n", k, values[k])
	}
	return nil
}

// configFileNote marks a default-location config file that was never written
func (c *CLI) configFileNote() string {
	if c.configManager.GetConfigPath() != c.filesystem.ConfigPath() {
		return ""
	}
	if _, err := fs.Stat(c.filesystem, dashfs.ConfigFile); errors.Is(err, fs.ErrNotExist) {
		return " (not created, using defaults)"
	}
	return ""
}

// launchTUI opens the dashboard. Without a session the user is sent to 'dash login'.
func (c *CLI) launchTUI() error {
	if err := c.session.Require(); err != nil {
		return err
	}

	model := tui.NewAppModel(tui.Options{
		Loader:    c.feed,
		Session:   c.session,
		Guard:     c.guard,
		Clipboard: c.clipboard,
		Config:    c.store.Config(),
		PageSize:  c.config.PageSize,
		Theme:     c.currentTheme(),
		Now:       c.now,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	if notice := model.Notice(); notice != "" {
		fmt.Fprintln(c.out, notice)
	}
	return nil
}
