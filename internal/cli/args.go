package cli

import (
	"fmt"
	"strings"

	"github.com/yiblet/dash/internal/config"
)

// Args represents the top-level command structure
type Args struct {
	ConfigPath *string `arg:"--config" help:"Config file to use (default: ~/.config/dash/config.yaml)"`
	DBPath     *string `arg:"--db" help:"SQLite database for the post cache and session (default: ~/.config/dash/dash.db)"`
	Offline    bool    `arg:"--offline" help:"Read posts from the local cache instead of the API"`
	Trace      bool    `arg:"--trace" help:"Write load and navigation events to the log file"`

	Dashboard *DashboardCmd `arg:"subcommand:dashboard" help:"Open the interactive dashboard (default)"`
	Posts     *PostsCmd     `arg:"subcommand:posts" help:"Print one page of posts"`
	Sync      *SyncCmd      `arg:"subcommand:sync" help:"Fetch posts into the local cache"`
	Status    *StatusCmd    `arg:"subcommand:status" help:"Show session, theme and cache status"`
	Login     *LoginCmd     `arg:"subcommand:login" help:"Start a session"`
	Logout    *LogoutCmd    `arg:"subcommand:logout" help:"End the session"`
	Theme     *ThemeCmd     `arg:"subcommand:theme" help:"Show or change the color theme"`
	Config    *ConfigCmd    `arg:"subcommand:config" help:"Manage configuration"`
}

// DashboardCmd represents the 'dash dashboard' command
type DashboardCmd struct{}

// PostsCmd represents the 'dash posts' command
type PostsCmd struct {
	Query string `arg:"-q,--query" help:"Filter by title or ID"`
	Page  int    `arg:"-p,--page" default:"1" help:"Page to print (out-of-range pages are clamped)"`
	ID    *int   `arg:"--id" help:"Show one cached post in full instead of a page"`
}

// SyncCmd represents the 'dash sync' command
type SyncCmd struct {
	Clear bool `arg:"--clear" help:"Remove the cached posts instead of fetching"`
}

// StatusCmd represents the 'dash status' command
type StatusCmd struct{}

// LoginCmd represents the 'dash login' command
type LoginCmd struct {
	User string `arg:"-u,--user" help:"Name shown in the dashboard header"`
}

// LogoutCmd represents the 'dash logout' command
type LogoutCmd struct{}

// ThemeCmd represents the 'dash theme' command
type ThemeCmd struct {
	Value *string `arg:"positional" help:"dark, light or toggle (omit to show the current theme)"`
}

// ConfigCmd represents the 'dash config' command
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Get configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Set configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"List all configuration values"`
}

// ConfigGetCmd represents the 'dash config get' command
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Configuration key"`
}

// ConfigSetCmd represents the 'dash config set' command
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Configuration key"`
	Value string `arg:"positional,required" help:"Configuration value"`
}

// ConfigListCmd represents the 'dash config list' command
type ConfigListCmd struct{}

// Description returns the program description
func (Args) Description() string {
	return "dash - terminal admin dashboard for a searchable, paginated post list"
}

// Version returns the program version
func (Args) Version() string {
	return "dash 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  dash login --user ada            # Start a session
  dash                             # Open the dashboard
  dash posts -q sunt -p 2          # Print page 2 of posts matching "sunt"
  dash posts --id 7                # Show post 7 from the cache
  dash sync                        # Cache posts for --offline use
  dash --offline                   # Browse the cached posts
  dash theme toggle                # Switch between dark and light
  dash config set page-size 10     # Show 10 posts per page

Configuration keys: ` + strings.Join(config.Keys, ", ") + `
Environment overrides: ` + config.EnvPrefix + `PAGE_SIZE, ` + config.EnvPrefix + `API_URL, ...`
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	switch {
	case args.Theme != nil:
		return args.Theme.Validate()
	case args.Config != nil:
		return args.Config.Validate()
	}
	return nil
}

// Validate validates theme command arguments
func (t *ThemeCmd) Validate() error {
	if t.Value == nil {
		return nil
	}
	switch strings.ToLower(*t.Value) {
	case "dark", "light", "toggle":
		return nil
	}
	return fmt.Errorf("invalid theme %q (must be 'dark', 'light' or 'toggle')", *t.Value)
}

// Validate validates config command arguments
func (c *ConfigCmd) Validate() error {
	count := 0
	if c.Get != nil {
		count++
	}
	if c.Set != nil {
		count++
	}
	if c.List != nil {
		count++
	}

	if count == 0 {
		return fmt.Errorf("no config subcommand specified (use get, set, or list)")
	}
	if count > 1 {
		return fmt.Errorf("only one config subcommand can be specified")
	}

	if c.Get != nil && !config.IsKey(c.Get.Key) {
		return fmt.Errorf("unknown configuration key: %s", c.Get.Key)
	}
	if c.Set != nil && !config.IsKey(c.Set.Key) {
		return fmt.Errorf("unknown configuration key: %s", c.Set.Key)
	}
	return nil
}

// HasCommand reports whether any subcommand was given
func (args *Args) HasCommand() bool {
	return args.Dashboard != nil || args.Posts != nil || args.Sync != nil ||
		args.Status != nil || args.Login != nil || args.Logout != nil ||
		args.Theme != nil || args.Config != nil
}
