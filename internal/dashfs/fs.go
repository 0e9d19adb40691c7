// Package dashfs locates dash's files under the user's config directory.
package dashfs

import (
	"io/fs"
	"os"
	"path/filepath"
)

const (
	ConfigDir  = ".config/dash"
	ConfigFile = "config.yaml"
	DBFile     = "dash.db"
	LogFile    = "dash.log"
)

// DashFS is a filesystem rooted at the dash configuration directory
type DashFS struct {
	root string
}

// New creates a DashFS rooted at ~/.config/dash/, creating it if needed.
func New() (*DashFS, error) {
	return NewWithRoot("")
}

// NewWithRoot creates a DashFS rooted at root.
// If root is empty, uses the default ~/.config/dash/.
// If root is relative, it is resolved against the home directory.
func NewWithRoot(root string) (*DashFS, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	switch {
	case root == "":
		root = filepath.Join(homeDir, ConfigDir)
	case !filepath.IsAbs(root):
		root = filepath.Join(homeDir, root)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &DashFS{root: root}, nil
}

// Root returns the root directory path
func (d *DashFS) Root() string {
	return d.root
}

// Resolve returns p unchanged when absolute, otherwise relative to the root.
// An empty p resolves to fallback under the root.
func (d *DashFS) Resolve(p, fallback string) string {
	switch {
	case p == "":
		return filepath.Join(d.root, fallback)
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(d.root, p)
	}
}

func (d *DashFS) ConfigPath() string { return filepath.Join(d.root, ConfigFile) }
func (d *DashFS) DBPath() string     { return filepath.Join(d.root, DBFile) }
func (d *DashFS) LogPath() string    { return filepath.Join(d.root, LogFile) }

// Open implements fs.FS
func (d *DashFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return os.Open(filepath.Join(d.root, name))
}
