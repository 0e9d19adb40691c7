package auth

import (
	"strings"

	"github.com/yiblet/dash/internal/logging"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	RootPath      = "/"
)

// Decision is the outcome of a route check. A zero Decision allows the route.
type Decision struct {
	Redirect string
}

// Allow lets the navigation through.
var Allow = Decision{}

// Allowed reports whether the navigation proceeds to the requested path.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Guard decides whether a route may be shown.
type Guard interface {
	Check(path string, authenticated bool) Decision
}

// PassThrough records every navigation and allows it.
type PassThrough struct{}

func (PassThrough) Check(path string, authenticated bool) Decision {
	logging.Infof("route %s", path)
	logging.Trace("route.check", map[string]any{"path": path, "authenticated": authenticated})
	return Allow
}

// RequireSession sends anonymous users to the login route and logged-in
// users away from it. Only paths under /dashboard and /login are checked.
type RequireSession struct{}

func (RequireSession) Check(path string, authenticated bool) Decision {
	if !matches(path) {
		return Allow
	}

	switch {
	case !authenticated && path != LoginPath && path != RootPath:
		return Decision{Redirect: LoginPath}
	case authenticated && path == LoginPath:
		return Decision{Redirect: DashboardPath}
	default:
		return Allow
	}
}

// NewGuard returns RequireSession when enforce is set, PassThrough otherwise.
func NewGuard(enforce bool) Guard {
	if enforce {
		return RequireSession{}
	}
	return PassThrough{}
}

func matches(path string) bool {
	return path == LoginPath ||
		path == DashboardPath ||
		strings.HasPrefix(path, DashboardPath+"/")
}
