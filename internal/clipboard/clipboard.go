// Package clipboard defines the clipboard used to copy post content out of
// the dashboard. Implementations live in sysboard and mockboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupported is returned when no clipboard is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// Clipboard is a write-only system clipboard.
type Clipboard interface {
	// Write replaces the clipboard contents with everything read from r.
	Write(r io.Reader) error

	// IsSupported reports whether writes can succeed on this system.
	IsSupported() bool
}

// CopyText writes text to cb.
func CopyText(cb Clipboard, text string) error {
	if cb == nil || !cb.IsSupported() {
		return ErrUnsupported
	}
	if err := cb.Write(strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
