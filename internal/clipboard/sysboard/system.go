// Package sysboard writes to the system clipboard. It prefers the native
// clipboard through golang.design/x/clipboard and falls back to pbcopy,
// xclip or xsel when the native one cannot be initialized.
package sysboard

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func nativeInit() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	return initErr
}

// SystemClipboard implements clipboard.Clipboard for the host system.
type SystemClipboard struct{}

// New creates a new SystemClipboard instance
func New() *SystemClipboard {
	return &SystemClipboard{}
}

// IsSupported returns true if clipboard writes can succeed on this system
func (s *SystemClipboard) IsSupported() bool {
	if nativeInit() == nil {
		return true
	}
	_, ok := fallbackCommand()
	return ok
}

// Write replaces the clipboard contents with r.
func (s *SystemClipboard) Write(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	if nativeInit() == nil {
		// The returned channel fires when another program takes ownership,
		// not when the write completes, so it is not waited on.
		clipboard.Write(clipboard.FmtText, data)
		return nil
	}

	args, ok := fallbackCommand()
	if !ok {
		return fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = bytes.NewReader(data)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	return nil
}

// fallbackCommand returns the first available clipboard command for this OS.
func fallbackCommand() ([]string, bool) {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "linux":
		candidates = [][]string{
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return c, true
		}
	}
	return nil, false
}
