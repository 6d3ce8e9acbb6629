// Package clipboard provides cross-platform clipboard access via shell commands.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when clipboard access is not available.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// System is the Clipboard backed by pbcopy/pbpaste, xclip, or xsel.
type System struct{}

// Copy implements Clipboard.
func (System) Copy(text string) error { return Copy(text) }

// Paste implements Clipboard.
func (System) Paste() (string, error) { return Paste() }

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// IsAvailable checks if clipboard functionality is available on this system.
func IsAvailable() bool {
	_, err := getClipboardCommand()
	return err == nil
}

// getClipboardCommand returns the command that writes stdin to the clipboard.
func getClipboardCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := lookPath("pbcopy"); err == nil {
			return exec.Command("pbcopy"), nil
		}
	case "linux":
		// Try xclip first, fall back to xsel
		if _, err := lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := lookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input"), nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// getPasteCommand returns the command that prints the clipboard to stdout.
func getPasteCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := lookPath("pbpaste"); err == nil {
			return exec.Command("pbpaste"), nil
		}
	case "linux":
		if _, err := lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard", "-o"), nil
		}
		if _, err := lookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--output"), nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// Copy copies the given text to the system clipboard.
// Returns ErrClipboardUnavailable if clipboard access is not available.
func Copy(text string) error {
	cmd, err := getClipboardCommand()
	if err != nil {
		return err
	}
	// xclip stays running to serve the selection, so its output is not captured.
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", cmd.Path, err)
	}
	return nil
}

// Paste returns the current clipboard text.
// Returns ErrClipboardUnavailable if clipboard access is not available.
func Paste() (string, error) {
	cmd, err := getPasteCommand()
	if err != nil {
		return "", err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w: %s", cmd.Path, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return string(out), nil
}

// Memory is an in-process Clipboard.
type Memory struct {
	Text        string
	Unavailable bool
}

// Copy implements Clipboard.
func (m *Memory) Copy(text string) error {
	if m.Unavailable {
		return ErrClipboardUnavailable
	}
	m.Text = text
	return nil
}

// Paste implements Clipboard.
func (m *Memory) Paste() (string, error) {
	if m.Unavailable {
		return "", ErrClipboardUnavailable
	}
	return m.Text, nil
}
