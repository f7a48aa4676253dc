// Package clipboard provides cross-platform clipboard access via shell
// commands. On Linux the text is offered on both the primary selection and
// the clipboard, so it can be pasted with middle-click as well as Ctrl-V.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard helper is present.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Writer writes text to the system clipboard via a helper program. The
// zero value is not usable; call New.
type Writer struct {
	// commands to run, each fed the text on stdin
	commands [][]string
}

// New picks a clipboard helper. tool forces a specific helper ("xsel",
// "xclip", "pbcopy"); the empty string or "auto" selects by platform and
// availability. Returns ErrClipboardUnavailable when nothing suitable is
// installed.
func New(tool string) (*Writer, error) {
	switch tool {
	case "", "auto":
		return autoWriter()
	case "xsel":
		return &Writer{commands: xselCommands}, nil
	case "xclip":
		return &Writer{commands: xclipCommands}, nil
	case "pbcopy":
		return &Writer{commands: [][]string{{"pbcopy"}}}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard tool: %s", tool)
	}
}

var (
	xselCommands = [][]string{
		{"xsel", "--primary", "--input"},
		{"xsel", "--clipboard", "--input"},
	}
	xclipCommands = [][]string{
		{"xclip", "-selection", "primary"},
		{"xclip", "-selection", "clipboard"},
	}
)

func autoWriter() (*Writer, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return &Writer{commands: [][]string{{"pbcopy"}}}, nil
		}
	case "linux":
		if _, err := exec.LookPath("xsel"); err == nil {
			return &Writer{commands: xselCommands}, nil
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return &Writer{commands: xclipCommands}, nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// IsAvailable reports whether a clipboard helper can be found.
func IsAvailable() bool {
	_, err := autoWriter()
	return err == nil
}

// Copy writes the text to every selection the helper supports.
func (w *Writer) Copy(text string) error {
	for _, argv := range w.commands {
		if _, err := exec.LookPath(argv[0]); err != nil {
			return ErrClipboardUnavailable
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", argv[0], err)
		}
	}
	return nil
}

// Copy writes text using the default clipboard helper for this platform.
func Copy(text string) error {
	w, err := autoWriter()
	if err != nil {
		return err
	}
	return w.Copy(text)
}
