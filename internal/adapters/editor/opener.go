package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when no editor can be found
var ErrNoEditor = errors.New("no editor found: set editor in config or $EDITOR")

// fallbacks are tried in order when nothing is configured
var fallbacks = []string{"nvim", "vim", "vi", "nano", "code"}

// Opener implements ports.EditorOpener for exported CSV files
type Opener struct {
	preferred string
	lookPath  func(string) (string, error)
	getenv    func(string) string
}

// NewOpener creates an opener. preferred overrides $VISUAL and $EDITOR when set
// and may carry arguments, e.g. "code --wait".
func NewOpener(preferred string) *Opener {
	return &Opener{
		preferred: preferred,
		lookPath:  exec.LookPath,
		getenv:    os.Getenv,
	}
}

// OpenFile opens path and waits for the editor to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", cmd.Path, err)
	}
	return nil
}

// Command returns the editor process attached to the terminal, for use with
// bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.resolve()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// resolve returns the editor command line: config, $VISUAL, $EDITOR, then fallbacks
func (o *Opener) resolve() []string {
	for _, candidate := range []string{o.preferred, o.getenv("VISUAL"), o.getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	for _, name := range fallbacks {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}
		}
	}
	return nil
}
