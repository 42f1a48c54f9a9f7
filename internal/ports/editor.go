package ports

import "os/exec"

// EditorOpener opens exported CSV files in an external editor
type EditorOpener interface {
	// OpenFile opens path using $EDITOR, falling back to common editors
	OpenFile(path string) error

	// Command returns the editor process for bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
