package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// SetError shows err as the view message
func (s *ViewState) SetError(err error) {
	s.SetMessage(err.Error(), true)
}

// Messages for view switching
type (
	SwitchToBrowserMsg  struct{ SessionID string }
	SwitchToSessionsMsg struct{}
	SwitchToHelpMsg     struct{}
)

// OpenEditorMsg requests opening an exported file in the editor
type OpenEditorMsg struct {
	Path string
}
