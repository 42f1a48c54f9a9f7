package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/adapters/tui/styles"
	"vesselx/internal/application"
	"vesselx/internal/application/commands"
	"vesselx/internal/ports"
)

// SwitchToDeleteMsg opens the delete confirmation for a node
type SwitchToDeleteMsg struct {
	Node application.Node
}

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	ctx       context.Context
	store     ports.SessionStore
	sessionID string
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(ctx context.Context, store ports.SessionStore) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		ctx:               ctx,
		store:             store,
	}
}

// Open targets node in the given session
func (m *DeleteModel) Open(sessionID string, node application.Node) {
	m.sessionID = sessionID
	m.SetTarget(node)
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target.ID == "" {
		return DeleteErrMsg{Err: fmt.Errorf("no node selected")}
	}

	res, err := commands.NewDeleteNodeCommand(m.store, m.sessionID, m.Target.ID).Execute(m.ctx)
	if err != nil {
		return DeleteErrMsg{Err: err}
	}

	sel := m.Target.Parent
	if sel == "" && len(res.Promoted) > 0 {
		sel = res.Promoted[0]
	}
	return TreeChangedMsg{Message: res.Message, Select: sel}
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Node"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.Target, "Delete"))
	b.WriteString("\n\n")

	switch n := len(m.Target.Children); {
	case m.Target.Parent == "" && n != 1:
		b.WriteString(styles.ErrorMsg.Render("  The root can only be deleted when it has exactly one child."))
		b.WriteString("\n\n")
	case m.Target.Parent == "":
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %s becomes the new root.", m.Target.Children[0])))
		b.WriteString("\n\n")
	case n > 0:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %d children move up to %s.", n, m.Target.Parent)))
		b.WriteString("\n\n")
	}

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
