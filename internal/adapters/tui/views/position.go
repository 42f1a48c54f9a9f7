package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/application"
	"vesselx/internal/application/commands"
	"vesselx/internal/ports"
)

// PositionAction is what the position form does on submit
type PositionAction int

const (
	ActionAddRoot PositionAction = iota
	ActionAddChild
	ActionInsertBefore
	ActionSetPosition
	ActionPlaceNext
)

func (a PositionAction) String() string {
	switch a {
	case ActionAddRoot:
		return "Place Root"
	case ActionAddChild:
		return "Add Child"
	case ActionInsertBefore:
		return "Insert Before"
	case ActionSetPosition:
		return "Move Node"
	case ActionPlaceNext:
		return "Place Template Node"
	default:
		return "Position"
	}
}

// SwitchToPositionMsg opens the position form
type SwitchToPositionMsg struct {
	Action  PositionAction
	Anchor  application.NodeID // parent, sibling or node being moved
	Initial application.Position
}

// TreeChangedMsg reports a successful edit; Select is the node to put the cursor on
type TreeChangedMsg struct {
	Message string
	Select  application.NodeID
}

// PositionModel asks for RAS coordinates. Placements go through the interactor
// backed PlaceCommand; ActionSetPosition moves an existing node.
type PositionModel struct {
	ViewState
	ctx       context.Context
	store     ports.SessionStore
	sessionID string
	action    PositionAction
	anchor    application.NodeID
	form      *InputForm
}

// NewPositionModel creates a new position form
func NewPositionModel(ctx context.Context, store ports.SessionStore) *PositionModel {
	return &PositionModel{
		ctx:   ctx,
		store: store,
		form: NewInputForm(
			NewInputField("R (mm)", "0.0", 16),
			NewInputField("A (mm)", "0.0", 16),
			NewInputField("S (mm)", "0.0", 16),
		),
	}
}

// Open prepares the form for a session and action
func (m *PositionModel) Open(sessionID string, msg SwitchToPositionMsg) {
	m.ClearMessage()
	m.sessionID = sessionID
	m.action = msg.Action
	m.anchor = msg.Anchor
	m.form.SetValues(
		formatCoord(msg.Initial.X),
		formatCoord(msg.Initial.Y),
		formatCoord(msg.Initial.Z),
	)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init initializes the position view
func (m *PositionModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the position view
func (m *PositionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			pos, err := m.position()
			if err != nil {
				m.SetError(err)
				return m, nil
			}
			return m, m.submit(pos)
		}
	}

	return m, m.form.Update(msg)
}

func (m *PositionModel) position() (application.Position, error) {
	return application.ParsePosition(fmt.Sprintf("%s,%s,%s", m.form.Value(0), m.form.Value(1), m.form.Value(2)))
}

func (m *PositionModel) submit(pos application.Position) tea.Cmd {
	action, anchor, sessionID := m.action, m.anchor, m.sessionID
	return func() tea.Msg {
		if action == ActionSetPosition {
			res, err := commands.NewSetPositionCommand(m.store, sessionID, anchor, pos).Execute(m.ctx)
			if err != nil {
				return PositionErrMsg{Err: err}
			}
			return TreeChangedMsg{Message: res.Message, Select: res.NodeID}
		}

		res, err := commands.NewPlaceCommand(m.store, sessionID, anchor, action == ActionInsertBefore, pos).Execute(m.ctx)
		if err != nil {
			return PositionErrMsg{Err: err}
		}
		return TreeChangedMsg{Message: res.Message, Select: res.NodeID}
	}
}

// PositionErrMsg indicates the command behind the form failed
type PositionErrMsg struct {
	Err error
}

// View renders the position form
func (m *PositionModel) View() string {
	v := NewViewBuilder().Title(m.action.String())
	switch m.action {
	case ActionAddChild:
		v.Subtitle(fmt.Sprintf("New child of %s", m.anchor))
	case ActionInsertBefore:
		v.Subtitle(fmt.Sprintf("New node between %s and its parent", m.anchor))
	case ActionSetPosition:
		v.Subtitle(fmt.Sprintf("New position for %s", m.anchor))
	case ActionPlaceNext:
		v.Subtitle(fmt.Sprintf("Next unplaced node: %s", m.anchor))
	default:
		v.Subtitle("First point of the vessel tree")
	}
	return v.
		Raw(m.form.View()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(m.form.HelpBindings("save")...).
		String()
}
