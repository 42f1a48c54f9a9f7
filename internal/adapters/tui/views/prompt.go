package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/application/commands"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// PromptPurpose selects what a one-line prompt creates
type PromptPurpose int

const (
	PromptSessionName PromptPurpose = iota
	PromptTemplate
)

// SwitchToPromptMsg opens the prompt view
type SwitchToPromptMsg struct {
	Purpose PromptPurpose
}

// SessionCreatedMsg reports a new session; the app opens it in the browser
type SessionCreatedMsg struct {
	SessionID string
	Message   string
}

// PromptErrMsg indicates the prompt's command failed
type PromptErrMsg struct {
	Err error
}

// PromptModel reads one value and runs the command for its purpose
type PromptModel struct {
	ViewState
	ctx       context.Context
	store     ports.SessionStore
	sessionID string
	purpose   PromptPurpose
	form      *InputForm
}

// NewPromptModel creates a new prompt view model
func NewPromptModel(ctx context.Context, store ports.SessionStore) *PromptModel {
	return &PromptModel{
		ctx:   ctx,
		store: store,
		form:  NewInputForm(NewInputField("", "", 64)),
	}
}

// Open prepares the prompt. sessionID is ignored when creating a session.
func (m *PromptModel) Open(sessionID string, purpose PromptPurpose) {
	m.ClearMessage()
	m.sessionID = sessionID
	m.purpose = purpose

	field := &m.form.Fields[0]
	switch purpose {
	case PromptTemplate:
		field.Label = "Template (" + strings.Join(templateNames(), ", ") + ")"
		field.Input.Placeholder = domain.PortalVeinTemplate.Name
	default:
		field.Label = "Session name"
		field.Input.Placeholder = "patient-01 portal"
	}
	m.form.SetValues()
}

func templateNames() []string {
	return []string{domain.PortalVeinTemplate.Name, domain.InferiorCavaVeinTemplate.Name}
}

// Init initializes the prompt view
func (m *PromptModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the prompt view
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, m.cancel()
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit(m.form.Value(0))
		}
	}

	return m, m.form.Update(msg)
}

func (m *PromptModel) cancel() tea.Cmd {
	if m.purpose == PromptSessionName {
		return func() tea.Msg { return SwitchToSessionsMsg{} }
	}
	return func() tea.Msg { return SwitchToBrowserMsg{} }
}

func (m *PromptModel) submit(value string) tea.Cmd {
	purpose, sessionID := m.purpose, m.sessionID
	return func() tea.Msg {
		if purpose == PromptTemplate {
			res, err := commands.NewApplyTemplateCommand(m.store, sessionID, value).Execute(m.ctx)
			if err != nil {
				return PromptErrMsg{Err: err}
			}
			return TreeChangedMsg{Message: res.Message, Select: res.Next}
		}

		res, err := commands.NewCreateSessionCommand(m.store, value).Execute(m.ctx)
		if err != nil {
			return PromptErrMsg{Err: err}
		}
		return SessionCreatedMsg{SessionID: res.Session.ID, Message: res.Message}
	}
}

// View renders the prompt view
func (m *PromptModel) View() string {
	title, submit := "New Session", "create"
	if m.purpose == PromptTemplate {
		title, submit = "Apply Template", "apply"
	}
	return NewViewBuilder().
		Title(title).
		Raw(m.form.View()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(m.form.HelpBindings(submit)...).
		String()
}
