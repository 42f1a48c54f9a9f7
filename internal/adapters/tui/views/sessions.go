package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/adapters/tui/styles"
	"vesselx/internal/application/commands"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// SessionsKeyMap defines key bindings for the session list
type SessionsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	New  key.Binding
	Help key.Binding
	Quit key.Binding
}

var SessionsKeys = SessionsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new session"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type sessionsLoadedMsg struct {
	sessions []domain.Session
}

// SessionsModel lists the stored sessions
type SessionsModel struct {
	ViewState
	ctx      context.Context
	store    ports.SessionStore
	sessions []domain.Session
	loaded   bool
	cursor   int
}

// NewSessionsModel creates a new session list model
func NewSessionsModel(ctx context.Context, store ports.SessionStore) *SessionsModel {
	return &SessionsModel{ctx: ctx, store: store}
}

// Init loads the sessions
func (m *SessionsModel) Init() tea.Cmd {
	return m.load
}

// Reload refreshes the list from the store
func (m *SessionsModel) Reload() tea.Cmd {
	return m.load
}

func (m *SessionsModel) load() tea.Msg {
	sessions, err := commands.NewListSessionsCommand(m.store).Execute(m.ctx)
	if err != nil {
		return errMsg{err}
	}
	return sessionsLoadedMsg{sessions}
}

// Update handles messages for the session list
func (m *SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.loaded = true
		m.cursor = clamp(m.cursor, 0, len(m.sessions)-1)
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, SessionsKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, SessionsKeys.Up):
			m.cursor = clamp(m.cursor-1, 0, len(m.sessions)-1)

		case key.Matches(msg, SessionsKeys.Down):
			m.cursor = clamp(m.cursor+1, 0, len(m.sessions)-1)

		case key.Matches(msg, SessionsKeys.Open):
			if len(m.sessions) > 0 {
				id := m.sessions[m.cursor].ID
				return m, func() tea.Msg { return SwitchToBrowserMsg{SessionID: id} }
			}

		case key.Matches(msg, SessionsKeys.New):
			return m, func() tea.Msg { return SwitchToPromptMsg{Purpose: PromptSessionName} }

		case key.Matches(msg, SessionsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

// View renders the session list
func (m *SessionsModel) View() string {
	if !m.loaded {
		return "Loading..."
	}

	v := NewViewBuilder().Title("vesselx").Subtitle("Vessel branch tree sessions")
	if len(m.sessions) == 0 {
		v.Muted("No sessions yet. Press n to start one.")
	}
	for i, s := range m.sessions {
		line := fmt.Sprintf("%-32s %4d nodes  %s", s.Name, s.NodeCount, s.UpdatedAt.Format("2006-01-02 15:04"))
		if i == m.cursor {
			v.Line(styles.NodeSelected.Render(line))
		} else {
			v.Line(line)
		}
	}

	return v.BlankLine().
		Message(m.Message, m.MessageErr).
		Help(SessionsKeys.Open, SessionsKeys.New, SessionsKeys.Help, SessionsKeys.Quit).
		String()
}

type errMsg struct {
	err error
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
