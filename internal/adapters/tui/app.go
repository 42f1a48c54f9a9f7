package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/adapters/tui/views"
	"vesselx/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewSessions ViewState = iota
	ViewBrowser
	ViewPosition
	ViewDelete
	ViewPrompt
	ViewHelp
)

// Options configures the TUI
type Options struct {
	Exporter  ports.TreeExporter
	Extractor ports.VesselExtractor
	Editor    ports.EditorOpener
	Strategy  string
	SessionID string // open this session directly
}

// App is the main TUI application model
type App struct {
	store  ports.SessionStore
	editor ports.EditorOpener

	state    ViewState
	prev     ViewState // view to return to from help
	sessions *views.SessionsModel
	browser  *views.BrowserModel
	position *views.PositionModel
	remove   *views.DeleteModel
	prompt   *views.PromptModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ctx carries the logger used by commands.
func NewApp(ctx context.Context, store ports.SessionStore, opts Options) *App {
	a := &App{
		store:    store,
		editor:   opts.Editor,
		state:    ViewSessions,
		sessions: views.NewSessionsModel(ctx, store),
		browser: views.NewBrowserModel(ctx, store, views.Services{
			Exporter:  opts.Exporter,
			Extractor: opts.Extractor,
			Strategy:  opts.Strategy,
		}),
		position: views.NewPositionModel(ctx, store),
		remove:   views.NewDeleteModel(ctx, store),
		prompt:   views.NewPromptModel(ctx, store),
		help:     views.NewHelpModel(),
	}
	if opts.SessionID != "" {
		a.state = ViewBrowser
		a.browser.Open(opts.SessionID)
	}
	return a
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	if a.state == ViewBrowser {
		return a.browser.Init()
	}
	return a.sessions.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sessions.SetSize(msg.Width, msg.Height)
		a.browser.SetSize(msg.Width, msg.Height)
		a.position.SetSize(msg.Width, msg.Height)
		a.remove.SetSize(msg.Width, msg.Height)
		a.prompt.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSessionsMsg:
		a.state = ViewSessions
		return a, a.sessions.Reload()

	case views.SwitchToBrowserMsg:
		if a.state == ViewHelp && a.prev == ViewSessions {
			a.state = ViewSessions
			return a, nil
		}
		a.state = ViewBrowser
		if msg.SessionID != "" {
			return a, a.browser.Open(msg.SessionID)
		}
		return a, a.browser.Reload()

	case views.SwitchToHelpMsg:
		a.prev = a.state
		a.state = ViewHelp
		return a, nil

	case views.SwitchToPositionMsg:
		a.state = ViewPosition
		a.position.Open(a.browser.SessionID(), msg)
		return a, a.position.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.remove.Open(a.browser.SessionID(), msg.Node)
		return a, nil

	case views.SwitchToPromptMsg:
		a.state = ViewPrompt
		a.prompt.Open(a.browser.SessionID(), msg.Purpose)
		return a, a.prompt.Init()

	// Results of sub views
	case views.TreeChangedMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case views.SessionCreatedMsg:
		a.state = ViewBrowser
		cmd := a.browser.Open(msg.SessionID)
		a.browser.SetMessage(msg.Message, false)
		return a, cmd

	case views.PositionErrMsg:
		a.position.SetError(msg.Err)
		return a, nil

	case views.DeleteErrMsg:
		a.remove.SetError(msg.Err)
		return a, nil

	case views.PromptErrMsg:
		a.prompt.SetError(msg.Err)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetError(msg.err)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewSessions:
		_, cmd = a.sessions.Update(msg)
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewPosition:
		_, cmd = a.position.Update(msg)
	case ViewDelete:
		_, cmd = a.remove.Update(msg)
	case ViewPrompt:
		_, cmd = a.prompt.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewBrowser:
		return a.browser.View()
	case ViewPosition:
		return a.position.View()
	case ViewDelete:
		return a.remove.View()
	case ViewPrompt:
		return a.prompt.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.sessions.View()
	}
}
