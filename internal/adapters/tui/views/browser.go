package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vesselx/internal/adapters/tui/styles"
	"vesselx/internal/application"
	"vesselx/internal/application/commands"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Parent    key.Binding
	Child     key.Binding
	Add       key.Binding
	Insert    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Lock      key.Binding
	ShiftUp   key.Binding
	ShiftDown key.Binding
	Copy      key.Binding
	Template  key.Binding
	Strategy  key.Binding
	Extract   key.Binding
	Export    key.Binding
	Open      key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Parent: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "parent"),
	),
	Child: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "first child"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Insert: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "insert before"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "position"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Lock: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "lock"),
	),
	ShiftUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	ShiftDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy position"),
	),
	Template: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "template"),
	),
	Strategy: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "strategy"),
	),
	Extract: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "extract"),
	),
	Export: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "export"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open export"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "sessions"),
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

// treeRow is one rendered line of the tree, in depth-first order
type treeRow struct {
	node   domain.Node
	prefix string
}

// treeRows walks the tree depth-first and computes the connector prefix of every node
func treeRows(tree *domain.BranchTree) []treeRow {
	if tree == nil || tree.IsEmpty() {
		return nil
	}
	rows := make([]treeRow, 0, tree.Len())
	var walk func(id domain.NodeID, indent string, last, root bool)
	walk = func(id domain.NodeID, indent string, last, root bool) {
		n, err := tree.Node(id)
		if err != nil {
			return
		}
		prefix, childIndent := "", ""
		if !root {
			if last {
				prefix, childIndent = indent+styles.TreeEnd, indent+styles.TreeSpace
			} else {
				prefix, childIndent = indent+styles.TreeFork, indent+styles.TreePipe
			}
		}
		rows = append(rows, treeRow{node: n, prefix: prefix})
		for i, c := range n.Children {
			walk(c, childIndent, i == len(n.Children)-1, false)
		}
	}
	walk(tree.Root(), "", true, true)
	return rows
}

type treeLoadedMsg struct {
	session *domain.Session
	tree    *domain.BranchTree
}

type exportDoneMsg struct {
	path    string
	message string
}

type extractDoneMsg struct {
	message string
}

// Services are the ports the browser drives besides the store
type Services struct {
	Exporter  ports.TreeExporter
	Extractor ports.VesselExtractor
	Strategy  string // initial extraction strategy
}

// BrowserModel is the model for the branch tree browser of one session
type BrowserModel struct {
	ViewState
	ctx        context.Context
	store      ports.SessionStore
	svc        Services
	copy       func(string) error
	sessionID  string
	session    *domain.Session
	tree       *domain.BranchTree
	rows       []treeRow
	cursor     int
	selectNext domain.NodeID
	strategy   string
	lastExport string
	busy       string
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(ctx context.Context, store ports.SessionStore, svc Services) *BrowserModel {
	strategy := svc.Strategy
	if strategy == "" {
		strategy = domain.StrategyAllInOne
	}
	return &BrowserModel{
		ctx:      ctx,
		store:    store,
		svc:      svc,
		copy:     clipboard.WriteAll,
		strategy: strategy,
	}
}

// Open switches the browser to a session and loads its tree
func (m *BrowserModel) Open(sessionID string) tea.Cmd {
	if sessionID != m.sessionID {
		m.cursor = 0
		m.lastExport = ""
	}
	m.sessionID = sessionID
	m.ClearMessage()
	return m.Reload()
}

// SessionID returns the session shown in the browser
func (m *BrowserModel) SessionID() string {
	return m.sessionID
}

// Init loads the tree of the current session
func (m *BrowserModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload reloads the tree from the store
func (m *BrowserModel) Reload() tea.Cmd {
	sessionID := m.sessionID
	return func() tea.Msg {
		res, err := commands.NewShowTreeCommand(m.store, sessionID).Execute(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return treeLoadedMsg{session: res.Session, tree: res.Tree}
	}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.session = msg.session
		m.tree = msg.tree
		m.rows = treeRows(msg.tree)
		m.restoreCursor()
		return m, nil

	case TreeChangedMsg:
		m.SetMessage(msg.Message, false)
		m.selectNext = msg.Select
		return m, m.Reload()

	case exportDoneMsg:
		m.busy = ""
		m.lastExport = msg.path
		m.SetMessage(msg.message, false)
		return m, nil

	case extractDoneMsg:
		m.busy = ""
		m.SetMessage(msg.message, false)
		return m, nil

	case errMsg:
		m.busy = ""
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.busy != "" {
			return m, nil
		}
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node, hasNode := m.selected()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Back):
		return func() tea.Msg { return SwitchToSessionsMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(m.rows)-1)

	case key.Matches(msg, BrowserKeys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(m.rows)-1)

	case key.Matches(msg, BrowserKeys.Parent):
		if hasNode && node.Parent != "" {
			m.moveCursorTo(node.Parent)
		}

	case key.Matches(msg, BrowserKeys.Child):
		if hasNode && len(node.Children) > 0 {
			m.moveCursorTo(node.Children[0])
		}

	case key.Matches(msg, BrowserKeys.Add):
		if next, ok := m.nextUnplaced(); ok {
			return switchToPosition(ActionPlaceNext, next, domain.Position{})
		}
		if !hasNode {
			return switchToPosition(ActionAddRoot, "", domain.Position{})
		}
		return switchToPosition(ActionAddChild, node.ID, node.Position)

	case key.Matches(msg, BrowserKeys.Insert):
		if next, ok := m.nextUnplaced(); ok {
			return switchToPosition(ActionPlaceNext, next, domain.Position{})
		}
		if hasNode {
			return switchToPosition(ActionInsertBefore, node.ID, node.Position)
		}

	case key.Matches(msg, BrowserKeys.Edit):
		if hasNode {
			if node.Locked {
				m.SetMessage(fmt.Sprintf("%s is locked", node.ID), true)
				return nil
			}
			return switchToPosition(ActionSetPosition, node.ID, node.Position)
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if hasNode {
			return func() tea.Msg { return SwitchToDeleteMsg{Node: node} }
		}

	case key.Matches(msg, BrowserKeys.Lock):
		if hasNode {
			return m.toggleLock(node)
		}

	case key.Matches(msg, BrowserKeys.ShiftUp):
		if hasNode {
			return m.shift(node.ID, -1)
		}

	case key.Matches(msg, BrowserKeys.ShiftDown):
		if hasNode {
			return m.shift(node.ID, 1)
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if hasNode {
			m.copyPosition(node)
		}

	case key.Matches(msg, BrowserKeys.Template):
		if hasNode {
			m.SetMessage("templates need an empty tree", true)
			return nil
		}
		return func() tea.Msg { return SwitchToPromptMsg{Purpose: PromptTemplate} }

	case key.Matches(msg, BrowserKeys.Strategy):
		m.cycleStrategy()

	case key.Matches(msg, BrowserKeys.Extract):
		return m.extract()

	case key.Matches(msg, BrowserKeys.Export):
		return m.export()

	case key.Matches(msg, BrowserKeys.Open):
		if m.lastExport == "" {
			m.SetMessage("nothing exported yet", true)
			return nil
		}
		path := m.lastExport
		return func() tea.Msg { return OpenEditorMsg{Path: path} }
	}

	return nil
}

func switchToPosition(action PositionAction, anchor domain.NodeID, initial domain.Position) tea.Cmd {
	return func() tea.Msg {
		return SwitchToPositionMsg{Action: action, Anchor: anchor, Initial: initial}
	}
}

func (m *BrowserModel) toggleLock(node domain.Node) tea.Cmd {
	sessionID := m.sessionID
	return func() tea.Msg {
		res, err := commands.NewSetLockedCommand(m.store, sessionID, node.ID, !node.Locked).Execute(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return TreeChangedMsg{Message: res.Message, Select: node.ID}
	}
}

func (m *BrowserModel) shift(id domain.NodeID, delta int) tea.Cmd {
	sessionID := m.sessionID
	return func() tea.Msg {
		res, err := commands.NewShiftChildCommand(m.store, sessionID, id, delta).Execute(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return TreeChangedMsg{Message: res.Message, Select: id}
	}
}

func (m *BrowserModel) copyPosition(node domain.Node) {
	if !node.Placed {
		m.SetMessage(fmt.Sprintf("%s has no position yet", node.ID), true)
		return
	}
	text := application.FormatPosition(node.Position)
	if err := m.copy(text); err != nil {
		m.SetError(fmt.Errorf("clipboard: %w", err))
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %s", text), false)
}

func (m *BrowserModel) cycleStrategy() {
	names := domain.StrategyNames()
	i := slices.Index(names, m.strategy)
	m.strategy = names[(i+1)%len(names)]
	m.SetMessage(fmt.Sprintf("Strategy: %s", m.strategy), false)
}

func (m *BrowserModel) extract() tea.Cmd {
	if m.svc.Extractor == nil {
		m.SetMessage("no extractor configured", true)
		return nil
	}
	m.busy = fmt.Sprintf("Extracting with %s...", m.strategy)
	sessionID, strategy := m.sessionID, m.strategy
	return func() tea.Msg {
		res, err := commands.NewExtractCommand(m.store, m.svc.Extractor, sessionID, strategy).Execute(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return extractDoneMsg{message: res.Message}
	}
}

func (m *BrowserModel) export() tea.Cmd {
	if m.svc.Exporter == nil {
		m.SetMessage("no export directory configured", true)
		return nil
	}
	m.busy = "Exporting..."
	sessionID := m.sessionID
	return func() tea.Msg {
		res, err := commands.NewExportCommand(m.store, m.svc.Exporter, sessionID, "").Execute(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{path: res.Files.FiducialPath, message: res.Message}
	}
}

// nextUnplaced returns the template node the next placement positions
func (m *BrowserModel) nextUnplaced() (domain.NodeID, bool) {
	if m.tree == nil {
		return "", false
	}
	return domain.NextUnplaced(m.tree)
}

func (m *BrowserModel) selected() (domain.Node, bool) {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].node, true
	}
	return domain.Node{}, false
}

func (m *BrowserModel) moveCursorTo(id domain.NodeID) bool {
	for i, r := range m.rows {
		if r.node.ID == id {
			m.cursor = i
			return true
		}
	}
	return false
}

// restoreCursor puts the cursor on the node requested by the last edit, if any
func (m *BrowserModel) restoreCursor() {
	want := m.selectNext
	m.selectNext = ""
	if want != "" && m.moveCursorTo(want) {
		return
	}
	m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.session == nil {
		return "Loading..."
	}

	v := NewViewBuilder().
		Title(m.session.Name).
		Subtitle(fmt.Sprintf("%d nodes • strategy %s", m.tree.Len(), m.strategy))

	if len(m.rows) == 0 {
		v.Muted("Empty tree. Press a to place the root or t to apply a template.")
	}
	for i, r := range m.rows {
		v.Line(m.renderRow(r, i == m.cursor))
	}
	v.BlankLine()

	if m.busy != "" {
		v.Muted(m.busy).BlankLine()
	}
	return v.
		Message(m.Message, m.MessageErr).
		Help(BrowserKeys.Add, BrowserKeys.Insert, BrowserKeys.Delete, BrowserKeys.Lock,
			BrowserKeys.Extract, BrowserKeys.Export, BrowserKeys.Help, BrowserKeys.Quit).
		String()
}

func (m *BrowserModel) renderRow(r treeRow, selected bool) string {
	n := r.node

	var style lipgloss.Style
	switch {
	case !n.Placed:
		style = styles.NodeUnplaced
	case n.Parent == "":
		style = styles.NodeRoot
	case len(n.Children) > 1:
		style = styles.NodeBranching
	default:
		style = styles.NodePlaced
	}
	if selected {
		style = styles.NodeSelected
	}

	var b strings.Builder
	b.WriteString(styles.TreeBranch.Render(r.prefix))
	b.WriteString(style.Render(string(n.ID)))
	b.WriteString(" ")
	if n.Placed {
		b.WriteString(styles.Coordinates.Render(application.FormatPosition(n.Position)))
	} else {
		b.WriteString(styles.Coordinates.Render("unplaced"))
	}
	if n.Locked {
		b.WriteString(" ")
		b.WriteString(styles.LockBadge.String())
	}
	return b.String()
}
