package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/adapters/tui/styles"
	"vesselx/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("vesselx Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	for _, k := range []key.Binding{BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Parent, BrowserKeys.Child, BrowserKeys.Back} {
		b.WriteString(bindingLine(k))
	}
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Editing"))
	b.WriteString("\n")
	b.WriteString(helpLine("a", "Add child of selection (root on an empty tree)"))
	b.WriteString(helpLine("i", "Insert a node between selection and its parent"))
	b.WriteString(helpLine("e / Enter", "Set position of selection"))
	b.WriteString(helpLine("d", "Delete selection, children move up"))
	b.WriteString(helpLine("space", "Lock / unlock position"))
	b.WriteString(helpLine("J / K", "Move selection among its siblings"))
	b.WriteString(helpLine("t", "Apply an anatomical template"))
	b.WriteString(helpLine("a / i", "With a template, place the next unplaced node"))
	b.WriteString(helpLine("y", "Copy position to clipboard"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Output"))
	b.WriteString("\n")
	b.WriteString(helpLine("s", "Cycle extraction strategy"))
	b.WriteString(helpLine("x", "Run vessel extraction"))
	b.WriteString(helpLine("w", "Export fiducial and adjacency CSV"))
	b.WriteString(helpLine("o", "Open the last export in $EDITOR"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Strategies"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  " + strings.Join(domain.StrategyNames(), ", ")))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func bindingLine(b key.Binding) string {
	h := b.Help()
	return helpLine(h.Key, h.Desc)
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 14)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
