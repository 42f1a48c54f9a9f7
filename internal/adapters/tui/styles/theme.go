package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#DC2626") // Red, portal blood
	Secondary = lipgloss.Color("#2563EB") // Blue, caval return
	Accent    = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444")
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree node styles
	NodeRoot = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	NodeBranching = lipgloss.NewStyle().
			Foreground(Secondary)

	NodePlaced = lipgloss.NewStyle()

	NodeUnplaced = lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true)

	NodeSelected = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(White).
			Bold(true)

	Coordinates = lipgloss.NewStyle().
			Foreground(Muted)

	LockBadge = lipgloss.NewStyle().
			Foreground(Warning).
			SetString("[locked]")

	// Tree indicators
	TreeBranch = lipgloss.NewStyle().Foreground(Muted)
	TreeFork   = "├─ "
	TreeEnd    = "└─ "
	TreePipe   = "│  "
	TreeSpace  = "   "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)
