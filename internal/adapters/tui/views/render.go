package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"vesselx/internal/adapters/tui/styles"
)

// RenderHelpLine renders the enabled bindings as "key desc" pairs separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles the status line of a view. Empty messages render nothing.
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// ViewBuilder assembles a view top to bottom: title, body lines, status, help
type ViewBuilder struct {
	b strings.Builder
}

func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title) + "\n\n")
	return v
}

func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle) + "\n\n")
	return v
}

// Line writes text as is; Raw writes it without the trailing newline
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text + "\n")
	return v
}

func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	return v.Line("")
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message writes the view's status line followed by a blank line, if there is one
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message != "" {
		v.b.WriteString(RenderMessage(message, isError) + "\n\n")
	}
	return v
}

func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the view wrapped in the app frame
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
