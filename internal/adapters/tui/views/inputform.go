package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vesselx/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// InputField represents a single input field with label and textinput
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Label: label,
		Input: input,
	}
}

// InputForm manages text input fields with focus handling
type InputForm struct {
	Fields  []InputField
	Focused int
	Keys    InputFormKeyMap
}

// NewInputForm creates a new input form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	f := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	f.focus(0)
	return f
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on tab/shift+tab and forwards everything else to the
// focused input. Submit and cancel are left to the owning view.
func (f *InputForm) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, f.Keys.Next):
			f.focus(f.Focused + 1)
			return nil
		case key.Matches(km, f.Keys.Prev):
			f.focus(f.Focused - 1)
			return nil
		}
	}

	if len(f.Fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.Fields[f.Focused].Input, cmd = f.Fields[f.Focused].Input.Update(msg)
	return cmd
}

// focus wraps index around the field list
func (f *InputForm) focus(index int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	f.Fields[f.Focused].Input.Blur()
	f.Focused = ((index % n) + n) % n
	f.Fields[f.Focused].Input.Focus()
}

// Value returns the trimmed value of a field by index
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// SetValues prefills fields in order and focuses the first one
func (f *InputForm) SetValues(values ...string) {
	for i := range f.Fields {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		f.Fields[i].Input.SetValue(v)
	}
	f.focus(0)
}

// View renders every field, highlighting the focused one
func (f *InputForm) View() string {
	var b strings.Builder
	for i, field := range f.Fields {
		b.WriteString(styles.InputLabel.Render(field.Label))
		b.WriteString("\n")
		if i == f.Focused {
			b.WriteString(styles.InputFocused.Render(field.Input.View()))
		} else {
			b.WriteString(styles.InputField.Render(field.Input.View()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HelpBindings returns the bindings worth showing for this form
func (f *InputForm) HelpBindings(submit string) []key.Binding {
	s := f.Keys.Submit
	s.SetHelp("enter", submit)
	bindings := []key.Binding{s, f.Keys.Cancel}
	if len(f.Fields) > 1 {
		bindings = append([]key.Binding{f.Keys.Next}, bindings...)
	}
	return bindings
}
