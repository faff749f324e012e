package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and Lingo styling.
type TextInput struct {
	Model   textinput.Model
	Label   string
	invalid bool
}

// NewTextInput creates a new styled text input. charLimit of zero leaves
// the input unbounded.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model: ti,
		Label: label,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. Editing clears the invalid mark.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.invalid = false
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.invalid {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	if t.Label == "" {
		return view
	}
	label := theme.Unselected
	if t.Model.Focused() {
		label = theme.Selected
	}
	return label.Render(t.Label) + "\n" + view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the value and the invalid mark.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.invalid = false
}

// MarkInvalid flags the input until it is next edited.
func (t *TextInput) MarkInvalid() {
	t.invalid = true
}

// Invalid reports whether the input is flagged.
func (t TextInput) Invalid() bool {
	return t.invalid
}
