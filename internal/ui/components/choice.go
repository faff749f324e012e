package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

// Choice is a horizontal single-choice selector.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	focused  bool
}

// NewChoice creates a selector with the first option selected.
func NewChoice(label string, options []string) Choice {
	return Choice{Label: label, Options: options}
}

// Focus gives the selector keyboard focus.
func (c *Choice) Focus() { c.focused = true }

// Blur removes keyboard focus.
func (c *Choice) Blur() { c.focused = false }

// Value returns the selected option, or "" when there are none.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// Update moves the selection with left/right (or h/l) while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.focused {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if c.Selected > 0 {
			c.Selected--
		}
	case "right", "l":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	}
	return c, nil
}

// View renders the label and options on one line.
func (c Choice) View() string {
	label := theme.Unselected
	if c.focused {
		label = theme.Selected
	}

	parts := make([]string, len(c.Options))
	for i, opt := range c.Options {
		switch {
		case i == c.Selected && c.focused:
			parts[i] = theme.ButtonActive.Render(opt)
		case i == c.Selected:
			parts[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 2).Render(opt)
		default:
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(opt)
		}
	}
	return label.Render(c.Label) + "\n" + strings.Join(parts, " ")
}
