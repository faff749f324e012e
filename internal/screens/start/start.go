// Package start implements the form that opens a conversation.
package start

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/router"
	"github.com/Piyush2510verma/Language/internal/screen"
	"github.com/Piyush2510verma/Language/internal/screens"
	"github.com/Piyush2510verma/Language/internal/screens/chat"
	"github.com/Piyush2510verma/Language/internal/session"
	"github.com/Piyush2510verma/Language/internal/ui/components"
	"github.com/Piyush2510verma/Language/internal/ui/layout"
	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

const (
	fieldKnown = iota
	fieldTarget
	fieldLevel
	fieldSubmit
	fieldCount
)

// StartScreen collects the known language, target language and level.
type StartScreen struct {
	deps   *screens.Deps
	known  components.TextInput
	target components.TextInput
	level  components.Choice
	focus  int
	errMsg string
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the start form.
func New(deps *screens.Deps) *StartScreen {
	levels := make([]string, len(session.Levels))
	for i, l := range session.Levels {
		levels[i] = string(l)
	}
	return &StartScreen{
		deps:   deps,
		known:  components.NewTextInput("Enter the language you know:", "e.g. English", 40),
		target: components.NewTextInput("Enter the language you want to learn:", "e.g. Spanish", 40),
		level:  components.NewChoice("Select your level:", levels),
	}
}

func (s *StartScreen) Init() tea.Cmd {
	return s.setFocus(fieldKnown)
}

func (s *StartScreen) Title() string {
	return "New Conversation"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start"},
	}
	if s.focus == fieldLevel {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Level"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if s.focus == fieldSubmit {
				return s, s.submit()
			}
			return s, s.setFocus(s.focus + 1)
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldKnown:
		s.known, cmd = s.known.Update(msg)
	case fieldTarget:
		s.target, cmd = s.target.Update(msg)
	case fieldLevel:
		s.level, cmd = s.level.Update(msg)
	}
	return s, cmd
}

func (s *StartScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	s.known.Blur()
	s.target.Blur()
	s.level.Blur()

	switch field {
	case fieldKnown:
		return s.known.Focus()
	case fieldTarget:
		return s.target.Focus()
	case fieldLevel:
		s.level.Focus()
	}
	return nil
}

func (s *StartScreen) submit() tea.Cmd {
	known := strings.TrimSpace(s.known.Value())
	target := strings.TrimSpace(s.target.Value())
	if known == "" {
		s.known.MarkInvalid()
	}
	if target == "" {
		s.target.MarkInvalid()
	}
	if known == "" || target == "" {
		s.errMsg = "Both languages are required."
		return nil
	}

	if !s.deps.Session.Start(known, target, session.Level(s.level.Value())) {
		s.errMsg = "A conversation is already in progress. Reset it first."
		return nil
	}
	s.errMsg = ""

	next := chat.New(s.deps)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *StartScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	button := components.NewButton("Start Learning", s.focus == fieldSubmit, nil)

	form := strings.Join([]string{
		s.known.View(),
		"",
		s.target.View(),
		"",
		s.level.View(),
		"",
		button.View(),
	}, "\n")

	sections := []string{
		theme.Title.Width(cw).Render("Conversational Language Learning"),
		components.Card(form, cw),
	}
	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Width(cw).Align(lipgloss.Center).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}
