// Package chat implements the conversation screen.
package chat

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/router"
	"github.com/Piyush2510verma/Language/internal/screen"
	"github.com/Piyush2510verma/Language/internal/screens"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/tutor"
	"github.com/Piyush2510verma/Language/internal/ui/components"
	"github.com/Piyush2510verma/Language/internal/ui/layout"
)

// ChatScreen shows the recent conversation and sends each message to the
// tutor. Only one message is in flight at a time.
type ChatScreen struct {
	deps     *screens.Deps
	input    components.TextInput
	spinner  spinner.Model
	pending  bool
	notices  []mistakes.Notice
	mistakes []store.MistakeRecord
	errMsg   string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a ChatScreen for an active session.
func New(deps *screens.Deps) *ChatScreen {
	target := "your target language"
	if pair, ok := deps.Session.Pair(); ok {
		target = pair.Target
	}
	return &ChatScreen{
		deps:    deps,
		input:   components.NewTextInput("Talk to me in "+target+":", "Type a message...", 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Focus()}
	if s.deps.Session.ShowMistakes() {
		cmds = append(cmds, s.loadMistakes())
	}
	return tea.Batch(cmds...)
}

func (s *ChatScreen) Title() string {
	return "Conversation"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	mistakesHint := "Show mistakes"
	if s.deps.Session.ShowMistakes() {
		mistakesHint = "Hide mistakes"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+T", Description: mistakesHint},
		{Key: "Ctrl+R", Description: "Reset"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case turnDoneMsg:
		return s.handleTurnDone(msg)

	case mistakesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.mistakes = msg.Records
		}
		return s, nil

	case spinner.TickMsg:
		if !s.pending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "ctrl+t":
			if s.deps.Session.ToggleMistakes() {
				return s, s.loadMistakes()
			}
			s.mistakes = nil
			return s, nil
		case "ctrl+r":
			if s.pending {
				return s, nil
			}
			s.deps.Session.Reset()
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
		if s.pending {
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if s.pending || text == "" || !s.deps.BeginTurn() {
		return nil
	}
	s.pending = true
	s.errMsg = ""
	s.notices = nil
	s.input.Reset()

	deps := s.deps
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		defer deps.EndTurn()
		reply, err := deps.Tutor.Turn(context.Background(), deps.Session, text)
		var notices []mistakes.Notice
		if deps.Notices != nil {
			notices = deps.Notices.Drain()
		}
		return turnDoneMsg{Reply: reply, Err: err, Notices: notices}
	})
}

func (s *ChatScreen) handleTurnDone(msg turnDoneMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	s.notices = msg.Notices
	if msg.Err != nil {
		if errors.Is(msg.Err, tutor.ErrNotStarted) || errors.Is(msg.Err, tutor.ErrSessionReset) {
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if s.deps.Session.ShowMistakes() {
		return s, s.loadMistakes()
	}
	return s, nil
}

func (s *ChatScreen) loadMistakes() tea.Cmd {
	repo := s.deps.Mistakes
	return func() tea.Msg {
		recs, err := repo.Top(context.Background(), store.DefaultTopLimit)
		return mistakesLoadedMsg{Records: recs, Err: err}
	}
}

func (s *ChatScreen) View(width, height int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var sections []string
	sections = append(sections, s.input.View())

	if s.pending {
		sections = append(sections, renderPending(s.spinner.View()))
	}
	for _, n := range s.notices {
		sections = append(sections, renderNotice(n, inner))
	}
	if s.errMsg != "" {
		sections = append(sections, renderError(s.errMsg, inner))
	}

	sections = append(sections, renderDivider(inner))
	sections = append(sections, renderConversation(s.deps.Session.Display(), inner))

	if s.deps.Session.ShowMistakes() {
		sections = append(sections, renderDivider(inner))
		sections = append(sections, renderMistakes(s.mistakes, inner))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().
		Padding(1, 2).
		MaxHeight(height).
		Render(content)
}
