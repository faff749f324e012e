// Package home implements the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Piyush2510verma/Language/internal/router"
	"github.com/Piyush2510verma/Language/internal/screen"
	"github.com/Piyush2510verma/Language/internal/screens"
	"github.com/Piyush2510verma/Language/internal/screens/chat"
	"github.com/Piyush2510verma/Language/internal/screens/mistakes"
	"github.com/Piyush2510verma/Language/internal/screens/start"
	"github.com/Piyush2510verma/Language/internal/screens/summary"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/ui/components"
	"github.com/Piyush2510verma/Language/internal/ui/layout"
)

const (
	itemLearn = iota
	itemMistakes
	itemSummary
	itemReset
	itemQuit
)

// statsLoadedMsg carries the per-type mistake counts for the status card.
type statsLoadedMsg struct {
	Counts []store.TypeCount
	Err    error
}

// sessionResetMsg is sent after the RESET item cleared the conversation.
type sessionResetMsg struct{}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps          *screens.Deps
	menu          components.Menu
	total         int
	types         int
	errMsg        string
	mascotVariant MascotVariant

	// builtPending is the TurnPending value the menu was built with.
	builtPending bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.rebuildMenu()
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	deps := h.deps
	active := deps.Session.Active()
	pending := deps.TurnPending()

	learnLabel := "START LEARNING"
	if active {
		learnLabel = "CONTINUE CHAT"
	}

	return []components.MenuItem{
		itemLearn: {Label: learnLabel, Disabled: deps.Tutor == nil || pending, Action: func() tea.Cmd {
			if deps.TurnPending() {
				return nil
			}
			return func() tea.Msg {
				if deps.Session.Active() {
					return router.PushScreenMsg{Screen: chat.New(deps)}
				}
				return router.PushScreenMsg{Screen: start.New(deps)}
			}
		}},
		itemMistakes: {Label: "VIEW MISTAKES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: mistakes.New(deps.Mistakes, 0)}
			}
		}},
		itemSummary: {Label: "SUMMARY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: summary.New(deps.Mistakes)}
			}
		}},
		itemReset: {Label: "RESET", Disabled: !active || pending, Action: func() tea.Cmd {
			if deps.TurnPending() {
				return nil
			}
			return func() tea.Msg {
				deps.Session.Reset()
				return sessionResetMsg{}
			}
		}},
		itemQuit: {Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.Resume()
}

// Resume rebuilds the menu for the current session state and reloads the
// mistake counts.
func (h *HomeScreen) Resume() tea.Cmd {
	h.rebuildMenu()
	return h.loadStats()
}

// rebuildMenu refreshes labels and disabled items, keeping the selection
// when it is still enabled.
func (h *HomeScreen) rebuildMenu() {
	selected := h.menu.Selected
	h.builtPending = h.deps.TurnPending()
	h.menu = components.NewMenu(h.menuItems())
	if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Mistakes
	return func() tea.Msg {
		counts, err := repo.Summarize(context.Background())
		return statsLoadedMsg{Counts: counts, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.total, h.types = 0, len(msg.Counts)
		for _, c := range msg.Counts {
			h.total += c.Count
		}
		h.mascotVariant = mascotFor(h.total, h.deps.Session.Active())
		return h, nil

	case sessionResetMsg:
		return h, h.Resume()
	}

	if h.builtPending != h.deps.TurnPending() {
		h.rebuildMenu()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}

	sections = append(sections, renderStatus(h.deps.Status(), h.total, h.types, cw))
	if h.errMsg != "" {
		sections = append(sections, renderStatsError(h.errMsg, cw))
	}
	if h.deps.Tutor == nil {
		sections = append(sections, renderLLMBanner(cw))
	}

	sections = append(sections, renderMenu(h.menu, cw, compact))

	content := strings.Join(sections, "\n\n")
	return components.Frame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
