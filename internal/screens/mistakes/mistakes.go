// Package mistakes implements the recorded-mistakes screen.
package mistakes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	mk "github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/router"
	"github.com/Piyush2510verma/Language/internal/screen"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/ui/components"
	"github.com/Piyush2510verma/Language/internal/ui/layout"
	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

type mistakesLoadedMsg struct {
	Records []store.MistakeRecord
	Err     error
}

// MistakesScreen lists the most frequent recorded mistakes.
type MistakesScreen struct {
	repo     store.MistakeRepo
	limit    int
	records  []store.MistakeRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*MistakesScreen)(nil)
var _ screen.KeyHintProvider = (*MistakesScreen)(nil)

// New creates a MistakesScreen showing up to limit records; zero means
// store.DefaultTopLimit.
func New(repo store.MistakeRepo, limit int) *MistakesScreen {
	if limit <= 0 {
		limit = store.DefaultTopLimit
	}
	return &MistakesScreen{
		repo:     repo,
		limit:    limit,
		expanded: make(map[int]bool),
	}
}

func (s *MistakesScreen) Init() tea.Cmd {
	return func() tea.Msg {
		recs, err := s.repo.Top(context.Background(), s.limit)
		return mistakesLoadedMsg{Records: recs, Err: err}
	}
}

func (s *MistakesScreen) Title() string {
	return "Mistakes"
}

func (s *MistakesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MistakesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mistakesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *MistakesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading mistakes...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  " + mk.NoRecordsMessage)
	}

	cw := components.ContentWidth(width)
	maxFreq := s.records[0].Frequency

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := style.Width(cw).Render(prefix + mk.FormatRecord(rec))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")

		if s.expanded[i] {
			bar := components.NewProgressBar("    "+rec.MistakeType, float64(rec.Frequency)/float64(maxFreq), false, cw)
			seen := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw).
				Render("    last seen " + rec.LastSeen.Local().Format("Jan 02, 2006 15:04"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, seen))
			b.WriteString("\n")
		}
	}

	return b.String()
}
