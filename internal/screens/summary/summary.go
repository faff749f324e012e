// Package summary implements the improvement summary screen.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/router"
	"github.com/Piyush2510verma/Language/internal/screen"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/ui/components"
	"github.com/Piyush2510verma/Language/internal/ui/layout"
	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

type reportLoadedMsg struct {
	Report mistakes.Report
	Err    error
}

// SummaryScreen displays mistake counts per type and focus areas.
type SummaryScreen struct {
	repo   store.MistakeRepo
	report *mistakes.Report
	errMsg string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(repo store.MistakeRepo) *SummaryScreen {
	return &SummaryScreen{repo: repo}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		counts, err := s.repo.Summarize(context.Background())
		if err != nil {
			return reportLoadedMsg{Err: err}
		}
		return reportLoadedMsg{Report: mistakes.BuildReport(counts)}
	}
}

func (s *SummaryScreen) Title() string {
	return "Improvement Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.report = &msg.Report
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.report == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Building summary...")
	}
	if s.report.Empty() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(mistakes.NoMistakesMessage))
	}

	cw := components.ContentWidth(width)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Mistake Summary & Focus Areas"))
	b.WriteString("\n\n")

	maxCount := s.report.Counts[0].Count
	for _, c := range s.report.Counts {
		label := fmt.Sprintf("%-14s %3d mistake(s)", c.MistakeType, c.Count)
		bar := components.NewProgressBar(label, float64(c.Count)/float64(maxCount), false, cw)
		b.WriteString(bar.View())
		b.WriteString("\n")
	}

	if len(s.report.FocusAreas) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Suggested Areas for Improvement"))
		b.WriteString("\n")
		b.WriteString(divider)
		b.WriteString("\n")
		for _, area := range s.report.FocusAreas {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Width(cw).Render("• " + area))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
