package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/ui/components"
	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

const titleFull = ` ██╗     ██╗███╗   ██╗ ██████╗  ██████╗
 ██║     ██║████╗  ██║██╔════╝ ██╔═══██╗
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝`

const titleCompact = "L · I · N · G · O"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatus shows the active language pair and the mistake tally.
func renderStatus(pair string, total, types int, cw int) string {
	pairStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	left := dimStyle.Render("No conversation yet")
	if pair != "" {
		left = pairStyle.Render(pair)
	}
	right := countStyle.Render(fmt.Sprintf("%d mistake(s) in %d type(s)", total, types))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(left + dimStyle.Render("   ") + right)
}

func renderMenu(menu components.Menu, cw int, compact bool) string {
	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(menu.View())
	}

	var rows []string
	for i, item := range menu.Items {
		if item.Disabled {
			rows = append(rows, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(item.Label))
			continue
		}
		rows = append(rows, components.MenuButton(item.Label, i == menu.Selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to start a conversation (see lingo --help)")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

func renderStatsError(msg string, cw int) string {
	return theme.ErrorText.
		Width(cw).
		Align(lipgloss.Center).
		Render("Could not load mistakes: " + msg)
}
