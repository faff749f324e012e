package chat

import (
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/session"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

const correctionMarker = "\n\nCorrection: "

func renderPending(spin string) string {
	return theme.Hint.Render(spin + " Thinking...")
}

func renderNotice(n mistakes.Notice, width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Accent).Width(width)
	if n.Level >= slog.LevelError {
		style = style.Foreground(theme.Error)
	}
	return style.Render(n.String())
}

func renderError(msg string, width int) string {
	return theme.ErrorText.Width(width).Render("Error: " + msg)
}

func renderDivider(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
}

// renderConversation renders entries in the order given, newest first.
func renderConversation(entries []session.Entry, width int) string {
	if len(entries) == 0 {
		return theme.Hint.Render("Say hello to start the conversation.")
	}

	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Speaker {
		case session.SpeakerUser:
			lines = append(lines, theme.UserName.Render("You")+"\n"+body.Render(e.Text))
		case session.SpeakerAssistant:
			lines = append(lines, theme.TutorName.Render("Tutor")+"\n"+renderReply(e.Text, width))
		default:
			lines = append(lines, theme.SystemLine.Width(width).Render(e.Text))
		}
	}
	return strings.Join(lines, "\n\n")
}

// renderReply highlights the correction annotation, if any.
func renderReply(text string, width int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	reply, correction, found := strings.Cut(text, correctionMarker)
	if !found {
		return body.Render(text)
	}
	return body.Render(reply) + "\n\n" +
		theme.Correction.Width(width).Render("Correction: "+correction)
}

func renderMistakes(recs []store.MistakeRecord, width int) string {
	title := theme.Selected.Render("Your Mistakes")
	if len(recs) == 0 {
		return title + "\n" + theme.Hint.Render(mistakes.NoRecordsMessage)
	}
	lines := []string{title}
	for _, r := range recs {
		lines = append(lines, theme.Body.Width(width).Render("• "+mistakes.FormatRecord(r)))
	}
	return strings.Join(lines, "\n")
}
