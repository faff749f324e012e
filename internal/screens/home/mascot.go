package home

import (
	"charm.land/lipgloss/v2"

	"github.com/Piyush2510verma/Language/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes; nothing to fix
	MascotAlert                            // Orange, exclamation; many mistakes
)

// alertThreshold is the number of recorded mistakes that alarms the mascot.
const alertThreshold = 5

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ a→á │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ a→á │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ a→á │
└─────┘`

// mascotFor picks the variant for the number of recorded mistakes.
func mascotFor(total int, active bool) MascotVariant {
	switch {
	case total >= alertThreshold:
		return MascotAlert
	case total == 0 && active:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Highlight
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
