// Package screens holds what the TUI screens share.
package screens

import (
	"sync/atomic"

	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/session"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/tutor"
)

// Deps are the services the screens operate on. One Deps value lives for
// the whole program.
type Deps struct {
	Session  *session.Session
	Tutor    *tutor.Generator
	Mistakes store.MistakeRepo

	// Notices collects non-fatal classifier problems for display.
	Notices *mistakes.Recorder

	turnPending atomic.Bool
}

// BeginTurn marks a turn as in flight. It returns false when one already is.
func (d *Deps) BeginTurn() bool {
	return d.turnPending.CompareAndSwap(false, true)
}

// EndTurn clears the in-flight mark.
func (d *Deps) EndTurn() {
	d.turnPending.Store(false)
}

// TurnPending reports whether a turn is waiting for its reply. Navigation
// that could reset or reopen the conversation is blocked meanwhile.
func (d *Deps) TurnPending() bool {
	return d.turnPending.Load()
}

// Status is the header text for the current session.
func (d *Deps) Status() string {
	pair, ok := d.Session.Pair()
	if !ok {
		return ""
	}
	return pair.Known + " → " + pair.Target + " · " + string(pair.Level)
}
