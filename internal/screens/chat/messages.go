package chat

import (
	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/store"
)

// turnDoneMsg is sent when the tutor has replied to a message.
type turnDoneMsg struct {
	Reply   string
	Err     error
	Notices []mistakes.Notice
}

// mistakesLoadedMsg is sent when the mistakes panel data is ready.
type mistakesLoadedMsg struct {
	Records []store.MistakeRecord
	Err     error
}
