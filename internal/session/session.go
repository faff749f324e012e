package session

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

const (
	// ContextSize is how many recent entries are sent as generation context.
	ContextSize = 10

	// DisplaySize is how many recent entries are shown.
	DisplaySize = 6
)

// Phase is the session's lifecycle state.
type Phase int

const (
	PhaseUnconfigured Phase = iota // No language pair chosen yet
	PhaseActive                    // Conversation in progress
)

func (p Phase) String() string {
	switch p {
	case PhaseUnconfigured:
		return "unconfigured"
	case PhaseActive:
		return "active"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Speaker tags a conversation entry.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
	SpeakerSystem    Speaker = "system"
)

// Entry is one line of the conversation log.
type Entry struct {
	Speaker Speaker
	Text    string
}

// String renders the entry the way it appears in the prompt context.
func (e Entry) String() string {
	switch e.Speaker {
	case SpeakerUser:
		return "User: " + e.Text
	case SpeakerAssistant:
		return "AI: " + e.Text
	default:
		return e.Text
	}
}

// LanguagePair is the configuration chosen on the start form.
type LanguagePair struct {
	Known  string
	Target string
	Level  Level
}

// Session holds one learner's conversation. It is safe for concurrent use
// so the UI can render while a turn is in flight.
type Session struct {
	// ID correlates LLM request events with this session.
	ID string

	mu           sync.RWMutex
	pair         *LanguagePair
	log          []Entry
	showMistakes bool

	// generation increases on every Reset. Turns started before a Reset
	// carry an older value and cannot write into the new conversation.
	generation uint64
}

// New creates an unconfigured session with a fresh ID.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Phase returns the current lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil {
		return PhaseUnconfigured
	}
	return PhaseActive
}

// Active reports whether a language pair is set.
func (s *Session) Active() bool {
	return s.Phase() == PhaseActive
}

// Pair returns the chosen language pair, or false when unconfigured.
func (s *Session) Pair() (LanguagePair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil {
		return LanguagePair{}, false
	}
	return *s.pair, true
}

// Start sets the language pair and logs the choice. It does nothing and
// returns false when the session is already active, either language is
// blank, or level is unknown.
func (s *Session) Start(known, target string, level Level) bool {
	known, target = capitalize(known), capitalize(target)
	if known == "" || target == "" || !level.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair != nil {
		return false
	}
	s.pair = &LanguagePair{Known: known, Target: target, Level: level}
	s.log = append(s.log, Entry{
		Speaker: SpeakerSystem,
		Text:    fmt.Sprintf("Known Language: %s, Target Language: %s, Level: %s", known, target, level),
	})
	return true
}

// AppendTurn appends a tagged entry. The log is never truncated.
func (s *Session) AppendTurn(speaker Speaker, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, Entry{Speaker: speaker, Text: text})
}

// BeginTurn appends the user's entry and returns the current generation for
// the matching EndTurn. It appends nothing and returns false when the
// session is not active.
func (s *Session) BeginTurn(text string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil {
		return 0, false
	}
	s.log = append(s.log, Entry{Speaker: SpeakerUser, Text: text})
	return s.generation, true
}

// EndTurn appends the assistant's reply if the session has not been reset
// since BeginTurn returned gen. It reports whether the reply was kept.
func (s *Session) EndTurn(gen uint64, reply string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil || s.generation != gen {
		return false
	}
	s.log = append(s.log, Entry{Speaker: SpeakerAssistant, Text: reply})
	return true
}

// Len returns the number of stored entries.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// Context returns the last ContextSize entries, oldest first.
func (s *Session) Context() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tail(s.log, ContextSize)
}

// ContextBlock joins Context into the prompt's context block.
func (s *Session) ContextBlock() string {
	entries := s.Context()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// Display returns the last DisplaySize entries, most recent first.
func (s *Session) Display() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := tail(s.log, DisplaySize)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Reset wipes the conversation, the language pair and the mistakes toggle.
// The session ID is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	s.log = nil
	s.showMistakes = false
	s.generation++
}

// ShowMistakes reports the mistakes-view toggle.
func (s *Session) ShowMistakes() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showMistakes
}

// ToggleMistakes flips the mistakes-view toggle and returns the new value.
func (s *Session) ToggleMistakes() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showMistakes = !s.showMistakes
	return s.showMistakes
}

// tail copies the last n entries.
func tail(log []Entry, n int) []Entry {
	if len(log) > n {
		log = log[len(log)-n:]
	}
	out := make([]Entry, len(log))
	copy(out, log)
	return out
}

// capitalize trims s and upper-cases its first letter, lower-casing the rest.
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
