package session

import (
	"fmt"
	"testing"
)

func activeSession(t *testing.T) *Session {
	t.Helper()
	s := New()
	if !s.Start("english", "spanish", LevelBeginner) {
		t.Fatal("Start returned false on a fresh session")
	}
	return s
}

func TestNew_Unconfigured(t *testing.T) {
	s := New()
	if s.ID == "" {
		t.Error("ID should be set")
	}
	if s.Phase() != PhaseUnconfigured {
		t.Errorf("Phase = %v, want unconfigured", s.Phase())
	}
	if _, ok := s.Pair(); ok {
		t.Error("Pair should be unset")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestStart_SetsPairAndLogsChoice(t *testing.T) {
	s := New()
	if !s.Start("  english ", "SPANISH", LevelIntermediate) {
		t.Fatal("Start returned false")
	}

	pair, ok := s.Pair()
	if !ok {
		t.Fatal("Pair should be set")
	}
	want := LanguagePair{Known: "English", Target: "Spanish", Level: LevelIntermediate}
	if pair != want {
		t.Errorf("Pair = %+v, want %+v", pair, want)
	}
	if !s.Active() {
		t.Error("session should be active")
	}

	ctx := s.Context()
	if len(ctx) != 1 {
		t.Fatalf("len(Context) = %d, want 1", len(ctx))
	}
	if ctx[0].Speaker != SpeakerSystem {
		t.Errorf("Speaker = %q, want system", ctx[0].Speaker)
	}
	if got := ctx[0].Text; got != "Known Language: English, Target Language: Spanish, Level: Intermediate" {
		t.Errorf("entry = %q", got)
	}
}

func TestStart_NoOpWhenActive(t *testing.T) {
	s := activeSession(t)

	if s.Start("french", "german", LevelAdvanced) {
		t.Error("second Start should return false")
	}
	pair, _ := s.Pair()
	if pair.Target != "Spanish" {
		t.Errorf("Target = %q, want Spanish (unchanged)", pair.Target)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStart_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		known, target string
		level         Level
	}{
		{"blank known", "", "Spanish", LevelBeginner},
		{"whitespace target", "English", "   ", LevelBeginner},
		{"unknown level", "English", "Spanish", Level("Expert")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if s.Start(tt.known, tt.target, tt.level) {
				t.Error("Start should return false")
			}
			if s.Active() || s.Len() != 0 {
				t.Error("session should be untouched")
			}
		})
	}
}

func TestContext_LastTen(t *testing.T) {
	s := activeSession(t)
	for i := range 14 {
		s.AppendTurn(SpeakerUser, fmt.Sprintf("msg %d", i))
	}

	if s.Len() != 15 {
		t.Errorf("Len = %d, want 15 (no cap on storage)", s.Len())
	}
	ctx := s.Context()
	if len(ctx) != ContextSize {
		t.Fatalf("len(Context) = %d, want %d", len(ctx), ContextSize)
	}
	if ctx[0].Text != "msg 4" || ctx[9].Text != "msg 13" {
		t.Errorf("Context spans %q..%q, want msg 4..msg 13", ctx[0].Text, ctx[9].Text)
	}
}

func TestContextBlock(t *testing.T) {
	s := activeSession(t)
	s.AppendTurn(SpeakerUser, "Hola")
	s.AppendTurn(SpeakerAssistant, "¡Hola! ¿Cómo estás?")

	want := "Known Language: English, Target Language: Spanish, Level: Beginner\n" +
		"User: Hola\n" +
		"AI: ¡Hola! ¿Cómo estás?"
	if got := s.ContextBlock(); got != want {
		t.Errorf("ContextBlock =\n%s\nwant\n%s", got, want)
	}
}

func TestDisplay_LastSixNewestFirst(t *testing.T) {
	s := activeSession(t)
	for i := range 8 {
		s.AppendTurn(SpeakerAssistant, fmt.Sprintf("reply %d", i))
	}

	d := s.Display()
	if len(d) != DisplaySize {
		t.Fatalf("len(Display) = %d, want %d", len(d), DisplaySize)
	}
	if d[0].Text != "reply 7" || d[5].Text != "reply 2" {
		t.Errorf("Display spans %q..%q, want reply 7..reply 2", d[0].Text, d[5].Text)
	}

	// Display must not reorder the stored log.
	if ctx := s.Context(); ctx[len(ctx)-1].Text != "reply 7" {
		t.Errorf("last Context entry = %q, want reply 7", ctx[len(ctx)-1].Text)
	}
}

func TestDisplay_Short(t *testing.T) {
	s := New()
	if len(s.Display()) != 0 {
		t.Error("Display of empty session should be empty")
	}
	s.AppendTurn(SpeakerUser, "a")
	s.AppendTurn(SpeakerUser, "b")
	d := s.Display()
	if len(d) != 2 || d[0].Text != "b" {
		t.Errorf("Display = %+v", d)
	}
}

func TestReset_Idempotent(t *testing.T) {
	s := activeSession(t)
	id := s.ID
	s.AppendTurn(SpeakerUser, "Hola")
	s.ToggleMistakes()

	for range 2 {
		s.Reset()
		if s.Active() {
			t.Error("session should be unconfigured after Reset")
		}
		if s.Len() != 0 {
			t.Errorf("Len = %d after Reset", s.Len())
		}
		if s.ShowMistakes() {
			t.Error("ShowMistakes should be cleared")
		}
	}
	if s.ID != id {
		t.Error("Reset should keep the session ID")
	}

	if !s.Start("english", "french", LevelAdvanced) {
		t.Error("Start should succeed after Reset")
	}
}

func TestToggleMistakes(t *testing.T) {
	s := New()
	if !s.ToggleMistakes() || !s.ShowMistakes() {
		t.Error("first toggle should enable")
	}
	if s.ToggleMistakes() || s.ShowMistakes() {
		t.Error("second toggle should disable")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"Beginner", LevelBeginner, true},
		{"complete beginner", LevelCompleteBeginner, true},
		{" ADVANCED ", LevelAdvanced, true},
		{"expert", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"spanish":              "Spanish",
		"  GERMAN ":            "German",
		"ñandú":                "Ñandú",
		"brazilian portuguese": "Brazilian portuguese",
		"":                     "",
	}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTurn_BeginEnd(t *testing.T) {
	s := New()
	if _, ok := s.BeginTurn("Hola"); ok {
		t.Fatal("BeginTurn should fail on an unconfigured session")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty log, got %d entries", s.Len())
	}

	s = activeSession(t)
	gen, ok := s.BeginTurn("Hola")
	if !ok {
		t.Fatal("BeginTurn failed on an active session")
	}
	if !s.EndTurn(gen, "¡Hola!") {
		t.Fatal("EndTurn should keep the reply")
	}
	got := s.Display()
	if len(got) != 3 || got[0].Speaker != SpeakerAssistant || got[1].Speaker != SpeakerUser {
		t.Errorf("unexpected log: %v", got)
	}
}

func TestTurn_ResetDropsLateReply(t *testing.T) {
	s := activeSession(t)
	gen, _ := s.BeginTurn("Hola")

	s.Reset()
	if s.EndTurn(gen, "late reply") {
		t.Error("EndTurn should drop a reply after Reset")
	}
	if s.Phase() != PhaseUnconfigured || s.Len() != 0 {
		t.Errorf("expected an empty unconfigured session, got %s with %d entries", s.Phase(), s.Len())
	}

	// A new conversation does not accept the stale generation either.
	if !s.Start("french", "german", LevelAdvanced) {
		t.Fatal("Start failed after Reset")
	}
	if s.EndTurn(gen, "late reply") {
		t.Error("EndTurn should drop a reply from the previous conversation")
	}
	if s.Len() != 1 {
		t.Errorf("expected only the start entry, got %d entries", s.Len())
	}
}
