package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piyush2510verma/Language/internal/llm"
	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/screens"
	"github.com/Piyush2510verma/Language/internal/session"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/tutor"
)

const role = "You are a friendly Spanish tutor."

func testDeps(t *testing.T, responses ...llm.MockResponse) *screens.Deps {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := llm.NewMockProvider(responses...)
	rec := &mistakes.Recorder{}
	classifier := mistakes.NewClassifier(mock, st.MistakeRepo(), role, mistakes.WithReporter(rec))
	return &screens.Deps{
		Session:  session.New(),
		Tutor:    tutor.NewGenerator(mock, classifier, role, 0),
		Mistakes: st.MistakeRepo(),
		Notices:  rec,
	}
}

func runREPL(t *testing.T, deps *screens.Deps, input string) string {
	t.Helper()
	var out bytes.Buffer
	r := newREPL(deps, strings.NewReader(input), &out)
	require.NoError(t, r.run(context.Background()))
	return out.String()
}

func TestREPL_Conversation(t *testing.T) {
	deps := testDeps(t,
		llm.MockText("¡Hola! ¿Cómo estás?"),
		llm.MockText(`{"mistake_type": "Grammar", "correct_answer": "Yo soy estudiante"}`),
	)

	out := runREPL(t, deps, "english\nspanish\nbeginner\nYo es estudiante\n/quit\n")

	assert.Contains(t, out, "Let's practice Spanish!")
	assert.Contains(t, out, "Tutor: ¡Hola! ¿Cómo estás?\n\nCorrection: Yo soy estudiante (Type: Grammar)")
	assert.Contains(t, out, "Bye!")

	pair, ok := deps.Session.Pair()
	require.True(t, ok)
	assert.Equal(t, session.LanguagePair{Known: "English", Target: "Spanish", Level: session.LevelBeginner}, pair)
	assert.Equal(t, 3, deps.Session.Len())
}

func TestREPL_RetriesBadLevel(t *testing.T) {
	deps := testDeps(t)
	out := runREPL(t, deps, "English\nSpanish\nexpert\nEnglish\nSpanish\nadvanced\n")

	assert.Contains(t, out, `Unknown level "expert".`)
	assert.True(t, deps.Session.Active())
	pair, _ := deps.Session.Pair()
	assert.Equal(t, session.LevelAdvanced, pair.Level)
}

func TestREPL_PresetAnswers(t *testing.T) {
	deps := testDeps(t)
	var out bytes.Buffer
	r := newREPL(deps, strings.NewReader(""), &out)
	r.known, r.target, r.level = "french", "italian", "intermediate"

	require.NoError(t, r.run(context.Background()))

	assert.NotContains(t, out.String(), "Which language do you know?")
	assert.Contains(t, out.String(), "Let's practice Italian!")
	assert.Contains(t, out.String(), "Bye!")
}

func TestREPL_Commands(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()
	require.NoError(t, deps.Mistakes.Upsert(ctx, "mucho gracias", "Vocabulary", "muchas gracias"))

	out := runREPL(t, deps, "English\nSpanish\nBeginner\n/mistakes\n/summary\n/bogus\n/reset\nGerman\nDutch\nBeginner\n")

	assert.Contains(t, out, "- mucho gracias → muchas gracias (×1)")
	assert.Contains(t, out, "- Vocabulary: 1 mistake(s)")
	assert.Contains(t, out, "Unknown command /bogus.")
	assert.Contains(t, out, "Conversation reset.")
	assert.Contains(t, out, "Let's practice Dutch!")

	pair, _ := deps.Session.Pair()
	assert.Equal(t, "Dutch", pair.Target)
}

func TestREPL_ProviderErrorIsInline(t *testing.T) {
	deps := testDeps(t) // no canned responses: every call fails

	out := runREPL(t, deps, "English\nSpanish\nBeginner\nHola\n")

	assert.Contains(t, out, "Tutor: Error: ")
}

func TestPrintReport_Empty(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, mistakes.BuildReport(nil))
	assert.Equal(t, mistakes.NoMistakesMessage+"\n", out.String())

	out.Reset()
	printRecords(&out, nil)
	assert.Equal(t, mistakes.NoRecordsMessage+"\n", out.String())
}
