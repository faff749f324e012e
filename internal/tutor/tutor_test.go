package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piyush2510verma/Language/internal/llm"
	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/session"
	"github.com/Piyush2510verma/Language/internal/store"
)

const role = "You are a patient Spanish tutor. Reply in Spanish."

const grammarHit = `{"mistake_type":"Grammar","correct_answer":"Yo quiero ir al mercado"}`

type fixture struct {
	store *store.Store
	mock  *llm.MockProvider
	rec   *mistakes.Recorder
	gen   *Generator
	sess  *session.Session
}

func newFixture(t *testing.T, responses ...llm.MockResponse) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := llm.NewMockProvider(responses...)
	rec := &mistakes.Recorder{}
	classifier := mistakes.NewClassifier(mock, s.MistakeRepo(), role, mistakes.WithReporter(rec))

	sess := session.New()
	require.True(t, sess.Start("English", "Spanish", session.LevelBeginner))

	return &fixture{
		store: s,
		mock:  mock,
		rec:   rec,
		gen:   NewGenerator(mock, classifier, role, 0),
		sess:  sess,
	}
}

func (f *fixture) top(t *testing.T) []store.MistakeRecord {
	t.Helper()
	recs, err := f.store.MistakeRepo().Top(context.Background(), store.DefaultTopLimit)
	require.NoError(t, err)
	return recs
}

func TestTurn_RecordsMistakeAndAnnotates(t *testing.T) {
	f := newFixture(t,
		llm.MockText("  ¡Qué bien! ¿Qué quieres comprar?  \n"),
		llm.MockText(grammarHit),
	)

	reply, err := f.gen.Turn(context.Background(), f.sess, "Yo quiero ir a mercado")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(reply, "Correction: Yo quiero ir al mercado (Type: Grammar)"), reply)
	assert.Equal(t, "¡Qué bien! ¿Qué quieres comprar?\n\nCorrection: Yo quiero ir al mercado (Type: Grammar)", reply)

	recs := f.top(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "Yo quiero ir a mercado", recs[0].UserInput)
	assert.Equal(t, "Grammar", recs[0].MistakeType)
	assert.Equal(t, 1, recs[0].Frequency)

	display := f.sess.Display()
	require.Len(t, display, 3)
	assert.Equal(t, session.SpeakerAssistant, display[0].Speaker)
	assert.Equal(t, reply, display[0].Text)
	assert.Equal(t, session.SpeakerUser, display[1].Speaker)
}

func TestTurn_RepeatedMistakeIncrements(t *testing.T) {
	f := newFixture(t,
		llm.MockText("Vale."), llm.MockText(grammarHit),
		llm.MockText("Otra vez."), llm.MockText(grammarHit),
	)

	for range 2 {
		_, err := f.gen.Turn(context.Background(), f.sess, "Yo quiero ir a mercado")
		require.NoError(t, err)
	}

	recs := f.top(t)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Frequency)
}

func TestRespond_Prompt(t *testing.T) {
	f := newFixture(t, llm.MockText("Hola"), llm.MockText(`{"mistake_type":"none","correct_answer":""}`))
	f.sess.AppendTurn(session.SpeakerUser, "Hola")

	reply, err := f.gen.Respond(context.Background(), f.sess, "Hola")
	require.NoError(t, err)
	assert.Equal(t, "Hola", reply, "no annotation without a mistake")

	require.Equal(t, 2, f.mock.CallCount())
	chat := f.mock.Calls[0]
	assert.Nil(t, chat.Schema)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, llm.RoleUser, chat.Messages[0].Role)

	want := "System: " + role + "\n" +
		"Objective: " + role + "\n" +
		"Context:\n" +
		"Known Language: English, Target Language: Spanish, Level: Beginner\n" +
		"User: Hola\n" +
		"\n" +
		"User: Hola\n" +
		"AI:"
	assert.Equal(t, want, chat.Messages[0].Content)

	assert.Same(t, mistakes.CheckSchema, f.mock.Calls[1].Schema)
}

func TestRespond_ContextIsLastTen(t *testing.T) {
	f := newFixture(t, llm.MockText("ok"), llm.MockText("no json here"))
	for i := range 12 {
		f.sess.AppendTurn(session.SpeakerUser, fmt.Sprintf("line %02d", i))
	}

	_, err := f.gen.Respond(context.Background(), f.sess, "hola")
	require.NoError(t, err)

	prompt := f.mock.Calls[0].Messages[0].Content
	assert.NotContains(t, prompt, "Known Language")
	assert.NotContains(t, prompt, "line 01")
	assert.Contains(t, prompt, "line 02")
	assert.Contains(t, prompt, "line 11")
}

func TestRespond_ProviderErrorInBand(t *testing.T) {
	f := newFixture(t, llm.MockErr(errors.New("connection refused")))

	reply, err := f.gen.Respond(context.Background(), f.sess, "Hola")
	require.NoError(t, err)
	assert.Equal(t, "Error: connection refused", reply)
	assert.Equal(t, 1, f.mock.CallCount(), "classifier skipped after a failed reply")
}

func TestRespond_ClassifierFailureKeepsReply(t *testing.T) {
	f := newFixture(t, llm.MockText("Muy bien."), llm.MockErr(errors.New("upstream 503")))

	reply, err := f.gen.Respond(context.Background(), f.sess, "Hola")
	require.NoError(t, err)
	assert.Equal(t, "Muy bien.", reply)
	assert.Len(t, f.rec.Drain(), 1)
}

type brokenChecker struct{}

func (brokenChecker) Classify(context.Context, string) (*mistakes.Mistake, error) {
	return nil, errors.New("record mistake: database is locked")
}

func TestTurn_StoreErrorIsFatal(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Hola"))
	gen := NewGenerator(mock, brokenChecker{}, role, 0)
	sess := session.New()
	require.True(t, sess.Start("English", "Spanish", session.LevelBeginner))

	_, err := gen.Turn(context.Background(), sess, "Hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.Equal(t, 2, sess.Len(), "assistant turn not logged")
}

func TestTurn_Rejects(t *testing.T) {
	gen := NewGenerator(llm.NewMockProvider(), nil, role, 0)

	_, err := gen.Turn(context.Background(), session.New(), "Hola")
	assert.ErrorIs(t, err, ErrNotStarted)

	sess := session.New()
	require.True(t, sess.Start("English", "Spanish", session.LevelBeginner))
	_, err = gen.Turn(context.Background(), sess, "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, 1, sess.Len())
}

func TestRespond_TagsSessionAndPurpose(t *testing.T) {
	var seen []string
	p := providerFunc(func(ctx context.Context, _ llm.Request) (*llm.Response, error) {
		seen = append(seen, llm.PurposeFrom(ctx)+"/"+llm.SessionIDFrom(ctx))
		return &llm.Response{Content: []byte(`{"mistake_type":"none","correct_answer":""}`)}, nil
	})
	s, err := store.Open("file:tutor_tags?mode=memory&cache=shared")
	require.NoError(t, err)
	defer s.Close()

	sess := session.New()
	gen := NewGenerator(p, mistakes.NewClassifier(p, s.MistakeRepo(), role), role, 0)
	_, err = gen.Respond(context.Background(), sess, "Hola")
	require.NoError(t, err)

	assert.Equal(t, []string{
		PurposeChatReply + "/" + sess.ID,
		mistakes.PurposeMistakeCheck + "/" + sess.ID,
	}, seen)
}

type providerFunc func(context.Context, llm.Request) (*llm.Response, error)

func (f providerFunc) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return f(ctx, req)
}

func (providerFunc) ModelID() string { return "func" }

func TestAnnotation(t *testing.T) {
	got := Annotation(&mistakes.Mistake{Type: "Vocabulary", Correction: "Tengo hambre"})
	assert.Equal(t, "\n\nCorrection: Tengo hambre (Type: Vocabulary)", got)
}

// blockingProvider holds every Generate call until release is closed.
type blockingProvider struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.started <- struct{}{}
	select {
	case <-p.release:
		return &llm.Response{Content: []byte("late reply")}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *blockingProvider) ModelID() string { return "blocking" }

func TestTurn_ResetDuringReplyDropsIt(t *testing.T) {
	provider := &blockingProvider{started: make(chan struct{}, 1), release: make(chan struct{})}
	gen := NewGenerator(provider, nil, role, 0)

	sess := session.New()
	require.True(t, sess.Start("English", "Spanish", session.LevelBeginner))

	done := make(chan error, 1)
	go func() {
		_, err := gen.Turn(context.Background(), sess, "hola")
		done <- err
	}()

	<-provider.started
	sess.Reset()
	close(provider.release)

	assert.ErrorIs(t, <-done, ErrSessionReset)
	assert.Equal(t, session.PhaseUnconfigured, sess.Phase())
	assert.Equal(t, 0, sess.Len())
	assert.Empty(t, sess.Display())

	require.True(t, sess.Start("french", "german", session.LevelAdvanced))
	assert.Equal(t, "Known Language: French, Target Language: German, Level: Advanced", sess.ContextBlock())
}
