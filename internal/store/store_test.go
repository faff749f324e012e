package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	require.NotNil(t, s.DB())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/lingo.db"

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.MistakeRepo().Upsert(context.Background(), "yo es", "Grammar", "yo soy"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	top, err := s.MistakeRepo().Top(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "yo soy", top[0].CorrectAnswer)
}

func TestUpsertInsertsThenIncrements(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "Yo quiero ir a mercado", "Grammar", "Yo quiero ir al mercado"))

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	first := top[0]
	assert.Equal(t, 1, first.Frequency)
	assert.False(t, first.LastSeen.IsZero())

	require.NoError(t, repo.Upsert(ctx, "Yo quiero ir a mercado", "Grammar", "Quiero ir al mercado"))

	top, err = repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1, "same (input, type) must stay a single record")
	assert.Equal(t, first.ID, top[0].ID)
	assert.Equal(t, 2, top[0].Frequency)
	assert.Equal(t, "Quiero ir al mercado", top[0].CorrectAnswer, "latest correction wins")
	assert.False(t, top[0].LastSeen.Before(first.LastSeen))
}

func TestUpsertDistinguishesType(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "la problema", "Grammar", "el problema"))
	require.NoError(t, repo.Upsert(ctx, "la problema", "Vocabulary", "el problema"))

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	for _, m := range top {
		assert.Equal(t, 1, m.Frequency)
	}
}

func TestUpsertConcurrentKeepsEveryIncrement(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Upsert(ctx, "tengo frio", "Vocabulary", "tengo frío")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, n, top[0].Frequency)
}

func TestTopOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	hits := []struct {
		input string
		times int
	}{
		{"five", 5},
		{"one", 1},
		{"three", 3},
	}
	for _, h := range hits {
		for range h.times {
			require.NoError(t, repo.Upsert(ctx, h.input, "Grammar", h.input+"!"))
		}
	}

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	var freqs []int
	for _, m := range top {
		freqs = append(freqs, m.Frequency)
	}
	assert.Equal(t, []int{5, 3, 1}, freqs)

	top, err = repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "five", top[0].UserInput)
	assert.Equal(t, "three", top[1].UserInput)
}

func TestTopTiesByID(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	for _, in := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Upsert(ctx, in, "Grammar", in))
	}

	top, err := repo.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "a", top[0].UserInput)
	assert.Equal(t, "b", top[1].UserInput)
	assert.Equal(t, "c", top[2].UserInput)
}

func TestTopDefaultLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	for i := range DefaultTopLimit + 3 {
		require.NoError(t, repo.Upsert(ctx, fmt.Sprintf("input %d", i), "Grammar", "fixed"))
	}

	top, err := repo.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, top, DefaultTopLimit)
}

func TestSummarize(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	counts, err := repo.Summarize(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)

	require.NoError(t, repo.Upsert(ctx, "a", "Vocabulary", "x"))
	require.NoError(t, repo.Upsert(ctx, "b", "Grammar", "x"))
	require.NoError(t, repo.Upsert(ctx, "c", "Grammar", "x"))
	// Repeats do not weight the count.
	for range 4 {
		require.NoError(t, repo.Upsert(ctx, "d", "Pronunciation", "x"))
	}

	counts, err = repo.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TypeCount{
		{MistakeType: "Grammar", Count: 2},
		{MistakeType: "Pronunciation", Count: 1},
		{MistakeType: "Vocabulary", Count: 1},
	}, counts)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "chat-reply", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: `{"a":1}`, ResponseBody: `"hola"`},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "mistake-check", InputTokens: 80, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "chat-reply", LatencyMs: 500, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[1].ID, "newest first")
	assert.False(t, all[0].Success)
	assert.Equal(t, "rate limited", all[0].ErrorMessage)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "mistake-check"})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "mistake-check", limited[0].Purpose)

	recent, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, `{"a":1}`, first.RequestBody)
	assert.Equal(t, `"hola"`, first.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "chat-reply", byPurpose[0].Purpose)
	assert.Equal(t, 2, byPurpose[0].Calls)
	assert.Equal(t, 100, byPurpose[0].InputTokens)
	assert.Equal(t, int64(400), byPurpose[0].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, 3, byModel[0].Calls)
	assert.Equal(t, 60, byModel[0].OutputTokens)
}
