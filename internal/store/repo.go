package store

import (
	"context"
	"time"
)

// DefaultTopLimit is the number of records Top returns when no limit is given.
const DefaultTopLimit = 10

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// MistakeRecord is one distinct (user input, mistake type) pair with its
// running occurrence count.
type MistakeRecord struct {
	ID            int       `sql:"id"`
	UserInput     string    `sql:"user_input"`
	MistakeType   string    `sql:"mistake_type"`
	CorrectAnswer string    `sql:"correct_answer"`
	Frequency     int       `sql:"frequency"`
	LastSeen      time.Time `sql:"timestamp"`
}

// TypeCount is the number of distinct records stored for a mistake type.
type TypeCount struct {
	MistakeType string `sql:"mistake_type"`
	Count       int    `sql:"count"`
}

// MistakeRepo persists detected mistakes.
type MistakeRepo interface {
	// Upsert records one occurrence of a mistake. The first occurrence of an
	// (input, type) pair inserts it with frequency 1; later occurrences bump
	// the frequency, refresh the timestamp and overwrite the correction.
	Upsert(ctx context.Context, input, mistakeType, correction string) error

	// Top returns at most limit records ordered by frequency descending,
	// ties by id ascending. A non-positive limit means DefaultTopLimit.
	Top(ctx context.Context, limit int) ([]MistakeRecord, error)

	// Summarize counts stored records per mistake type, largest first.
	Summarize(ctx context.Context) ([]TypeCount, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID           int       `sql:"id"`
	Timestamp    time.Time `sql:"timestamp"`
	SessionID    string    `sql:"session_id"`
	Provider     string    `sql:"provider"`
	Model        string    `sql:"model"`
	Purpose      string    `sql:"purpose"`
	InputTokens  int       `sql:"input_tokens"`
	OutputTokens int       `sql:"output_tokens"`
	LatencyMs    int64     `sql:"latency_ms"`
	Success      bool      `sql:"success"`
	ErrorMessage string    `sql:"error_message"`
	RequestBody  string    `sql:"request_body"`
	ResponseBody string    `sql:"response_body"`
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string `sql:"purpose"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	AvgLatencyMs int64  `sql:"avg_latency_ms"`
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string `sql:"model"`
	Calls        int    `sql:"calls"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with the given id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
