package mistakes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Piyush2510verma/Language/internal/llm"
	"github.com/Piyush2510verma/Language/internal/store"
)

// Mistake is a detected mistake in one utterance.
type Mistake struct {
	Type       string
	Correction string
}

// Classifier asks the LLM whether an utterance contains a mistake and
// records every hit in the mistake store.
type Classifier struct {
	provider   llm.Provider
	repo       store.MistakeRepo
	systemRole string
	reporter   Reporter
	timeout    time.Duration
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithReporter sets where non-fatal problems go. Defaults to LogReporter.
func WithReporter(r Reporter) Option {
	return func(c *Classifier) { c.reporter = r }
}

// WithTimeout bounds each classification request.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) { c.timeout = d }
}

// NewClassifier creates a Classifier. systemRole is the prompt template's
// role text.
func NewClassifier(provider llm.Provider, repo store.MistakeRepo, systemRole string, opts ...Option) *Classifier {
	c := &Classifier{
		provider:   provider,
		repo:       repo,
		systemRole: systemRole,
		reporter:   LogReporter{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// checkOutput is the raw LLM response.
type checkOutput struct {
	MistakeType   any `json:"mistake_type"`
	CorrectAnswer any `json:"correct_answer"`
}

// Classify checks userInput for a mistake. It returns nil when there is
// none, when the reply is unusable, or when the provider fails; provider
// and parse failures are handed to the Reporter. The only error returned
// is a failure to record the mistake.
func (c *Classifier) Classify(ctx context.Context, userInput string) (*Mistake, error) {
	msg, err := buildCheckMessage(c.systemRole, userInput)
	if err != nil {
		return nil, fmt.Errorf("build mistake check prompt: %w", err)
	}

	m, err := c.ask(ctx, msg)
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			c.reporter.Warn("could not parse correction response", err)
		} else {
			c.reporter.Error("error analyzing mistake", err)
		}
		return nil, nil
	}
	if m == nil {
		return nil, nil
	}

	if err := c.repo.Upsert(ctx, userInput, m.Type, m.Correction); err != nil {
		return nil, fmt.Errorf("record mistake: %w", err)
	}
	return m, nil
}

func (c *Classifier) ask(ctx context.Context, msg string) (*Mistake, error) {
	ctx = llm.WithPurpose(ctx, PurposeMistakeCheck)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:   CheckSchema,
	})
	if err != nil {
		return nil, err
	}
	return ParseCheck(resp.Text())
}

// ParseCheck turns a classifier reply into a Mistake. Text without a
// brace-delimited object, or an object whose fields are missing, blank,
// not strings, or typed "none", yields nil. Malformed JSON is an
// *llm.ErrInvalidResponse.
func ParseCheck(text string) (*Mistake, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, nil
	}

	var out checkOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: json.RawMessage(raw), Err: err}
	}

	kind, ok1 := out.MistakeType.(string)
	correction, ok2 := out.CorrectAnswer.(string)
	if !ok1 || !ok2 {
		return nil, nil
	}
	kind = strings.TrimSpace(kind)
	correction = strings.TrimSpace(correction)
	if kind == "" || strings.EqualFold(kind, "none") || correction == "" {
		return nil, nil
	}
	return &Mistake{Type: kind, Correction: correction}, nil
}

var checkTemplate = template.Must(template.New("mistake-check").Parse(`System: {{.Role}}
Objective: {{.Role}}

User input: "{{.Input}}"

If the input contains a mistake, identify the type of mistake and provide the corrected version.
Respond in JSON format like this:
{
  "mistake_type": "Grammar/Vocabulary/Pronunciation",
  "correct_answer": "Corrected sentence"
}
If there is no mistake, use "none" for mistake_type and an empty correct_answer.
`))

func buildCheckMessage(role, input string) (string, error) {
	var buf bytes.Buffer
	err := checkTemplate.Execute(&buf, struct{ Role, Input string }{role, input})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
