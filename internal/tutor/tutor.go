// Package tutor produces the assistant's reply for each learner message.
package tutor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Piyush2510verma/Language/internal/llm"
	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/session"
)

// PurposeChatReply tags conversation requests in the LLM event log.
const PurposeChatReply = "chat-reply"

var (
	// ErrNotStarted is returned by Turn before a language pair is chosen.
	ErrNotStarted = errors.New("tutor: conversation not started")

	// ErrEmptyInput is returned by Turn for a blank message.
	ErrEmptyInput = errors.New("tutor: empty message")

	// ErrSessionReset is returned by Turn when the session was reset while
	// the reply was being generated. The reply is discarded.
	ErrSessionReset = errors.New("tutor: conversation reset during turn")
)

// Checker detects a mistake in one utterance. *mistakes.Classifier
// implements it.
type Checker interface {
	Classify(ctx context.Context, userInput string) (*mistakes.Mistake, error)
}

// Generator builds the conversational prompt, asks the provider for a
// reply and annotates it with any detected correction.
type Generator struct {
	provider   llm.Provider
	checker    Checker
	systemRole string
	timeout    time.Duration
}

// NewGenerator creates a Generator. checker may be nil to skip mistake
// detection. timeout bounds each reply request; zero means no bound.
func NewGenerator(provider llm.Provider, checker Checker, systemRole string, timeout time.Duration) *Generator {
	return &Generator{
		provider:   provider,
		checker:    checker,
		systemRole: systemRole,
		timeout:    timeout,
	}
}

// Respond returns the reply to userInput given the session's recent
// context. Provider failures come back in-band as "Error: ..." text. The
// error is non-nil only when a detected mistake could not be stored.
func (g *Generator) Respond(ctx context.Context, sess *session.Session, userInput string) (string, error) {
	ctx = llm.WithSessionID(ctx, sess.ID)

	prompt, err := buildReplyPrompt(g.systemRole, sess.ContextBlock(), userInput)
	if err != nil {
		return "", fmt.Errorf("build reply prompt: %w", err)
	}

	message, err := g.reply(ctx, prompt)
	if err != nil {
		return "Error: " + err.Error(), nil
	}

	if g.checker == nil {
		return message, nil
	}
	m, err := g.checker.Classify(ctx, userInput)
	if err != nil {
		return "", err
	}
	if m != nil {
		message += Annotation(m)
	}
	return message, nil
}

func (g *Generator) reply(ctx context.Context, prompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeChatReply)
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Turn runs one exchange: it logs userInput, responds, and logs the reply.
// When the session is reset while the reply is being generated, the reply
// is dropped and ErrSessionReset is returned.
func (g *Generator) Turn(ctx context.Context, sess *session.Session, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		if !sess.Active() {
			return "", ErrNotStarted
		}
		return "", ErrEmptyInput
	}

	gen, ok := sess.BeginTurn(userInput)
	if !ok {
		return "", ErrNotStarted
	}
	message, err := g.Respond(ctx, sess, userInput)
	if err != nil {
		return "", err
	}
	if !sess.EndTurn(gen, message) {
		return "", ErrSessionReset
	}
	return message, nil
}

// Annotation formats the correction appended to a reply.
func Annotation(m *mistakes.Mistake) string {
	return fmt.Sprintf("\n\nCorrection: %s (Type: %s)", m.Correction, m.Type)
}

var replyTemplate = template.Must(template.New("chat-reply").Parse(`System: {{.Role}}
Objective: {{.Role}}
Context:
{{.Context}}

User: {{.Input}}
AI:`))

func buildReplyPrompt(role, context, input string) (string, error) {
	var buf bytes.Buffer
	err := replyTemplate.Execute(&buf, struct{ Role, Context, Input string }{role, context, input})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
