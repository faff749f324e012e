package mistakes

import (
	"log/slog"
	"sync"
)

// Reporter receives problems that must not interrupt the conversation.
type Reporter interface {
	Warn(msg string, err error)
	Error(msg string, err error)
}

// LogReporter reports through a slog logger.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r LogReporter) Warn(msg string, err error) {
	r.logger().Warn(msg, "error", err)
}

func (r LogReporter) Error(msg string, err error) {
	r.logger().Error(msg, "error", err)
}

// Notice is one reported problem.
type Notice struct {
	Level slog.Level
	Msg   string
	Err   error
}

func (n Notice) String() string {
	if n.Err == nil {
		return n.Msg
	}
	return n.Msg + ": " + n.Err.Error()
}

// Recorder keeps reported problems until drained, forwarding each to Next
// when set. The chat screen drains it after every turn.
type Recorder struct {
	Next Reporter

	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Warn(msg string, err error) {
	r.add(Notice{Level: slog.LevelWarn, Msg: msg, Err: err})
	if r.Next != nil {
		r.Next.Warn(msg, err)
	}
}

func (r *Recorder) Error(msg string, err error) {
	r.add(Notice{Level: slog.LevelError, Msg: msg, Err: err})
	if r.Next != nil {
		r.Next.Error(msg, err)
	}
}

func (r *Recorder) add(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Drain returns and clears the recorded notices.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}
