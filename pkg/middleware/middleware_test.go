package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/bugtap/bugtap/pkg/event"
	"github.com/bugtap/bugtap/pkg/logging"
)

// sentRecorder collects outbound messages, snapshotting headers at send
// time so later mutation cannot affect assertions.
type sentRecorder struct {
	msgs []*event.Message
	err  error
}

func (r *sentRecorder) send(_ context.Context, msg *event.Message) error {
	if r.err != nil {
		return r.err
	}
	snap := *msg
	snap.Headers = msg.Headers.Clone()
	snap.Body = append([]byte(nil), msg.Body...)
	r.msgs = append(r.msgs, &snap)
	return nil
}

func (r *sentRecorder) types() []string {
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Type
	}
	return out
}

// scriptApp returns an App that sends the given messages in order and then
// returns err. Send failures are propagated immediately, as a well-behaved
// application would.
func scriptApp(msgs []*event.Message, err error) event.App {
	return func(ctx context.Context, _ *event.Scope, _ event.ReceiveFunc, send event.SendFunc) error {
		for _, m := range msgs {
			if e := send(ctx, m); e != nil {
				return e
			}
		}
		return err
	}
}

func httpScope(method, path string) *event.Scope {
	return &event.Scope{Protocol: event.ProtocolHTTP, Method: method, Path: path}
}

// testLogger returns a debug-level text logger writing into the returned
// buffer, one line per record.
func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:  slog.LevelDebug,
		Format: logging.FormatText,
		Output: &buf,
	})
	return logger, &buf
}

// jsonTestLogger is like testLogger but with JSON output, for tests that
// need to parse record messages back out.
func jsonTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:  slog.LevelDebug,
		Format: logging.FormatJSON,
		Output: &buf,
	})
	return logger, &buf
}

func logLines(buf *bytes.Buffer) []string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
