package middleware

import (
	"context"
	"log/slog"

	"github.com/bugtap/bugtap/pkg/event"
	"github.com/bugtap/bugtap/pkg/logging"
	"github.com/bugtap/bugtap/pkg/state"
)

// Timing captures lifecycle timestamps for each request, attaches them as
// X-Bug-* response headers, and emits one access record per request.
type Timing struct {
	app    event.App
	logger *slog.Logger
}

// NewTiming wraps app with timing instrumentation. A nil logger disables
// log output but not header injection.
func NewTiming(app event.App, logger *slog.Logger) *Timing {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Timing{app: app, logger: logger}
}

// Handle runs one request. Non-HTTP scopes delegate to the application
// untouched. For HTTP scopes the accumulated state is logged exactly once
// on the way out, on both normal return and failure; downstream errors are
// returned unchanged after the record is emitted.
func (m *Timing) Handle(ctx context.Context, scope *event.Scope, receive event.ReceiveFunc, send event.SendFunc) error {
	if scope.Protocol != event.ProtocolHTTP {
		return m.app(ctx, scope, receive, send)
	}

	st := state.New()
	st.Set("start_time", monotonic())

	defer func() {
		st.Set("end_time", monotonic())
		m.logger.Info(logging.AccessLine(scope.Method, scope.Path, st))
	}()

	return m.app(ctx, scope, receive, wrapSend(send, st, m.onMessage))
}

// onMessage stamps receive/respond times and, at response start, merges the
// projected state headers into the outbound header set before forwarding.
func (m *Timing) onMessage(ctx context.Context, msg *event.Message, forward event.SendFunc, st state.State) error {
	switch msg.Type {
	case event.TypeRequest:
		st.Set("receive_time", monotonic())
	case event.TypeResponseStart:
		st.Set("respond_time", monotonic())
		for _, f := range state.DebugHeaders(st) {
			msg.Headers.Set(f.Name, f.Value)
		}
	}
	return forward(ctx, msg)
}

var _ Stage = (*Timing)(nil)
