package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bugtap/bugtap/internal/body"
	"github.com/bugtap/bugtap/pkg/event"
	"github.com/bugtap/bugtap/pkg/logging"
	"github.com/bugtap/bugtap/pkg/state"
)

// QueryLogger dumps every outbound message as one structured JSON record.
// Unlike Timing it injects no headers and emits nothing at request exit;
// records are per-message. Its state holds only the request method and
// path, stamped at entry.
type QueryLogger struct {
	app    event.App
	logger *slog.Logger
}

// NewQueryLogger wraps app with per-message dump logging.
func NewQueryLogger(app event.App, logger *slog.Logger) *QueryLogger {
	if logger == nil {
		logger = logging.Nop()
	}
	return &QueryLogger{app: app, logger: logger}
}

// queryRecord is the JSON shape of one dumped message.
type queryRecord struct {
	Time   float64 `json:"time"`
	Method string  `json:"method"`
	Path   string  `json:"path"`
	Type   string  `json:"type"`
	Data   any     `json:"data"`
}

// Handle runs one request. Non-HTTP scopes delegate untouched.
func (m *QueryLogger) Handle(ctx context.Context, scope *event.Scope, receive event.ReceiveFunc, send event.SendFunc) error {
	if scope.Protocol != event.ProtocolHTTP {
		return m.app(ctx, scope, receive, send)
	}

	st := state.New()
	st.Set("method", scope.Method)
	st.Set("path", scope.Path)

	return m.app(ctx, scope, receive, wrapSend(send, st, m.onMessage))
}

// onMessage decodes the message body (raw-text fallback on bad JSON) and
// logs one record before forwarding.
func (m *QueryLogger) onMessage(ctx context.Context, msg *event.Message, forward event.SendFunc, st state.State) error {
	rec := queryRecord{
		Time:   wallClock(),
		Method: st.Get("method", "").(string),
		Path:   st.Get("path", "").(string),
		Type:   msg.Type,
		Data:   body.Decode(msg.Body),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		// Every message gets a record even when the decoded payload holds
		// something JSON cannot represent. Render it as text and retry;
		// with all fields plain strings and numbers this cannot fail.
		rec.Data = fmt.Sprintf("%v", rec.Data)
		b, _ = json.Marshal(rec)
	}
	m.logger.Info("[QueryLogger] " + string(b))
	return forward(ctx, msg)
}

var _ Stage = (*QueryLogger)(nil)
