package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/bugtap/bugtap/internal/body"
	"github.com/bugtap/bugtap/pkg/capturelog"
	"github.com/bugtap/bugtap/pkg/event"
	"github.com/bugtap/bugtap/pkg/filter"
	"github.com/bugtap/bugtap/pkg/logging"
	"github.com/bugtap/bugtap/pkg/state"
)

// DefaultMaxBodySize caps how many payload bytes the capture stage decodes.
const DefaultMaxBodySize = 10 * 1024

// Capture records request and response payloads. Request bodies decode into
// request_data; response bodies into response_data, skipping empty chunks
// and the [DONE] streaming terminator. Every message additionally gets a
// raw debug line, and one summary record is emitted per request on all
// exit paths. Entries can optionally be recorded into a capture store,
// gated by a compiled filter, with JSONPath field extraction.
type Capture struct {
	app          event.App
	logger       *slog.Logger
	store        capturelog.Logger
	filter       *filter.Filter
	extractPaths map[string]string
	extractor    *body.Extractor
	maxBody      int
}

// CaptureOption configures a Capture stage.
type CaptureOption func(*Capture)

// WithStore records an entry per captured request into store.
func WithStore(store capturelog.Logger) CaptureOption {
	return func(c *Capture) { c.store = store }
}

// WithFilter gates store recording on a compiled capture predicate.
func WithFilter(f *filter.Filter) CaptureOption {
	return func(c *Capture) { c.filter = f }
}

// WithExtract pulls JSONPath values out of decoded payloads into the stored
// entry. Keys name the extracted fields; values are JSONPath expressions.
func WithExtract(paths map[string]string) CaptureOption {
	return func(c *Capture) { c.extractPaths = paths }
}

// WithMaxBodySize caps the number of payload bytes decoded per message.
func WithMaxBodySize(n int) CaptureOption {
	return func(c *Capture) { c.maxBody = n }
}

// NewCapture wraps app with payload capture. It fails only when a
// configured JSONPath expression does not parse.
func NewCapture(app event.App, logger *slog.Logger, opts ...CaptureOption) (*Capture, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Capture{app: app, logger: logger, maxBody: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(c)
	}

	ex, err := body.NewExtractor(c.extractPaths)
	if err != nil {
		return nil, err
	}
	c.extractor = ex
	return c, nil
}

// Handle runs one request. Non-HTTP scopes delegate untouched. The summary
// record (and store entry, if configured) is emitted exactly once on the
// way out; downstream errors are returned unchanged afterwards.
func (m *Capture) Handle(ctx context.Context, scope *event.Scope, receive event.ReceiveFunc, send event.SendFunc) (err error) {
	if scope.Protocol != event.ProtocolHTTP {
		return m.app(ctx, scope, receive, send)
	}

	st := state.New()
	started := time.Now()

	defer func() {
		m.logger.Info(logging.SummaryLine(scope.Method, scope.Path,
			st.Get("request_data", nil), st.Get("response_data", nil)))
		m.record(scope, st, started, err)
	}()

	return m.app(ctx, scope, receive, wrapSend(send, st, m.onMessage))
}

// onMessage logs the raw message, then captures payloads by message type.
func (m *Capture) onMessage(ctx context.Context, msg *event.Message, forward event.SendFunc, st state.State) error {
	m.logger.Debug("message", "type", msg.Type, "body", string(msg.Body))

	switch msg.Type {
	case event.TypeRequest:
		// Chunked transports deliver an empty trailing chunk; it is not a
		// payload.
		if len(msg.Body) == 0 {
			break
		}
		decoded := body.Decode(m.truncate(msg.Body))
		st.Set("request_data", decoded)
		m.extract(st, decoded)

	case event.TypeResponseStart:
		st.Set("status", msg.Status)

	case event.TypeResponseBody:
		decoded := body.Decode(m.truncate(msg.Body))
		// Empty chunks and stream terminators are not payloads.
		if s, ok := decoded.(string); ok && (s == "" || s == body.Done) {
			break
		}
		st.Set("response_data", decoded)
		m.extract(st, decoded)
	}

	return forward(ctx, msg)
}

func (m *Capture) truncate(b []byte) []byte {
	if m.maxBody > 0 && len(b) > m.maxBody {
		return b[:m.maxBody]
	}
	return b
}

func (m *Capture) extract(st state.State, decoded any) {
	ex := m.extractor.Apply(decoded)
	if len(ex) == 0 {
		return
	}
	merged, _ := st.Get("extracted", nil).(map[string]any)
	if merged == nil {
		merged = make(map[string]any)
	}
	for k, v := range ex {
		merged[k] = v
	}
	st.Set("extracted", merged)
}

// record writes the store entry for one finished request, if a store is
// configured and the capture filter matches.
func (m *Capture) record(scope *event.Scope, st state.State, started time.Time, err error) {
	if m.store == nil {
		return
	}

	status, _ := st.Get("status", 0).(int)
	if !m.filter.Match(filter.Env{
		Method: scope.Method,
		Path:   scope.Path,
		Query:  scope.Query,
		Status: status,
	}) {
		return
	}

	entry := &capturelog.Entry{
		Timestamp:    started,
		Method:       scope.Method,
		Path:         scope.Path,
		Query:        scope.Query,
		RemoteAddr:   scope.RemoteAddr,
		Status:       status,
		RequestData:  st.Get("request_data", nil),
		ResponseData: st.Get("response_data", nil),
		DurationMs:   time.Since(started).Milliseconds(),
	}
	if ex, ok := st.Get("extracted", nil).(map[string]any); ok {
		entry.Extracted = ex
	}
	if err != nil {
		entry.Error = err.Error()
	}
	m.store.Log(entry)
}

var _ Stage = (*Capture)(nil)
