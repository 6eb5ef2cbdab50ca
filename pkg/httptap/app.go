package httptap

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/bugtap/bugtap/pkg/event"
)

// AppFromHandler lifts an http.Handler into the event-pipeline world so
// middleware stages can wrap it. The returned App drains the request body
// via receive, echoing each consumed chunk on the outbound channel for the
// stages to observe, then serves the handler with a response writer that
// emits response.start and response.body messages through send.
func AppFromHandler(h http.Handler) event.App {
	return func(ctx context.Context, scope *event.Scope, receive event.ReceiveFunc, send event.SendFunc) error {
		if scope.Protocol != event.ProtocolHTTP {
			return fmt.Errorf("httptap: unsupported scope protocol %q", scope.Protocol)
		}

		var reqBody bytes.Buffer
		for {
			msg, err := receive(ctx)
			if err != nil {
				return err
			}
			if msg.Type != event.TypeRequest {
				return fmt.Errorf("httptap: unexpected inbound message type %q", msg.Type)
			}
			reqBody.Write(msg.Body)
			if err := send(ctx, msg); err != nil {
				return err
			}
			if !msg.More {
				break
			}
		}

		req, err := newRequest(ctx, scope, &reqBody)
		if err != nil {
			return err
		}

		rw := &eventResponseWriter{ctx: ctx, send: send, header: make(http.Header)}
		h.ServeHTTP(rw, req)
		return rw.finish()
	}
}

func newRequest(ctx context.Context, scope *event.Scope, body *bytes.Buffer) (*http.Request, error) {
	u := &url.URL{Path: scope.Path, RawQuery: scope.Query}
	req, err := http.NewRequestWithContext(ctx, scope.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("httptap: building request: %w", err)
	}
	req.RemoteAddr = scope.RemoteAddr
	for _, f := range scope.Headers {
		req.Header.Add(f.Name, f.Value)
	}
	return req, nil
}

// eventResponseWriter adapts http.ResponseWriter calls into outbound
// messages. Each Write becomes one response.body message with More set; a
// final empty message with More unset closes the stream.
type eventResponseWriter struct {
	ctx     context.Context
	send    event.SendFunc
	header  http.Header
	started bool
	err     error
}

func (w *eventResponseWriter) Header() http.Header {
	return w.header
}

func (w *eventResponseWriter) WriteHeader(code int) {
	if w.started || w.err != nil {
		return
	}
	w.started = true
	w.err = w.send(w.ctx, &event.Message{
		Type:    event.TypeResponseStart,
		Status:  code,
		Headers: headerSetFrom(w.header),
	})
}

func (w *eventResponseWriter) Write(b []byte) (int, error) {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	if w.err != nil {
		return 0, w.err
	}
	// The handler may reuse b after Write returns.
	chunk := append([]byte(nil), b...)
	w.err = w.send(w.ctx, &event.Message{
		Type: event.TypeResponseBody,
		Body: chunk,
		More: true,
	})
	if w.err != nil {
		return 0, w.err
	}
	return len(b), nil
}

// Flush is a no-op: every chunk is forwarded as its own message as soon as
// it is written.
func (w *eventResponseWriter) Flush() {}

// finish closes the response stream and reports the first send failure.
func (w *eventResponseWriter) finish() error {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	if w.err != nil {
		return w.err
	}
	w.err = w.send(w.ctx, &event.Message{Type: event.TypeResponseBody, More: false})
	return w.err
}

// headerSetFrom flattens an http.Header into an ordered header set. Names
// are sorted so the projection is deterministic; values keep their order.
func headerSetFrom(h http.Header) event.HeaderSet {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var out event.HeaderSet
	for _, name := range names {
		for _, v := range h[name] {
			out.Add(name, v)
		}
	}
	return out
}
