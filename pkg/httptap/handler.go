package httptap

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/bugtap/bugtap/pkg/event"
	"github.com/bugtap/bugtap/pkg/logging"
)

// receiveChunkSize is how much of the request body one receive call yields.
const receiveChunkSize = 32 * 1024

// Handler lowers an App back onto net/http. Inbound request bodies are
// delivered as request messages; outbound response.start and response.body
// messages drive the ResponseWriter, flushing after each streamed chunk.
// Request echoes from the application are absorbed here.
//
// If the app fails before the response started, the client gets a 500; the
// failure is logged either way.
func Handler(app event.App, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := ScopeFromRequest(r)
		started := false

		send := func(ctx context.Context, msg *event.Message) error {
			switch msg.Type {
			case event.TypeRequest:
				// Application echo of a consumed request chunk.
				return nil
			case event.TypeResponseStart:
				for _, f := range msg.Headers {
					w.Header().Add(f.Name, f.Value)
				}
				status := msg.Status
				if status == 0 {
					status = http.StatusOK
				}
				w.WriteHeader(status)
				started = true
			case event.TypeResponseBody:
				if len(msg.Body) == 0 {
					return nil
				}
				if _, err := w.Write(msg.Body); err != nil {
					return err
				}
				if fl, ok := w.(http.Flusher); ok && msg.More {
					fl.Flush()
				}
			}
			return nil
		}

		if err := app(r.Context(), scope, receiver(r), send); err != nil {
			if !started {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			logger.Error("application failed",
				"method", r.Method, "path", r.URL.Path, "error", err)
		}
	})
}

// ScopeFromRequest builds the event scope for an inbound request.
func ScopeFromRequest(r *http.Request) *event.Scope {
	return &event.Scope{
		Protocol:   event.ProtocolHTTP,
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.RawQuery,
		RemoteAddr: r.RemoteAddr,
		Headers:    headerSetFrom(r.Header),
	}
}

// receiver yields the request body as a sequence of request messages. The
// final chunk carries More == false; receiving past the end returns io.EOF.
func receiver(r *http.Request) event.ReceiveFunc {
	done := false
	buf := make([]byte, receiveChunkSize)

	return func(ctx context.Context) (*event.Message, error) {
		if done {
			return nil, io.EOF
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := r.Body.Read(buf)
		chunk := append([]byte(nil), buf[:n]...)
		switch {
		case err == io.EOF:
			done = true
			return &event.Message{Type: event.TypeRequest, Body: chunk}, nil
		case err != nil:
			return nil, err
		default:
			return &event.Message{Type: event.TypeRequest, Body: chunk, More: true}, nil
		}
	}
}
