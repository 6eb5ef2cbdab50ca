package event

import "context"

// Message types exchanged between the transport and the application.
const (
	// TypeRequest carries one chunk of the inbound request body. The
	// application echoes consumed request chunks on the outbound channel so
	// instrumentation can observe them; transports ignore the echo.
	TypeRequest = "http.request"

	// TypeResponseStart carries the response status and header set. Sent
	// exactly once per request, before any response body message.
	TypeResponseStart = "http.response.start"

	// TypeResponseBody carries one chunk of the response body. More reports
	// whether further body messages follow.
	TypeResponseBody = "http.response.body"
)

// ProtocolHTTP identifies request scopes this library instruments.
// Scopes with any other protocol pass through middleware untouched.
const ProtocolHTTP = "http"

// Message is one discrete message in the request/response lifecycle.
// Which fields are meaningful depends on Type.
type Message struct {
	// Type discriminates the message variant (TypeRequest, TypeResponseStart,
	// TypeResponseBody).
	Type string

	// Status is the HTTP status code (TypeResponseStart only).
	Status int

	// Headers is the ordered response header set (TypeResponseStart only).
	// Middleware may mutate it in place before the message is forwarded.
	Headers HeaderSet

	// Body is the payload chunk (TypeRequest and TypeResponseBody).
	Body []byte

	// More reports whether further messages of the same kind follow.
	More bool
}

// Scope describes one inbound request. It is immutable for the lifetime of
// the request.
type Scope struct {
	// Protocol is the scope kind; middleware only instruments ProtocolHTTP.
	Protocol string

	// Method is the HTTP request method.
	Method string

	// Path is the request URL path.
	Path string

	// Query is the raw query string.
	Query string

	// RemoteAddr is the client network address.
	RemoteAddr string

	// Headers is the ordered request header set.
	Headers HeaderSet
}

// ReceiveFunc yields the next inbound message. It blocks until a message is
// available or ctx is done.
type ReceiveFunc func(ctx context.Context) (*Message, error)

// SendFunc forwards one outbound message toward the transport.
type SendFunc func(ctx context.Context, msg *Message) error

// App is the application contract: it consumes inbound messages via receive
// and produces outbound messages via send. Implementations must behave
// identically whether send is wrapped by middleware or raw.
type App func(ctx context.Context, scope *Scope, receive ReceiveFunc, send SendFunc) error
