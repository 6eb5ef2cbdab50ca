package capturelog

import "time"

// Entry is one captured request/response pair, recorded by the capture
// stage at request exit.
type Entry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Timestamp is when the request entered the pipeline.
	Timestamp time.Time `json:"timestamp"`

	// Method is the HTTP request method.
	Method string `json:"method"`

	// Path is the request URL path.
	Path string `json:"path"`

	// Query is the raw query string, if any.
	Query string `json:"query,omitempty"`

	// RemoteAddr is the client network address.
	RemoteAddr string `json:"remoteAddr,omitempty"`

	// Status is the response status code (0 if the response never started).
	Status int `json:"status"`

	// RequestData is the decoded request payload (JSON value or raw text).
	RequestData any `json:"requestData,omitempty"`

	// ResponseData is the decoded response payload (JSON value or raw text).
	ResponseData any `json:"responseData,omitempty"`

	// Extracted holds values pulled out of payloads by configured JSONPath
	// expressions.
	Extracted map[string]any `json:"extracted,omitempty"`

	// DurationMs is the wall time spent handling the request.
	DurationMs int64 `json:"durationMs"`

	// Error is the downstream failure message, if the request failed.
	Error string `json:"error,omitempty"`
}
