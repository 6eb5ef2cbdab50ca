// Package middleware implements the message-interception pipeline stages.
//
// A stage wraps an event.App: it installs an interception hook around the
// outbound send channel, delegates to the application, and drives state
// capture and logging around the call. Three stages are provided:
//
//   - Timing stamps lifecycle timestamps, injects them as X-Bug-* response
//     headers, and logs one access record per request.
//   - QueryLogger dumps every outbound message as a JSON record.
//   - Capture decodes request/response payloads, logs a per-request
//     summary, and can record entries into a capture store.
//
// All stages share the same guarantees: outbound messages are forwarded in
// arrival order without drops or duplicates, non-HTTP scopes pass through
// untouched, and downstream errors propagate unchanged after any exit
// record has been emitted. Per-request state is owned by a single request,
// so stages need no locking; the injected logger is the only shared
// resource and appends one atomic record per call.
package middleware
