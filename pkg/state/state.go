// Package state provides the per-request key/value store that pipeline
// stages accumulate timing and payload data into, and the projection of
// that store onto X-Bug-* debug headers.
//
// A State instance is created when a request enters a stage, is owned
// exclusively by that request, and is discarded after the exit log record
// is emitted. It is never shared across requests, so no locking is needed.
package state

// State is an ephemeral key/value mapping scoped to one request.
type State map[string]any

// New returns an empty store.
func New() State {
	return make(State)
}

// Set stores value under key, silently overwriting any previous value.
func (s State) Set(key string, value any) {
	s[key] = value
}

// Get returns the value stored under key, or def if the key is absent.
func (s State) Get(key string, def any) any {
	if v, ok := s[key]; ok {
		return v
	}
	return def
}
