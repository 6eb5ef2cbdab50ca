package event

import "strings"

// Field is a single (name, value) header pair.
type Field struct {
	Name  string
	Value string
}

// HeaderSet is an ordered sequence of header fields. Unlike http.Header it
// preserves insertion order, which matters when headers are mutated in
// place between the application and the transport.
type HeaderSet []Field

// Get returns the value of the first field with the given name
// (case-insensitive) and whether it was present.
func (h HeaderSet) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Add appends a field, keeping any existing fields with the same name.
func (h *HeaderSet) Add(name, value string) {
	*h = append(*h, Field{Name: name, Value: value})
}

// Set replaces the first field with the given name in place, preserving its
// position, and drops any later duplicates. If the name is absent the field
// is appended.
func (h *HeaderSet) Set(name, value string) {
	replaced := false
	out := (*h)[:0]
	for _, f := range *h {
		if strings.EqualFold(f.Name, name) {
			if replaced {
				continue
			}
			f.Value = value
			replaced = true
		}
		out = append(out, f)
	}
	if !replaced {
		out = append(out, Field{Name: name, Value: value})
	}
	*h = out
}

// Clone returns a copy of the header set that shares no storage with the
// original.
func (h HeaderSet) Clone() HeaderSet {
	if h == nil {
		return nil
	}
	out := make(HeaderSet, len(h))
	copy(out, h)
	return out
}
