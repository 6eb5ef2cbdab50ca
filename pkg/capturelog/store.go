package capturelog

// Logger is the minimal sink interface the capture stage needs. Any
// implementation must tolerate concurrent calls from interleaved requests.
type Logger interface {
	Log(entry *Entry)
}

// Store extends Logger with query access for inspection tooling.
type Store interface {
	Logger

	// Get returns the entry with the given ID, or nil.
	Get(id string) *Entry

	// List returns entries newest-first, optionally filtered.
	List(filter *Filter) []*Entry

	// Clear drops all entries.
	Clear()

	// Count returns the number of stored entries.
	Count() int
}

// Filter selects entries in List queries. Zero fields match everything.
type Filter struct {
	// Method filters by exact HTTP method.
	Method string

	// Path filters by path prefix.
	Path string

	// Status filters by exact response status.
	Status int

	// HasError filters by failure presence.
	HasError *bool

	// Limit caps the number of returned entries (0 = no cap).
	Limit int

	// Offset skips that many entries before collecting results.
	Offset int
}

// Subscriber receives new entries as they are logged.
type Subscriber chan *Entry

// SubscribableStore is a Store that can fan out new entries in real time.
type SubscribableStore interface {
	Store

	// Subscribe registers a subscriber. The returned function removes it
	// and closes the channel.
	Subscribe() (Subscriber, func())
}
