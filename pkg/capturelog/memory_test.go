package capturelog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LogFillsDefaults(t *testing.T) {
	s := NewMemoryStore(10)
	e := &Entry{Method: "GET", Path: "/a"}
	s.Log(e)

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, 1, s.Count())
	assert.Same(t, e, s.Get(e.ID))
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore(10)
	for i := 0; i < 3; i++ {
		s.Log(&Entry{Path: fmt.Sprintf("/p%d", i)})
	}

	got := s.List(nil)
	require.Len(t, got, 3)
	assert.Equal(t, "/p2", got[0].Path)
	assert.Equal(t, "/p0", got[2].Path)
}

func TestMemoryStore_FIFOEviction(t *testing.T) {
	s := NewMemoryStore(2)
	s.Log(&Entry{Path: "/old"})
	s.Log(&Entry{Path: "/mid"})
	s.Log(&Entry{Path: "/new"})

	require.Equal(t, 2, s.Count())
	got := s.List(nil)
	assert.Equal(t, "/new", got[0].Path)
	assert.Equal(t, "/mid", got[1].Path)
}

func TestMemoryStore_Filters(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(&Entry{Method: "GET", Path: "/api/users", Status: 200})
	s.Log(&Entry{Method: "POST", Path: "/api/users", Status: 500, Error: "boom"})
	s.Log(&Entry{Method: "GET", Path: "/healthz", Status: 200})

	assert.Len(t, s.List(&Filter{Method: "GET"}), 2)
	assert.Len(t, s.List(&Filter{Path: "/api/"}), 2)
	assert.Len(t, s.List(&Filter{Status: 500}), 1)

	hasErr := true
	got := s.List(&Filter{HasError: &hasErr})
	require.Len(t, got, 1)
	assert.Equal(t, "boom", got[0].Error)

	assert.Len(t, s.List(&Filter{Limit: 2}), 2)
	assert.Len(t, s.List(&Filter{Offset: 2}), 1)
	assert.Empty(t, s.List(&Filter{Offset: 99}))
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(&Entry{})
	s.Clear()
	assert.Zero(t, s.Count())
}

func TestMemoryStore_Subscribe(t *testing.T) {
	s := NewMemoryStore(10)
	ch, unsubscribe := s.Subscribe()

	s.Log(&Entry{Path: "/live"})

	select {
	case e := <-ch:
		assert.Equal(t, "/live", e.Path)
	case <-time.After(time.Second):
		t.Fatal("no entry delivered to subscriber")
	}

	unsubscribe()
	_, open := <-ch
	assert.False(t, open, "channel should be closed after unsubscribe")

	// Logging after unsubscribe must not panic.
	s.Log(&Entry{Path: "/after"})
}
