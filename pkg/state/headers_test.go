package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"start_time", "X-Bug-Start-Time"},
		{"receive_time", "X-Bug-Receive-Time"},
		{"respond_time", "X-Bug-Respond-Time"},
		{"end_time", "X-Bug-End-Time"},
		{"request_data", "X-Bug-Request-Data"},
		{"single", "X-Bug-Single"},
		{"ALREADY_UPPER", "X-Bug-Already-Upper"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, HeaderName(tt.key))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"float", 1.5, "1.5"},
		{"float roundtrip", 0.1, "0.1"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestFormatValue_Reproducible(t *testing.T) {
	v := 12345.678901
	assert.Equal(t, FormatValue(v), FormatValue(v))
}

func TestDebugHeaders_SortedAndPrefixed(t *testing.T) {
	st := New()
	st.Set("start_time", 1.25)
	st.Set("end_time", 2.5)

	hs := DebugHeaders(st)
	require.Len(t, hs, 2)
	assert.Equal(t, "X-Bug-End-Time", hs[0].Name)
	assert.Equal(t, "2.5", hs[0].Value)
	assert.Equal(t, "X-Bug-Start-Time", hs[1].Name)
	assert.Equal(t, "1.25", hs[1].Value)
}

func TestDebugHeaders_Deterministic(t *testing.T) {
	st := New()
	st.Set("b_key", "2")
	st.Set("a_key", "1")
	st.Set("c_key", "3")

	first := DebugHeaders(st)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DebugHeaders(st))
	}
}
