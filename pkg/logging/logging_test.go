package logging

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/bugtap/bugtap/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("Error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("whatever"))
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestFanout(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(Fanout(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	))

	logger.Info("both sinks")
	assert.Contains(t, a.String(), "both sinks")
	assert.Contains(t, b.String(), "both sinks")
}

func TestAccessLine(t *testing.T) {
	st := state.New()
	st.Set("start_time", 1.25)
	st.Set("end_time", 2.5)

	line := AccessLine("GET", "/users", st)
	re := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [+-]\d{4}\] \[INFO\] "GET /users" with state: `)
	assert.Regexp(t, re, line)
	assert.Contains(t, line, "start_time: 1.25")
	assert.Contains(t, line, "end_time: 2.5")
}

func TestSummaryLine(t *testing.T) {
	line := SummaryLine("POST", "/q", map[string]any{"a": 1}, nil)

	parts := strings.Split(line, "\n")
	require.Len(t, parts, 3)
	assert.Contains(t, parts[0], `"POST /q"`)
	assert.Equal(t, `request: {"a":1}`, parts[1])
	assert.Equal(t, "response: None", parts[2])
}

func TestFormatState_Sorted(t *testing.T) {
	st := state.New()
	st.Set("b", 2)
	st.Set("a", 1)
	assert.Equal(t, "{a: 1, b: 2}", FormatState(st))
}

func TestPayloadText(t *testing.T) {
	assert.Equal(t, "None", PayloadText(nil))
	assert.Equal(t, "raw", PayloadText("raw"))
	assert.Equal(t, `[1,2]`, PayloadText([]any{1, 2}))
}
