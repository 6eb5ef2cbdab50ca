package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bugtap/bugtap/pkg/state"
)

// accessTimeLayout is the timestamp format embedded in access records.
const accessTimeLayout = "2006-01-02 15:04:05 -0700"

// AccessLine formats the single exit record the timing stage emits per
// request:
//
//	[2026-01-02 15:04:05 +0000] [INFO] "GET /path" with state: {end_time: 1.5, start_time: 1.2}
func AccessLine(method, path string, st state.State) string {
	return fmt.Sprintf("[%s] [INFO] %q with state: %s",
		time.Now().Format(accessTimeLayout), method+" "+path, FormatState(st))
}

// SummaryLine formats the capture stage's exit record. Absent payloads
// render as the literal text "None".
func SummaryLine(method, path string, request, response any) string {
	return fmt.Sprintf("[%s] [INFO] %q\nrequest: %s\nresponse: %s",
		time.Now().Format(accessTimeLayout), method+" "+path,
		PayloadText(request), PayloadText(response))
}

// FormatState renders a state map as {key: value, ...} with keys sorted, so
// the same state always produces the same text.
func FormatState(st state.State) string {
	keys := make([]string, 0, len(st))
	for k := range st {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(state.FormatValue(st[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}

// PayloadText renders a captured payload for an access record. Strings pass
// through, nil becomes "None", and structured values are JSON-encoded.
func PayloadText(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}
