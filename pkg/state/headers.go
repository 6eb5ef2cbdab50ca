package state

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bugtap/bugtap/pkg/event"
)

// HeaderPrefix is prepended to every projected header name so debug headers
// never collide with application headers.
const HeaderPrefix = "X-Bug-"

// DebugHeaders projects the store onto an ordered header set: each key is
// transformed per HeaderName and each value stringified per FormatValue.
// Keys are emitted in sorted order so the projection is deterministic.
func DebugHeaders(s State) event.HeaderSet {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(event.HeaderSet, 0, len(keys))
	for _, k := range keys {
		out.Add(HeaderName(k), FormatValue(s[k]))
	}
	return out
}

// HeaderName converts a state key to its debug header name: underscores
// become dashes, each segment is title-cased, and the result carries the
// HeaderPrefix. "start_time" becomes "X-Bug-Start-Time".
func HeaderName(key string) string {
	segs := strings.Split(key, "_")
	for i, seg := range segs {
		if seg == "" {
			continue
		}
		segs[i] = strings.ToUpper(seg[:1]) + strings.ToLower(seg[1:])
	}
	return HeaderPrefix + strings.Join(segs, "-")
}

// FormatValue stringifies a state value reproducibly. Floats use the
// shortest decimal representation that round-trips, so timestamps render
// the same way on every call.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case time.Duration:
		return strconv.FormatFloat(x.Seconds(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
