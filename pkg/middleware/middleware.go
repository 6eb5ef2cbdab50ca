package middleware

import (
	"context"
	"time"

	"github.com/bugtap/bugtap/pkg/event"
	"github.com/bugtap/bugtap/pkg/state"
)

// Stage instruments one request's lifecycle around an App. Handle has the
// same shape as event.App, so a stage composes with further stages by
// wrapping its Handle method.
type Stage interface {
	Handle(ctx context.Context, scope *event.Scope, receive event.ReceiveFunc, send event.SendFunc) error
}

// Hook observes one outbound message before it reaches the real transport.
// It may mutate msg in place and must call forward to pass the message on;
// errors from forward or the hook itself propagate to the sender unchanged.
type Hook func(ctx context.Context, msg *event.Message, forward event.SendFunc, st state.State) error

// wrapSend routes every outbound message through hook, preserving arrival
// order: messages are forwarded one at a time, never reordered or dropped.
func wrapSend(send event.SendFunc, st state.State, hook Hook) event.SendFunc {
	return func(ctx context.Context, msg *event.Message) error {
		return hook(ctx, msg, send, st)
	}
}

// processStart anchors the monotonic clock the stages stamp state with.
var processStart = time.Now()

// monotonic returns seconds elapsed on the monotonic clock. Values are
// comparable within a process and stringify as plain decimals.
func monotonic() float64 {
	return time.Since(processStart).Seconds()
}

// wallClock returns the current wall time as fractional seconds since the
// Unix epoch, for timestamps in per-message records.
func wallClock() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
