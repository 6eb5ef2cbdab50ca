// Package event defines the protocol messages exchanged between a transport
// and an instrumented application.
//
// A request is handled as a stream of discrete messages: request body chunks
// flow in via a ReceiveFunc, and the response (header set, then body chunks)
// flows out via a SendFunc. The App type is the application contract that
// middleware wraps; see package middleware for the instrumentation stages
// and package httptap for the net/http adapter.
//
// This is a leaf package with no dependencies, so any package can import it
// without creating cycles.
package event
