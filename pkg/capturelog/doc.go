// Package capturelog stores captured request/response pairs for inspection.
//
// The capture stage records one Entry per request at exit; tooling queries
// the Store or subscribes for entries in real time. This is distinct from
// operational logging, which goes through log/slog (package logging).
//
// This is a leaf package: it depends on nothing inside the module, so any
// package can import it without cycles.
package capturelog
