// Package log provides pluggable event logging for the simulated server.
//
// The core packages (model, client) emit structured events instead of
// writing to a concrete logging backend: value changes, report deliveries,
// delivery failures, and association lifecycle. Applications choose a
// backend by supplying a Logger implementation:
//
//   - NoopLogger: discard everything (the default when nil is passed)
//   - SlogAdapter: forward events to a log/slog logger for console output
//   - FileLogger: append CBOR-encoded events to a journal file
//   - MultiLogger: fan out to several of the above
//
// The journal written by FileLogger can be read back with Reader, which
// supports filtering by category, path, or report ID. This is the only
// persistence in the module and it is strictly an observability aid;
// reports themselves are never replayed from it.
package log
