// Package report defines the report payload delivered to clients when a
// dataset member changes, and the sink interface through which reports
// leave the core.
//
// # Report Shape
//
// A report carries three things:
//   - the report ID configured on the report control block
//   - the trigger reason (currently only data-change)
//   - a snapshot of every dataset member, keyed by full attribute path
//
// The snapshot always contains all members of the dataset, not just the
// attribute whose change triggered the report. This mirrors the IEC 61850
// buffered/unbuffered reporting behaviour where the client receives a
// consistent view of the whole dataset.
//
// # Sinks
//
// A Sink is the only coupling between the core and whatever consumes
// reports (console, message broker, test harness). Delivery is best-effort:
// a sink error is logged by the report control block and the event is not
// replayed.
//
// # Encoding
//
// The in-process core passes reports as Go values and never requires a
// serialization format. EncodeReport/DecodeReport provide a deterministic
// CBOR encoding with integer keys for collaborators that persist or
// forward reports (the event journal, the MQTT bridge).
package report
