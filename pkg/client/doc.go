// Package client implements the client-facing gateway to a simulated
// server: a single association over which values are read, the model is
// browsed, and report control blocks are enabled.
//
// # Association
//
// Connect binds the client to one server and assigns an association ID.
// No transport is implied; the association is the in-process equivalent of
// an MMS association between a SCADA master and an IED. Operations before
// Connect fail with ErrNotConnected.
//
// # Reads and Reports
//
// Read is the polling path: resolve a path, return value and timestamp.
// EnableReport is the push path: it locates a report control block by
// (logical device, logical node, block name) and registers a sink. From
// then on, any write to a dataset member pushes a report to the sink with
// no polling by the client. Delivery happens on the writer's goroutine,
// asynchronously relative to the EnableReport call.
package client
