// Package bridge forwards reports to an MQTT broker.
//
// The bridge is strictly a collaborator: it consumes the report sink
// interface and knows nothing about the model internals. Reports are
// published CBOR-encoded to a single topic, one message per report,
// best-effort with no buffering or replay, matching the delivery
// semantics of the report control block itself.
package bridge
