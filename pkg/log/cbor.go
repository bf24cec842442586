package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// journalEnc encodes journal entries. Timestamps are written as
// RFC3339Nano text so the nanosecond ordering of value changes and the
// reports they triggered survives a round trip, and encoding is canonical
// so identical events produce identical bytes.
var journalEnc cbor.EncMode

// journalDec decodes journal entries. Decoding is deliberately lenient:
// a journal written by a newer build may carry fields or categories this
// build does not know, and replaying it must not fail on those.
var journalDec cbor.DecMode

func init() {
	var err error

	journalEnc, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create journal encoder mode: %v", err))
	}

	journalDec, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create journal decoder mode: %v", err))
	}
}

// EncodeEvent encodes one journal entry. The event must carry a timestamp
// and a known category; the Event constructors guarantee both.
func EncodeEvent(event Event) ([]byte, error) {
	if err := event.validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	return journalEnc.Marshal(event)
}

// DecodeEvent decodes one journal entry. Events with categories unknown
// to this build are returned as-is so newer journals stay readable.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := journalDec.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	return event, nil
}

// NewEncoder creates a journal encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return journalEnc.NewEncoder(w)
}

// NewDecoder creates a journal decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return journalDec.NewDecoder(r)
}
