package report

import (
	"fmt"
	"time"
)

// Reason indicates why a report was generated.
type Reason uint8

const (
	// ReasonDataChange indicates a dataset member value changed.
	ReasonDataChange Reason = 1
)

// String returns the reason name as used in the report payload.
func (r Reason) String() string {
	switch r {
	case ReasonDataChange:
		return "data-change"
	default:
		return "unknown"
	}
}

// IsValid returns true for known reason codes.
func (r Reason) IsValid() bool {
	return r == ReasonDataChange
}

// Sink receives reports pushed by a report control block.
//
// The data map is keyed by full attribute path
// (LogicalDevice/LogicalNode.DataObject.DataAttribute) and holds the value
// of every dataset member at the time of the triggering change. Sinks are
// invoked synchronously from the write that triggered the report; a slow
// sink delays the writer. A returned error is logged by the control block
// and does not disable delivery of later reports.
type Sink func(reportID string, data map[string]any, reason Reason) error

// Report is a delivered report in encodable form.
//
// CBOR encoding uses integer keys:
//
//	{
//	  1: reportId,   // string
//	  2: reason,     // uint8: 1=data-change
//	  3: data,       // map[path]value
//	  4: timestamp   // unix time
//	}
type Report struct {
	ReportID  string         `cbor:"1,keyasint"`
	Reason    Reason         `cbor:"2,keyasint"`
	Data      map[string]any `cbor:"3,keyasint"`
	Timestamp time.Time      `cbor:"4,keyasint"`
}

// Validate checks if the report is well-formed.
func (r *Report) Validate() error {
	if r.ReportID == "" {
		return fmt.Errorf("report ID must not be empty")
	}
	if !r.Reason.IsValid() {
		return fmt.Errorf("invalid reason: %d", r.Reason)
	}
	if len(r.Data) == 0 {
		return fmt.Errorf("report data must not be empty")
	}
	return nil
}
