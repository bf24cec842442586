package log

import (
	"fmt"
	"time"
)

// Event represents a model event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"2,keyasint"`

	// Server is the name of the server the event originated from.
	Server string `cbor:"3,keyasint,omitempty"`

	// AssociationID identifies the client association (UUID), if any.
	AssociationID string `cbor:"4,keyasint,omitempty"`

	// Path is the full attribute path for value-change events.
	Path string `cbor:"5,keyasint,omitempty"`

	// Value is the new value for value-change events.
	Value any `cbor:"6,keyasint,omitempty"`

	// ReportID identifies the report for delivery events.
	ReportID string `cbor:"7,keyasint,omitempty"`

	// Members is the dataset member count for delivery events.
	Members int `cbor:"8,keyasint,omitempty"`

	// Error describes the failure for error events.
	Error string `cbor:"9,keyasint,omitempty"`

	// Detail carries a category-specific marker, e.g. "open" or "close"
	// for association events.
	Detail string `cbor:"10,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryValueChange indicates an attribute value changed.
	CategoryValueChange Category = 0
	// CategoryReport indicates a report was delivered to a sink.
	CategoryReport Category = 1
	// CategoryReportError indicates a report delivery failed.
	CategoryReportError Category = 2
	// CategoryAssociation indicates an association was opened or closed.
	CategoryAssociation Category = 3
)

// IsValid returns true for categories this build knows.
func (c Category) IsValid() bool {
	return c <= CategoryAssociation
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryValueChange:
		return "VALUE_CHANGE"
	case CategoryReport:
		return "REPORT"
	case CategoryReportError:
		return "REPORT_ERROR"
	case CategoryAssociation:
		return "ASSOCIATION"
	default:
		return "UNKNOWN"
	}
}

// validate checks that the event can go into a journal. The constructors
// below always produce valid events; hand-built ones may not.
func (e Event) validate() error {
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event has no timestamp")
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("unknown event category %d", e.Category)
	}
	return nil
}

// ValueChange builds a value-change event for the given attribute path.
func ValueChange(server, path string, value any) Event {
	return Event{
		Timestamp: time.Now(),
		Category:  CategoryValueChange,
		Server:    server,
		Path:      path,
		Value:     value,
	}
}

// ReportDelivered builds a delivery event for the given report.
func ReportDelivered(server, reportID string, members int) Event {
	return Event{
		Timestamp: time.Now(),
		Category:  CategoryReport,
		Server:    server,
		ReportID:  reportID,
		Members:   members,
	}
}

// ReportFailed builds a delivery-failure event for the given report.
func ReportFailed(server, reportID string, err string) Event {
	return Event{
		Timestamp: time.Now(),
		Category:  CategoryReportError,
		Server:    server,
		ReportID:  reportID,
		Error:     err,
	}
}

// AssociationOpened builds an event for a newly established association.
func AssociationOpened(server, associationID string) Event {
	return Event{
		Timestamp:     time.Now(),
		Category:      CategoryAssociation,
		Server:        server,
		AssociationID: associationID,
		Detail:        "open",
	}
}

// AssociationClosed builds an event for a released association.
func AssociationClosed(server, associationID string) Event {
	return Event{
		Timestamp:     time.Now(),
		Category:      CategoryAssociation,
		Server:        server,
		AssociationID: associationID,
		Detail:        "close",
	}
}
