package model

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ied-protocol/ied-go/pkg/log"
)

// Quality indicates the validity of an attribute value.
type Quality uint8

const (
	// QualityGood indicates a valid value.
	QualityGood Quality = 0

	// QualityInvalid indicates the value could not be acquired.
	QualityInvalid Quality = 1

	// QualityQuestionable indicates the value may be inaccurate.
	QualityQuestionable Quality = 2
)

// String returns the quality name.
func (q Quality) String() string {
	switch q {
	case QualityGood:
		return "good"
	case QualityInvalid:
		return "invalid"
	case QualityQuestionable:
		return "questionable"
	default:
		return "unknown"
	}
}

// AttributeSubscriber is notified when an attribute value changes.
// Report control blocks implement this to trigger reports.
type AttributeSubscriber interface {
	// OnAttributeChanged is called synchronously after a value change,
	// in subscription registration order.
	OnAttributeChanged(attr *DataAttribute)
}

// DataAttribute is the leaf of the model tree: a named, typed value with
// timestamp and quality. Attributes are created through
// DataObject.AddAttribute and owned by exactly one data object.
type DataAttribute struct {
	mu sync.RWMutex

	name   string
	parent *DataObject // non-owning back-pointer for path reconstruction

	value     any
	timestamp time.Time
	quality   Quality

	// Subscribers in registration order. The attribute does not own its
	// subscribers; it only invokes them.
	subscribers []AttributeSubscriber

	// Datasets containing this attribute, ascending by dataset reference.
	// Membership is immutable once a dataset is created, so the slice only
	// grows, and always stays sorted.
	datasets []*Dataset
}

func newDataAttribute(name string, value any, parent *DataObject) *DataAttribute {
	return &DataAttribute{
		name:      name,
		parent:    parent,
		value:     value,
		timestamp: time.Now(),
		quality:   QualityGood,
	}
}

// Name returns the attribute name.
func (a *DataAttribute) Name() string {
	return a.name
}

// Parent returns the owning data object.
func (a *DataAttribute) Parent() *DataObject {
	return a.parent
}

// Path returns the full attribute path
// (LogicalDevice/LogicalNode.DataObject.DataAttribute).
func (a *DataAttribute) Path() string {
	return a.parent.Path() + "." + a.name
}

// Value returns the current value.
func (a *DataAttribute) Value() any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// Get returns the current value, its timestamp, and its quality.
// Get is a pure read with no side effects.
func (a *DataAttribute) Get() (any, time.Time, Quality) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value, a.timestamp, a.quality
}

// Timestamp returns the time of the last value change.
func (a *DataAttribute) Timestamp() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.timestamp
}

// Quality returns the current quality.
func (a *DataAttribute) Quality() Quality {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.quality
}

// SetQuality marks the value with the given quality without changing it.
// Used by producers to flag stale or failed acquisitions.
func (a *DataAttribute) SetQuality(q Quality) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.quality = q
}

// SetValue updates the value. Assigning a value equal to the current one
// is a no-op: timestamp and quality stay unchanged and no subscriber fires.
// On change the timestamp is set to the current time, quality to good, and
// every subscriber is invoked synchronously in registration order. A
// panicking subscriber is recovered and reported; it does not prevent the
// remaining subscribers from running. SetValue returns after the last
// subscriber has run.
func (a *DataAttribute) SetValue(v any) {
	a.mu.RLock()
	datasets := a.datasets
	a.mu.RUnlock()

	// Take every dataset lock covering this attribute, ascending by
	// dataset reference, so report snapshots never observe a half-applied
	// write and overlapping writers cannot deadlock.
	for _, ds := range datasets {
		ds.mu.Lock()
	}
	defer func() {
		for i := len(datasets) - 1; i >= 0; i-- {
			datasets[i].mu.Unlock()
		}
	}()

	a.mu.Lock()
	if valuesEqual(a.value, v) {
		a.mu.Unlock()
		return
	}
	a.value = v
	a.timestamp = time.Now()
	a.quality = QualityGood
	subs := make([]AttributeSubscriber, len(a.subscribers))
	copy(subs, a.subscribers)
	a.mu.Unlock()

	if srv := a.server(); srv != nil {
		srv.log(log.ValueChange(srv.name, a.Path(), v))
	}

	for _, sub := range subs {
		a.notify(sub)
	}
}

// Subscribe adds a subscriber for change notifications. Subscribers are
// invoked in registration order and cannot be removed.
func (a *DataAttribute) Subscribe(sub AttributeSubscriber) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, sub)
}

// notify invokes a single subscriber, recovering a panic so one failing
// subscriber cannot starve the others.
func (a *DataAttribute) notify(sub AttributeSubscriber) {
	defer func() {
		if rec := recover(); rec != nil {
			if srv := a.server(); srv != nil {
				srv.log(log.ReportFailed(srv.name, "", fmt.Sprintf("subscriber panic on %s: %v", a.Path(), rec)))
			}
		}
	}()
	sub.OnAttributeChanged(a)
}

// attachDataset records dataset membership, keeping the slice sorted by
// dataset reference. Duplicate members attach once.
func (a *DataAttribute) attachDataset(ds *Dataset) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.datasets {
		if existing == ds {
			return
		}
	}

	// Build a fresh slice so writers holding an older snapshot never see
	// a partially shifted backing array.
	i := sort.Search(len(a.datasets), func(i int) bool {
		return a.datasets[i].ref >= ds.ref
	})
	updated := make([]*Dataset, 0, len(a.datasets)+1)
	updated = append(updated, a.datasets[:i]...)
	updated = append(updated, ds)
	updated = append(updated, a.datasets[i:]...)
	a.datasets = updated
}

// server walks the parent chain to the owning server.
func (a *DataAttribute) server() *Server {
	return a.parent.node.device.server
}
