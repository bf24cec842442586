package model

import (
	"fmt"
	"sync"

	"github.com/ied-protocol/ied-go/pkg/log"
	"github.com/ied-protocol/ied-go/pkg/report"
)

// ReportControlBlock binds a dataset to a sink. Once enabled it delivers
// a report with a full dataset snapshot whenever a member changes.
//
// The block subscribes to every distinct dataset member when it is created
// and stays subscribed for its whole lifetime; Enable and Disable only
// gate delivery. There is no destroyed state: blocks are not removable.
//
// Delivery is best-effort. A sink error or panic is logged with the report
// ID and never disables the block or blocks other subscribers; the missed
// report is not replayed.
type ReportControlBlock struct {
	mu sync.RWMutex

	name     string
	reportID string
	dataset  *Dataset
	node     *LogicalNode // non-owning back-pointer

	enabled bool
	sink    report.Sink
}

func newReportControlBlock(name, reportID string, dataset *Dataset, node *LogicalNode) *ReportControlBlock {
	return &ReportControlBlock{
		name:     name,
		reportID: reportID,
		dataset:  dataset,
		node:     node,
	}
}

// Name returns the block name.
func (r *ReportControlBlock) Name() string {
	return r.name
}

// ReportID returns the report ID carried by every delivered report.
func (r *ReportControlBlock) ReportID() string {
	return r.reportID
}

// Dataset returns the bound dataset.
func (r *ReportControlBlock) Dataset() *Dataset {
	return r.dataset
}

// Node returns the logical node the block is registered on.
func (r *ReportControlBlock) Node() *LogicalNode {
	return r.node
}

// Enabled returns whether the block currently delivers reports.
func (r *ReportControlBlock) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// Enable registers the sink and starts delivery. Enable is idempotent:
// re-enabling replaces the sink.
func (r *ReportControlBlock) Enable(sink report.Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = sink
	r.enabled = true
}

// Disable stops delivery. The sink reference is kept but not invoked
// while disabled; the member subscriptions stay wired.
func (r *ReportControlBlock) Disable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
}

// OnAttributeChanged implements AttributeSubscriber. It is invoked
// synchronously by a member attribute after its value changed. While
// enabled it snapshots the full dataset and delivers one report with
// reason data-change; while disabled it is a no-op.
func (r *ReportControlBlock) OnAttributeChanged(*DataAttribute) {
	r.mu.RLock()
	enabled := r.enabled
	sink := r.sink
	r.mu.RUnlock()

	if !enabled || sink == nil {
		return
	}

	r.deliver(sink, r.dataset.snapshot())
}

// deliver pushes one report to the sink, containing failures locally.
func (r *ReportControlBlock) deliver(sink report.Sink, data map[string]any) {
	srv := r.node.device.server

	defer func() {
		if rec := recover(); rec != nil {
			srv.log(log.ReportFailed(srv.name, r.reportID, fmt.Sprintf("sink panic: %v", rec)))
		}
	}()

	if err := sink(r.reportID, data, report.ReasonDataChange); err != nil {
		srv.log(log.ReportFailed(srv.name, r.reportID, err.Error()))
		return
	}

	srv.log(log.ReportDelivered(srv.name, r.reportID, r.dataset.Size()))
}

// Compile-time interface satisfaction check.
var _ AttributeSubscriber = (*ReportControlBlock)(nil)
