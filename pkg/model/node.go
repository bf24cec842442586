package model

import (
	"fmt"
	"sync"
)

// LogicalNode is the smallest functional unit of the model, e.g. MMXU
// (measurement) or XCBR (circuit breaker). Besides data objects it owns
// the datasets and report control blocks configured on it.
type LogicalNode struct {
	mu sync.RWMutex

	name   string
	device *LogicalDevice // non-owning back-pointer

	objects     map[string]*DataObject
	objectOrder []string

	datasets     map[string]*Dataset
	datasetOrder []string

	reports     map[string]*ReportControlBlock
	reportOrder []string
}

func newLogicalNode(name string, device *LogicalDevice) *LogicalNode {
	return &LogicalNode{
		name:     name,
		device:   device,
		objects:  make(map[string]*DataObject),
		datasets: make(map[string]*Dataset),
		reports:  make(map[string]*ReportControlBlock),
	}
}

// Name returns the logical node name.
func (n *LogicalNode) Name() string {
	return n.name
}

// Device returns the owning logical device.
func (n *LogicalNode) Device() *LogicalDevice {
	return n.device
}

// Path returns the full logical node path (LD/LN).
func (n *LogicalNode) Path() string {
	return n.device.Path() + "/" + n.name
}

// AddDataObject creates a data object under this node.
// Returns ErrDuplicateName if the name is taken.
func (n *LogicalNode) AddDataObject(name string) (*DataObject, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.objects[name]; exists {
		return nil, fmt.Errorf("%w: data object %q on %s", ErrDuplicateName, name, n.Path())
	}

	obj := newDataObject(name, n)
	n.objects[name] = obj
	n.objectOrder = append(n.objectOrder, name)
	return obj, nil
}

// DataObject returns a data object by name.
func (n *LogicalNode) DataObject(name string) (*DataObject, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	obj, ok := n.objects[name]
	return obj, ok
}

// DataObjects returns all data objects in insertion order.
func (n *LogicalNode) DataObjects() []*DataObject {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]*DataObject, 0, len(n.objectOrder))
	for _, name := range n.objectOrder {
		result = append(result, n.objects[name])
	}
	return result
}

// CreateDataset registers a dataset on this node. Members are stored in
// the exact order given; membership is immutable afterwards. Duplicate
// members are permitted but notify only once per change.
// Returns ErrEmptyDataset for an empty member list and ErrDuplicateDataset
// if the name is already registered on this node.
func (n *LogicalNode) CreateDataset(name string, members []*DataAttribute) (*Dataset, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %q on %s", ErrEmptyDataset, name, n.Path())
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.datasets[name]; exists {
		return nil, fmt.Errorf("%w: %q on %s", ErrDuplicateDataset, name, n.Path())
	}

	ds := newDataset(name, n, members)
	n.datasets[name] = ds
	n.datasetOrder = append(n.datasetOrder, name)

	// Register membership so writers know which dataset locks to take.
	for _, member := range ds.members {
		member.attachDataset(ds)
	}

	return ds, nil
}

// Dataset returns a dataset by name.
func (n *LogicalNode) Dataset(name string) (*Dataset, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ds, ok := n.datasets[name]
	return ds, ok
}

// Datasets returns all datasets in registration order.
func (n *LogicalNode) Datasets() []*Dataset {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]*Dataset, 0, len(n.datasetOrder))
	for _, name := range n.datasetOrder {
		result = append(result, n.datasets[name])
	}
	return result
}

// CreateReport creates a report control block bound to a dataset that was
// previously registered on this node. The block subscribes to every
// distinct dataset member at creation time and starts disabled.
// Returns ErrDatasetNotFound if the dataset is unknown to this node and
// ErrDuplicateName if the block name is taken.
func (n *LogicalNode) CreateReport(name, datasetName, reportID string) (*ReportControlBlock, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ds, exists := n.datasets[datasetName]
	if !exists {
		return nil, fmt.Errorf("%w: %q on %s", ErrDatasetNotFound, datasetName, n.Path())
	}
	if _, exists := n.reports[name]; exists {
		return nil, fmt.Errorf("%w: report %q on %s", ErrDuplicateName, name, n.Path())
	}

	rcb := newReportControlBlock(name, reportID, ds, n)
	n.reports[name] = rcb
	n.reportOrder = append(n.reportOrder, name)

	// Permanent subscription: once per distinct member, so a duplicated
	// member cannot double-trigger.
	seen := make(map[*DataAttribute]struct{}, len(ds.members))
	for _, member := range ds.members {
		if _, dup := seen[member]; dup {
			continue
		}
		seen[member] = struct{}{}
		member.Subscribe(rcb)
	}

	return rcb, nil
}

// Report returns a report control block by name.
func (n *LogicalNode) Report(name string) (*ReportControlBlock, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	rcb, ok := n.reports[name]
	return rcb, ok
}

// Reports returns all report control blocks in creation order.
func (n *LogicalNode) Reports() []*ReportControlBlock {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]*ReportControlBlock, 0, len(n.reportOrder))
	for _, name := range n.reportOrder {
		result = append(result, n.reports[name])
	}
	return result
}
