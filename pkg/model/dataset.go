package model

import "sync"

// Dataset is a named, ordered grouping of attribute references registered
// on a logical node. It is the unit of report content: a report control
// block bound to a dataset delivers a snapshot of every member whenever
// one of them changes. Membership is immutable after creation.
type Dataset struct {
	// mu serializes member writes against report snapshots. Writers take
	// the locks of every dataset containing the written attribute in
	// ascending ref order (see DataAttribute.SetValue); snapshot runs on
	// the writer's goroutine under those locks and must not re-lock.
	mu sync.Mutex

	name string
	node *LogicalNode // non-owning back-pointer

	// members in the exact order given at creation; references are shared,
	// non-owning.
	members []*DataAttribute

	// ref is the dataset reference (LD/LN$name), used as the global lock
	// ordering key.
	ref string
}

func newDataset(name string, node *LogicalNode, members []*DataAttribute) *Dataset {
	ds := &Dataset{
		name:    name,
		node:    node,
		members: make([]*DataAttribute, len(members)),
		ref:     node.Path() + "$" + name,
	}
	copy(ds.members, members)
	return ds
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return d.name
}

// Node returns the logical node the dataset is registered on.
func (d *Dataset) Node() *LogicalNode {
	return d.node
}

// Ref returns the dataset reference (LD/LN$name).
func (d *Dataset) Ref() string {
	return d.ref
}

// Members returns the member attributes in dataset order.
func (d *Dataset) Members() []*DataAttribute {
	result := make([]*DataAttribute, len(d.members))
	copy(result, d.members)
	return result
}

// Size returns the number of members, counting duplicates.
func (d *Dataset) Size() int {
	return len(d.members)
}

// snapshot maps every member's full path to its current value. It is
// called from the member-change notification path, where the writing
// goroutine already holds mu, so no member can change mid-snapshot.
func (d *Dataset) snapshot() map[string]any {
	data := make(map[string]any, len(d.members))
	for _, member := range d.members {
		data[member.Path()] = member.Value()
	}
	return data
}
