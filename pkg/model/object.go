package model

import (
	"fmt"
	"sync"
)

// DataObject groups the data attributes of a logical node function,
// e.g. PhV (phase voltage) or Pos (switch position).
type DataObject struct {
	mu sync.RWMutex

	name string
	node *LogicalNode // non-owning back-pointer

	// Attributes by name, with insertion order preserved for directory
	// listing.
	attributes map[string]*DataAttribute
	order      []string
}

func newDataObject(name string, node *LogicalNode) *DataObject {
	return &DataObject{
		name:       name,
		node:       node,
		attributes: make(map[string]*DataAttribute),
	}
}

// Name returns the data object name.
func (o *DataObject) Name() string {
	return o.name
}

// Node returns the owning logical node.
func (o *DataObject) Node() *LogicalNode {
	return o.node
}

// Path returns the full data object path (LD/LN.DO).
func (o *DataObject) Path() string {
	return o.node.Path() + "." + o.name
}

// AddAttribute creates a data attribute with the given initial value.
// The attribute name may itself be dotted (e.g. "phsA.cVal.mag.f"); it is
// treated as a single name. Returns ErrDuplicateName if the name is taken.
func (o *DataObject) AddAttribute(name string, value any) (*DataAttribute, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.attributes[name]; exists {
		return nil, fmt.Errorf("%w: attribute %q on %s", ErrDuplicateName, name, o.Path())
	}

	attr := newDataAttribute(name, value, o)
	o.attributes[name] = attr
	o.order = append(o.order, name)
	return attr, nil
}

// Attribute returns an attribute by name.
func (o *DataObject) Attribute(name string) (*DataAttribute, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	attr, ok := o.attributes[name]
	return attr, ok
}

// Attributes returns all attributes in insertion order.
func (o *DataObject) Attributes() []*DataAttribute {
	o.mu.RLock()
	defer o.mu.RUnlock()

	result := make([]*DataAttribute, 0, len(o.order))
	for _, name := range o.order {
		result = append(result, o.attributes[name])
	}
	return result
}
