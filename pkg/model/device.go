package model

import (
	"fmt"
	"sync"
)

// LogicalDevice is a functional partition of the server, e.g. Protection
// or Measurement.
type LogicalDevice struct {
	mu sync.RWMutex

	name   string
	server *Server // non-owning back-pointer

	nodes     map[string]*LogicalNode
	nodeOrder []string
}

func newLogicalDevice(name string, server *Server) *LogicalDevice {
	return &LogicalDevice{
		name:   name,
		server: server,
		nodes:  make(map[string]*LogicalNode),
	}
}

// Name returns the logical device name.
func (d *LogicalDevice) Name() string {
	return d.name
}

// Server returns the owning server.
func (d *LogicalDevice) Server() *Server {
	return d.server
}

// Path returns the logical device path. The logical device is the root
// segment of attribute paths.
func (d *LogicalDevice) Path() string {
	return d.name
}

// AddLogicalNode creates a logical node under this device.
// Returns ErrDuplicateName if the name is taken.
func (d *LogicalDevice) AddLogicalNode(name string) (*LogicalNode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.nodes[name]; exists {
		return nil, fmt.Errorf("%w: logical node %q on %s", ErrDuplicateName, name, d.name)
	}

	node := newLogicalNode(name, d)
	d.nodes[name] = node
	d.nodeOrder = append(d.nodeOrder, name)
	return node, nil
}

// LogicalNode returns a logical node by name.
func (d *LogicalDevice) LogicalNode(name string) (*LogicalNode, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	node, ok := d.nodes[name]
	return node, ok
}

// LogicalNodes returns all logical nodes in insertion order.
func (d *LogicalDevice) LogicalNodes() []*LogicalNode {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]*LogicalNode, 0, len(d.nodeOrder))
	for _, name := range d.nodeOrder {
		result = append(result, d.nodes[name])
	}
	return result
}
