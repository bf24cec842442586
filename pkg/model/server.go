package model

import (
	"fmt"
	"iter"
	"sync"

	"github.com/ied-protocol/ied-go/pkg/log"
)

// Server is the root of the model tree, representing one simulated IED.
// It is a plain owned aggregate: construct it, build the tree underneath,
// and hand it to whatever gateway or producer needs it. There is no
// process-wide instance.
type Server struct {
	mu sync.RWMutex

	name   string
	logger log.Logger

	devices     map[string]*LogicalDevice
	deviceOrder []string
}

// NewServer creates an empty server with the given name.
func NewServer(name string) *Server {
	return &Server{
		name:    name,
		logger:  log.NoopLogger{},
		devices: make(map[string]*LogicalDevice),
	}
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.name
}

// SetLogger sets the event logger for the whole tree.
// Passing nil disables logging.
func (s *Server) SetLogger(l log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = log.OrNoop(l)
}

// log emits an event through the configured logger.
func (s *Server) log(event log.Event) {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	l.Log(event)
}

// AddLogicalDevice creates a logical device under this server.
// Returns ErrDuplicateName if the name is taken.
func (s *Server) AddLogicalDevice(name string) (*LogicalDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.devices[name]; exists {
		return nil, fmt.Errorf("%w: logical device %q on server %s", ErrDuplicateName, name, s.name)
	}

	device := newLogicalDevice(name, s)
	s.devices[name] = device
	s.deviceOrder = append(s.deviceOrder, name)
	return device, nil
}

// LogicalDevice returns a logical device by name.
func (s *Server) LogicalDevice(name string) (*LogicalDevice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	device, ok := s.devices[name]
	return device, ok
}

// LogicalDevices returns all logical devices in insertion order.
func (s *Server) LogicalDevices() []*LogicalDevice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*LogicalDevice, 0, len(s.deviceOrder))
	for _, name := range s.deviceOrder {
		result = append(result, s.devices[name])
	}
	return result
}

// Resolve parses a path of the form LD/LN.DO.DA and returns the addressed
// attribute. The DA segment may itself contain dots and is matched
// verbatim. Malformed paths and paths with a missing segment fail with a
// *PathError wrapping ErrPathNotFound that names the first offending
// segment; Resolve never returns a partial result.
func (s *Server) Resolve(path string) (*DataAttribute, error) {
	parsed, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	device, ok := s.LogicalDevice(parsed.LogicalDevice)
	if !ok {
		return nil, &PathError{Path: path, Segment: parsed.LogicalDevice}
	}
	node, ok := device.LogicalNode(parsed.LogicalNode)
	if !ok {
		return nil, &PathError{Path: path, Segment: parsed.LogicalNode}
	}
	object, ok := node.DataObject(parsed.DataObject)
	if !ok {
		return nil, &PathError{Path: path, Segment: parsed.DataObject}
	}
	attr, ok := object.Attribute(parsed.DataAttribute)
	if !ok {
		return nil, &PathError{Path: path, Segment: parsed.DataAttribute}
	}
	return attr, nil
}

// Level identifies a directory entry's depth in the model tree.
type Level uint8

const (
	// LevelLogicalDevice is a logical device entry.
	LevelLogicalDevice Level = 0
	// LevelLogicalNode is a logical node entry.
	LevelLogicalNode Level = 1
	// LevelDataObject is a data object entry.
	LevelDataObject Level = 2
	// LevelDataAttribute is a data attribute entry.
	LevelDataAttribute Level = 3
)

// String returns the conventional level abbreviation.
func (l Level) String() string {
	switch l {
	case LevelLogicalDevice:
		return "LD"
	case LevelLogicalNode:
		return "LN"
	case LevelDataObject:
		return "DO"
	case LevelDataAttribute:
		return "DA"
	default:
		return "??"
	}
}

// DirEntry is one entry of a directory listing.
type DirEntry struct {
	// Level is the entry's depth in the tree.
	Level Level

	// Name is the entry's own name.
	Name string

	// Path is the full path down to this entry.
	Path string
}

// Directory returns a lazy, restartable sequence of directory entries in
// depth-first insertion order, mirroring the GetNameList browsing of the
// real protocol. Ranging over the sequence again restarts the walk.
func (s *Server) Directory() iter.Seq[DirEntry] {
	return func(yield func(DirEntry) bool) {
		for _, device := range s.LogicalDevices() {
			if !yield(DirEntry{Level: LevelLogicalDevice, Name: device.Name(), Path: device.Path()}) {
				return
			}
			for _, node := range device.LogicalNodes() {
				if !yield(DirEntry{Level: LevelLogicalNode, Name: node.Name(), Path: node.Path()}) {
					return
				}
				for _, object := range node.DataObjects() {
					if !yield(DirEntry{Level: LevelDataObject, Name: object.Name(), Path: object.Path()}) {
						return
					}
					for _, attr := range object.Attributes() {
						if !yield(DirEntry{Level: LevelDataAttribute, Name: attr.Name(), Path: attr.Path()}) {
							return
						}
					}
				}
			}
		}
	}
}
