package client

import (
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ied-protocol/ied-go/pkg/log"
	"github.com/ied-protocol/ied-go/pkg/model"
	"github.com/ied-protocol/ied-go/pkg/report"
)

// Client errors.
var (
	// ErrNotConnected is returned for operations before an association
	// has been established with Connect.
	ErrNotConnected = errors.New("no association established")

	// ErrAlreadyConnected is returned by Connect while an association
	// is active. The client supports a single simulated association.
	ErrAlreadyConnected = errors.New("association already established")

	// ErrRCBNotFound is returned when a report control block address
	// (logical device, logical node, block name) cannot be resolved.
	ErrRCBNotFound = errors.New("report control block not found")
)

// Client is the client side of a single simulated association.
// It is safe for concurrent use.
type Client struct {
	mu sync.RWMutex

	server        *model.Server
	associationID string
	logger        log.Logger
}

// NewClient creates a disconnected client.
func NewClient() *Client {
	return &Client{logger: log.NoopLogger{}}
}

// SetLogger sets the event logger. Passing nil disables logging.
func (c *Client) SetLogger(l log.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = log.OrNoop(l)
}

// Connect establishes the association with a server and assigns a fresh
// association ID. Only one association may be active at a time.
func (c *Client) Connect(server *model.Server) error {
	if server == nil {
		return fmt.Errorf("connect: server must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.server != nil {
		return ErrAlreadyConnected
	}

	c.server = server
	c.associationID = uuid.NewString()
	c.logger.Log(log.AssociationOpened(server.Name(), c.associationID))
	return nil
}

// Close releases the association. Enabled report control blocks keep
// their sinks; disable them explicitly if delivery should stop.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.server == nil {
		return ErrNotConnected
	}

	c.logger.Log(log.AssociationClosed(c.server.Name(), c.associationID))
	c.server = nil
	c.associationID = ""
	return nil
}

// Connected returns whether an association is active.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.server != nil
}

// AssociationID returns the ID of the active association, or "" when
// disconnected.
func (c *Client) AssociationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.associationID
}

// association returns the connected server or ErrNotConnected.
func (c *Client) association() (*model.Server, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.server == nil {
		return nil, ErrNotConnected
	}
	return c.server, nil
}

// Read resolves a path and returns the attribute's value and timestamp.
// Fails with ErrNotConnected before Connect and with a path error (see
// model.PathError) if resolution fails.
func (c *Client) Read(path string) (any, time.Time, error) {
	server, err := c.association()
	if err != nil {
		return nil, time.Time{}, err
	}

	attr, err := server.Resolve(path)
	if err != nil {
		return nil, time.Time{}, err
	}

	value, timestamp, _ := attr.Get()
	return value, timestamp, nil
}

// ReadQuality resolves a path and returns the attribute's quality.
func (c *Client) ReadQuality(path string) (model.Quality, error) {
	server, err := c.association()
	if err != nil {
		return model.QualityInvalid, err
	}

	attr, err := server.Resolve(path)
	if err != nil {
		return model.QualityInvalid, err
	}
	return attr.Quality(), nil
}

// Directory returns the server's directory listing for browsing.
func (c *Client) Directory() (iter.Seq[model.DirEntry], error) {
	server, err := c.association()
	if err != nil {
		return nil, err
	}
	return server.Directory(), nil
}

// EnableReport locates a report control block by logical device, logical
// node, and block name, then enables it with the given sink. The sink is
// invoked on every later dataset member change until DisableReport.
// Fails with ErrRCBNotFound if any address segment is missing.
func (c *Client) EnableReport(ld, ln, rcbName string, sink report.Sink) error {
	rcb, err := c.lookupRCB(ld, ln, rcbName)
	if err != nil {
		return err
	}
	rcb.Enable(sink)
	return nil
}

// DisableReport disables a report control block. The subscription stays
// wired; re-enabling resumes delivery.
func (c *Client) DisableReport(ld, ln, rcbName string) error {
	rcb, err := c.lookupRCB(ld, ln, rcbName)
	if err != nil {
		return err
	}
	rcb.Disable()
	return nil
}

// lookupRCB resolves the (LD, LN, name) address of a report control block.
func (c *Client) lookupRCB(ld, ln, rcbName string) (*model.ReportControlBlock, error) {
	server, err := c.association()
	if err != nil {
		return nil, err
	}

	device, ok := server.LogicalDevice(ld)
	if !ok {
		return nil, fmt.Errorf("%w: logical device %q", ErrRCBNotFound, ld)
	}
	node, ok := device.LogicalNode(ln)
	if !ok {
		return nil, fmt.Errorf("%w: logical node %q on %s", ErrRCBNotFound, ln, ld)
	}
	rcb, ok := node.Report(rcbName)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrRCBNotFound, rcbName, node.Path())
	}
	return rcb, nil
}
