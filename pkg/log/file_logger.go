package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends model events to a CBOR journal file. The journal is
// a flat stream of Event records readable with Reader; there is no index
// and no rotation. Safe for concurrent use.
type FileLogger struct {
	mu sync.Mutex

	path    string
	file    *os.File
	encoder *cbor.Encoder
	closed  bool
}

// NewFileLogger opens (or creates, mode 0644) the journal at path for
// appending. An existing journal is extended, so one file can span
// several runs of the simulation.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		path:    path,
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Path returns the journal file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Log appends one event to the journal. Events that fail validation
// (no timestamp, unknown category) are dropped, as are events arriving
// after Close; logging never disrupts the write that produced the event.
func (l *FileLogger) Log(event Event) {
	if event.validate() != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	_ = l.encoder.Encode(event)
}

// Close closes the journal file. Close is idempotent; events logged
// afterwards are silently dropped.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
