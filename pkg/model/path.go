package model

import (
	"fmt"
	"strings"
)

// PathError reports a failed path resolution. Segment names the first
// path segment that is missing or malformed. PathError wraps
// ErrPathNotFound for errors.Is checks.
type PathError struct {
	// Path is the full path passed to Resolve.
	Path string

	// Segment is the first missing segment, empty for malformed paths.
	Segment string
}

// Error returns the error message.
func (e *PathError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("path %q: malformed, want LD/LN.DO.DA", e.Path)
	}
	return fmt.Sprintf("path %q: segment %q not found", e.Path, e.Segment)
}

// Unwrap makes errors.Is(err, ErrPathNotFound) succeed.
func (e *PathError) Unwrap() error {
	return ErrPathNotFound
}

// Path is a parsed attribute path.
type Path struct {
	LogicalDevice string
	LogicalNode   string
	DataObject    string
	DataAttribute string
}

// String reassembles the path in its canonical form.
func (p Path) String() string {
	return p.LogicalDevice + "/" + p.LogicalNode + "." + p.DataObject + "." + p.DataAttribute
}

// ParsePath parses the fixed four-segment path grammar
//
//	LogicalDevice/LogicalNode.DataObject.DataAttribute
//
// Exactly one '/' separates the logical device from the rest. The first
// '.' after it separates logical node from data object; the next '.'
// separates data object from data attribute. Anything after that belongs
// to the attribute name verbatim, so dotted attribute names like
// "phsA.cVal.mag.f" parse as one segment. Malformed paths fail with a
// *PathError wrapping ErrPathNotFound.
func ParsePath(path string) (Path, error) {
	ld, rest, ok := strings.Cut(path, "/")
	if !ok || ld == "" || strings.Contains(rest, "/") {
		return Path{}, &PathError{Path: path}
	}

	ln, rest, ok := strings.Cut(rest, ".")
	if !ok || ln == "" {
		return Path{}, &PathError{Path: path}
	}

	do, da, ok := strings.Cut(rest, ".")
	if !ok || do == "" || da == "" {
		return Path{}, &PathError{Path: path}
	}

	return Path{
		LogicalDevice: ld,
		LogicalNode:   ln,
		DataObject:    do,
		DataAttribute: da,
	}, nil
}
