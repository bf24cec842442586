package model

import "errors"

// Model errors.
var (
	// ErrDuplicateName is returned when adding a child whose name is
	// already taken at that level of the tree.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrPathNotFound is returned by Resolve for malformed paths and for
	// paths whose segments do not exist. Use errors.As with *PathError to
	// recover the first missing segment.
	ErrPathNotFound = errors.New("path not found")

	// ErrEmptyDataset is returned when creating a dataset with no members.
	ErrEmptyDataset = errors.New("dataset has no members")

	// ErrDuplicateDataset is returned when a dataset name is already
	// registered on the logical node.
	ErrDuplicateDataset = errors.New("duplicate dataset name")

	// ErrDatasetNotFound is returned when creating a report bound to a
	// dataset that is not registered on the logical node.
	ErrDatasetNotFound = errors.New("dataset not found")
)
