// Package model implements the simulated substation automation data model.
//
// # Model Hierarchy
//
// The model uses the 4-level naming hierarchy of IEC 61850:
//
//	Server > LogicalDevice > LogicalNode > DataObject > DataAttribute
//
// A Server represents the physical device (IED). Logical devices partition
// it by function (e.g. Protection, Measurement). Logical nodes are the
// smallest functional units (MMXU measurement, XCBR breaker). Data objects
// group the data of a node (PhV phase voltage, Pos switch position), and
// data attributes are the leaves holding actual values.
//
//	Server (MyIED)
//	└── LogicalDevice "Protection"
//	    └── LogicalNode "MMXU1"
//	        ├── DataObject "PhV"
//	        │   ├── DataAttribute "phsA.cVal.mag.f" = 220.0
//	        │   └── DataAttribute "phsB.cVal.mag.f" = 219.5
//	        ├── Dataset "dsMeas" = [phsA, phsB]
//	        └── ReportControlBlock "urcb01" -> dsMeas
//
// Each level owns its children exclusively; parent back-pointers are
// non-owning and exist only for path reconstruction.
//
// # Addressing
//
// Attributes are addressed by path:
//
//	LogicalDevice/LogicalNode.DataObject.DataAttribute
//
// Exactly one '/' separates the logical device from the rest; the first '.'
// separates node from object; the remainder is the attribute name verbatim
// and may itself contain dots (phsA.cVal.mag.f is one attribute name).
//
// # Reporting
//
// Datasets are named, ordered, immutable groupings of attributes registered
// on a logical node. Report control blocks bind a dataset to a sink: when
// any member changes, an enabled block snapshots the whole dataset and
// pushes a report. Subscriptions are wired at block creation and permanent;
// Enable/Disable only gates delivery.
//
// # Concurrency
//
// Writes to distinct attributes may proceed concurrently. A write and a
// report snapshot over the same dataset are mutually exclusive: writers
// acquire the locks of every dataset containing the attribute in ascending
// dataset-reference order before applying the change, so overlapping
// writers cannot deadlock and snapshots never observe partial writes.
// Attribute writes and the resulting report deliveries form one
// synchronous unit of work; SetValue returns after all sinks have run.
package model
