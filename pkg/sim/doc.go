// Package sim drives simulated sensor drift against a model tree.
//
// The simulator is an external producer: it calls SetValue on its own
// schedule and the reporting chain does the rest. It is not part of the
// core model and the core never schedules anything itself.
//
// Each channel performs a bounded random walk around its configured
// range, rounded to a fixed precision so that most ticks actually change
// the value (and unchanged ticks exercise the no-op write path).
package sim
