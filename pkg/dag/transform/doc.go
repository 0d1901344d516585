// Package transform provides graph passes that prepare a map graph for layout.
//
// # Layer Assignment
//
// [AssignLayers] computes each node's depth as its shortest distance from a
// source node and records the order in which a breadth-first search discovers
// the nodes of each layer. For the trees built by the mind-map builder the
// only source is the root, so depth 0 is the organization, depth 1 the
// categories and depth 2 the records.
//
// # Cycle Detection
//
// [FindCycle] reports the first directed cycle found by a depth-first search
// in insertion order. The layout engine refuses cyclic input and uses the
// returned path in its error message.
//
// # Usage
//
//	if cyc := transform.FindCycle(g); cyc != nil {
//	    return fmt.Errorf("cycle: %v", cyc)
//	}
//	layering := transform.AssignLayers(g)
package transform
