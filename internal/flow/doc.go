// Package flow runs dependent batches of work as a tree of producers.
//
// A Producer is a resumable script: each Resume either hands back a
// unit of work to watch, spawns child producers, or reports that it is
// exhausted. The Executor polls every tracked producer from a single
// goroutine, resuming each one whenever the thing it last yielded is
// ready. Dependencies between batches are expressed purely by where a
// yield sits in its producer, and fan-out by spawning children; the
// executor never needs to know the shape of the tree up front.
package flow
