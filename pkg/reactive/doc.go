// Package reactive implements the engine's value-typed reactive primitives:
// Signal, Computed and Batch. The entity stores and the selection service
// are built on top of signals declared here.
//
// The engine is single-threaded and cooperative (every mutation happens on
// the scheduler thread; see package scheduler), so this package does not
// attempt cross-goroutine dependency tracking. A single tracking stack is
// enough and keeps cycle detection simple.
package reactive
