// Package dataflow implements the dependency-tracking and lazy-recomputation
// engine. A Type holds the immutable attribute specifications and the
// validated dependency graph shared by every instance; an Instance holds the
// per-object cached values and dirty flags.
//
// Writes go through the set protocol: the new value is stored and every
// attribute transitively reachable through reverse dependency edges is marked
// dirty. No recomputation happens on write. Reads go through the get
// protocol: a clean attribute returns its cached value, a dirty determinant
// first resolves its dependencies recursively, then invokes its updater and
// caches the result. The dirty flag gates re-entry, so each attribute is
// recomputed at most once per invalidation, in dependency order, without
// ever materializing a topological sort.
package dataflow
