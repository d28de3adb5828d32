// Package schema defines the in-memory model that every pass of the
// canonicalization pipeline operates on.
//
// A [Node] carries the free-text fields shared by all kinds (description,
// title, example) plus nullability, and exactly one [Type] variant. The
// variant set is closed: [String], [Integer], [Number], [Boolean], [Array],
// [Object] and [Ref]. Passes switch over the variant exhaustively instead of
// branching on a type string.
//
// A [Registry] owns the root nodes by component id. Replacing an occurrence
// with a reference is a single in-place overwrite of the occurrence node, so
// parents never need to be re-linked.
//
// Transient annotations (structural hash and complexity) live in unexported
// fields. They are set by the hashing pass, read by later passes, cleared by
// the stripper, and never serialized.
package schema
