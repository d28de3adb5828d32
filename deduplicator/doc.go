// Package deduplicator hoists structurally identical object schemas into
// shared, named components.
//
// Given a registry of independently authored request and response schemas,
// the deduplicator finds object shapes that occur in several places, moves
// one copy of each into the registry under a stable name, and replaces every
// occurrence with a reference to it. Names either come from a naming file
// written by an earlier run (pinned mode) or are derived from the property
// names the shape was found under (fresh mode).
//
// # Quick Start
//
//	result, err := deduplicator.DeduplicateWithOptions(
//		deduplicator.WithParsed(*parseResult),
//		deduplicator.WithPinnedFile("resources/schema_types.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = schematypes.Save("resources/schema_types.json", result.Components)
//
// # Pipeline
//
// A run is a fixed sequence of passes over the whole registry:
//
//  1. Normalize: canonicalize local variants ([github.com/MaximilianKoestler/hcloud-openapi/fixer]).
//  2. Hash: annotate every node with its structural hash and complexity.
//  3. Index: aggregate object occurrences by hash, with their locations.
//  4. Select and name: pick the occurrences worth sharing and name them.
//  5. Extract: copy each named shape into the registry once, merge the
//     descriptions of later occurrences into it, and replace every
//     occurrence with a reference.
//  6. Audit: report components that ended up referenced only once.
//  7. Strip: remove the transient hash annotations.
//
// Any error aborts the run. Callers persist Result.Components only after a
// successful run, so the naming file never reflects a partial transform.
//
// # Selection
//
// An occurrence is extracted when it appears at least MinCount times, has at
// least MinComplexity nodes and MinDirectChildren properties, and at least
// one of its locations is below a root. In pinned mode, a shape found at a
// pinned path is extracted regardless of the thresholds, and shapes without a
// pin are never extracted.
package deduplicator
