// Package walker provides the traversal primitive underlying every pass of
// the canonicalization pipeline.
//
// Traversal is a deterministic post-order walk: object properties are
// visited in sorted name order, followed by additionalProperties; array
// items are visited before the array's AfterVisit hook fires.
//
// # Quick Start
//
// Collect the location of every object node in a root:
//
//	ctx := walker.NewContext("list_servers_response")
//	var locations []schema.Location
//	err := walker.Walk(root, ctx.Track(walker.Hooks{
//	    AfterVisit: func(n *schema.Node) error {
//	        if n.Kind() == schema.KindObject {
//	            locations = append(locations, ctx.Location())
//	        }
//	        return nil
//	    },
//	}))
//
// # Flow Control
//
// BeforeVisit returns an [Action]:
//
//   - [Continue]: visit children and siblings normally
//   - [SkipChildren]: skip the node's children; AfterVisit still fires
//   - [Stop]: end the walk immediately without error
//
// AfterVisit returns an error; a non-nil error aborts the walk and is
// returned unchanged to the caller.
//
// # Location tracking
//
// The walker keeps no naming state. A [Context] owned by the caller holds
// an explicit location stack and is advanced by the property hooks that
// [Context.Track] installs, so the walker stays reentrant.
//
// # Safety
//
// Inputs are expected to be acyclic. A node revisited on the active path
// yields an [oaserrors.ReferenceError] with IsCircular set, and nesting
// beyond the configured depth yields an [oaserrors.ResourceLimitError].
package walker
