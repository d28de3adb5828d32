package deduplicator

import (
	"fmt"
	"slices"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/schemautil"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// Occurrence aggregates every sighting of one object shape.
type Occurrence struct {
	// Hash is the structural hash shared by all sightings.
	Hash schema.Hash
	// Count is the number of sightings.
	Count int
	// Complexity is the node count of the shape.
	Complexity int
	// DirectChildren is the number of properties of the shape.
	DirectChildren int
	// Locations lists where the shape was seen, in walk order.
	Locations []schema.Location
	// Name is the allocated component name, empty until named.
	Name string
	// Description is the pinned description, if any.
	Description string
	// Pinned is true when the name came from the naming file.
	Pinned bool

	representative *schema.Node
}

// MaxDepth returns the depth of the deepest location.
func (o *Occurrence) MaxDepth() int {
	depth := 0
	for _, loc := range o.Locations {
		depth = max(depth, loc.Depth())
	}
	return depth
}

// NestedLocations returns the locations below a root, in walk order.
func (o *Occurrence) NestedLocations() []schema.Location {
	var out []schema.Location
	for _, loc := range o.Locations {
		if loc.Depth() > 1 {
			out = append(out, loc)
		}
	}
	return out
}

// ShortestNestedLocation returns the first of the shortest locations below a
// root, or the first location when the shape only occurs as a root.
func (o *Occurrence) ShortestNestedLocation() schema.Location {
	nested := o.NestedLocations()
	if len(nested) == 0 {
		if len(o.Locations) == 0 {
			return nil
		}
		return o.Locations[0].Clone()
	}
	shortest := slices.MinFunc(nested, func(a, b schema.Location) int {
		return a.Depth() - b.Depth()
	})
	return shortest.Clone()
}

// Index holds the occurrences of a registry keyed by hash, in order of first
// sighting.
type Index struct {
	order  []schema.Hash
	byHash map[schema.Hash]*Occurrence
}

func newIndex() *Index {
	return &Index{byHash: make(map[schema.Hash]*Occurrence)}
}

// Len returns the number of distinct shapes.
func (ix *Index) Len() int { return len(ix.order) }

// Get returns the occurrence for a hash.
func (ix *Index) Get(h schema.Hash) (*Occurrence, bool) {
	occ, ok := ix.byHash[h]
	return occ, ok
}

// Occurrences returns every occurrence in order of first sighting.
func (ix *Index) Occurrences() []*Occurrence {
	out := make([]*Occurrence, len(ix.order))
	for i, h := range ix.order {
		out[i] = ix.byHash[h]
	}
	return out
}

// Locations returns the locations of every indexed shape.
func (ix *Index) Locations() []schema.Location {
	var out []schema.Location
	for _, h := range ix.order {
		out = append(out, ix.byHash[h].Locations...)
	}
	return out
}

// record adds one sighting. Nodes sharing a hash must be equivalent;
// anything else is a hash collision and aborts the run.
func (ix *Index) record(node *schema.Node, loc schema.Location) error {
	h, complexity, ok := node.Annotation()
	if !ok {
		return &oaserrors.ExtractionError{Path: loc.String(), Message: "node was not hashed"}
	}
	obj := node.Type.(*schema.Object)
	occ, found := ix.byHash[h]
	if !found {
		occ = &Occurrence{Hash: h, representative: node}
		ix.byHash[h] = occ
		ix.order = append(ix.order, h)
	} else if !schemautil.Equivalent(occ.representative, node) {
		return &oaserrors.ExtractionError{
			Path:    loc.String(),
			Hash:    h.String(),
			Message: fmt.Sprintf("hash collision with %s", occ.Locations[0]),
		}
	}
	occ.Count++
	occ.Complexity = complexity
	occ.DirectChildren = len(obj.Properties)
	occ.Locations = append(occ.Locations, loc)
	return nil
}

// BuildIndex walks every root of an annotated registry and records each
// object node.
func BuildIndex(reg *schema.Registry, w *walker.Walker) (*Index, error) {
	ix := newIndex()
	err := w.WalkRegistry(reg, func(_ string, ctx *walker.Context) walker.Hooks {
		return ctx.Track(walker.Hooks{AfterVisit: func(node *schema.Node) error {
			if node.Kind() != schema.KindObject {
				return nil
			}
			return ix.record(node, ctx.Location())
		}})
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}
