package schema

import "sort"

// Registry maps component ids to owned root nodes.
//
// Roots are initially the per-operation request and response bodies; the
// extraction pass appends shared components. Nodes are owned: a node must
// not be reachable from two roots, which is why extraction stores deep
// copies.
type Registry struct {
	roots map[string]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{roots: make(map[string]*Node)}
}

// Set stores node under id, replacing any existing root.
func (r *Registry) Set(id string, node *Node) {
	if r.roots == nil {
		r.roots = make(map[string]*Node)
	}
	r.roots[id] = node
}

// Get returns the root stored under id.
func (r *Registry) Get(id string) (*Node, bool) {
	n, ok := r.roots[id]
	return n, ok
}

// Has reports whether id is taken.
func (r *Registry) Has(id string) bool {
	_, ok := r.roots[id]
	return ok
}

// Len returns the number of roots.
func (r *Registry) Len() int { return len(r.roots) }

// IDs returns every component id in sorted order. All passes iterate in this
// order so location stacks and first-sighting order are reproducible.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.roots))
	for id := range r.roots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup resolves a location to a node. Array nodes met on the way are
// stepped through transparently, mirroring how locations are recorded.
func (r *Registry) Lookup(loc Location) (*Node, bool) {
	if len(loc) == 0 {
		return nil, false
	}
	node, ok := r.roots[loc[0]]
	if !ok {
		return nil, false
	}
	for _, segment := range loc[1:] {
		node = throughArrays(node)
		obj, isObj := node.Type.(*Object)
		if !isObj {
			return nil, false
		}
		child, found := obj.Properties[segment]
		if !found {
			return nil, false
		}
		node = child
	}
	return node, true
}

func throughArrays(node *Node) *Node {
	for {
		arr, ok := node.Type.(*Array)
		if !ok || arr.Items == nil {
			return node
		}
		node = arr.Items
	}
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for id, node := range r.roots {
		out.roots[id] = node.DeepCopy()
	}
	return out
}
