package schemautil

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// SchemaHasher computes structural hashes and complexity scores.
//
// A node's hash covers its kind, nullability, enum, format, pattern,
// required set, property names, reference target, and the already computed
// hashes of its direct children. Description, title and example are
// ignored. Because children contribute only their hash, a full pass is
// linear in tree size.
type SchemaHasher struct {
	// OnMissingItems is called for every array node without items. Such
	// nodes are tolerated and scored with complexity 1.
	OnMissingItems func(loc schema.Location)

	walker *walker.Walker
}

// NewSchemaHasher creates a new SchemaHasher. The options configure the
// underlying walker.
func NewSchemaHasher(opts ...walker.Option) *SchemaHasher {
	return &SchemaHasher{walker: walker.New(opts...)}
}

// HashTree annotates every node below root in post-order. Locations passed
// to OnMissingItems are relative to root, which has the empty id.
func (h *SchemaHasher) HashTree(root *schema.Node) error {
	return h.HashRoot("", root)
}

// HashRoot annotates every node below the root stored under id.
func (h *SchemaHasher) HashRoot(id string, root *schema.Node) error {
	return h.walker.Walk(root, h.hooks(walker.NewContext(id)))
}

// HashRegistry annotates every root of reg.
func (h *SchemaHasher) HashRegistry(reg *schema.Registry) error {
	return h.walker.WalkRegistry(reg, func(_ string, ctx *walker.Context) walker.Hooks {
		return h.hooks(ctx)
	})
}

func (h *SchemaHasher) hooks(ctx *walker.Context) walker.Hooks {
	return ctx.Track(walker.Hooks{AfterVisit: func(node *schema.Node) error {
		sum, complexity, err := h.score(node, ctx)
		if err != nil {
			return err
		}
		node.Annotate(sum, complexity)
		return nil
	}})
}

// score computes the hash and complexity of node from its children's
// annotations.
func (h *SchemaHasher) score(node *schema.Node, ctx *walker.Context) (schema.Hash, int, error) {
	d := xxhash.New()
	writeString(d, "kind")
	writeString(d, node.Kind().String())
	if node.Nullable {
		writeString(d, "nullable")
	}

	complexity := 1
	switch t := node.Type.(type) {
	case *schema.String:
		writeString(d, "format")
		writeString(d, t.Format)
		writeString(d, "pattern")
		writeString(d, t.Pattern)
		if t.Enum != nil {
			writeString(d, "enum")
			for _, v := range t.Enum {
				writeString(d, v)
			}
		}
	case *schema.Integer:
		writeString(d, "format")
		writeString(d, t.Format)
	case *schema.Number:
		writeString(d, "format")
		writeString(d, t.Format)
	case *schema.Boolean:
	case *schema.Array:
		if t.Items == nil {
			if h.OnMissingItems != nil {
				h.OnMissingItems(ctx.Location())
			}
			writeString(d, "items:none")
			break
		}
		itemsHash, itemsComplexity, err := childAnnotation(t.Items)
		if err != nil {
			return 0, 0, err
		}
		writeString(d, "items")
		writeHash(d, itemsHash)
		complexity = itemsComplexity + 1
	case *schema.Object:
		if t.Properties != nil {
			writeString(d, "properties")
			for _, name := range t.PropertyNames() {
				childHash, childComplexity, err := childAnnotation(t.Properties[name])
				if err != nil {
					return 0, 0, err
				}
				writeString(d, name)
				writeHash(d, childHash)
				complexity += childComplexity
			}
		}
		if len(t.Required) > 0 {
			required := append([]string(nil), t.Required...)
			sort.Strings(required)
			writeString(d, "required")
			for i, r := range required {
				if i > 0 && required[i-1] == r {
					continue
				}
				writeString(d, r)
			}
		}
		if t.AdditionalProperties != nil {
			addHash, _, err := childAnnotation(t.AdditionalProperties)
			if err != nil {
				return 0, 0, err
			}
			writeString(d, "additionalProperties")
			writeHash(d, addHash)
		}
	case *schema.Ref:
		writeString(d, "ref")
		writeString(d, t.Name)
	default:
		return 0, 0, fmt.Errorf("schemautil: cannot hash node of kind %s", node.Kind())
	}
	return schema.Hash(d.Sum64()), complexity, nil
}

func childAnnotation(child *schema.Node) (schema.Hash, int, error) {
	sum, complexity, ok := child.Annotation()
	if !ok {
		return 0, 0, fmt.Errorf("schemautil: %s child hashed before its parent", child.Kind())
	}
	return sum, complexity, nil
}

// writeString writes s followed by a separator so adjacent fields cannot
// run together.
func writeString(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0})
}

func writeHash(d *xxhash.Digest, h schema.Hash) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(h))
	_, _ = d.Write(buf[:])
}

// Strip removes the transient annotations from every node below root.
func Strip(root *schema.Node) error {
	return walker.Walk(root, walker.Hooks{AfterVisit: func(n *schema.Node) error {
		n.ClearAnnotations()
		return nil
	}})
}
