package deduplicator

import (
	"fmt"
	"strings"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/issues"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/severity"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// DescriptionSeparator joins the distinct descriptions of merged occurrences.
const DescriptionSeparator = " | "

// MergeDescriptions appends the parts of incoming that existing does not
// already contain. Merging a description twice is a no-op.
// Example: MergeDescriptions("A", "B") -> "A | B"
// Example: MergeDescriptions("A | B", "A") -> "A | B"
func MergeDescriptions(existing, incoming string) string {
	var parts []string
	seen := make(map[string]struct{})
	for _, text := range []string{existing, incoming} {
		if text == "" {
			continue
		}
		for _, part := range strings.Split(text, DescriptionSeparator) {
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, DescriptionSeparator)
}

// mergeInto walks component and incoming in lockstep and merges the
// description of every incoming node into its counterpart. The two trees
// have the same shape, so every edge of component exists in incoming.
func mergeInto(w *walker.Walker, component, incoming *schema.Node) error {
	stack := []*schema.Node{incoming}
	top := func() *schema.Node { return stack[len(stack)-1] }
	push := func(next func(*schema.Node) *schema.Node) {
		var child *schema.Node
		if cur := top(); cur != nil {
			child = next(cur)
		}
		stack = append(stack, child)
	}
	pop := func() { stack = stack[:len(stack)-1] }

	return w.Walk(component, walker.Hooks{
		BeforeVisit: func(node *schema.Node) walker.Action {
			if other := top(); other != nil {
				node.Description = MergeDescriptions(node.Description, other.Description)
			}
			return walker.Continue
		},
		BeforeProperty: func(name string) {
			push(func(n *schema.Node) *schema.Node {
				if obj, ok := n.Type.(*schema.Object); ok {
					return obj.Properties[name]
				}
				return nil
			})
		},
		AfterProperty: func(string) { pop() },
		BeforeItems: func() {
			push(func(n *schema.Node) *schema.Node {
				if arr, ok := n.Type.(*schema.Array); ok {
					return arr.Items
				}
				return nil
			})
		},
		AfterItems: pop,
		BeforeAdditional: func() {
			push(func(n *schema.Node) *schema.Node {
				if obj, ok := n.Type.(*schema.Object); ok {
					return obj.AdditionalProperties
				}
				return nil
			})
		},
		AfterAdditional: pop,
	})
}

// extract replaces every named occurrence with a reference. It walks only
// the roots present when it starts. The first occurrence of a name is copied
// into the registry; later ones are merged into that copy. It returns the
// names created, in creation order.
func (d *Deduplicator) extract(reg *schema.Registry, alloc *allocation) ([]string, error) {
	w := d.walker()
	var created []string
	err := w.WalkRegistry(reg, func(_ string, ctx *walker.Context) walker.Hooks {
		return ctx.Track(walker.Hooks{AfterVisit: func(node *schema.Node) error {
			if node.Kind() != schema.KindObject {
				return nil
			}
			h, _, ok := node.Annotation()
			if !ok {
				return &oaserrors.ExtractionError{Path: ctx.Location().String(), Message: "node was not hashed"}
			}
			occ, selected := alloc.byHash[h]
			if !selected {
				return nil
			}
			if occ.Name == "" {
				return &oaserrors.ExtractionError{
					Path:    ctx.Location().String(),
					Hash:    h.String(),
					Message: "selected occurrence has no allocated name",
				}
			}

			if existing, found := reg.Get(occ.Name); found {
				if err := mergeInto(w, existing, node); err != nil {
					return fmt.Errorf("merging into %s: %w", occ.Name, err)
				}
			} else {
				reg.Set(occ.Name, node.DeepCopy())
				created = append(created, occ.Name)
			}
			node.ReplaceWithRef(occ.Name, d.NullableRefs)
			return nil
		}})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// applyPinnedDescriptions overwrites the description of every pinned
// component that has one in the naming file.
func (d *Deduplicator) applyPinnedDescriptions(reg *schema.Registry, alloc *allocation) []Diagnostic {
	var diags []Diagnostic
	for _, occ := range alloc.named {
		if !occ.Pinned || occ.Description == "" {
			continue
		}
		component, found := reg.Get(occ.Name)
		if !found {
			continue
		}
		if component.Description != "" && component.Description != occ.Description {
			diags = append(diags, Diagnostic{
				Code:     issues.CodeDescriptionOverwritten,
				Path:     occ.Name,
				Message:  fmt.Sprintf("overwriting description of %s with the pinned one", occ.Name),
				Severity: severity.SeverityWarning,
				Context:  fmt.Sprintf("discarded %q", component.Description),
			})
		}
		component.Description = occ.Description
	}
	return diags
}
