package schemautil

import (
	"github.com/MaximilianKoestler/hcloud-openapi/internal/equalutil"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

// Equivalent reports whether a and b have the same type-shape, comparing the
// same fields the structural hash covers. It is used to confirm that two
// nodes grouped by hash are not a collision.
func Equivalent(a, b *schema.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Nullable != b.Nullable {
		return false
	}
	switch x := a.Type.(type) {
	case *schema.String:
		y, ok := b.Type.(*schema.String)
		return ok && x.Format == y.Format && x.Pattern == y.Pattern &&
			equalutil.EqualOptionalSlices(x.Enum, y.Enum)
	case *schema.Integer:
		y, ok := b.Type.(*schema.Integer)
		return ok && x.Format == y.Format
	case *schema.Number:
		y, ok := b.Type.(*schema.Number)
		return ok && x.Format == y.Format
	case *schema.Boolean:
		_, ok := b.Type.(*schema.Boolean)
		return ok
	case *schema.Array:
		y, ok := b.Type.(*schema.Array)
		return ok && Equivalent(x.Items, y.Items)
	case *schema.Object:
		y, ok := b.Type.(*schema.Object)
		if !ok || (x.Properties == nil) != (y.Properties == nil) || len(x.Properties) != len(y.Properties) {
			return false
		}
		for name, child := range x.Properties {
			other, found := y.Properties[name]
			if !found || !Equivalent(child, other) {
				return false
			}
		}
		return equalutil.EqualStringSets(x.Required, y.Required) &&
			Equivalent(x.AdditionalProperties, y.AdditionalProperties)
	case *schema.Ref:
		y, ok := b.Type.(*schema.Ref)
		return ok && x.Name == y.Name
	}
	return false
}
