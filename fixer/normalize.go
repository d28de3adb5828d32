package fixer

import (
	"fmt"
	"slices"

	"github.com/MaximilianKoestler/hcloud-openapi/schema"
	"github.com/MaximilianKoestler/hcloud-openapi/walker"
)

// fixNode applies every enabled rule to node, in a fixed order.
func (f *Fixer) fixNode(node *schema.Node, ctx *walker.Context) []Fix {
	name := ctx.Last()
	var fixes []Fix
	add := func(fixType FixType, before, after any, format string, args ...any) {
		fixes = append(fixes, Fix{
			Type:        fixType,
			Path:        ctx.Location().String(),
			Description: fmt.Sprintf(format, args...),
			Before:      before,
			After:       after,
		})
	}

	if f.isFixEnabled(FixTypeNullableDeprecated) && name == f.Policy.DeprecatedField {
		if _, ok := node.Type.(*schema.Boolean); ok && !node.Nullable {
			node.Nullable = true
			add(FixTypeNullableDeprecated, false, true, "marked deprecation flag %q as nullable", name)
		}
	}

	if arr, ok := node.Type.(*schema.Array); ok && f.isFixEnabled(FixTypeEmptyArrayItems) && isEmptyItems(arr.Items) {
		arr.Items.Type = &schema.Object{Properties: map[string]*schema.Node{}}
		add(FixTypeEmptyArrayItems, nil, "properties: {}", "gave empty array items an explicit empty property set")
	}

	if str, ok := node.Type.(*schema.String); ok && f.isFixEnabled(FixTypeSortedEnum) && !slices.IsSorted(str.Enum) {
		before := slices.Clone(str.Enum)
		slices.Sort(str.Enum)
		add(FixTypeSortedEnum, before, slices.Clone(str.Enum), "sorted %d enum values", len(str.Enum))
	}

	if num, ok := node.Type.(*schema.Number); ok && f.isFixEnabled(FixTypeNarrowedNumber) && !f.Policy.allowsFloat(name) {
		node.Type = &schema.Integer{Format: num.Format}
		add(FixTypeNarrowedNumber, "number", "integer", "narrowed number %q to integer", name)
	}

	if integer, ok := node.Type.(*schema.Integer); ok && f.isFixEnabled(FixTypeWideCounter) &&
		f.Policy.isWideCounter(name) && integer.Format != "int64" {
		before := integer.Format
		integer.Format = "int64"
		add(FixTypeWideCounter, before, "int64", "set format int64 on counter %q", name)
	}

	if obj, ok := node.Type.(*schema.Object); ok && f.isFixEnabled(FixTypeLabelsMap) && name == f.Policy.LabelsField && isLabelPlaceholder(obj) {
		before := obj.PropertyNames()
		obj.Properties = nil
		obj.AdditionalProperties = &schema.Node{Type: &schema.String{Pattern: f.Policy.LabelKeyPattern}}
		add(FixTypeLabelsMap, before, "additionalProperties", "rewrote %q into a string map", name)
	}

	return fixes
}

// isEmptyItems reports whether items was written as "items: {}". An explicit
// "type: object" without properties is left alone.
func isEmptyItems(items *schema.Node) bool {
	if items == nil {
		return false
	}
	obj, ok := items.Type.(*schema.Object)
	return ok && obj.Bare()
}

// isLabelPlaceholder reports whether obj declares labels without a real
// shape: an explicitly empty property set or the legacy placeholder key.
func isLabelPlaceholder(obj *schema.Object) bool {
	if obj.Properties == nil {
		return false
	}
	if len(obj.Properties) == 0 {
		return true
	}
	_, found := obj.Properties[LegacyLabelKey]
	return found
}
