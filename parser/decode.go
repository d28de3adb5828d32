package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/issues"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/schemautil"
	"github.com/MaximilianKoestler/hcloud-openapi/internal/severity"
	"github.com/MaximilianKoestler/hcloud-openapi/oaserrors"
	"github.com/MaximilianKoestler/hcloud-openapi/schema"
)

// Diagnostic is a non-fatal finding reported while decoding.
type Diagnostic = issues.Issue

// forbiddenKeywords are removed with a warning. Inputs are dereferenced, so
// local definition tables are dead weight and not valid OpenAPI.
var forbiddenKeywords = []string{"definitions"}

// knownKeywords lists every keyword the decoder maps onto the schema model.
var knownKeywords = map[string]bool{
	"$ref":                 true,
	"type":                 true,
	"nullable":             true,
	"title":                true,
	"description":          true,
	"example":              true,
	"enum":                 true,
	"format":               true,
	"pattern":              true,
	"items":                true,
	"properties":           true,
	"required":             true,
	"additionalProperties": true,
}

// decoder converts generic decoded JSON/YAML values into schema nodes.
type decoder struct {
	source      string
	diagnostics []Diagnostic
}

func (d *decoder) report(code issues.Code, sev severity.Severity, loc schema.Location, format string, args ...any) {
	d.diagnostics = append(d.diagnostics, Diagnostic{
		Code:     code,
		Path:     loc.String(),
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

func (d *decoder) fail(loc schema.Location, format string, args ...any) error {
	return &oaserrors.ParseError{
		Path:    d.source,
		Message: fmt.Sprintf("%s: %s", loc, fmt.Sprintf(format, args...)),
	}
}

// decode builds the node for raw located at loc.
func (d *decoder) decode(raw any, loc schema.Location) (*schema.Node, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, d.fail(loc, "schema must be an object, got %T", raw)
	}

	for _, kw := range forbiddenKeywords {
		if _, found := m[kw]; found {
			d.report(issues.CodeForbiddenFieldRemoved, severity.SeverityWarning, loc,
				"removing forbidden segment %q", kw)
		}
	}
	for _, key := range sortedKeys(m) {
		if !knownKeywords[key] && !isForbidden(key) {
			d.report(issues.CodeUnknownFieldDropped, severity.SeverityInfo, loc,
				"dropping unsupported keyword %q", key)
		}
	}

	if ref, found := m["$ref"]; found {
		return d.decodeRef(ref, m, loc)
	}
	if len(m) == 0 {
		return schema.NewBare(), nil
	}

	node := &schema.Node{}
	node.Nullable = schemautil.IncludesNull(m["type"])
	if v, found := m["nullable"]; found {
		b, isBool := v.(bool)
		if !isBool {
			return nil, d.fail(loc, "nullable must be a boolean")
		}
		node.Nullable = node.Nullable || b
	}
	var err error
	if node.Title, err = d.stringField(m, "title", loc); err != nil {
		return nil, err
	}
	if node.Description, err = d.stringField(m, "description", loc); err != nil {
		return nil, err
	}
	node.Example = m["example"]

	kind := schemautil.PrimaryType(m["type"])
	if kind == "" {
		kind = inferKind(m)
	}

	switch kind {
	case "string":
		node.Type, err = d.decodeString(m, loc)
	case "integer":
		format, ferr := d.stringField(m, "format", loc)
		node.Type, err = &schema.Integer{Format: format}, ferr
		d.dropEnum(m, loc)
	case "number":
		format, ferr := d.stringField(m, "format", loc)
		node.Type, err = &schema.Number{Format: format}, ferr
		d.dropEnum(m, loc)
	case "boolean":
		node.Type = &schema.Boolean{}
		d.dropEnum(m, loc)
	case "array":
		node.Type, err = d.decodeArray(m, loc)
	case "object":
		node.Type, err = d.decodeObject(m, loc)
	default:
		return nil, d.fail(loc, "unsupported schema type %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (d *decoder) decodeRef(ref any, m map[string]any, loc schema.Location) (*schema.Node, error) {
	s, ok := ref.(string)
	if !ok {
		return nil, d.fail(loc, "$ref must be a string")
	}
	name, found := strings.CutPrefix(s, schema.RefPrefix)
	if !found || name == "" {
		return nil, &oaserrors.ReferenceError{
			Ref:     s,
			Message: "only component references are supported; dereference inputs first",
		}
	}
	node := schema.NewRef(name)
	if nullable, isBool := m["nullable"].(bool); isBool {
		node.Nullable = nullable
	}
	return node, nil
}

func (d *decoder) decodeString(m map[string]any, loc schema.Location) (*schema.String, error) {
	out := &schema.String{}
	var err error
	if out.Format, err = d.stringField(m, "format", loc); err != nil {
		return nil, err
	}
	if out.Pattern, err = d.stringField(m, "pattern", loc); err != nil {
		return nil, err
	}
	if raw, found := m["enum"]; found {
		list, isList := raw.([]any)
		if !isList {
			return nil, d.fail(loc, "enum must be a list")
		}
		out.Enum = make([]string, 0, len(list))
		for _, v := range list {
			if v == nil {
				continue
			}
			out.Enum = append(out.Enum, fmt.Sprint(v))
		}
	}
	return out, nil
}

func (d *decoder) decodeArray(m map[string]any, loc schema.Location) (*schema.Array, error) {
	raw, found := m["items"]
	if !found {
		return &schema.Array{}, nil
	}
	if list, isList := raw.([]any); isList {
		d.report(issues.CodeItemsListCollapsed, severity.SeverityWarning, loc,
			"found array \"items\" with %d alternative(s), keeping the first", len(list))
		if len(list) == 0 {
			return &schema.Array{}, nil
		}
		raw = list[0]
	}
	items, err := d.decode(raw, loc)
	if err != nil {
		return nil, err
	}
	return &schema.Array{Items: items}, nil
}

func (d *decoder) decodeObject(m map[string]any, loc schema.Location) (*schema.Object, error) {
	out := &schema.Object{}
	if raw, found := m["properties"]; found {
		props, isMap := raw.(map[string]any)
		if !isMap {
			return nil, d.fail(loc, "properties must be an object")
		}
		out.Properties = make(map[string]*schema.Node, len(props))
		for _, name := range sortedKeys(props) {
			child, err := d.decode(props[name], append(loc.Clone(), name))
			if err != nil {
				return nil, err
			}
			out.Properties[name] = child
		}
	}
	if raw, found := m["required"]; found {
		list, isList := raw.([]any)
		if !isList {
			return nil, d.fail(loc, "required must be a list")
		}
		for _, v := range list {
			s, isString := v.(string)
			if !isString {
				return nil, d.fail(loc, "required entries must be strings")
			}
			out.Required = append(out.Required, s)
		}
	}
	switch raw := m["additionalProperties"].(type) {
	case nil:
	case bool:
		d.report(issues.CodeUnknownFieldDropped, severity.SeverityInfo, loc,
			"dropping boolean additionalProperties (%t)", raw)
	default:
		add, err := d.decode(raw, loc)
		if err != nil {
			return nil, err
		}
		out.AdditionalProperties = add
	}
	return out, nil
}

func (d *decoder) dropEnum(m map[string]any, loc schema.Location) {
	if _, found := m["enum"]; found {
		d.report(issues.CodeUnknownFieldDropped, severity.SeverityInfo, loc,
			"dropping enum on non-string schema")
	}
}

func (d *decoder) stringField(m map[string]any, key string, loc schema.Location) (string, error) {
	raw, found := m[key]
	if !found || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", d.fail(loc, "%s must be a string, got %T", key, raw)
	}
	return s, nil
}

// inferKind guesses the kind of a schema without a type keyword. An empty
// mapping decodes as an object without properties.
func inferKind(m map[string]any) string {
	switch {
	case m["properties"] != nil, m["additionalProperties"] != nil:
		return "object"
	case m["items"] != nil:
		return "array"
	case m["enum"] != nil:
		return "string"
	}
	for key := range m {
		if knownKeywords[key] {
			return ""
		}
	}
	return "object"
}

func isForbidden(key string) bool {
	for _, kw := range forbiddenKeywords {
		if kw == key {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
