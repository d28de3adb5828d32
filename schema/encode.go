package schema

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// ToMap renders n as a generic JSON-schema value. Transient annotations are
// never included. Map keys are sorted by the encoders, so output is stable.
func (n *Node) ToMap() map[string]any {
	if n == nil {
		return nil
	}
	out := make(map[string]any)
	if ref, ok := n.Type.(*Ref); ok {
		out["$ref"] = RefPrefix + ref.Name
		if n.Nullable {
			out["nullable"] = true
		}
		return out
	}

	if n.Type != nil {
		out["type"] = n.Type.Kind().String()
	}
	if n.Nullable {
		out["nullable"] = true
	}
	if n.Title != "" {
		out["title"] = n.Title
	}
	if n.Description != "" {
		out["description"] = n.Description
	}
	if n.Example != nil {
		out["example"] = n.Example
	}

	switch v := n.Type.(type) {
	case *String:
		if v.Enum != nil {
			out["enum"] = v.Enum
		}
		if v.Format != "" {
			out["format"] = v.Format
		}
		if v.Pattern != "" {
			out["pattern"] = v.Pattern
		}
	case *Integer:
		if v.Format != "" {
			out["format"] = v.Format
		}
	case *Number:
		if v.Format != "" {
			out["format"] = v.Format
		}
	case *Boolean:
	case *Array:
		if v.Items != nil {
			out["items"] = v.Items.ToMap()
		}
	case *Object:
		if v.Properties != nil {
			props := make(map[string]any, len(v.Properties))
			for name, child := range v.Properties {
				props[name] = child.ToMap()
			}
			out["properties"] = props
		}
		if len(v.Required) > 0 {
			out["required"] = v.Required
		}
		if v.AdditionalProperties != nil {
			out["additionalProperties"] = v.AdditionalProperties.ToMap()
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToMap())
}

// MarshalYAML implements the YAML marshaler interface.
func (n *Node) MarshalYAML() (any, error) {
	return n.ToMap(), nil
}

// Schemas renders every root keyed by component id.
func (r *Registry) Schemas() map[string]any {
	out := make(map[string]any, len(r.roots))
	for id, node := range r.roots {
		out[id] = node.ToMap()
	}
	return out
}

// Document wraps the registry in an OpenAPI components section.
func (r *Registry) Document() map[string]any {
	return map[string]any{
		"components": map[string]any{
			"schemas": r.Schemas(),
		},
	}
}

// MarshalJSON implements json.Marshaler.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Schemas())
}

// MarshalYAML implements the YAML marshaler interface.
func (r *Registry) MarshalYAML() (any, error) {
	return r.Schemas(), nil
}

// Encode renders the registry as a components.schemas document in the given
// format ("json" or "yaml", "" meaning json). JSON output is indented with
// two spaces and ends in a newline.
func (r *Registry) Encode(format string) ([]byte, error) {
	doc := r.Document()
	switch strings.ToLower(format) {
	case "", "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}
