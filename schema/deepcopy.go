package schema

// DeepCopy returns an independent copy of n, including its transient
// annotations. Example values are shared; they are treated as immutable.
func (n *Node) DeepCopy() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Type = copyType(n.Type)
	return &out
}

func copyType(t Type) Type {
	switch v := t.(type) {
	case nil:
		return nil
	case *String:
		c := *v
		if v.Enum != nil {
			c.Enum = append([]string(nil), v.Enum...)
		}
		return &c
	case *Integer:
		c := *v
		return &c
	case *Number:
		c := *v
		return &c
	case *Boolean:
		return &Boolean{}
	case *Array:
		return &Array{Items: v.Items.DeepCopy()}
	case *Object:
		c := &Object{AdditionalProperties: v.AdditionalProperties.DeepCopy(), bare: v.bare}
		if v.Properties != nil {
			c.Properties = make(map[string]*Node, len(v.Properties))
			for name, child := range v.Properties {
				c.Properties[name] = child.DeepCopy()
			}
		}
		if v.Required != nil {
			c.Required = append([]string(nil), v.Required...)
		}
		return c
	case *Ref:
		c := *v
		return &c
	default:
		panic("schema: unknown type variant")
	}
}
